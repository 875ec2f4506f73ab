package shop

import (
	"context"

	"scannsave-backend/entities"

	"gorm.io/gorm"
)

type (
	ShopRepository interface {
		FindShopsByName(ctx context.Context, name string) ([]*entities.Shop, error)
		FindParcels(ctx context.Context, shopID uint, location *string) ([]*entities.ShopParcel, error)
		GetShops(ctx context.Context) ([]*entities.Shop, error)
	}

	shopRepository struct {
		db *gorm.DB
	}
)

func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepository{db: db}
}

func (r *shopRepository) FindShopsByName(ctx context.Context, name string) ([]*entities.Shop, error) {
	var shops []*entities.Shop
	if err := r.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+name+"%").
		Order("id asc").
		Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

func (r *shopRepository) FindParcels(ctx context.Context, shopID uint, location *string) ([]*entities.ShopParcel, error) {
	var parcels []*entities.ShopParcel

	query := r.db.WithContext(ctx).Where("shop_id = ?", shopID)
	if location != nil && *location != "" {
		query = query.Where("location ILIKE ?", "%"+*location+"%")
	}

	if err := query.Order("id asc").Find(&parcels).Error; err != nil {
		return nil, err
	}
	return parcels, nil
}

func (r *shopRepository) GetShops(ctx context.Context) ([]*entities.Shop, error) {
	var shops []*entities.Shop
	if err := r.db.WithContext(ctx).Order("name asc").Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}
