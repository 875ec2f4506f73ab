package product

import (
	"context"
	"errors"

	"scannsave-backend/entities"

	"gorm.io/gorm"
)

type (
	ProductRepository interface {
		GetShopIndexHistory(ctx context.Context, shopID uint) ([]*entities.ReceiptIndex, error)
		GetProductByName(ctx context.Context, name string) (*entities.Product, error)
		CreateProduct(ctx context.Context, product *entities.Product) error
		GetCategoryByName(ctx context.Context, name string) (*entities.Category, error)
		CreateCategory(ctx context.Context, category *entities.Category) error
	}

	productRepository struct {
		db *gorm.DB
	}
)

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// GetShopIndexHistory returns the previously observed labels at a shop that
// already resolved to a product. Rows without a product are useless as
// matching history and are filtered out here.
func (r *productRepository) GetShopIndexHistory(ctx context.Context, shopID uint) ([]*entities.ReceiptIndex, error) {
	var indexes []*entities.ReceiptIndex
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND product_id IS NOT NULL", shopID).
		Find(&indexes).Error; err != nil {
		return nil, err
	}
	return indexes, nil
}

func (r *productRepository) GetProductByName(ctx context.Context, name string) (*entities.Product, error) {
	var product entities.Product
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *entities.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetCategoryByName(ctx context.Context, name string) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *productRepository) CreateCategory(ctx context.Context, category *entities.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}
