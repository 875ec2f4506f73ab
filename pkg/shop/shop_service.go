package shop

import (
	"context"

	"scannsave-backend/domain"
)

type (
	ShopService interface {
		ResolveShopParcel(ctx context.Context, shopName string, location *string) (ResolvedShop, error)
		GetShops(ctx context.Context) ([]domain.ShopResponse, error)
	}

	// ResolvedShop is the shop scope a receipt is saved under.
	ResolvedShop struct {
		ShopID   uint
		ParcelID uint
	}

	shopService struct {
		shopRepository ShopRepository
	}
)

func NewShopService(shopRepository ShopRepository) ShopService {
	return &shopService{shopRepository: shopRepository}
}

// ResolveShopParcel maps a shop name and optional location to an existing
// shop/parcel pair. Shops and parcels are provisioned out-of-band; a missing
// shop is a hard failure, never a silent create. When the name matches more
// than one shop the first match wins.
func (s *shopService) ResolveShopParcel(ctx context.Context, shopName string, location *string) (ResolvedShop, error) {
	shops, err := s.shopRepository.FindShopsByName(ctx, shopName)
	if err != nil {
		return ResolvedShop{}, err
	}
	if len(shops) == 0 {
		return ResolvedShop{}, domain.ErrShopNotFound
	}

	shopID := shops[0].ID

	parcels, err := s.shopRepository.FindParcels(ctx, shopID, location)
	if err != nil {
		return ResolvedShop{}, err
	}
	if len(parcels) == 0 {
		return ResolvedShop{}, domain.ErrShopParcelNotFound
	}

	return ResolvedShop{
		ShopID:   shopID,
		ParcelID: parcels[0].ID,
	}, nil
}

func (s *shopService) GetShops(ctx context.Context) ([]domain.ShopResponse, error) {
	shops, err := s.shopRepository.GetShops(ctx)
	if err != nil {
		return nil, err
	}

	var response []domain.ShopResponse
	for _, shop := range shops {
		response = append(response, domain.ShopResponse{
			ID:   shop.ID,
			Name: shop.Name,
		})
	}

	return response, nil
}
