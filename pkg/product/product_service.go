package product

import (
	"context"
	"errors"
	"log"

	"scannsave-backend/domain"
	"scannsave-backend/entities"

	"github.com/texttheater/golang-levenshtein/levenshtein"
	"gorm.io/gorm"
)

type (
	ProductService interface {
		Reconcile(ctx context.Context, rawLabel string, shopID uint) (ReconcileResult, error)
		GetOrCreateProduct(ctx context.Context, name string, categoryName *string) (uint, error)
	}

	// ReconcileResult carries the product a raw label resolved to. Matched is
	// true only when the label was fuzzy-matched against prior history at the
	// same shop, independent of whether a Product row had to be created.
	ReconcileResult struct {
		ProductID *uint
		Matched   bool
	}

	productService struct {
		productRepository ProductRepository
	}
)

func NewProductService(productRepository ProductRepository) ProductService {
	return &productService{productRepository: productRepository}
}

// Reconcile maps a raw line-item label to a catalog product. Matching is
// scoped to labels previously seen at the same shop: OCR noise at one shop
// must never merge labels across shops, even when the text is identical.
// Lookup or creation failures are soft: the caller persists the line with a
// nil product reference and the receipt save continues.
func (s *productService) Reconcile(ctx context.Context, rawLabel string, shopID uint) (ReconcileResult, error) {
	history, err := s.productRepository.GetShopIndexHistory(ctx, shopID)
	if err != nil {
		log.Printf("warning: loading index history for shop %d failed: %v", shopID, err)
		return ReconcileResult{}, nil
	}

	if id, ok := matchAgainstHistory(rawLabel, history); ok {
		return ReconcileResult{ProductID: &id, Matched: true}, nil
	}

	productID, err := s.GetOrCreateProduct(ctx, rawLabel, nil)
	if err != nil {
		log.Printf("warning: resolving product for label %q failed: %v", rawLabel, err)
		return ReconcileResult{}, nil
	}

	return ReconcileResult{ProductID: &productID, Matched: false}, nil
}

// matchAgainstHistory returns the product id of the closest prior label
// within the edit-distance threshold.
func matchAgainstHistory(rawLabel string, history []*entities.ReceiptIndex) (uint, bool) {
	bestDistance := domain.MatchThreshold + 1
	var bestProductID uint

	for _, entry := range history {
		if entry.ProductID == nil {
			continue
		}
		distance := levenshtein.DistanceForStrings(
			[]rune(rawLabel),
			[]rune(entry.Indeks),
			levenshtein.DefaultOptions,
		)
		if distance < bestDistance {
			bestDistance = distance
			bestProductID = *entry.ProductID
		}
	}

	if bestDistance <= domain.MatchThreshold {
		return bestProductID, true
	}
	return 0, false
}

// GetOrCreateProduct resolves a product by exact (case-sensitive) name,
// inserting a new catalog row when absent. The category, when given, is also
// created lazily by name.
func (s *productService) GetOrCreateProduct(ctx context.Context, name string, categoryName *string) (uint, error) {
	existing, err := s.productRepository.GetProductByName(ctx, name)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	product := &entities.Product{Name: name}

	if categoryName != nil && *categoryName != "" {
		categoryID, err := s.getOrCreateCategory(ctx, *categoryName)
		if err != nil {
			log.Printf("warning: resolving category %q failed: %v", *categoryName, err)
		} else {
			product.CategoryID = &categoryID
		}
	}

	if err := s.productRepository.CreateProduct(ctx, product); err != nil {
		return 0, err
	}
	return product.ID, nil
}

func (s *productService) getOrCreateCategory(ctx context.Context, name string) (uint, error) {
	existing, err := s.productRepository.GetCategoryByName(ctx, name)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	category := &entities.Category{Name: name}
	if err := s.productRepository.CreateCategory(ctx, category); err != nil {
		return 0, err
	}
	return category.ID, nil
}
