package receipt

import (
	"context"

	"scannsave-backend/entities"

	"gorm.io/gorm"
)

type (
	ReceiptRepository interface {
		CreateReceipt(ctx context.Context, receipt *entities.Receipt) error
		GetReceiptByID(ctx context.Context, id uint) (*entities.Receipt, error)
		GetReceipts(ctx context.Context, creatorID uint, storeName string, page, pageSize int) ([]*entities.Receipt, int64, error)
		GetReceiptsByDateRange(ctx context.Context, creatorID uint, startDate, endDate string) ([]*entities.Receipt, error)
		DeleteReceipt(ctx context.Context, id uint) (int64, error)
		UpdateReceiptPicPath(ctx context.Context, id uint, picPath string) error

		CreateReceiptIndex(ctx context.Context, index *entities.ReceiptIndex) error
		DeleteReceiptIndexes(ctx context.Context, ids []uint) error

		CreateReceiptConnect(ctx context.Context, connect *entities.ReceiptConnectIndex) error
		DeleteReceiptConnects(ctx context.Context, receiptID uint) error
		GetReceiptLines(ctx context.Context, receiptID uint) ([]ReceiptLineRow, error)

		CreateReceiptShare(ctx context.Context, share *entities.ReceiptShare) error
		DeleteReceiptShares(ctx context.Context, receiptID uint) error
	}

	// ReceiptLineRow is one line of a receipt joined with its observed label.
	ReceiptLineRow struct {
		IndeksID  uint    `json:"indeks_id"`
		Indeks    string  `json:"indeks"`
		Price     float64 `json:"price"`
		ProductID *uint   `json:"product_id"`
		Quantity  float64 `json:"quantity"`
	}

	receiptRepository struct {
		db *gorm.DB
	}
)

func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) CreateReceipt(ctx context.Context, receipt *entities.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *receiptRepository) GetReceiptByID(ctx context.Context, id uint) (*entities.Receipt, error) {
	var receipt entities.Receipt
	if err := r.db.WithContext(ctx).
		Preload("ShopParcel").
		Preload("ShopParcel.Shop").
		Where("id = ?", id).
		First(&receipt).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *receiptRepository) GetReceipts(ctx context.Context, creatorID uint, storeName string, page, pageSize int) ([]*entities.Receipt, int64, error) {
	var receipts []*entities.Receipt
	var count int64

	offset := (page - 1) * pageSize

	query := r.db.WithContext(ctx).Model(&entities.Receipt{}).
		Where("receipts.creator_id = ?", creatorID)

	if storeName != "" {
		query = query.
			Joins("JOIN shops_parcels ON receipts.shop_parcel_id = shops_parcels.id").
			Joins("JOIN shops ON shops_parcels.shop_id = shops.id").
			Where("shops.name ILIKE ?", "%"+storeName+"%")
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("ShopParcel").
		Preload("ShopParcel.Shop").
		Order("receipts.created_at desc").
		Offset(offset).Limit(pageSize).
		Find(&receipts).Error; err != nil {
		return nil, 0, err
	}

	return receipts, count, nil
}

func (r *receiptRepository) GetReceiptsByDateRange(ctx context.Context, creatorID uint, startDate, endDate string) ([]*entities.Receipt, error) {
	var receipts []*entities.Receipt

	if err := r.db.WithContext(ctx).
		Preload("ShopParcel").
		Preload("ShopParcel.Shop").
		Where("creator_id = ? AND date BETWEEN ? AND ?", creatorID, startDate, endDate).
		Order("date desc").
		Find(&receipts).Error; err != nil {
		return nil, err
	}

	return receipts, nil
}

func (r *receiptRepository) DeleteReceipt(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Receipt{})
	return result.RowsAffected, result.Error
}

func (r *receiptRepository) UpdateReceiptPicPath(ctx context.Context, id uint, picPath string) error {
	return r.db.WithContext(ctx).Model(&entities.Receipt{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"pic_path": picPath}).Error
}

func (r *receiptRepository) CreateReceiptIndex(ctx context.Context, index *entities.ReceiptIndex) error {
	return r.db.WithContext(ctx).Create(index).Error
}

func (r *receiptRepository) DeleteReceiptIndexes(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&entities.ReceiptIndex{}).Error
}

func (r *receiptRepository) CreateReceiptConnect(ctx context.Context, connect *entities.ReceiptConnectIndex) error {
	return r.db.WithContext(ctx).Create(connect).Error
}

func (r *receiptRepository) DeleteReceiptConnects(ctx context.Context, receiptID uint) error {
	return r.db.WithContext(ctx).Where("receipt_id = ?", receiptID).Delete(&entities.ReceiptConnectIndex{}).Error
}

func (r *receiptRepository) GetReceiptLines(ctx context.Context, receiptID uint) ([]ReceiptLineRow, error) {
	var lines []ReceiptLineRow

	query := `
		SELECT ri.id AS indeks_id, ri.indeks, ri.price, ri.product_id, rci.quantity
		FROM receipt_connect_indekses rci
		JOIN receipt_indekses ri ON rci.receipt_indeks_id = ri.id
		WHERE rci.receipt_id = ?
		ORDER BY rci.id ASC
	`

	if err := r.db.WithContext(ctx).Raw(query, receiptID).Scan(&lines).Error; err != nil {
		return nil, err
	}

	return lines, nil
}

func (r *receiptRepository) CreateReceiptShare(ctx context.Context, share *entities.ReceiptShare) error {
	return r.db.WithContext(ctx).Create(share).Error
}

func (r *receiptRepository) DeleteReceiptShares(ctx context.Context, receiptID uint) error {
	return r.db.WithContext(ctx).Where("receipt_id = ?", receiptID).Delete(&entities.ReceiptShare{}).Error
}
