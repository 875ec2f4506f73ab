package entities

type Receipt struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatorID    uint    `gorm:"not null;index" json:"creator_id"`
	Date         string  `json:"date"` // purchase date as printed on the receipt, YYYY-MM-DD
	ShopParcelID uint    `gorm:"not null" json:"shop_parcel_id"`
	SumPrice     float64 `json:"sum_price"`
	PicPath      *string `json:"pic_path,omitempty"`

	Creator    *User       `gorm:"foreignKey:CreatorID"`
	ShopParcel *ShopParcel `gorm:"foreignKey:ShopParcelID"`
	Timestamp
}

// ReceiptIndex is one observed raw-text rendering of a product at a shop.
// Rows accumulate as matching history and are never deleted outside the
// save attempt that inserted them.
type ReceiptIndex struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Indeks    string  `gorm:"not null" json:"indeks"`
	Price     float64 `json:"price"`
	ProductID *uint   `json:"product_id,omitempty"`
	ShopID    uint    `gorm:"not null;index" json:"shop_id"`

	Product *Product `gorm:"foreignKey:ProductID"`
	Timestamp
}

func (ReceiptIndex) TableName() string {
	return "receipt_indekses"
}

type ReceiptConnectIndex struct {
	ID              uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	ReceiptID       uint    `gorm:"not null;index" json:"receipt_id"`
	ReceiptIndeksID uint    `gorm:"not null" json:"receipt_indeks_id"`
	Quantity        float64 `json:"quantity"`

	Receipt      *Receipt      `gorm:"foreignKey:ReceiptID"`
	ReceiptIndex *ReceiptIndex `gorm:"foreignKey:ReceiptIndeksID"`
	Timestamp
}

func (ReceiptConnectIndex) TableName() string {
	return "receipt_connect_indekses"
}

type ReceiptShare struct {
	ID           uint `gorm:"primaryKey;autoIncrement" json:"id"`
	ReceiptID    uint `gorm:"not null;index" json:"receipt_id"`
	SharedWithID uint `gorm:"not null" json:"shared_with_id"`

	Receipt    *Receipt `gorm:"foreignKey:ReceiptID"`
	SharedWith *User    `gorm:"foreignKey:SharedWithID"`
	Timestamp
}
