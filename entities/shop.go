package entities

type Shop struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null" json:"name"`

	Parcels []*ShopParcel `gorm:"foreignKey:ShopID"`
	Timestamp
}

// ShopParcel is a single physical branch of a shop. Parcels are reference
// data provisioned out-of-band; the ingestion path only resolves them.
type ShopParcel struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ShopID   uint   `gorm:"not null" json:"shop_id"`
	Location string `json:"location,omitempty"`

	Shop *Shop `gorm:"foreignKey:ShopID"`
	Timestamp
}

func (ShopParcel) TableName() string {
	return "shops_parcels"
}
