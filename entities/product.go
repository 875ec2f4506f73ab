package entities

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	Timestamp
}

type Product struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string `gorm:"not null" json:"name"`
	CategoryID *uint  `json:"category_id,omitempty"`

	Category *Category `gorm:"foreignKey:CategoryID"`
	Timestamp
}
