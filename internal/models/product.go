package models

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog product.
type Product struct {
	ID               string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name             string         `json:"name" gorm:"not null"`
	DescriptionLong  string         `json:"descriptionLong" gorm:"type:text"`
	DescriptionShort string         `json:"descriptionShort" gorm:"type:varchar(100)"`
	Price            float64        `json:"price" gorm:"not null"`
	ProductCategory  string         `json:"productCategory"`
	ProductType      string         `json:"productType"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"` // soft delete keeps the id reserved
}

// TableName specifies the table name.
func (Product) TableName() string {
	return "products"
}
