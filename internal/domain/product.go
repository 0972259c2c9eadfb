package domain

import "time"

type Product struct {
	ProductID     string    `json:"productId" gorm:"primaryKey;type:varchar(36)"`
	Name          string    `json:"name" gorm:"size:255;not null;index"`
	Price         float64   `json:"price" gorm:"not null"`
	Rating        *float64  `json:"rating,omitempty"`
	StockQuantity int       `json:"stockQuantity" gorm:"not null;default:0;index"`
	Category      string    `json:"category" gorm:"size:100;not null;index"`
	CreatedAt     time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (Product) TableName() string { return "products" }
