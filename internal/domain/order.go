package domain

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every valid status, in fulfillment order.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	OrderID    string      `json:"orderId" gorm:"primaryKey;type:varchar(36)"`
	ProductID  string      `json:"productId" gorm:"type:varchar(36);not null;index"`
	Quantity   int         `json:"quantity" gorm:"not null"`
	TotalPrice float64     `json:"totalPrice" gorm:"not null"`
	Status     OrderStatus `json:"status" gorm:"type:enum('pending','confirmed','shipped','delivered','cancelled');default:'pending';index"`
	CreatedAt  time.Time   `json:"createdAt" gorm:"autoCreateTime;index"`

	// Product is the live product row joined at read time. TotalPrice stays
	// a frozen snapshot even when the product price moves.
	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID;references:ProductID"`
}

func (Order) TableName() string { return "orders" }
