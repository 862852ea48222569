package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

// Only StatusPending is ever written. The other three values are part of
// the column's closed set but nothing transitions an order into them.
const (
	StatusPending   OrderStatus = "Pending"
	StatusConfirmed OrderStatus = "Confirmed"
	StatusPreparing OrderStatus = "Preparing"
	StatusDelivered OrderStatus = "Delivered"
)

const DefaultPaymentMethod = "COD"

var OrderStatuses = []OrderStatus{StatusPending, StatusConfirmed, StatusPreparing, StatusDelivered}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	User          User            `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	PaymentMethod string          `gorm:"type:varchar(50);not null;default:'COD'" json:"payment_method"`
	OrderTime     time.Time       `gorm:"autoCreateTime" json:"order_time"`
	OrderItems    []OrderItem     `gorm:"foreignKey:OrderID" json:"order_items"`
}
