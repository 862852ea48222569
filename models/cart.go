package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is one (user, item, quantity) line. The unique index is what makes
// add-to-cart an upsert instead of a read-then-write.
type Cart struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID uint      `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"menu_item_id"`
	MenuItem   MenuItem  `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"menu_item"`
	Quantity   int       `gorm:"not null;default:1" json:"quantity"`
	AddedAt    time.Time `gorm:"autoCreateTime" json:"added_at"`
}

// LineTotal is price x quantity of the referenced item. MenuItem must be loaded.
func (c Cart) LineTotal() decimal.Decimal {
	return c.MenuItem.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}
