package models

import "github.com/shopspring/decimal"

// Product is a listing offered by a seller under a category. Price uses
// exact decimal arithmetic; Quantity is informational and is never
// decremented by order activity.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Title       string          `json:"title" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Description string          `json:"description" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2)"`
	CategoryID  uint            `json:"categoryId" validate:"required"`
	Category    *Category       `json:"category,omitempty"`
	SellerID    uint            `json:"sellerId" validate:"required"`
	Seller      *User           `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	Orders      []Order         `json:"-" gorm:"many2many:order_products"`
}
