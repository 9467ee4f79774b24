package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Order is a customer's cart while Closed is false and a completed purchase
// once it flips to true. DateCreated holds the checkout time: an open cart
// carries the zero time and the field is stamped once at close. The partial
// unique index guarantees at most one open cart per customer.
type Order struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CustomerID  uint      `json:"customerId" gorm:"not null;uniqueIndex:uniq_customer_open_cart,where:closed = false"`
	PaymentType string    `json:"paymentType" gorm:"type:varchar(50)"`
	DateCreated time.Time `json:"dateCreated"`
	Shipping    bool      `json:"shipping"`
	Closed      bool      `json:"closed"`
	Products    []Product `json:"products,omitempty" gorm:"many2many:order_products"`
}

// OrderProduct is the Order-Product link as an explicit identifier set. The
// composite primary key makes a duplicate add impossible at the schema level;
// there is no per-line quantity and no price snapshot.
type OrderProduct struct {
	OrderID   uint `gorm:"primaryKey"`
	ProductID uint `gorm:"primaryKey"`
}

// Total derives the order total from the currently linked products. It is
// non-historical: prices are read live, not snapshotted at add or close time.
// Returns nil when the product relation was not loaded, which is distinct
// from a loaded but empty set (zero).
func (o *Order) Total() *decimal.Decimal {
	if o.Products == nil {
		return nil
	}
	total := decimal.Zero
	for _, p := range o.Products {
		total = total.Add(p.Price)
	}
	return &total
}

// MarshalJSON adds the derived orderTotal to the serialized order. The field
// is null when the product set has not been loaded.
func (o Order) MarshalJSON() ([]byte, error) {
	type alias Order
	return json.Marshal(struct {
		alias
		OrderTotal *decimal.Decimal `json:"orderTotal"`
	}{alias(o), o.Total()})
}
