package models

// User represents a marketplace account. A user with Seller set offers
// products for sale; everyone can own a cart and complete purchases.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Username    string    `json:"username" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Email       string    `json:"email" gorm:"type:varchar(255)" validate:"required,email"`
	PhoneNumber string    `json:"phoneNumber" gorm:"type:varchar(30)" validate:"omitempty,max=30"`
	UID         string    `json:"uid" gorm:"column:uid;uniqueIndex;type:varchar(64)" validate:"omitempty,max=64"`
	Seller      bool      `json:"seller"`
	Products    []Product `json:"products,omitempty" gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE"`
}
