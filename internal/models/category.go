package models

// Category groups products for browsing. No cascade: deleting a category is
// not part of the API surface.
type Category struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	Name     string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Products []Product `json:"products,omitempty"`
}
