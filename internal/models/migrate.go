package models

import "gorm.io/gorm"

// Migrate registers the explicit order_products join model and creates or
// updates the schema for all marketplace tables. The join table must be
// registered before AutoMigrate so its composite primary key is used instead
// of GORM's generated join table.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Order{}, "Products", &OrderProduct{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&Product{}, "Orders", &OrderProduct{}); err != nil {
		return err
	}
	return db.AutoMigrate(&User{}, &Category{}, &Product{}, &Order{})
}
