package repositories

import "errors"

// ErrNotFound is returned when a requested record does not exist. GORM
// implementations translate gorm.ErrRecordNotFound into it so callers do not
// depend on the persistence library.
var ErrNotFound = errors.New("record not found")
