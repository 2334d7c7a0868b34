package entity

import "time"

// Category agrupa productos. Referencia opcional desde Product.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
