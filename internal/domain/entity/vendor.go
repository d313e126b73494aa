package entity

import "time"

// Vendor proveedor al que se le emiten órdenes de compra.
type Vendor struct {
	ID          string
	OrgID       string
	Name        string
	ContactName string
	Email       string
	Phone       string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
