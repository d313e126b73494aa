package repository

import "github.com/jhoicas/Stockio-api/internal/domain/entity"

// VendorRepository define el puerto de persistencia para proveedores.
type VendorRepository interface {
	Create(vendor *entity.Vendor) error
	GetByID(orgID, id string) (*entity.Vendor, error)
	// GetByName búsqueda exacta por nombre (usada por el escaneo de facturas).
	GetByName(orgID, name string) (*entity.Vendor, error)
	List(orgID string, limit, offset int) ([]*entity.Vendor, error)
	Update(vendor *entity.Vendor) error
	Delete(orgID, id string) error
}
