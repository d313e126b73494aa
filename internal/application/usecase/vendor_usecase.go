package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Stockio-api/internal/application/dto"
	"github.com/jhoicas/Stockio-api/internal/domain"
	"github.com/jhoicas/Stockio-api/internal/domain/entity"
	"github.com/jhoicas/Stockio-api/internal/domain/repository"
)

// VendorUseCase CRUD de proveedores.
type VendorUseCase struct {
	repo repository.VendorRepository
}

// NewVendorUseCase construye el caso de uso.
func NewVendorUseCase(repo repository.VendorRepository) *VendorUseCase {
	return &VendorUseCase{repo: repo}
}

// Create crea un proveedor.
func (uc *VendorUseCase) Create(orgID string, in dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	vendor := &entity.Vendor{
		ID:          uuid.New().String(),
		OrgID:       orgID,
		Name:        in.Name,
		ContactName: in.ContactName,
		Email:       in.Email,
		Phone:       in.Phone,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(vendor); err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

// GetByID obtiene un proveedor dentro del scope del tenant.
func (uc *VendorUseCase) GetByID(orgID, id string) (*dto.VendorResponse, error) {
	vendor, err := uc.repo.GetByID(orgID, id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, domain.ErrNotFound
	}
	return toVendorResponse(vendor), nil
}

// List lista proveedores con paginación.
func (uc *VendorUseCase) List(orgID string, limit, offset int) ([]*dto.VendorResponse, error) {
	vendors, err := uc.repo.List(orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, toVendorResponse(v))
	}
	return out, nil
}

// Update edición parcial de un proveedor.
func (uc *VendorUseCase) Update(orgID, id string, in dto.UpdateVendorRequest) (*dto.VendorResponse, error) {
	vendor, err := uc.repo.GetByID(orgID, id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		vendor.Name = *in.Name
	}
	if in.ContactName != nil {
		vendor.ContactName = *in.ContactName
	}
	if in.Email != nil {
		vendor.Email = *in.Email
	}
	if in.Phone != nil {
		vendor.Phone = *in.Phone
	}
	if in.Notes != nil {
		vendor.Notes = *in.Notes
	}
	vendor.UpdatedAt = time.Now()
	if err := uc.repo.Update(vendor); err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

// Delete borra un proveedor.
func (uc *VendorUseCase) Delete(orgID, id string) error {
	vendor, err := uc.repo.GetByID(orgID, id)
	if err != nil {
		return err
	}
	if vendor == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(orgID, id)
}

// FindOrCreateByName busca un proveedor por nombre exacto y lo crea si no existe.
// Usado por el escaneo de facturas; "Proveedor sin identificar" cuando el OCR no
// pudo leer el nombre.
func (uc *VendorUseCase) FindOrCreateByName(orgID, name string) (string, error) {
	if name == "" {
		name = "Proveedor sin identificar"
	}
	existing, err := uc.repo.GetByName(orgID, name)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return existing.ID, nil
	}
	now := time.Now()
	vendor := &entity.Vendor{
		ID:        uuid.New().String(),
		OrgID:     orgID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(vendor); err != nil {
		return "", err
	}
	return vendor.ID, nil
}

func toVendorResponse(v *entity.Vendor) *dto.VendorResponse {
	return &dto.VendorResponse{
		ID:          v.ID,
		Name:        v.Name,
		ContactName: v.ContactName,
		Email:       v.Email,
		Phone:       v.Phone,
		Notes:       v.Notes,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}
