package entity

import (
	"time"

	"github.com/jhoicas/Stockio-api/internal/domain"
)

// PrepUnit unidad de preparación (restaurante).
type PrepUnit string

const (
	PrepUnitEach  PrepUnit = "each"
	PrepUnitBatch PrepUnit = "batch"
	PrepUnitTray  PrepUnit = "tray"
	PrepUnitQuart PrepUnit = "quart"
	PrepUnitPound PrepUnit = "pound"
)

// ParsePrepUnit valida una unidad recibida en la frontera.
func ParsePrepUnit(s string) (PrepUnit, error) {
	switch PrepUnit(s) {
	case PrepUnitEach, PrepUnitBatch, PrepUnitTray, PrepUnitQuart, PrepUnitPound:
		return PrepUnit(s), nil
	}
	return "", domain.ErrInvalidInput
}

// PrepItem ítem de preparación: nivel actual contra nivel par objetivo.
// CurrentLevel solo se mueve vía eventos PrepLog (append-only), a diferencia del
// libro de conteos cíclicos que sobrescribe el último valor.
type PrepItem struct {
	ID           string
	OrgID        string
	Name         string
	Unit         PrepUnit
	CurrentLevel int
	ParLevel     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Needed cantidad faltante para alcanzar el par. Nunca negativa.
func (p *PrepItem) Needed() int {
	if p.CurrentLevel >= p.ParLevel {
		return 0
	}
	return p.ParLevel - p.CurrentLevel
}

// PrepLog evento de preparación completada. Append-only: las correcciones se
// registran como eventos nuevos, nunca se edita uno existente.
type PrepLog struct {
	ID         string
	PrepItemID string
	Quantity   int // positivo al preparar; negativo solo en el reset de inicio de día
	Notes      string
	UserID     string
	PreppedAt  time.Time
}
