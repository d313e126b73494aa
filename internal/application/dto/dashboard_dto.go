package dto

// DashboardResponse agregados para la pantalla principal. Todo se recalcula en
// cada lectura; nada se almacena precomputado.
type DashboardResponse struct {
	PendingItems      int      `json:"pendingItems"`
	ItemsBelowPar     int      `json:"itemsBelowPar"`
	OpenCycleCounts   int      `json:"openCycleCounts"`
	DraftOrders       int      `json:"draftOrders"`
	LastCountAccuracy *float64 `json:"lastCountAccuracy"` // null si no hay conteos cerrados
}
