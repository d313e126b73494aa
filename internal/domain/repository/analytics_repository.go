package repository

// DashboardCounts agregados recalculados por SQL en cada lectura.
type DashboardCounts struct {
	PendingItems    int
	ItemsBelowPar   int
	OpenCycleCounts int
	DraftOrders     int
	// LastCountAccuracy proporción de filas con varianza cero en el último conteo
	// cerrado; nil si el tenant no tiene conteos cerrados.
	LastCountAccuracy *float64
}

// AnalyticsRepository define el puerto de lecturas agregadas para el dashboard.
type AnalyticsRepository interface {
	Dashboard(orgID string) (*DashboardCounts, error)
}
