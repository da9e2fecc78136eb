package dto

// DashboardDTO respuesta de GET /api/dashboard: totales y últimos movimientos.
type DashboardDTO struct {
	TotalProducts   int                `json:"total_products"`
	TotalLocations  int                `json:"total_locations"`
	TotalMovements  int                `json:"total_movements"`
	RecentMovements []MovementResponse `json:"recent_movements"`
}
