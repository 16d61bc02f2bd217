package dto

// DashboardStats are the aggregate counters shown on the dashboard.
type DashboardStats struct {
	TotalProducts int `json:"total_products"`
	TotalStock    int `json:"total_stock"`
	LowStockCount int `json:"low_stock_count"`
	RecentCount   int `json:"recent_count"`
}

// DashboardResponse is the full dashboard read.
type DashboardResponse struct {
	Products        []ProductDTO   `json:"products"`
	LowStockAlerts  []ProductDTO   `json:"low_stock_alerts"`
	RecentMovements []MovementDTO  `json:"recent_movements"`
	Stats           DashboardStats `json:"stats"`
}
