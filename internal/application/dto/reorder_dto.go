package dto

// ReorderItemDTO producto por debajo (o en) su nivel de reorden.
type ReorderItemDTO struct {
	ProductID         int64   `json:"product_id"`
	ProductName       string  `json:"product_name"`
	CurrentQuantity   int     `json:"current_quantity"`
	CategoryName      string  `json:"category_name"`
	DeliveredQuantity int     `json:"delivered_quantity"`
	SafetyStock       int     `json:"safety_stock"`
	AverageDailyUsage float64 `json:"average_daily_usage"` // 2 decimales
	ReorderLevel      float64 `json:"reorder_level"`       // 2 decimales
	NeedsReorder      bool    `json:"needs_reorder"`
}

// ReorderPagination metadatos de página en snake_case.
type ReorderPagination struct {
	Total       int `json:"total"`
	PerPage     int `json:"per_page"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
}

// ReorderQuery page/limit; nil toma el valor por defecto.
type ReorderQuery struct {
	Page  *int
	Limit *int
}

// ReorderLevelResponse GET /api/products/reorder-level.
type ReorderLevelResponse struct {
	Data         []ReorderItemDTO  `json:"data"`
	Pagination   ReorderPagination `json:"pagination"`
	ReorderCount int               `json:"reorder_count"`
}
