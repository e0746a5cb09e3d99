package dto

// TransactionQuery parámetros del feed unificado. Fechas en YYYY-MM-DD.
// Page/PerPage nil toman el valor por defecto; un valor < 1 es error de validación.
type TransactionQuery struct {
	Page             *int
	PerPage          *int
	DateFrom         string
	DateTo           string
	Categories       []string
	Search           string
	SearchType       string
	TransactionTypes []string
}

// ProductHistoryQuery parámetros del historial por producto.
type ProductHistoryQuery struct {
	TransactionType string
	TimePeriod      string
	Page            *int
	PerPage         *int
}

// TransactionDTO registro del feed. Los opcionales se omiten fuera de las entregas;
// date_in/date_out son null (no "") cuando no hay fecha.
type TransactionDTO struct {
	ProductID       int64   `json:"product_id"`
	ProductName     string  `json:"product_name"`
	CategoryName    string  `json:"category_name"`
	DeliveryID      *int64  `json:"delivery_id,omitempty"`
	Quantity        int     `json:"quantity"`
	TotalValue      string  `json:"total_value"`
	DateIn          *string `json:"date_in"`
	DateOut         *string `json:"date_out"`
	TransactionType string  `json:"transaction_type"`
	DeliveryStatus  *string `json:"delivery_status,omitempty"`
	TotalDamages    *int    `json:"total_damages,omitempty"`
}

// FeedPagination metadatos de página del feed (camelCase por compatibilidad con el front).
type FeedPagination struct {
	Total       int `json:"total"`
	PerPage     int `json:"perPage"`
	CurrentPage int `json:"currentPage"`
	LastPage    int `json:"lastPage"`
}

// TransactionPage página de transacciones.
type TransactionPage struct {
	Data       []TransactionDTO `json:"data"`
	Pagination FeedPagination   `json:"pagination"`
}

// TransactionFeedResponse respuesta de los endpoints de reporte de transacciones.
type TransactionFeedResponse struct {
	TotalRestockedQuantity int             `json:"total_restocked_quantity"`
	Transactions           TransactionPage `json:"transactions"`
}

// ProductHistoryResponse historial de un producto con su resumen.
type ProductHistoryResponse struct {
	ProductID              int64           `json:"product_id"`
	ProductName            string          `json:"product_name"`
	ProductCreatedDate     string          `json:"product_created_date"`
	RemainingQuantity      int             `json:"remaining_quantity"`
	TotalRestockedQuantity int             `json:"total_restocked_quantity"`
	Transactions           TransactionPage `json:"transactions"`
}
