package report

// Valores por defecto de paginación.
const (
	DefaultPage    = 1
	DefaultPerPage = 20
)

// Pagination metadatos de una página ya recortada.
type Pagination struct {
	Total       int
	PerPage     int
	CurrentPage int
	LastPage    int
}

// Paginate devuelve la ventana [offset, offset+perPage) de items, recortada a su longitud.
// Una página fuera de rango devuelve un slice vacío, nunca nil.
// page y perPage deben venir validados (>= 1).
func Paginate[T any](items []T, page, perPage int) ([]T, Pagination) {
	total := len(items)
	meta := Pagination{
		Total:       total,
		PerPage:     perPage,
		CurrentPage: page,
		LastPage:    LastPage(total, perPage),
	}
	// Se compara contra la última página antes de multiplicar para no desbordar.
	if total == 0 || page < 1 || perPage < 1 || page-1 > (total-1)/perPage {
		return []T{}, meta
	}
	offset := (page - 1) * perPage
	end := total
	if perPage < total-offset {
		end = offset + perPage
	}
	out := make([]T, end-offset)
	copy(out, items[offset:end])
	return out, meta
}

// LastPage ceil(total / perPage); 0 si no hay registros.
func LastPage(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	last := total / perPage
	if total%perPage != 0 {
		last++
	}
	return last
}
