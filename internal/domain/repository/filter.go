package repository

// Valores de paginación.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ListFilter búsqueda y paginación para listados.
// Query es una subcadena sin distinguir mayúsculas; vacío = sin filtro.
type ListFilter struct {
	Query  string
	Limit  int
	Offset int
}

// Normalize aplica límites por defecto.
func (f ListFilter) Normalize() ListFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
