package dto

// MiembroRequest alta o edición de personal. Tipos lleva nombres de rol
// ("Tecnico", "Vendedor", ...); se exige al menos uno.
type MiembroRequest struct {
	Nombre    string   `json:"nombre"`
	Email     string   `json:"email"`
	Celular   string   `json:"celular"`
	Prioridad string   `json:"prioridad"`
	Tipos     []string `json:"tipos"`
}

// MiembroItem fila del listado de personal. EsBorrador marca los registros
// que existen solo localmente porque la escritura remota falló.
type MiembroItem struct {
	ID         string   `json:"id"`
	Nombre     string   `json:"nombre"`
	Email      string   `json:"email"`
	Celular    string   `json:"celular"`
	Prioridad  string   `json:"prioridad"`
	Tipos      []string `json:"tipos"`
	Activo     bool     `json:"activo"`
	EsBorrador bool     `json:"es_borrador"`
}

// FiltrosPersonal filtros del listado de personal.
type FiltrosPersonal struct {
	Busqueda  string `query:"busqueda"` // sobre nombre, email y teléfono
	Tipo      string `query:"tipo"`
	Prioridad string `query:"prioridad"`
	Estado    string `query:"estado"` // Activo | Inactivo
}

// Activos indica si hay algún filtro con valor.
func (f FiltrosPersonal) Activos() bool {
	return f.Busqueda != "" || f.Tipo != "" || f.Prioridad != "" || f.Estado != ""
}

// ListaPersonal respuesta paginada del personal (remotos + borradores).
type ListaPersonal struct {
	Items  []MiembroItem `json:"items"`
	Pagina PageResponse  `json:"pagina"`
}

// SincronizarResponse resultado de reintentar los borradores contra el backend.
type SincronizarResponse struct {
	Sincronizados int      `json:"sincronizados"`
	Fallidos      []string `json:"fallidos,omitempty"` // IDs locales que siguen en borrador
}
