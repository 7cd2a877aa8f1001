package dto

// FiltrosImplementaciones filtros de la tabla de implementaciones. Cada campo
// es un "contiene" insensible a mayúsculas; los filtros activos se componen
// con AND.
type FiltrosImplementaciones struct {
	Empresa  string `query:"empresa"`
	RNC      string `query:"rnc"`
	Tecnico  string `query:"tecnico"`
	Vendedor string `query:"vendedor"`
	Estado   string `query:"estado"`
	Sistema  string `query:"sistema"`
}

// Activos indica si hay algún filtro con valor.
func (f FiltrosImplementaciones) Activos() bool {
	return f.Empresa != "" || f.RNC != "" || f.Tecnico != "" || f.Vendedor != "" ||
		f.Estado != "" || f.Sistema != ""
}

// FiltrosCertificaciones filtros de la tabla de certificaciones. El filtro de
// certificación admite valores especiales ("en blanco", "finalización",
// "sin empezar") con semántica exacta propia.
type FiltrosCertificaciones struct {
	Empresa       string `query:"empresa"`
	RNC           string `query:"rnc"`
	Certificacion string `query:"certificacion"`
	Tipo          string `query:"tipo"`
	EmpresaPadre  string `query:"empresa_padre"`
}

// Activos indica si hay algún filtro con valor.
func (f FiltrosCertificaciones) Activos() bool {
	return f.Empresa != "" || f.RNC != "" || f.Certificacion != "" ||
		f.Tipo != "" || f.EmpresaPadre != ""
}

// ImplementacionItem fila de la tabla de implementaciones.
type ImplementacionItem struct {
	Numero              int    `json:"numero"`
	Empresa             string `json:"empresa"`
	RNC                 string `json:"rnc"`
	Direccion           string `json:"direccion"`
	Contacto            string `json:"contacto"`
	ContactoEmail       string `json:"contacto_email"`
	Tecnico             string `json:"tecnico"`
	Vendedor            string `json:"vendedor"`
	Distribuidor        string `json:"distribuidor"`
	Sistema             string `json:"sistema"`
	MontoImplementacion string `json:"monto_implementacion"`
	Abono               string `json:"abono"`
	Estado              string `json:"estado"`
	FechaContratacion   string `json:"fecha_contratacion"`
}

// CertificacionItem fila de la tabla de certificaciones (lista aplanada:
// principales y subsidiarias).
type CertificacionItem struct {
	Numero        int    `json:"numero"`
	Empresa       string `json:"empresa"`
	RNC           string `json:"rnc"`
	Certificacion string `json:"certificacion"`
	Contacto      string `json:"contacto"`
	Email         string `json:"email"`
	Fecha         string `json:"fecha"`
	Tipo          string `json:"tipo"` // Principal | Subsidiaria
	EmpresaPadre  string `json:"empresa_padre,omitempty"`
}

// ListaImplementaciones respuesta paginada de implementaciones.
type ListaImplementaciones struct {
	Items               []ImplementacionItem `json:"items"`
	Pagina              PageResponse         `json:"pagina"`
	UsandoDatosFallback bool                 `json:"usando_datos_fallback"`
}

// ListaCertificaciones respuesta paginada de certificaciones.
type ListaCertificaciones struct {
	Items               []CertificacionItem `json:"items"`
	Pagina              PageResponse        `json:"pagina"`
	UsandoDatosFallback bool                `json:"usando_datos_fallback"`
}
