package dto

// TareaFormData datos principales del formulario de creación de tarea. Los
// nombres JSON reproducen el contrato del webhook del backend.
type TareaFormData struct {
	Asignar              string `json:"asignar"`
	FechaInicio          string `json:"fechaInicio"`
	CantidadClientFE     string `json:"cantidadClientFE"`
	Celular              string `json:"celular"`
	EmailTecnico         string `json:"emailTecnico"`
	DireccionFisica      string `json:"direccionFisica"`
	FechaContratacion    string `json:"fechaContratacion"`
	Formato              string `json:"formato"`
	NombreCliente        string `json:"nombreCliente"`
	NombreContacto       string `json:"nombreContacto"`
	MontoImplementacion  string `json:"montoImplementacion"`
	ProcesamientoAnual   string `json:"procesamientoAnual"`
	RNC                  string `json:"rnc"`
	Sistema              string `json:"sistema"`
	Transmision          string `json:"transmision"`
	Abono                string `json:"abono"`
	ResumenContratado    string `json:"resumenContratado"`
	Vendedor             string `json:"vendedor"`
	VendedorDistribuidor string `json:"vendedorDistribuidor"`
	EsGrupo              string `json:"esGrupo"`
	NombreGrupo          string `json:"nombreGrupo"`
	CantidadNrcs         string `json:"cantidadNrcs"`
}

// TareaNRC una empresa adicional (NRC) asociada a la tarea.
type TareaNRC struct {
	Nombre    string `json:"nombre"`
	RNC       string `json:"rnc"`
	Email     string `json:"email"`
	Direccion string `json:"direccion"`
	Activo    bool   `json:"activo"`
}

// TareaRequest cuerpo de creación de tarea. Confirmaciones y Requisitos son
// listas de claves del catálogo; el caso de uso las convierte a sus textos
// descriptivos antes de publicar en el webhook.
type TareaRequest struct {
	FormData       TareaFormData `json:"formData"`
	Confirmaciones []string      `json:"confirmaciones"`
	Requisitos     []string      `json:"requisitos"`
	NRCs           []TareaNRC    `json:"nrcs"`
}

// TicketRequest alta de ticket local.
type TicketRequest struct {
	Titulo      string `json:"titulo"`
	Descripcion string `json:"descripcion"`
	Prioridad   string `json:"prioridad"`
}

// TicketItem ticket local en listados.
type TicketItem struct {
	ID          string `json:"id"`
	Titulo      string `json:"titulo"`
	Descripcion string `json:"descripcion"`
	Prioridad   string `json:"prioridad"`
	Estado      string `json:"estado"`
	CreadoEn    string `json:"creado_en"`
}

// RNCResponse resultado de la consulta de RNC.
type RNCResponse struct {
	RNC         string `json:"rnc"`
	RazonSocial string `json:"razon_social"`
}

// MiembroOpcion opción de los selectores de técnico/vendedor/distribuidor.
type MiembroOpcion struct {
	MiembroID string `json:"miembro_id"`
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
}
