package dto

// LoginRequest credenciales del primer paso del flujo 2FA.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Captcha  string `json:"captcha"` // token de reCAPTCHA emitido por el cliente
}

// LoginResponse resultado del primer paso: queda un login pendiente con
// countdown de 5 minutos y 3 intentos.
type LoginResponse struct {
	PendienteID       string `json:"pendiente_id"`
	SegundosRestantes int    `json:"segundos_restantes"`
	Intentos          int    `json:"intentos"`
}

// VerificarRequest segundo paso: código de 6 dígitos contra el login pendiente.
type VerificarRequest struct {
	PendienteID string `json:"pendiente_id"`
	Codigo      string `json:"codigo"`
}

// VerificarResponse sesión emitida al validar el código.
type VerificarResponse struct {
	Token   string    `json:"token"`
	Usuario PerfilDTO `json:"usuario"`
}

// PerfilDTO instantánea del perfil del usuario autenticado.
type PerfilDTO struct {
	MiembroID string `json:"miembro_id"`
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Celular   string `json:"celular"`
	Cedula    string `json:"cedula"`
	IDClickup string `json:"id_clickup"`
}

// ReenviarRequest solicita un código nuevo sin reintroducir credenciales
// (se usa cuando se agotaron los intentos o venció el countdown).
type ReenviarRequest struct {
	PendienteID string `json:"pendiente_id"`
}
