package entity

import "time"

// PerfilUsuario es la instantánea de perfil que el backend devuelve al
// completar la verificación 2FA y que se conserva junto a la sesión.
type PerfilUsuario struct {
	MiembroID         string `json:"miembroID"`
	Nombre            string `json:"nombre"`
	Email             string `json:"email"`
	Celular           string `json:"celular"`
	IDClickup         string `json:"id_clickup"`
	Cedula            string `json:"cedula"`
	FechaCreacion     string `json:"fecha_creacion"`
	FechaModificacion string `json:"fecha_modificacion"`
}

// Sesion es una sesión autenticada con expiración absoluta de 8 horas desde
// CreadaEn. Una sesión dentro de la última hora de vida se refresca en
// silencio al acceder a una ruta protegida.
type Sesion struct {
	ID       string
	Email    string
	Perfil   PerfilUsuario
	CreadaEn time.Time
}

// Expirada indica si la sesión superó el TTL absoluto en el instante dado.
func (s Sesion) Expirada(ahora time.Time, ttl time.Duration) bool {
	return ahora.Sub(s.CreadaEn) > ttl
}

// NecesitaRefresco indica si la sesión está dentro de la ventana final de vida
// y debe renovarse en el próximo acceso protegido.
func (s Sesion) NecesitaRefresco(ahora time.Time, umbral time.Duration) bool {
	return ahora.Sub(s.CreadaEn) > umbral
}

// LoginPendiente es el estado intermedio entre credenciales válidas y la
// verificación del código 2FA: guarda el token de sesión emitido por el
// backend, el contador de intentos y la expiración del código.
type LoginPendiente struct {
	ID                string
	Email             string
	TokenSesion       string
	IntentosRestantes int
	ExpiraEn          time.Time
	CreadoEn          time.Time
}

// Expirado indica si el código 2FA venció.
func (p LoginPendiente) Expirado(ahora time.Time) bool {
	return !ahora.Before(p.ExpiraEn)
}
