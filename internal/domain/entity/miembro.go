package entity

import "time"

// Roles de personal según el catálogo del backend.
const (
	RolTecnico      = "Tecnico"
	RolVendedor     = "Vendedor"
	RolGerencia     = "Gerencia"
	RolDistribuidor = "Distribuidor"
)

// RolID mapea cada rol a su identificador numérico en el backend.
var RolID = map[string]int{
	RolTecnico:      1,
	RolVendedor:     2,
	RolGerencia:     3,
	RolDistribuidor: 4,
}

// RolNombre es el mapa inverso de RolID.
var RolNombre = map[int]string{
	1: RolTecnico,
	2: RolVendedor,
	3: RolGerencia,
	4: RolDistribuidor,
}

// EstadoSincronizacion distingue registros confirmados por el backend de
// borradores locales creados cuando la escritura remota falló.
type EstadoSincronizacion string

const (
	SincronizacionPersistido EstadoSincronizacion = "persistido"
	SincronizacionBorrador   EstadoSincronizacion = "borrador"
)

// Miembro es un técnico/vendedor/gerente/distribuidor. Un miembro puede tener
// varios roles a la vez; las vistas que asumen un solo rol son una
// simplificación de presentación, no una restricción del modelo.
type Miembro struct {
	ID                string // miembroID del backend, o UUID local si es borrador
	Nombre            string
	Email             string
	Celular           string
	Prioridad         string // Alta, Media, Baja
	Tipos             []string
	Activo            bool
	Sincronizacion    EstadoSincronizacion
	FechaCreacion     time.Time
	FechaModificacion time.Time
}

// EsBorrador indica si el miembro existe solo en el almacenamiento local.
func (m Miembro) EsBorrador() bool {
	return m.Sincronizacion == SincronizacionBorrador
}

// TiposIDs devuelve los identificadores numéricos de los roles, descartando
// los que no pertenecen al catálogo.
func (m Miembro) TiposIDs() []int {
	ids := make([]int, 0, len(m.Tipos))
	for _, t := range m.Tipos {
		if id, ok := RolID[t]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
