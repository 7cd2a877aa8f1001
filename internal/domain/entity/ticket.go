package entity

import "time"

// Estados de un ticket local.
const (
	TicketAbierto = "Abierto"
	TicketCerrado = "Cerrado"
)

// Ticket es un ticket de soporte puramente local: se crea, lista, cierra y
// elimina contra el store SQLite sin sincronización con el backend.
type Ticket struct {
	ID          string
	Titulo      string
	Descripcion string
	Prioridad   string // Alta, Media, Baja
	Estado      string
	CreadoEn    time.Time
}
