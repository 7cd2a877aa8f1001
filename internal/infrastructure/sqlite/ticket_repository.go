package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/waopos/fedo-reportes-api/internal/domain"
	"github.com/waopos/fedo-reportes-api/internal/domain/entity"
)

// TicketRepository implementa repository.TicketRepository sobre SQLite.
type TicketRepository struct {
	db *sql.DB
}

// NewTicketRepository construye el repositorio de tickets.
func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Crear(ctx context.Context, t *entity.Ticket) error {
	query := `INSERT INTO tickets (id, titulo, descripcion, prioridad, estado, creado_en)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.Titulo, t.Descripcion, t.Prioridad, t.Estado, t.CreadoEn.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insertar ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) Listar(ctx context.Context) ([]*entity.Ticket, error) {
	query := `SELECT id, titulo, descripcion, prioridad, estado, creado_en
		FROM tickets ORDER BY creado_en DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*entity.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *TicketRepository) ObtenerPorID(ctx context.Context, id string) (*entity.Ticket, error) {
	query := `SELECT id, titulo, descripcion, prioridad, estado, creado_en FROM tickets WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var t entity.Ticket
	var creadoEn string
	err := row.Scan(&t.ID, &t.Titulo, &t.Descripcion, &t.Prioridad, &t.Estado, &creadoEn)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("ticket %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("leer ticket: %w", err)
	}
	if t.CreadoEn, err = time.Parse(time.RFC3339, creadoEn); err != nil {
		return nil, fmt.Errorf("parsear creado_en: %w", err)
	}
	return &t, nil
}

func (r *TicketRepository) ActualizarEstado(ctx context.Context, id, estado string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tickets SET estado = ? WHERE id = ?`, estado, id)
	if err != nil {
		return fmt.Errorf("actualizar estado: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("ticket %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *TicketRepository) Eliminar(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("eliminar ticket: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("ticket %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanTicket(rows *sql.Rows) (*entity.Ticket, error) {
	var t entity.Ticket
	var creadoEn string
	if err := rows.Scan(&t.ID, &t.Titulo, &t.Descripcion, &t.Prioridad, &t.Estado, &creadoEn); err != nil {
		return nil, fmt.Errorf("escanear ticket: %w", err)
	}
	var err error
	if t.CreadoEn, err = time.Parse(time.RFC3339, creadoEn); err != nil {
		return nil, fmt.Errorf("parsear creado_en: %w", err)
	}
	return &t, nil
}
