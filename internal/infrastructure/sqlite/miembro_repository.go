package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/waopos/fedo-reportes-api/internal/domain"
	"github.com/waopos/fedo-reportes-api/internal/domain/entity"
)

// MiembroRepository implementa repository.MiembroRepository sobre SQLite.
// Solo guarda borradores: los miembros confirmados viven en el backend.
type MiembroRepository struct {
	db *sql.DB
}

// NewMiembroRepository construye el repositorio de borradores de personal.
func NewMiembroRepository(db *sql.DB) *MiembroRepository {
	return &MiembroRepository{db: db}
}

func (r *MiembroRepository) GuardarBorrador(ctx context.Context, m *entity.Miembro) error {
	query := `INSERT OR REPLACE INTO miembros_borrador
		(id, nombre, email, celular, prioridad, tipos, activo, fecha_creacion, fecha_modificacion)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	activo := 0
	if m.Activo {
		activo = 1
	}
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Nombre, m.Email, m.Celular, m.Prioridad,
		strings.Join(m.Tipos, ","), activo,
		m.FechaCreacion.UTC().Format(time.RFC3339),
		m.FechaModificacion.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insertar borrador: %w", err)
	}
	return nil
}

func (r *MiembroRepository) ListarBorradores(ctx context.Context) ([]*entity.Miembro, error) {
	query := `SELECT id, nombre, email, celular, prioridad, tipos, activo, fecha_creacion, fecha_modificacion
		FROM miembros_borrador ORDER BY fecha_creacion`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar borradores: %w", err)
	}
	defer rows.Close()

	var miembros []*entity.Miembro
	for rows.Next() {
		m, err := scanBorrador(rows.Scan)
		if err != nil {
			return nil, err
		}
		miembros = append(miembros, m)
	}
	return miembros, rows.Err()
}

func (r *MiembroRepository) ObtenerBorrador(ctx context.Context, id string) (*entity.Miembro, error) {
	query := `SELECT id, nombre, email, celular, prioridad, tipos, activo, fecha_creacion, fecha_modificacion
		FROM miembros_borrador WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	m, err := scanBorrador(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("borrador %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return m, nil
}

func (r *MiembroRepository) EliminarBorrador(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM miembros_borrador WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("eliminar borrador: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("borrador %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanBorrador(scan func(dest ...any) error) (*entity.Miembro, error) {
	var m entity.Miembro
	var tipos, creacion, modificacion string
	var activo int
	if err := scan(&m.ID, &m.Nombre, &m.Email, &m.Celular, &m.Prioridad, &tipos, &activo, &creacion, &modificacion); err != nil {
		return nil, fmt.Errorf("escanear borrador: %w", err)
	}
	if tipos != "" {
		m.Tipos = strings.Split(tipos, ",")
	}
	m.Activo = activo != 0
	m.Sincronizacion = entity.SincronizacionBorrador
	var err error
	if m.FechaCreacion, err = time.Parse(time.RFC3339, creacion); err != nil {
		return nil, fmt.Errorf("parsear fecha_creacion: %w", err)
	}
	if m.FechaModificacion, err = time.Parse(time.RFC3339, modificacion); err != nil {
		return nil, fmt.Errorf("parsear fecha_modificacion: %w", err)
	}
	return &m, nil
}
