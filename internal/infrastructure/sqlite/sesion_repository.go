package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/waopos/fedo-reportes-api/internal/domain"
	"github.com/waopos/fedo-reportes-api/internal/domain/entity"
)

// SesionRepository implementa repository.SesionRepository sobre SQLite.
type SesionRepository struct {
	db *sql.DB
}

// NewSesionRepository construye el repositorio de sesiones.
func NewSesionRepository(db *sql.DB) *SesionRepository {
	return &SesionRepository{db: db}
}

func (r *SesionRepository) GuardarSesion(ctx context.Context, s *entity.Sesion) error {
	perfil, err := json.Marshal(s.Perfil)
	if err != nil {
		return fmt.Errorf("serializar perfil: %w", err)
	}
	query := `INSERT OR REPLACE INTO sesiones (id, email, perfil_json, creada_en) VALUES (?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query, s.ID, s.Email, string(perfil), s.CreadaEn.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insertar sesión: %w", err)
	}
	return nil
}

func (r *SesionRepository) ObtenerSesion(ctx context.Context, id string) (*entity.Sesion, error) {
	query := `SELECT id, email, perfil_json, creada_en FROM sesiones WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var s entity.Sesion
	var perfilJSON, creadaEn string
	err := row.Scan(&s.ID, &s.Email, &perfilJSON, &creadaEn)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("sesión %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("leer sesión: %w", err)
	}
	if err := json.Unmarshal([]byte(perfilJSON), &s.Perfil); err != nil {
		return nil, fmt.Errorf("deserializar perfil: %w", err)
	}
	s.CreadaEn, err = time.Parse(time.RFC3339, creadaEn)
	if err != nil {
		return nil, fmt.Errorf("parsear creada_en: %w", err)
	}
	return &s, nil
}

func (r *SesionRepository) RefrescarSesion(ctx context.Context, id string, creadaEn time.Time) error {
	query := `UPDATE sesiones SET creada_en = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, creadaEn.UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("refrescar sesión: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("sesión %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *SesionRepository) EliminarSesion(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sesiones WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("eliminar sesión: %w", err)
	}
	return nil
}

func (r *SesionRepository) GuardarPendiente(ctx context.Context, p *entity.LoginPendiente) error {
	query := `INSERT OR REPLACE INTO logins_pendientes
		(id, email, token_sesion, intentos_restantes, expira_en, creado_en)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Email, p.TokenSesion, p.IntentosRestantes,
		p.ExpiraEn.UTC().Format(time.RFC3339), p.CreadoEn.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insertar login pendiente: %w", err)
	}
	return nil
}

func (r *SesionRepository) ObtenerPendiente(ctx context.Context, id string) (*entity.LoginPendiente, error) {
	query := `SELECT id, email, token_sesion, intentos_restantes, expira_en, creado_en
		FROM logins_pendientes WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var p entity.LoginPendiente
	var expiraEn, creadoEn string
	err := row.Scan(&p.ID, &p.Email, &p.TokenSesion, &p.IntentosRestantes, &expiraEn, &creadoEn)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("login pendiente %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("leer login pendiente: %w", err)
	}
	if p.ExpiraEn, err = time.Parse(time.RFC3339, expiraEn); err != nil {
		return nil, fmt.Errorf("parsear expira_en: %w", err)
	}
	if p.CreadoEn, err = time.Parse(time.RFC3339, creadoEn); err != nil {
		return nil, fmt.Errorf("parsear creado_en: %w", err)
	}
	return &p, nil
}

func (r *SesionRepository) ActualizarIntentos(ctx context.Context, id string, restantes int) error {
	query := `UPDATE logins_pendientes SET intentos_restantes = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, restantes, id)
	if err != nil {
		return fmt.Errorf("actualizar intentos: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("login pendiente %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *SesionRepository) EliminarPendiente(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM logins_pendientes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("eliminar login pendiente: %w", err)
	}
	return nil
}
