package repository

import (
	"context"

	"github.com/waopos/fedo-reportes-api/internal/domain/entity"
)

// MiembroRepository persiste los borradores locales de personal: miembros
// cuya escritura remota falló y que el usuario decidió conservar localmente
// hasta una resincronización explícita.
type MiembroRepository interface {
	GuardarBorrador(ctx context.Context, m *entity.Miembro) error
	ListarBorradores(ctx context.Context) ([]*entity.Miembro, error)
	ObtenerBorrador(ctx context.Context, id string) (*entity.Miembro, error)
	EliminarBorrador(ctx context.Context, id string) error
}
