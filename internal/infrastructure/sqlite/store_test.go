package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waopos/fedo-reportes-api/internal/domain"
	"github.com/waopos/fedo-reportes-api/internal/domain/entity"
)

func nuevaBase(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err, "la base en memoria debe abrirse")
	t.Cleanup(func() { db.Close() })
	return db
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesiones
// ──────────────────────────────────────────────────────────────────────────────

func TestSesiones_GuardarYObtener(t *testing.T) {
	repo := NewSesionRepository(nuevaBase(t))
	ctx := context.Background()

	creada := time.Date(2025, 10, 30, 9, 0, 0, 0, time.UTC)
	s := &entity.Sesion{
		ID:    "ses-1",
		Email: "gabriel@fedo.do",
		Perfil: entity.PerfilUsuario{
			MiembroID: "42",
			Nombre:    "Gabriel",
			Email:     "gabriel@fedo.do",
		},
		CreadaEn: creada,
	}
	require.NoError(t, repo.GuardarSesion(ctx, s))

	leida, err := repo.ObtenerSesion(ctx, "ses-1")
	require.NoError(t, err)
	assert.Equal(t, "gabriel@fedo.do", leida.Email)
	assert.Equal(t, "Gabriel", leida.Perfil.Nombre, "el perfil debe sobrevivir el viaje por JSON")
	assert.True(t, creada.Equal(leida.CreadaEn))
}

func TestSesiones_ObtenerInexistente(t *testing.T) {
	repo := NewSesionRepository(nuevaBase(t))

	_, err := repo.ObtenerSesion(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSesiones_Refrescar(t *testing.T) {
	repo := NewSesionRepository(nuevaBase(t))
	ctx := context.Background()

	inicio := time.Date(2025, 10, 30, 1, 0, 0, 0, time.UTC)
	require.NoError(t, repo.GuardarSesion(ctx, &entity.Sesion{ID: "ses-1", Email: "a@b.c", CreadaEn: inicio}))

	nuevo := inicio.Add(7 * time.Hour)
	require.NoError(t, repo.RefrescarSesion(ctx, "ses-1", nuevo))

	leida, err := repo.ObtenerSesion(ctx, "ses-1")
	require.NoError(t, err)
	assert.True(t, nuevo.Equal(leida.CreadaEn), "el refresco reinicia el reloj de expiración")

	assert.ErrorIs(t, repo.RefrescarSesion(ctx, "fantasma", nuevo), domain.ErrNotFound)
}

func TestSesiones_Eliminar(t *testing.T) {
	repo := NewSesionRepository(nuevaBase(t))
	ctx := context.Background()

	require.NoError(t, repo.GuardarSesion(ctx, &entity.Sesion{ID: "ses-1", Email: "a@b.c", CreadaEn: time.Now()}))
	require.NoError(t, repo.EliminarSesion(ctx, "ses-1"))

	_, err := repo.ObtenerSesion(ctx, "ses-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoginsPendientes_CicloCompleto(t *testing.T) {
	repo := NewSesionRepository(nuevaBase(t))
	ctx := context.Background()

	ahora := time.Date(2025, 10, 30, 9, 0, 0, 0, time.UTC)
	p := &entity.LoginPendiente{
		ID:                "pend-1",
		Email:             "gabriel@fedo.do",
		TokenSesion:       "token-del-backend",
		IntentosRestantes: 3,
		ExpiraEn:          ahora.Add(5 * time.Minute),
		CreadoEn:          ahora,
	}
	require.NoError(t, repo.GuardarPendiente(ctx, p))

	leido, err := repo.ObtenerPendiente(ctx, "pend-1")
	require.NoError(t, err)
	assert.Equal(t, 3, leido.IntentosRestantes)
	assert.Equal(t, "token-del-backend", leido.TokenSesion)

	require.NoError(t, repo.ActualizarIntentos(ctx, "pend-1", 2))
	leido, err = repo.ObtenerPendiente(ctx, "pend-1")
	require.NoError(t, err)
	assert.Equal(t, 2, leido.IntentosRestantes)

	require.NoError(t, repo.EliminarPendiente(ctx, "pend-1"))
	_, err = repo.ObtenerPendiente(ctx, "pend-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tickets
// ──────────────────────────────────────────────────────────────────────────────

func TestTickets_CrearListarCerrarEliminar(t *testing.T) {
	repo := NewTicketRepository(nuevaBase(t))
	ctx := context.Background()

	t1 := &entity.Ticket{ID: "t-1", Titulo: "Instalar router", Prioridad: "Alta", Estado: entity.TicketAbierto, CreadoEn: time.Now().Add(-time.Hour)}
	t2 := &entity.Ticket{ID: "t-2", Titulo: "Enviar informe", Prioridad: "Media", Estado: entity.TicketAbierto, CreadoEn: time.Now()}
	require.NoError(t, repo.Crear(ctx, t1))
	require.NoError(t, repo.Crear(ctx, t2))

	lista, err := repo.Listar(ctx)
	require.NoError(t, err)
	require.Len(t, lista, 2)
	assert.Equal(t, "t-2", lista[0].ID, "el listado va del más reciente al más antiguo")

	require.NoError(t, repo.ActualizarEstado(ctx, "t-1", entity.TicketCerrado))
	leido, err := repo.ObtenerPorID(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, entity.TicketCerrado, leido.Estado)

	require.NoError(t, repo.Eliminar(ctx, "t-2"))
	_, err = repo.ObtenerPorID(ctx, "t-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, repo.Eliminar(ctx, "t-2"), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Borradores de personal
// ──────────────────────────────────────────────────────────────────────────────

func TestBorradores_GuardarYListar(t *testing.T) {
	repo := NewMiembroRepository(nuevaBase(t))
	ctx := context.Background()

	ahora := time.Now().UTC().Truncate(time.Second)
	m := &entity.Miembro{
		ID:                "uuid-local-1",
		Nombre:            "Técnico Nuevo",
		Email:             "tecnico@fedo.do",
		Prioridad:         "Alta",
		Tipos:             []string{entity.RolTecnico, entity.RolVendedor},
		Activo:            true,
		Sincronizacion:    entity.SincronizacionBorrador,
		FechaCreacion:     ahora,
		FechaModificacion: ahora,
	}
	require.NoError(t, repo.GuardarBorrador(ctx, m))

	lista, err := repo.ListarBorradores(ctx)
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, []string{entity.RolTecnico, entity.RolVendedor}, lista[0].Tipos, "los roles múltiples se conservan")
	assert.True(t, lista[0].EsBorrador())
	assert.True(t, lista[0].Activo)
}

func TestBorradores_EliminarTrasSincronizar(t *testing.T) {
	repo := NewMiembroRepository(nuevaBase(t))
	ctx := context.Background()

	ahora := time.Now().UTC()
	require.NoError(t, repo.GuardarBorrador(ctx, &entity.Miembro{
		ID: "uuid-local-1", Nombre: "X", FechaCreacion: ahora, FechaModificacion: ahora,
	}))
	require.NoError(t, repo.EliminarBorrador(ctx, "uuid-local-1"))

	_, err := repo.ObtenerBorrador(ctx, "uuid-local-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
