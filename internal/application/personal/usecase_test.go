package personal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waopos/fedo-reportes-api/internal/application/dto"
	"github.com/waopos/fedo-reportes-api/internal/domain"
	"github.com/waopos/fedo-reportes-api/internal/domain/entity"
	"github.com/waopos/fedo-reportes-api/pkg/logger"
)

type gatewayFalso struct {
	filas      map[string][]map[string]any
	errores    map[string]error
	escrituras []map[string]any
}

func (g *gatewayFalso) Rows(_ context.Context, table string, data map[string]any) ([]map[string]any, error) {
	if data != nil {
		g.escrituras = append(g.escrituras, data)
	}
	if err, ok := g.errores[table]; ok {
		return nil, err
	}
	return g.filas[table], nil
}

type repoEnMemoria struct {
	borradores map[string]entity.Miembro
}

func nuevoRepo() *repoEnMemoria {
	return &repoEnMemoria{borradores: map[string]entity.Miembro{}}
}

func (r *repoEnMemoria) GuardarBorrador(_ context.Context, m *entity.Miembro) error {
	r.borradores[m.ID] = *m
	return nil
}

func (r *repoEnMemoria) ListarBorradores(context.Context) ([]*entity.Miembro, error) {
	out := make([]*entity.Miembro, 0, len(r.borradores))
	for _, m := range r.borradores {
		copia := m
		out = append(out, &copia)
	}
	return out, nil
}

func (r *repoEnMemoria) ObtenerBorrador(_ context.Context, id string) (*entity.Miembro, error) {
	m, ok := r.borradores[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copia := m
	return &copia, nil
}

func (r *repoEnMemoria) EliminarBorrador(_ context.Context, id string) error {
	if _, ok := r.borradores[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.borradores, id)
	return nil
}

func TestListarFormatosDelBackend(t *testing.T) {
	gw := &gatewayFalso{filas: map[string][]map[string]any{
		"Miembros": {
			{"crear_o_actualizar_miembro_json": `{"miembroID":"m-1","nombre":"Gabriel Santos","email":"gabriel@fedo.do","tipos":[1,2],"estado":"Activo"}`},
			{"item": map[string]any{"miembroID": "m-2", "nombre": "Laura Gómez", "tipos": "Vendedor, Gerencia"}},
			{"miembroID": "m-3", "nombre": "Pedro Díaz", "tipos": []any{float64(4)}, "activo": false},
		},
	}}
	uc := NewUseCase(gw, nuevoRepo(), logger.Nop())

	lista, err := uc.Listar(context.Background(), dto.FiltrosPersonal{}, 1)
	require.NoError(t, err)
	require.Len(t, lista.Items, 3)

	assert.Equal(t, []string{"Tecnico", "Vendedor"}, lista.Items[0].Tipos, "los IDs numéricos se traducen a nombres de rol")
	assert.True(t, lista.Items[0].Activo)
	assert.Equal(t, []string{"Vendedor", "Gerencia"}, lista.Items[1].Tipos, "los roles en texto se separan por coma")
	assert.Equal(t, "Distribuidor", lista.Items[2].Tipos[0])
	assert.False(t, lista.Items[2].Activo)
}

func TestListarIncluyeBorradores(t *testing.T) {
	gw := &gatewayFalso{filas: map[string][]map[string]any{"Miembros": {}}}
	repo := nuevoRepo()
	require.NoError(t, repo.GuardarBorrador(context.Background(), &entity.Miembro{
		ID: "local-1", Nombre: "Pendiente", Tipos: []string{entity.RolTecnico},
		Sincronizacion: entity.SincronizacionBorrador, Activo: true,
	}))
	uc := NewUseCase(gw, repo, logger.Nop())

	lista, err := uc.Listar(context.Background(), dto.FiltrosPersonal{}, 1)
	require.NoError(t, err)
	require.Len(t, lista.Items, 1)
	assert.True(t, lista.Items[0].EsBorrador)
}

func TestListarFiltros(t *testing.T) {
	gw := &gatewayFalso{filas: map[string][]map[string]any{
		"Miembros": {
			{"miembroID": "m-1", "nombre": "Gabriel Santos", "email": "gabriel@fedo.do", "tipos": []any{float64(1)}, "prioridad": "Alta", "estado": "Activo"},
			{"miembroID": "m-2", "nombre": "Laura Gómez", "email": "laura@fedo.do", "tipos": []any{float64(2)}, "prioridad": "Media", "estado": "Inactivo"},
		},
	}}
	uc := NewUseCase(gw, nuevoRepo(), logger.Nop())

	lista, err := uc.Listar(context.Background(), dto.FiltrosPersonal{Busqueda: "gabriel"}, 1)
	require.NoError(t, err)
	require.Len(t, lista.Items, 1)
	assert.Equal(t, "m-1", lista.Items[0].ID)

	lista, err = uc.Listar(context.Background(), dto.FiltrosPersonal{Tipo: "Vendedor"}, 1)
	require.NoError(t, err)
	require.Len(t, lista.Items, 1)
	assert.Equal(t, "m-2", lista.Items[0].ID)

	lista, err = uc.Listar(context.Background(), dto.FiltrosPersonal{Estado: "Inactivo"}, 1)
	require.NoError(t, err)
	require.Len(t, lista.Items, 1)
	assert.Equal(t, "m-2", lista.Items[0].ID)

	lista, err = uc.Listar(context.Background(), dto.FiltrosPersonal{Busqueda: "nadie"}, 1)
	require.NoError(t, err)
	assert.Empty(t, lista.Items)
	assert.Equal(t, dto.EstadoSinResultados, lista.Pagina.EstadoVacio)
}

func TestGuardarExigeRol(t *testing.T) {
	uc := NewUseCase(&gatewayFalso{}, nuevoRepo(), logger.Nop())

	_, err := uc.Guardar(context.Background(), "", dto.MiembroRequest{Nombre: "Sin Rol"})
	assert.ErrorIs(t, err, domain.ErrRolRequerido)

	_, err = uc.Guardar(context.Background(), "", dto.MiembroRequest{Nombre: "Rol Falso", Tipos: []string{"Astronauta"}})
	assert.ErrorIs(t, err, domain.ErrRolRequerido, "un rol fuera del catálogo no cuenta")
}

func TestGuardarAltaRemota(t *testing.T) {
	gw := &gatewayFalso{filas: map[string][]map[string]any{}}
	uc := NewUseCase(gw, nuevoRepo(), logger.Nop())

	item, err := uc.Guardar(context.Background(), "", dto.MiembroRequest{
		Nombre: "Nuevo Técnico", Email: "nuevo@fedo.do", Prioridad: "Alta",
		Tipos: []string{entity.RolTecnico, entity.RolVendedor},
	})
	require.NoError(t, err)
	assert.False(t, item.EsBorrador)

	require.Len(t, gw.escrituras, 1)
	data := gw.escrituras[0]
	assert.Equal(t, []int{1, 2}, data["tipos"])
	assert.Nil(t, data["id_clickup"])
	assert.NotContains(t, data, "miembroID", "un alta no lleva miembroID")
}

func TestGuardarEdicionLlevaMiembroID(t *testing.T) {
	gw := &gatewayFalso{filas: map[string][]map[string]any{}}
	uc := NewUseCase(gw, nuevoRepo(), logger.Nop())

	_, err := uc.Guardar(context.Background(), "m-9", dto.MiembroRequest{
		Nombre: "Editado", Tipos: []string{entity.RolGerencia},
	})
	require.NoError(t, err)

	require.Len(t, gw.escrituras, 1)
	assert.Equal(t, "m-9", gw.escrituras[0]["miembroID"])
}

func TestGuardarAltaFallidaQuedaComoBorrador(t *testing.T) {
	gw := &gatewayFalso{errores: map[string]error{"MiembroNU": domain.ErrGatewayUnavailable}}
	repo := nuevoRepo()
	uc := NewUseCase(gw, repo, logger.Nop())

	item, err := uc.Guardar(context.Background(), "", dto.MiembroRequest{
		Nombre: "Sin Conexión", Tipos: []string{entity.RolTecnico},
	})
	require.NoError(t, err)
	assert.True(t, item.EsBorrador)
	assert.NotEmpty(t, item.ID)

	borrador, err := repo.ObtenerBorrador(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sin Conexión", borrador.Nombre)
}

func TestGuardarEdicionFallidaNoCreaBorrador(t *testing.T) {
	gw := &gatewayFalso{errores: map[string]error{"MiembroNU": domain.ErrGatewayUnavailable}}
	repo := nuevoRepo()
	uc := NewUseCase(gw, repo, logger.Nop())

	_, err := uc.Guardar(context.Background(), "m-9", dto.MiembroRequest{
		Nombre: "Editado", Tipos: []string{entity.RolTecnico},
	})
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
	assert.Empty(t, repo.borradores)
}

func TestSincronizar(t *testing.T) {
	gw := &gatewayFalso{filas: map[string][]map[string]any{}}
	repo := nuevoRepo()
	require.NoError(t, repo.GuardarBorrador(context.Background(), &entity.Miembro{
		ID: "local-1", Nombre: "Pendiente", Tipos: []string{entity.RolTecnico},
		Sincronizacion: entity.SincronizacionBorrador,
	}))
	uc := NewUseCase(gw, repo, logger.Nop())

	resp, err := uc.Sincronizar(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Sincronizados)
	assert.Empty(t, resp.Fallidos)
	assert.Empty(t, repo.borradores, "el borrador aceptado se elimina")

	require.Len(t, gw.escrituras, 1)
	assert.NotContains(t, gw.escrituras[0], "miembroID", "el borrador se publica como alta nueva")
}

func TestSincronizarConFallo(t *testing.T) {
	gw := &gatewayFalso{errores: map[string]error{"MiembroNU": domain.ErrGatewayUnavailable}}
	repo := nuevoRepo()
	require.NoError(t, repo.GuardarBorrador(context.Background(), &entity.Miembro{
		ID: "local-1", Nombre: "Pendiente", Tipos: []string{entity.RolTecnico},
		Sincronizacion: entity.SincronizacionBorrador,
	}))
	uc := NewUseCase(gw, repo, logger.Nop())

	resp, err := uc.Sincronizar(context.Background())
	require.NoError(t, err)
	assert.Zero(t, resp.Sincronizados)
	assert.Equal(t, []string{"local-1"}, resp.Fallidos)
	assert.Len(t, repo.borradores, 1, "el borrador rechazado se conserva")
}

func TestOpcionesDeduplica(t *testing.T) {
	gw := &gatewayFalso{filas: map[string][]map[string]any{
		"Tecnicos": {
			{"miembroID": "m-1", "nombre": "Gabriel Santos", "email": "gabriel@fedo.do"},
			{"miembroID": "m-1", "nombre": "Gabriel Santos", "email": "gabriel@fedo.do"},
			{"miembroID": "m-2", "nombre": "Ana Rosa"},
		},
	}}
	uc := NewUseCase(gw, nuevoRepo(), logger.Nop())

	opciones, err := uc.Opciones(context.Background(), "Tecnicos")
	require.NoError(t, err)
	require.Len(t, opciones, 2)
	assert.Equal(t, "m-1", opciones[0].MiembroID)
	assert.Equal(t, "Ana Rosa", opciones[1].Nombre)
}
