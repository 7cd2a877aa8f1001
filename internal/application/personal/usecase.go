// Package personal gestiona el directorio de técnicos, vendedores, gerencia y
// distribuidores. La fuente de verdad es el backend; cuando un alta remota
// falla, el miembro se conserva como borrador local y se reintenta con la
// sincronización explícita.
package personal

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/waopos/fedo-reportes-api/internal/application/dto"
	"github.com/waopos/fedo-reportes-api/internal/application/reportes"
	"github.com/waopos/fedo-reportes-api/internal/domain"
	"github.com/waopos/fedo-reportes-api/internal/domain/entity"
	"github.com/waopos/fedo-reportes-api/internal/domain/repository"
	"github.com/waopos/fedo-reportes-api/internal/infrastructure/gateway"
	"github.com/waopos/fedo-reportes-api/pkg/logger"
)

// Gateway es el puerto hacia las tablas de personal del backend.
type Gateway interface {
	Rows(ctx context.Context, table string, data map[string]any) ([]map[string]any, error)
}

// UseCase orquesta el listado, las altas/ediciones y la sincronización de
// borradores del personal.
type UseCase struct {
	gw         Gateway
	borradores repository.MiembroRepository
	log        *logger.Logger
	ahora      func() time.Time // inyectable para tests
}

// NewUseCase construye el caso de uso de personal.
func NewUseCase(gw Gateway, borradores repository.MiembroRepository, log *logger.Logger) *UseCase {
	return &UseCase{gw: gw, borradores: borradores, log: log, ahora: time.Now}
}

// Listar combina los miembros del backend con los borradores locales, aplica
// los filtros y pagina.
func (uc *UseCase) Listar(ctx context.Context, f dto.FiltrosPersonal, pagina int) (*dto.ListaPersonal, error) {
	filas, err := uc.gw.Rows(ctx, gateway.TablaMiembros, nil)
	if err != nil {
		return nil, err
	}
	miembros := normalizarMiembros(filas)

	locales, err := uc.borradores.ListarBorradores(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range locales {
		miembros = append(miembros, *b)
	}

	filtrados := filtrarMiembros(miembros, f)
	paginados, meta := reportes.Paginar(filtrados, pagina)
	meta.EstadoVacio = reportes.EstadoVacio(len(miembros), len(filtrados), f.Activos())

	items := make([]dto.MiembroItem, 0, len(paginados))
	for _, m := range paginados {
		items = append(items, miembroItem(m))
	}
	return &dto.ListaPersonal{Items: items, Pagina: meta}, nil
}

// Guardar crea o actualiza un miembro contra el backend. Se exige al menos un
// rol del catálogo. Cuando un alta remota falla por el backend, el miembro se
// conserva como borrador local en lugar de perder el formulario.
func (uc *UseCase) Guardar(ctx context.Context, miembroID string, req dto.MiembroRequest) (*dto.MiembroItem, error) {
	if strings.TrimSpace(req.Nombre) == "" {
		return nil, fmt.Errorf("nombre requerido: %w", domain.ErrInvalidInput)
	}
	m := entity.Miembro{
		ID:             miembroID,
		Nombre:         strings.TrimSpace(req.Nombre),
		Email:          strings.TrimSpace(req.Email),
		Celular:        strings.TrimSpace(req.Celular),
		Prioridad:      req.Prioridad,
		Tipos:          req.Tipos,
		Activo:         true,
		Sincronizacion: entity.SincronizacionPersistido,
	}
	if len(m.TiposIDs()) == 0 {
		return nil, domain.ErrRolRequerido
	}

	if err := uc.escribirRemoto(ctx, m); err != nil {
		if miembroID != "" {
			return nil, err
		}
		// El alta no se pierde: queda como borrador hasta sincronizar.
		uc.log.Warn().Err(err).Str("nombre", m.Nombre).Msg("personal: alta remota fallida, guardando borrador")
		ahora := uc.ahora()
		m.ID = uuid.NewString()
		m.Sincronizacion = entity.SincronizacionBorrador
		m.FechaCreacion = ahora
		m.FechaModificacion = ahora
		if err := uc.borradores.GuardarBorrador(ctx, &m); err != nil {
			return nil, err
		}
	}

	item := miembroItem(m)
	return &item, nil
}

// escribirRemoto publica el alta o la edición en el flujo MiembroNU. La
// presencia de miembroID distingue editar de crear.
func (uc *UseCase) escribirRemoto(ctx context.Context, m entity.Miembro) error {
	data := map[string]any{
		"nombre":     m.Nombre,
		"email":      m.Email,
		"celular":    m.Celular,
		"prioridad":  m.Prioridad,
		"id_clickup": nil,
		"tipos":      m.TiposIDs(),
	}
	if m.ID != "" && m.Sincronizacion == entity.SincronizacionPersistido {
		data["miembroID"] = m.ID
	}
	_, err := uc.gw.Rows(ctx, gateway.TablaMiembroNU, data)
	return err
}

// Sincronizar reintenta el alta remota de cada borrador local. Los que el
// backend acepta se eliminan del almacenamiento local.
func (uc *UseCase) Sincronizar(ctx context.Context) (*dto.SincronizarResponse, error) {
	locales, err := uc.borradores.ListarBorradores(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.SincronizarResponse{}
	for _, b := range locales {
		if err := uc.escribirRemoto(ctx, *b); err != nil {
			uc.log.Warn().Err(err).Str("id", b.ID).Msg("personal: borrador sigue sin sincronizar")
			resp.Fallidos = append(resp.Fallidos, b.ID)
			continue
		}
		if err := uc.borradores.EliminarBorrador(ctx, b.ID); err != nil {
			return nil, err
		}
		resp.Sincronizados++
	}
	return resp, nil
}

// Opciones arma el selector de una lista de personal por rol, deduplicado por
// miembroID (un miembro con varios roles aparece en varias tablas remotas).
func (uc *UseCase) Opciones(ctx context.Context, tabla string) ([]dto.MiembroOpcion, error) {
	filas, err := uc.gw.Rows(ctx, tabla, nil)
	if err != nil {
		return nil, err
	}

	vistos := map[string]bool{}
	opciones := make([]dto.MiembroOpcion, 0, len(filas))
	for _, m := range normalizarMiembros(filas) {
		if m.ID == "" || vistos[m.ID] {
			continue
		}
		vistos[m.ID] = true
		opciones = append(opciones, dto.MiembroOpcion{MiembroID: m.ID, Nombre: m.Nombre, Email: m.Email})
	}
	return opciones, nil
}

// normalizarMiembros acepta los dos formatos del backend: la fila directa y
// la fila envuelta en crear_o_actualizar_miembro_json (texto JSON u objeto)
// o en item.
func normalizarMiembros(filas []map[string]any) []entity.Miembro {
	miembros := make([]entity.Miembro, 0, len(filas))
	for _, fila := range filas {
		m, ok := desenvolver(fila)
		if !ok {
			continue
		}
		miembros = append(miembros, entity.Miembro{
			ID:             texto(m["miembroID"]),
			Nombre:         texto(m["nombre"]),
			Email:          texto(m["email"]),
			Celular:        texto(m["celular"]),
			Prioridad:      texto(m["prioridad"]),
			Tipos:          tiposDeFila(m["tipos"]),
			Activo:         activoDeFila(m),
			Sincronizacion: entity.SincronizacionPersistido,
		})
	}
	return miembros
}

func desenvolver(fila map[string]any) (map[string]any, bool) {
	switch v := fila["crear_o_actualizar_miembro_json"].(type) {
	case map[string]any:
		return v, true
	case string:
		var m map[string]any
		if err := json.Unmarshal([]byte(v), &m); err == nil {
			return m, true
		}
		return nil, false
	}
	if m, ok := fila["item"].(map[string]any); ok {
		return m, true
	}
	return fila, true
}

// tiposDeFila acepta los roles como arreglo de IDs numéricos o como texto
// "Tecnico, Vendedor".
func tiposDeFila(v any) []string {
	switch t := v.(type) {
	case []any:
		tipos := make([]string, 0, len(t))
		for _, item := range t {
			if n, ok := item.(float64); ok {
				if nombre, ok := entity.RolNombre[int(n)]; ok {
					tipos = append(tipos, nombre)
				}
				continue
			}
			if s, ok := item.(string); ok && s != "" {
				tipos = append(tipos, s)
			}
		}
		return tipos
	case string:
		if t == "" {
			return nil
		}
		partes := strings.Split(t, ",")
		tipos := make([]string, 0, len(partes))
		for _, p := range partes {
			if p = strings.TrimSpace(p); p != "" {
				tipos = append(tipos, p)
			}
		}
		return tipos
	}
	return nil
}

func activoDeFila(m map[string]any) bool {
	if estado := texto(m["estado"]); estado != "" {
		return strings.EqualFold(estado, "Activo")
	}
	if activo, ok := m["activo"].(bool); ok {
		return activo
	}
	return true
}

func texto(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strings.TrimSuffix(fmt.Sprintf("%v", t), ".0")
	}
	return ""
}

func filtrarMiembros(miembros []entity.Miembro, f dto.FiltrosPersonal) []entity.Miembro {
	out := make([]entity.Miembro, 0, len(miembros))
	for _, m := range miembros {
		if !coincideBusqueda(m, f.Busqueda) {
			continue
		}
		if f.Tipo != "" && !tieneTipo(m, f.Tipo) {
			continue
		}
		if f.Prioridad != "" && !strings.EqualFold(m.Prioridad, f.Prioridad) {
			continue
		}
		if f.Estado != "" {
			quiereActivo := strings.EqualFold(f.Estado, "Activo")
			if m.Activo != quiereActivo {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

func coincideBusqueda(m entity.Miembro, q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(m.Nombre), q) ||
		strings.Contains(strings.ToLower(m.Email), q) ||
		strings.Contains(m.Celular, q)
}

func tieneTipo(m entity.Miembro, tipo string) bool {
	for _, t := range m.Tipos {
		if strings.EqualFold(t, tipo) {
			return true
		}
	}
	return false
}

func miembroItem(m entity.Miembro) dto.MiembroItem {
	return dto.MiembroItem{
		ID:         m.ID,
		Nombre:     m.Nombre,
		Email:      m.Email,
		Celular:    m.Celular,
		Prioridad:  m.Prioridad,
		Tipos:      m.Tipos,
		Activo:     m.Activo,
		EsBorrador: m.EsBorrador(),
	}
}
