// Package reportes contiene la normalización de filas del backend, los
// filtros de tabla, la paginación y la orquestación de exportaciones.
//
// El backend devuelve los campos con nombres distintos según la versión del
// flujo que respondió (nombreempresapadre vs empresa_nombre, nombretecnico vs
// tecniconombre, ...). La tabla de fallbacks de este paquete es el contrato:
// para cada campo canónico se prueba cada clave en orden y, si ninguna trae
// valor, se usa el texto por defecto.
package reportes

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/waopos/fedo-reportes-api/internal/domain/entity"
)

// cadena es la cadena de fallback de un campo canónico: claves en orden de
// prioridad más el valor por defecto.
type cadena struct {
	claves []string
	def    string
}

// Tablas de fallback. El orden de las claves importa: refleja qué versión del
// backend tiene prioridad.
var (
	cadEmpresa         = cadena{[]string{"nombreempresapadre", "empresa_nombre"}, "Empresa no especificada"}
	cadRNC             = cadena{[]string{"rncempresapadre", "RNC"}, ""}
	cadDireccion       = cadena{[]string{"direccionempresapadre", "direccion"}, "Dirección no especificada"}
	cadContacto        = cadena{[]string{"contactoempresapadre", "contacto"}, "No especificado"}
	cadContactoEmail   = cadena{[]string{"emailempresapadre", "contacto_email"}, "No especificado"}
	cadContactoCelular = cadena{[]string{"celularempresapadre", "contacto_celular"}, ""}
	cadTecnico         = cadena{[]string{"nombretecnico", "tecniconombre", "tecnico", "técnico", "nombretécnico"}, "No asignado"}
	cadTecnicoEmail    = cadena{[]string{"emailtecnico", "email"}, ""}
	cadVendedor        = cadena{[]string{"nombrevendedor", "vendedornombre", "vendedor"}, "No asignado"}
	cadVendedorEmail   = cadena{[]string{"emailvendedor", "vendedoremail"}, ""}
	cadDistribuidor    = cadena{[]string{"nombredistribuidor", "destribuidornombre"}, "No asignado"}
	cadEstado          = cadena{[]string{"estadoempresapadre", "estado"}, "No especificado"}
	cadSistema         = cadena{[]string{"nombresistema", "nombre"}, ""}
	cadVersion         = cadena{[]string{"versionsistema", "version"}, ""}
	// El eje de certificación es independiente del estado: comparte claves de
	// origen pero su valor vacío se conserva (clasifica como "Sin Iniciar").
	cadCertificacion = cadena{[]string{"certificacionempresapadre", "certificacion", "estadoempresapadre", "estado"}, ""}
	cadFechaContrato = cadena{[]string{"fecha_contratacion", "fechacontratacion"}, ""}
	cadFechaInicio   = cadena{[]string{"fecha_inicio", "fechainicio"}, ""}
	cadFechaCreacion = cadena{[]string{"fecha_creacion"}, ""}
	cadFechaModif    = cadena{[]string{"fecha_modificacion"}, ""}
	cadResumen       = cadena{[]string{"resumen", "resumenContratado", "resumen_contratado"}, ""}
	cadIntegracion   = cadena{[]string{"integracion", "transmision"}, ""}
	cadFormato       = cadena{[]string{"formato"}, ""}
	cadMonto         = cadena{[]string{"monto_implementacion", "montoImplementacion"}, ""}
	cadAbono         = cadena{[]string{"abono"}, ""}
)

// resolver aplica una cadena de fallback sobre una fila laxa.
func resolver(fila map[string]any, c cadena) string {
	for _, clave := range c.claves {
		if v, ok := fila[clave]; ok {
			if s := aTexto(v); s != "" {
				return s
			}
		}
	}
	return c.def
}

// aTexto convierte el valor laxo de JSON a texto. Los números enteros se
// formatean sin decimales (los IDs llegan como float64 por json.Unmarshal).
func aTexto(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		return ""
	}
}

// aDecimal parsea un campo monetario tolerando símbolos de moneda y comas de
// miles. Un valor no parseable cuenta como cero, nunca como error.
func aDecimal(s string) decimal.Decimal {
	limpio := strings.NewReplacer("$", "", ",", "", " ", "", "RD", "").Replace(s)
	if limpio == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(limpio)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// NormalizarImplementaciones convierte las filas crudas del backend en
// registros canónicos. Nunca retorna error: una lista que no es tal (el
// backend a veces responde un objeto de error con status 200) equivale a
// cero registros.
func NormalizarImplementaciones(filas []map[string]any) []entity.Registro {
	registros := make([]entity.Registro, 0, len(filas))
	for i, fila := range filas {
		r := entity.Registro{
			ID:                  idDeFila(fila, i),
			EmpresaNombre:       resolver(fila, cadEmpresa),
			RNC:                 resolver(fila, cadRNC),
			Direccion:           resolver(fila, cadDireccion),
			Contacto:            resolver(fila, cadContacto),
			ContactoEmail:       resolver(fila, cadContactoEmail),
			ContactoCelular:     resolver(fila, cadContactoCelular),
			TecnicoNombre:       resolver(fila, cadTecnico),
			TecnicoEmail:        resolver(fila, cadTecnicoEmail),
			VendedorNombre:      resolver(fila, cadVendedor),
			VendedorEmail:       resolver(fila, cadVendedorEmail),
			DistribuidorNombre:  resolver(fila, cadDistribuidor),
			Sistema:             resolver(fila, cadSistema),
			Version:             resolver(fila, cadVersion),
			Integracion:         resolver(fila, cadIntegracion),
			Formato:             resolver(fila, cadFormato),
			Estado:              resolver(fila, cadEstado),
			Certificacion:       resolver(fila, cadCertificacion),
			MontoImplementacion: aDecimal(resolver(fila, cadMonto)),
			Abono:               aDecimal(resolver(fila, cadAbono)),
			FechaContratacion:   resolver(fila, cadFechaContrato),
			FechaInicio:         resolver(fila, cadFechaInicio),
			FechaCreacion:       resolver(fila, cadFechaCreacion),
			FechaModificacion:   resolver(fila, cadFechaModif),
			Resumen:             resolver(fila, cadResumen),
			EmpresasHijas:       empresasHijas(fila),
		}
		registros = append(registros, r)
	}
	return registros
}

func idDeFila(fila map[string]any, indice int) int {
	for _, clave := range []string{"id", "ID"} {
		if v, ok := fila[clave]; ok {
			if n, err := strconv.Atoi(aTexto(v)); err == nil {
				return n
			}
		}
	}
	return indice + 1
}

// empresasHijas extrae las subsidiarias. El backend las entrega como arreglo
// embebido (empresas_hijas) o como JSON serializado en texto
// (empresas_hijas_json), según el flujo.
func empresasHijas(fila map[string]any) []entity.EmpresaHija {
	var crudas []any
	switch v := fila["empresas_hijas"].(type) {
	case []any:
		crudas = v
	}
	if crudas == nil {
		if s := aTexto(fila["empresas_hijas_json"]); s != "" {
			var decodificadas []any
			if err := json.Unmarshal([]byte(s), &decodificadas); err == nil {
				crudas = decodificadas
			}
		}
	}

	hijas := make([]entity.EmpresaHija, 0, len(crudas))
	for _, item := range crudas {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		nombre := aTexto(m["empresa_nombre_hija"])
		if nombre == "" {
			nombre = aTexto(m["nombre"])
		}
		if nombre == "" {
			nombre = "Subsidiaria sin nombre"
		}
		rnc := aTexto(m["RNC_hija"])
		if rnc == "" {
			rnc = aTexto(m["rnc"])
		}
		hijas = append(hijas, entity.EmpresaHija{
			Nombre:   nombre,
			RNC:      rnc,
			Estado:   aTexto(m["estado_hija"]),
			Contacto: aTexto(m["contacto"]),
			Email:    aTexto(m["email"]),
			Activo:   aTexto(m["activo"]) != "false",
		})
	}
	return hijas
}

// AplanarCertificaciones produce la lista de la tabla de certificaciones:
// cada empresa principal una vez y cada subsidiaria como fila adicional con
// referencia al nombre del padre. El estado de certificación de la
// subsidiaria sale de su propio estado_hija.
func AplanarCertificaciones(registros []entity.Registro) []entity.FilaCertificacion {
	filas := make([]entity.FilaCertificacion, 0, len(registros))
	for _, r := range registros {
		filas = append(filas, entity.FilaCertificacion{
			Nombre:        r.EmpresaNombre,
			RNC:           r.RNC,
			Certificacion: r.Certificacion,
			Contacto:      r.Contacto,
			Email:         r.ContactoEmail,
			Fecha:         r.FechaContratacion,
			EsEmpresaHija: false,
		})
		for _, h := range r.EmpresasHijas {
			filas = append(filas, entity.FilaCertificacion{
				Nombre:        h.Nombre,
				RNC:           h.RNC,
				Certificacion: h.Estado,
				Contacto:      h.Contacto,
				Email:         h.Email,
				Fecha:         r.FechaContratacion,
				EsEmpresaHija: true,
				EmpresaPadre:  r.EmpresaNombre,
			})
		}
	}
	return filas
}
