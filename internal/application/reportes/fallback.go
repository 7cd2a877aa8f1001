package reportes

import (
	"github.com/shopspring/decimal"

	"github.com/waopos/fedo-reportes-api/internal/domain/entity"
)

// DatosDeEjemplo es el dataset que se sirve cuando el backend no responde o
// responde vacío para certificaciones, de modo que las vistas sigan pobladas.
// Las respuestas que lo usan llevan usando_datos_fallback en true.
func DatosDeEjemplo() []entity.Registro {
	return []entity.Registro{
		{
			ID:                  1,
			EmpresaNombre:       "Comercial Duarte SRL",
			RNC:                 "131045679",
			Direccion:           "Av. 27 de Febrero #123, Santo Domingo",
			Contacto:            "María Pérez",
			ContactoEmail:       "maria@comercialduarte.do",
			ContactoCelular:     "809-555-0101",
			TecnicoNombre:       "Gabriel Santos",
			TecnicoEmail:        "gabriel@fedo.do",
			VendedorNombre:      "Laura Gómez",
			DistribuidorNombre:  "No asignado",
			Sistema:             "WebPOSenlaNube",
			Version:             "1",
			Estado:              "En implementación",
			Certificacion:       "Paso 4 Envío de Pruebas",
			MontoImplementacion: decimal.NewFromInt(45000),
			Abono:               decimal.NewFromInt(15000),
			FechaContratacion:   "2025-08-15",
			EmpresasHijas: []entity.EmpresaHija{
				{Nombre: "Duarte Express", RNC: "131099887", Estado: "Sin empezar Certificación", Activo: true},
			},
		},
		{
			ID:                  2,
			EmpresaNombre:       "Distribuidora del Este",
			RNC:                 "101567234",
			Direccion:           "Calle Principal #45, La Romana",
			Contacto:            "José Martínez",
			ContactoEmail:       "jose@distestec.do",
			TecnicoNombre:       "No asignado",
			VendedorNombre:      "Laura Gómez",
			DistribuidorNombre:  "Distribuciones DR",
			Sistema:             "WebPOSenlaNube",
			Version:             "1",
			Estado:              "Completado",
			Certificacion:       "Paso 15 Finalización",
			MontoImplementacion: decimal.NewFromInt(38000),
			Abono:               decimal.NewFromInt(38000),
			FechaContratacion:   "2025-07-02",
		},
		{
			ID:                 3,
			EmpresaNombre:      "Ferretería Central",
			RNC:                "130887456",
			Direccion:          "Dirección no especificada",
			Contacto:           "No especificado",
			ContactoEmail:      "No especificado",
			TecnicoNombre:      "Gabriel Santos",
			VendedorNombre:     "No asignado",
			DistribuidorNombre: "No asignado",
			Sistema:            "WebPOSenlaNube",
			Estado:             "No especificado",
			Certificacion:      "",
			FechaContratacion:  "2025-09-10",
		},
	}
}
