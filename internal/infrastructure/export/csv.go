// Package export genera los archivos de descarga de las tablas: CSV, XLSX,
// HTML autónomo y PDF. Todas las funciones reciben el conjunto filtrado SIN
// paginar; la exportación siempre incluye cada fila filtrada, no solo la
// página visible.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/waopos/fedo-reportes-api/internal/application/dto"
)

var cabecerasImplementaciones = []string{
	"#", "Empresa", "RNC", "Dirección", "Contacto", "Técnico", "Vendedor",
	"Distribuidor", "Sistema", "Monto Implementación", "Abono", "Estado",
	"Fecha Contratación",
}

var cabecerasCertificaciones = []string{
	"#", "Empresa", "RNC", "Estado Certificación", "Contacto", "Email",
	"Fecha", "Tipo", "Empresa Padre",
}

func filaImplementacion(it dto.ImplementacionItem) []string {
	return []string{
		strconv.Itoa(it.Numero), it.Empresa, it.RNC, it.Direccion, it.Contacto,
		it.Tecnico, it.Vendedor, it.Distribuidor, it.Sistema,
		it.MontoImplementacion, it.Abono, it.Estado, it.FechaContratacion,
	}
}

func filaCertificacion(it dto.CertificacionItem) []string {
	empresa := it.Empresa
	if it.Tipo == "Subsidiaria" {
		empresa = "↳ " + empresa
	}
	return []string{
		strconv.Itoa(it.Numero), empresa, it.RNC, it.Certificacion,
		it.Contacto, it.Email, it.Fecha, it.Tipo, it.EmpresaPadre,
	}
}

// ImplementacionesCSV serializa el conjunto filtrado como CSV con fila de
// cabecera y campos de texto entrecomillados cuando hace falta.
func ImplementacionesCSV(items []dto.ImplementacionItem) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(cabecerasImplementaciones); err != nil {
		return nil, fmt.Errorf("export: cabecera CSV: %w", err)
	}
	for _, it := range items {
		if err := w.Write(filaImplementacion(it)); err != nil {
			return nil, fmt.Errorf("export: fila CSV: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// CertificacionesCSV serializa la lista aplanada de certificaciones.
func CertificacionesCSV(items []dto.CertificacionItem) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(cabecerasCertificaciones); err != nil {
		return nil, fmt.Errorf("export: cabecera CSV: %w", err)
	}
	for _, it := range items {
		if err := w.Write(filaCertificacion(it)); err != nil {
			return nil, fmt.Errorf("export: fila CSV: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: CSV: %w", err)
	}
	return buf.Bytes(), nil
}
