package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/waopos/fedo-reportes-api/internal/application/dto"
	"github.com/waopos/fedo-reportes-api/internal/infrastructure/export"
)

func implementacionesDeMuestra() []dto.ImplementacionItem {
	return []dto.ImplementacionItem{
		{Numero: 1, Empresa: "Acme, SRL", RNC: "131045679", Tecnico: "Gabriel", Vendedor: "Laura", MontoImplementacion: "45000", Abono: "15000", Estado: "En implementación", FechaContratacion: "2025-08-15"},
		{Numero: 2, Empresa: "Zenith", RNC: "101567234", Tecnico: "No asignado", Vendedor: "Laura", Estado: "Completado", FechaContratacion: "2025-07-02"},
	}
}

func certificacionesDeMuestra() []dto.CertificacionItem {
	return []dto.CertificacionItem{
		{Numero: 1, Empresa: "Acme", RNC: "131045679", Certificacion: "Paso 15 Finalización", Tipo: "Principal"},
		{Numero: 2, Empresa: "Acme Express", RNC: "131099887", Certificacion: "Sin empezar Certificación", Tipo: "Subsidiaria", EmpresaPadre: "Acme"},
	}
}

// Propiedad de ida y vuelta: las filas del CSV generado, parseadas de nuevo,
// deben ser exactamente el conjunto filtrado en el mismo orden.
func TestCSV_IdaYVuelta(t *testing.T) {
	items := implementacionesDeMuestra()
	raw, err := export.ImplementacionesCSV(items)
	require.NoError(t, err)

	registros, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	require.NoError(t, err)
	require.Len(t, registros, 3, "cabecera + 2 filas")

	assert.Equal(t, "#", registros[0][0])
	assert.Equal(t, []string{"1", "Acme, SRL", "131045679", "", "", "Gabriel", "Laura", "", "", "45000", "15000", "En implementación", "2025-08-15"}, registros[1])
	assert.Equal(t, "Zenith", registros[2][1], "el orden del conjunto filtrado se preserva")
}

func TestCSV_Certificaciones_PrefijoSubsidiaria(t *testing.T) {
	raw, err := export.CertificacionesCSV(certificacionesDeMuestra())
	require.NoError(t, err)

	registros, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	require.NoError(t, err)
	require.Len(t, registros, 3)
	assert.Equal(t, "Acme", registros[1][1])
	assert.Equal(t, "↳ Acme Express", registros[2][1], "las subsidiarias llevan el prefijo de jerarquía")
	assert.Equal(t, "Subsidiaria", registros[2][7])
}

func TestXLSX_IdaYVuelta(t *testing.T) {
	items := implementacionesDeMuestra()
	raw, err := export.ImplementacionesXLSX(items)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3, "cabecera + 2 filas")
	assert.Equal(t, "Empresa", rows[0][1])
	assert.Equal(t, "Acme, SRL", rows[1][1])
	assert.Equal(t, "Zenith", rows[2][1])

	// Anchos explícitos de columna
	ancho, err := f.GetColWidth("Sheet1", "B")
	require.NoError(t, err)
	assert.InDelta(t, 25.0, ancho, 0.1, "la columna Empresa conserva su ancho")
}

func TestXLSX_Certificaciones_AnchosYTipos(t *testing.T) {
	raw, err := export.CertificacionesXLSX(certificacionesDeMuestra())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "↳ Acme Express", rows[2][1])

	ancho, err := f.GetColWidth("Sheet1", "B")
	require.NoError(t, err)
	assert.InDelta(t, 35.0, ancho, 0.1)
}

func TestHTML_DocumentoAutonomo(t *testing.T) {
	generado := time.Date(2025, 10, 30, 14, 5, 0, 0, time.UTC)
	raw, err := export.CertificacionesHTML(certificacionesDeMuestra(), generado)
	require.NoError(t, err)

	doc := string(raw)
	assert.Contains(t, doc, "<!DOCTYPE html>")
	assert.Contains(t, doc, "<style>", "los estilos van en línea, el documento es autónomo")
	assert.Contains(t, doc, "Fecha de generación: 30/10/2025 - 14:05")
	assert.Contains(t, doc, "Total de registros: 2")
	assert.Contains(t, doc, "Generado por Sistema de Reportes FEDO-ClickUp")
	assert.Contains(t, doc, `class="empresa-hija"`, "las subsidiarias se distinguen visualmente")
	assert.Contains(t, doc, "↳ Acme Express")
}

func TestPDF_GeneraDocumento(t *testing.T) {
	raw, err := export.ImplementacionesPDF(implementacionesDeMuestra(), time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")), "el resultado debe ser un PDF válido")
}
