package export

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/waopos/fedo-reportes-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimario = &props.Color{Red: 29, Green: 78, Blue: 216}
	colorGris     = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// columnaPDF define una columna del reporte: título, ancho en la grilla de 12
// de maroto y extractor del valor.
type columnaPDF[T any] struct {
	titulo string
	ancho  int
	valor  func(T) string
}

var columnasImplementacionesPDF = []columnaPDF[dto.ImplementacionItem]{
	{"#", 1, func(it dto.ImplementacionItem) string { return fmt.Sprint(it.Numero) }},
	{"Empresa", 3, func(it dto.ImplementacionItem) string { return it.Empresa }},
	{"RNC", 1, func(it dto.ImplementacionItem) string { return it.RNC }},
	{"Técnico", 2, func(it dto.ImplementacionItem) string { return it.Tecnico }},
	{"Vendedor", 2, func(it dto.ImplementacionItem) string { return it.Vendedor }},
	{"Monto", 1, func(it dto.ImplementacionItem) string { return it.MontoImplementacion }},
	{"Estado", 1, func(it dto.ImplementacionItem) string { return it.Estado }},
	{"Fecha", 1, func(it dto.ImplementacionItem) string { return it.FechaContratacion }},
}

var columnasCertificacionesPDF = []columnaPDF[dto.CertificacionItem]{
	{"#", 1, func(it dto.CertificacionItem) string { return fmt.Sprint(it.Numero) }},
	{"Empresa", 3, func(it dto.CertificacionItem) string {
		if it.Tipo == "Subsidiaria" {
			return "↳ " + it.Empresa
		}
		return it.Empresa
	}},
	{"RNC", 2, func(it dto.CertificacionItem) string { return it.RNC }},
	{"Certificación", 3, func(it dto.CertificacionItem) string { return it.Certificacion }},
	{"Tipo", 1, func(it dto.CertificacionItem) string { return it.Tipo }},
	{"Empresa Padre", 2, func(it dto.CertificacionItem) string { return it.EmpresaPadre }},
}

// ImplementacionesPDF genera el reporte PDF del conjunto filtrado.
func ImplementacionesPDF(items []dto.ImplementacionItem, generado time.Time) ([]byte, error) {
	return documentoPDF("Reporte de Implementaciones", columnasImplementacionesPDF, items, generado)
}

// CertificacionesPDF genera el reporte PDF de certificaciones.
func CertificacionesPDF(items []dto.CertificacionItem, generado time.Time) ([]byte, error) {
	return documentoPDF("Reporte de Certificaciones", columnasCertificacionesPDF, items, generado)
}

func documentoPDF[T any](titulo string, columnas []columnaPDF[T], items []T, generado time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(titulo, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(row.New(10).Add(
		col.New(8).Add(text.New(titulo, props.Text{
			Style: fontstyle.Bold, Size: 14, Color: colorPrimario,
		})),
		col.New(4).Add(text.New(
			fmt.Sprintf("Fecha de generación: %s - %s", generado.Format("02/01/2006"), generado.Format("15:04")),
			props.Text{Size: 8, Color: colorGris, Top: 2},
		)),
	))
	m.AddRows(row.New(6).Add(
		col.New(12).Add(text.New(
			fmt.Sprintf("Total de registros: %d", len(items)),
			props.Text{Size: 8, Color: colorGris},
		)),
	))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimario, Thickness: 0.5}))

	m.AddRows(encabezadoTabla(columnas))
	for _, it := range items {
		m.AddRows(filaTabla(columnas, it))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(5).Add(
		col.New(12).Add(text.New("Generado por Sistema de Reportes FEDO-ClickUp", props.Text{
			Size: 7, Color: colorGris,
		})),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("export: generar PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func encabezadoTabla[T any](columnas []columnaPDF[T]) core.Row {
	cols := make([]core.Col, 0, len(columnas))
	for _, c := range columnas {
		cols = append(cols, col.New(c.ancho).Add(text.New(c.titulo, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimario,
		})))
	}
	return row.New(7).Add(cols...)
}

func filaTabla[T any](columnas []columnaPDF[T], item T) core.Row {
	cols := make([]core.Col, 0, len(columnas))
	for _, c := range columnas {
		cols = append(cols, col.New(c.ancho).Add(text.New(c.valor(item), props.Text{Size: 7})))
	}
	return row.New(5).Add(cols...)
}
