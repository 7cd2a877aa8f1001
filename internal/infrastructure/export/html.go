package export

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/waopos/fedo-reportes-api/internal/application/dto"
)

// Documento HTML autónomo: estilos en línea, cabecera con fecha de generación
// y total de registros, pie institucional. Las filas de subsidiarias llevan
// la clase empresa-hija y el prefijo "↳".
const plantillaHTML = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="UTF-8">
<title>{{.Titulo}}</title>
<style>
  body { font-family: Arial, Helvetica, sans-serif; margin: 24px; color: #1e293b; }
  h1 { font-size: 20px; color: #0f172a; }
  .meta { color: #64748b; font-size: 12px; margin-bottom: 16px; }
  table { border-collapse: collapse; width: 100%; font-size: 12px; }
  th { background: #1d4ed8; color: #ffffff; text-align: left; padding: 6px 8px; }
  td { border-bottom: 1px solid #e2e8f0; padding: 6px 8px; }
  tr:nth-child(even) td { background: #f8fafc; }
  tr.empresa-hija td { background: #eff6ff; padding-left: 18px; }
  .pie { margin-top: 20px; color: #94a3b8; font-size: 11px; }
</style>
</head>
<body>
<h1>{{.Titulo}}</h1>
<div class="meta">
  Fecha de generación: {{.Fecha}} - {{.Hora}}<br>
  Total de registros: {{.Total}}
</div>
<table>
<thead><tr>{{range .Cabeceras}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Filas}}<tr{{if .EsHija}} class="empresa-hija"{{end}}>{{range .Celdas}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
<div class="pie">Generado por Sistema de Reportes FEDO-ClickUp</div>
</body>
</html>
`

var tmplHTML = template.Must(template.New("reporte").Parse(plantillaHTML))

type filaHTML struct {
	Celdas []string
	EsHija bool
}

type datosHTML struct {
	Titulo    string
	Fecha     string
	Hora      string
	Total     int
	Cabeceras []string
	Filas     []filaHTML
}

// ImplementacionesHTML genera el documento de implementaciones.
func ImplementacionesHTML(items []dto.ImplementacionItem, generado time.Time) ([]byte, error) {
	filas := make([]filaHTML, 0, len(items))
	for _, it := range items {
		filas = append(filas, filaHTML{Celdas: filaImplementacion(it)})
	}
	return documentoHTML("Reporte de Implementaciones", cabecerasImplementaciones, filas, generado)
}

// CertificacionesHTML genera el documento de certificaciones.
func CertificacionesHTML(items []dto.CertificacionItem, generado time.Time) ([]byte, error) {
	filas := make([]filaHTML, 0, len(items))
	for _, it := range items {
		filas = append(filas, filaHTML{
			Celdas: filaCertificacion(it),
			EsHija: it.Tipo == "Subsidiaria",
		})
	}
	return documentoHTML("Reporte de Certificaciones", cabecerasCertificaciones, filas, generado)
}

func documentoHTML(titulo string, cabeceras []string, filas []filaHTML, generado time.Time) ([]byte, error) {
	var buf bytes.Buffer
	err := tmplHTML.Execute(&buf, datosHTML{
		Titulo:    titulo,
		Fecha:     generado.Format("02/01/2006"),
		Hora:      generado.Format("15:04"),
		Total:     len(filas),
		Cabeceras: cabeceras,
		Filas:     filas,
	})
	if err != nil {
		return nil, fmt.Errorf("export: HTML: %w", err)
	}
	return buf.Bytes(), nil
}
