package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/waopos/fedo-reportes-api/internal/application/dto"
)

// Anchos de columna observados en los reportes originales; se preservan para
// que los libros generados sean comparables.
var (
	anchosImplementaciones = []float64{8, 25, 15, 20, 30, 20, 20, 15, 40, 18, 18, 15, 18}
	anchosCertificaciones  = []float64{8, 35, 15, 20, 20, 20, 18, 15, 25}
)

const hoja = "Sheet1"

// ImplementacionesXLSX genera el libro con una hoja y anchos explícitos.
func ImplementacionesXLSX(items []dto.ImplementacionItem) ([]byte, error) {
	filas := make([][]string, 0, len(items))
	for _, it := range items {
		filas = append(filas, filaImplementacion(it))
	}
	return libroXLSX(cabecerasImplementaciones, filas, anchosImplementaciones)
}

// CertificacionesXLSX genera el libro de certificaciones. Las subsidiarias
// van con el prefijo "↳ " en el nombre, igual que en la tabla.
func CertificacionesXLSX(items []dto.CertificacionItem) ([]byte, error) {
	filas := make([][]string, 0, len(items))
	for _, it := range items {
		filas = append(filas, filaCertificacion(it))
	}
	return libroXLSX(cabecerasCertificaciones, filas, anchosCertificaciones)
}

func libroXLSX(cabeceras []string, filas [][]string, anchos []float64) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	head := make([]any, len(cabeceras))
	for i, c := range cabeceras {
		head[i] = c
	}
	if err := f.SetSheetRow(hoja, "A1", &head); err != nil {
		return nil, fmt.Errorf("export: cabecera XLSX: %w", err)
	}

	for i, fila := range filas {
		valores := make([]any, len(fila))
		for j, v := range fila {
			valores[j] = v
		}
		celda := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(hoja, celda, &valores); err != nil {
			return nil, fmt.Errorf("export: fila XLSX: %w", err)
		}
	}

	for i, ancho := range anchos {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("export: columna XLSX: %w", err)
		}
		if err := f.SetColWidth(hoja, col, col, ancho); err != nil {
			return nil, fmt.Errorf("export: ancho XLSX: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("export: escribir XLSX: %w", err)
	}
	return buf.Bytes(), nil
}
