package infra

import (
	"fmt"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"

	"github.com/xuri/excelize/v2"
)

// ExportarLibroExcel vuelca los movimientos del período a un libro .xlsx con
// una fila por movimiento y totales al pie.
func ExportarLibroExcel(movs []model.MovimientoFinanciero) ([]byte, error) {
	f := excelize.NewFile()
	const hoja = "Movimientos"
	f.SetSheetName("Sheet1", hoja)

	encabezados := []string{"Fecha", "Tipo", "Método", "Monto", "Referencia", "Descripción", "Registrado por"}
	for i, h := range encabezados {
		celda, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(hoja, celda, h); err != nil {
			return nil, err
		}
	}
	estiloCabecera, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		f.SetRowStyle(hoja, 1, 1, estiloCabecera)
	}

	totalIngresos := 0.0
	totalEgresos := 0.0
	for i, m := range movs {
		fila := i + 2
		referencia := ""
		if m.Referencia != nil {
			referencia = *m.Referencia
		}
		monto, _ := m.Monto.Float64()
		if m.Tipo == model.MovimientoEgreso {
			totalEgresos += monto
		} else {
			totalIngresos += monto
		}
		valores := []any{
			m.CreatedAt.Format("2006-01-02 15:04"),
			m.Tipo,
			m.Metodo,
			monto,
			referencia,
			m.Descripcion,
			m.RegistradoPor,
		}
		for c, v := range valores {
			celda, _ := excelize.CoordinatesToCellName(c+1, fila)
			if err := f.SetCellValue(hoja, celda, v); err != nil {
				return nil, err
			}
		}
	}

	pie := len(movs) + 3
	f.SetCellValue(hoja, fmt.Sprintf("C%d", pie), "Total ingresos")
	f.SetCellValue(hoja, fmt.Sprintf("D%d", pie), totalIngresos)
	f.SetCellValue(hoja, fmt.Sprintf("C%d", pie+1), "Total egresos")
	f.SetCellValue(hoja, fmt.Sprintf("D%d", pie+1), totalEgresos)

	f.SetColWidth(hoja, "A", "A", 18)
	f.SetColWidth(hoja, "F", "F", 45)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
