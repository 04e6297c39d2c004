package infra

// Generación de PDFs con go-pdf/fpdf:
//   - reporte de cierre de caja (A4) que se envía por correo
//   - recibo de entrega para el cliente (A5)
//   - hoja de etiquetas con QR para los pedidos recibidos en bodega
//
// Los archivos quedan en storagePath y la ruta devuelta se persiste donde
// corresponda (pdf_path del cierre, adjunto del correo).

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// GenerarReporteCierrePDF produce el reporte detallado de un cierre de caja.
func GenerarReporteCierrePDF(cierre *model.CierreCaja, movs []model.MovimientoFinanciero, negocio, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: crear directorio: %w", err)
	}
	fileName := fmt.Sprintf("cierre_%s.pdf", cierre.FechaHasta.Format("20060102_150405"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 10, negocio, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 7, "Reporte de Cierre de Caja", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Período: %s  —  %s",
		cierre.FechaDesde.Format("02/01/2006 15:04"), cierre.FechaHasta.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Realizado por: %s", cierre.RealizadoPor), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// ── Totales ──────────────────────────────────────────────────────────────
	lineas := []struct{ etiqueta, valor string }{
		{"Total ingresos:", "$" + cierre.TotalIngresos.StringFixed(2)},
		{"Total egresos:", "$" + cierre.TotalEgresos.StringFixed(2)},
		{"Efectivo esperado:", "$" + cierre.EfectivoEsperado.StringFixed(2)},
		{"Efectivo declarado:", "$" + cierre.EfectivoDeclarado.StringFixed(2)},
		{"Diferencia:", "$" + cierre.Diferencia.StringFixed(2)},
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, l := range lineas {
		pdf.CellFormat(60, 6, l.etiqueta, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, l.valor, "", 1, "R", false, 0, "")
	}
	if cierre.Descuadre {
		pdf.SetTextColor(200, 0, 0)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 8, "*** DESCUADRE ***", "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(4)

	// ── Movimientos ──────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(30, 6, "Fecha", "B", 0, "L", false, 0, "")
	pdf.CellFormat(18, 6, "Tipo", "B", 0, "L", false, 0, "")
	pdf.CellFormat(28, 6, "Método", "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentW-76-25, 6, "Descripción", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, "Monto", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, m := range movs {
		descr := m.Descripcion
		if len(descr) > 48 {
			descr = descr[:47] + "…"
		}
		monto := "$" + m.Monto.StringFixed(2)
		if m.Tipo == model.MovimientoEgreso {
			monto = "-" + monto
		}
		pdf.CellFormat(30, 5, m.CreatedAt.Format("02/01 15:04"), "", 0, "L", false, 0, "")
		pdf.CellFormat(18, 5, m.Tipo, "", 0, "L", false, 0, "")
		pdf.CellFormat(28, 5, m.Metodo, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW-76-25, 5, descr, "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 5, monto, "", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: escribir reporte: %w", err)
	}
	return filePath, nil
}

// GenerarReciboEntregaPDF produce el comprobante que se entrega junto con el
// pedido.
func GenerarReciboEntregaPDF(pedido *model.Pedido, negocio, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: crear directorio: %w", err)
	}
	fileName := fmt.Sprintf("entrega_%d.pdf", pedido.Numero)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, negocio, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Recibo de Entrega", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Pedido N° %d", pedido.Numero), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if pedido.Cliente != nil {
		pdf.CellFormat(contentW, 5, fmt.Sprintf("Cliente: %s %s", pedido.Cliente.Nombre, pedido.Cliente.Apellido), "", 1, "L", false, 0, "")
	}
	if pedido.FechaEntrega != nil {
		pdf.CellFormat(contentW, 5, "Entregado: "+pedido.FechaEntrega.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW*0.6, 5, "Total:", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 5, "$"+pedido.TotalEfectivo().StringFixed(2), "", 1, "R", false, 0, "")

	for _, a := range pedido.Abonos {
		pdf.CellFormat(contentW*0.6, 5, fmt.Sprintf("Abono (%s) %s:", a.Metodo, a.CreatedAt.Format("02/01")), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.4, 5, "$"+a.Monto.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW*0.6, 7, "Saldo:", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.4, 7, "$"+pedido.SaldoMostrado().StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "¡Gracias por su compra!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: escribir recibo: %w", err)
	}
	return filePath, nil
}

// GenerarEtiquetasPDF produce una hoja con una etiqueta por pedido recibido:
// número grande, cliente y un QR con el id para escanear en bodega.
func GenerarEtiquetasPDF(pedidos []*model.Pedido, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: crear directorio: %w", err)
	}
	fileName := fmt.Sprintf("etiquetas_%d.pdf", len(pedidos))
	if len(pedidos) > 0 && pedidos[0].FechaRecepcion != nil {
		fileName = fmt.Sprintf("etiquetas_%s.pdf", pedidos[0].FechaRecepcion.Format("20060102_150405"))
	}
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	const etiquetaAlto = 45.0
	y := 10.0
	for _, p := range pedidos {
		if y+etiquetaAlto > 287 {
			pdf.AddPage()
			y = 10
		}
		pdf.Rect(10, y, 190, etiquetaAlto, "D")

		png, err := qrcode.Encode(p.ID.String(), qrcode.Medium, 256)
		if err != nil {
			return "", fmt.Errorf("pdf: qr del pedido %d: %w", p.Numero, err)
		}
		imgName := fmt.Sprintf("qr_%d", p.Numero)
		pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
		pdf.ImageOptions(imgName, 14, y+4, 36, 36, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

		pdf.SetXY(56, y+6)
		pdf.SetFont("Helvetica", "B", 22)
		pdf.CellFormat(100, 10, fmt.Sprintf("Pedido #%d", p.Numero), "", 1, "L", false, 0, "")
		pdf.SetX(56)
		pdf.SetFont("Helvetica", "", 11)
		if p.Cliente != nil {
			pdf.CellFormat(100, 7, p.Cliente.Nombre+" "+p.Cliente.Apellido, "", 1, "L", false, 0, "")
			pdf.SetX(56)
		}
		if p.NumeroFactura != nil {
			pdf.CellFormat(100, 7, "Factura: "+*p.NumeroFactura, "", 1, "L", false, 0, "")
		}
		y += etiquetaAlto + 5
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: escribir etiquetas: %w", err)
	}
	return filePath, nil
}
