package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/config"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/infra"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DocumentoWorker genera los PDFs fuera del camino de la petición: reportes
// de cierre, recibos de entrega y etiquetas de bodega.
type DocumentoWorker struct {
	pedidoRepo repository.PedidoRepository
	cierreRepo repository.CierreRepository
	dispatcher *Dispatcher
	cfg        *config.Config
}

func NewDocumentoWorker(
	pedidoRepo repository.PedidoRepository,
	cierreRepo repository.CierreRepository,
	dispatcher *Dispatcher,
	cfg *config.Config,
) *DocumentoWorker {
	return &DocumentoWorker{
		pedidoRepo: pedidoRepo,
		cierreRepo: cierreRepo,
		dispatcher: dispatcher,
		cfg:        cfg,
	}
}

func (w *DocumentoWorker) Handle(ctx context.Context, job Job) error {
	var doc DocumentoJob
	if err := json.Unmarshal(job.Payload, &doc); err != nil {
		return fmt.Errorf("documento: payload ilegible: %w", err)
	}
	switch doc.Tipo {
	case DocReporteCierre:
		return w.reporteCierre(ctx, doc)
	case DocReciboEntrega:
		return w.reciboEntrega(ctx, doc)
	case DocEtiquetas:
		return w.etiquetas(ctx, doc)
	default:
		log.Warn().Str("tipo", doc.Tipo).Msg("documento: tipo desconocido, descartado")
		return nil
	}
}

// reporteCierre genera el PDF, guarda su ruta en el cierre y encola el correo
// al responsable del negocio.
func (w *DocumentoWorker) reporteCierre(ctx context.Context, doc DocumentoJob) error {
	id, err := uuid.Parse(doc.CierreID)
	if err != nil {
		return fmt.Errorf("documento: cierre_id inválido: %w", err)
	}
	cierre, err := w.cierreRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	var movs []model.MovimientoFinanciero
	if cierre.ReporteDetallado != "" {
		if err := json.Unmarshal([]byte(cierre.ReporteDetallado), &movs); err != nil {
			log.Warn().Err(err).Str("cierre_id", doc.CierreID).Msg("documento: reporte detallado ilegible")
		}
	}

	ruta, err := infra.GenerarReporteCierrePDF(cierre, movs, w.cfg.NombreNegocio, w.cfg.PDFStoragePath)
	if err != nil {
		return err
	}
	if err := w.cierreRepo.UpdatePDFPath(ctx, id, ruta); err != nil {
		return err
	}

	if w.cfg.ReporteEmail == "" {
		return nil
	}
	asunto := fmt.Sprintf("Cierre de caja %s", cierre.FechaHasta.Format("02/01/2006"))
	cuerpo := fmt.Sprintf("Cierre confirmado por %s.\nEfectivo esperado: $%s\nEfectivo declarado: $%s\nDiferencia: $%s\n",
		cierre.RealizadoPor,
		cierre.EfectivoEsperado.StringFixed(2),
		cierre.EfectivoDeclarado.StringFixed(2),
		cierre.Diferencia.StringFixed(2))
	if cierre.Descuadre {
		asunto = "[DESCUADRE] " + asunto
	}
	return w.dispatcher.EncolarEmail(ctx, EmailJob{
		Para:     []string{w.cfg.ReporteEmail},
		Asunto:   asunto,
		Cuerpo:   cuerpo,
		Adjuntos: []string{ruta},
	})
}

func (w *DocumentoWorker) reciboEntrega(ctx context.Context, doc DocumentoJob) error {
	id, err := uuid.Parse(doc.PedidoID)
	if err != nil {
		return fmt.Errorf("documento: pedido_id inválido: %w", err)
	}
	pedido, err := w.pedidoRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	ruta, err := infra.GenerarReciboEntregaPDF(pedido, w.cfg.NombreNegocio, w.cfg.PDFStoragePath)
	if err != nil {
		return err
	}
	log.Info().Int64("numero", pedido.Numero).Str("ruta", ruta).Msg("documento: recibo de entrega generado")
	return nil
}

func (w *DocumentoWorker) etiquetas(ctx context.Context, doc DocumentoJob) error {
	pedidos := make([]*model.Pedido, 0, len(doc.PedidoIDs))
	for _, raw := range doc.PedidoIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		pedido, err := w.pedidoRepo.FindByID(ctx, id)
		if err != nil {
			log.Warn().Str("pedido_id", raw).Msg("documento: pedido de etiqueta no encontrado")
			continue
		}
		pedidos = append(pedidos, pedido)
	}
	if len(pedidos) == 0 {
		return nil
	}
	ruta, err := infra.GenerarEtiquetasPDF(pedidos, w.cfg.PDFStoragePath)
	if err != nil {
		return err
	}
	log.Info().Int("pedidos", len(pedidos)).Str("ruta", ruta).Msg("documento: etiquetas generadas")
	return nil
}
