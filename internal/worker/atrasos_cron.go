package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// marcadorAtrasos es lo único que el cron necesita del servicio de pedidos.
type marcadorAtrasos interface {
	MarcarAtrasados(ctx context.Context, ref time.Time) (int, error)
}

// AtrasosCron marca diariamente los pedidos cuya fecha prometida venció sin
// recepción. Corre también una pasada al arrancar para cubrir reinicios.
type AtrasosCron struct {
	pedidos marcadorAtrasos
	cron    *cron.Cron
}

func NewAtrasosCron(pedidos marcadorAtrasos) *AtrasosCron {
	return &AtrasosCron{
		pedidos: pedidos,
		cron:    cron.New(cron.WithLocation(time.UTC)),
	}
}

func (c *AtrasosCron) Start(ctx context.Context) error {
	// Todos los días a la 01:00 UTC.
	if _, err := c.cron.AddFunc("0 1 * * *", func() { c.ejecutar(ctx) }); err != nil {
		return err
	}
	c.cron.Start()
	go c.ejecutar(ctx)
	return nil
}

func (c *AtrasosCron) Stop() {
	<-c.cron.Stop().Done()
}

func (c *AtrasosCron) ejecutar(ctx context.Context) {
	marcados, err := c.pedidos.MarcarAtrasados(ctx, time.Now().UTC())
	if err != nil {
		log.Error().Err(err).Msg("atrasos: barrido fallido")
		return
	}
	if marcados > 0 {
		log.Warn().Int("marcados", marcados).Msg("atrasos: pedidos vencidos marcados")
	} else {
		log.Debug().Msg("atrasos: sin pedidos vencidos")
	}
}
