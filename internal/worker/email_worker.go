package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailWorker envía correos a través del circuit breaker: con el SMTP caído
// los trabajos fallan rápido, se reintentan y terminan en la dead-letter si
// la caída persiste.
type EmailWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
}

func NewEmailWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb}
}

func (w *EmailWorker) Handle(_ context.Context, job Job) error {
	var msg EmailJob
	if err := json.Unmarshal(job.Payload, &msg); err != nil {
		return fmt.Errorf("email: payload ilegible: %w", err)
	}
	if len(msg.Para) == 0 {
		log.Warn().Str("job_id", job.ID).Msg("email: sin destinatarios, descartado")
		return nil
	}
	err := w.cb.Execute(func() error {
		return w.mailer.Enviar(msg.Para, msg.Asunto, msg.Cuerpo, msg.Adjuntos)
	})
	if err != nil {
		return fmt.Errorf("email: envío a %v: %w", msg.Para, err)
	}
	log.Info().Strs("para", msg.Para).Str("asunto", msg.Asunto).Msg("email: enviado")
	return nil
}
