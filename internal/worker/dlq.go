package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// deadJob conserva el trabajo original junto con el último error para poder
// inspeccionarlo y reinyectarlo a mano.
type deadJob struct {
	Job      Job       `json:"job"`
	Cola     string    `json:"cola"`
	Error    string    `json:"error"`
	FallidoA time.Time `json:"fallido_a"`
}

func (p *Pool) aDeadLetter(ctx context.Context, queue string, job Job, cause error) {
	dead := deadJob{
		Job:      job,
		Cola:     queue,
		Error:    cause.Error(),
		FallidoA: time.Now().UTC(),
	}
	data, err := json.Marshal(dead)
	if err != nil {
		return
	}
	if err := p.rdb.LPush(ctx, queue+dlqSuffix, data).Err(); err != nil {
		log.Error().Err(err).Str("job_id", job.ID).Msg("worker: no se pudo mover a dead-letter")
		return
	}
	log.Error().
		Str("job_id", job.ID).
		Str("tipo", job.Tipo).
		Str("causa", cause.Error()).
		Msg("worker: trabajo agotó reintentos, movido a dead-letter")
}

// Reinyectar mueve hasta n trabajos de la dead-letter de vuelta a su cola,
// con el contador de intentos en cero.
func Reinyectar(ctx context.Context, rdb *redis.Client, queue string, n int) (int, error) {
	moved := 0
	for i := 0; i < n; i++ {
		raw, err := rdb.RPop(ctx, queue+dlqSuffix).Result()
		if err == redis.Nil {
			break
		}
		if err != nil {
			return moved, err
		}
		var dead deadJob
		if err := json.Unmarshal([]byte(raw), &dead); err != nil {
			continue
		}
		dead.Job.Intentos = 0
		data, err := json.Marshal(dead.Job)
		if err != nil {
			continue
		}
		if err := rdb.LPush(ctx, queue, data).Err(); err != nil {
			return moved, err
		}
		moved++
	}
	return moved, nil
}
