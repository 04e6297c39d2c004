package worker

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Dispatcher publica trabajos en las colas redis. Los servicios lo usan tras
// confirmar sus transacciones; un fallo al encolar se registra pero nunca
// revierte la operación principal.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher { return &Dispatcher{rdb: rdb} }

func (d *Dispatcher) encolar(ctx context.Context, queue, tipo string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{
		ID:        uuid.NewString(),
		Tipo:      tipo,
		Payload:   raw,
		CreatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, data).Err()
}

func (d *Dispatcher) EncolarDocumento(ctx context.Context, job DocumentoJob) error {
	return d.encolar(ctx, QueueDocumentos, job.Tipo, job)
}

func (d *Dispatcher) EncolarEmail(ctx context.Context, job EmailJob) error {
	return d.encolar(ctx, QueueEmail, "email", job)
}

// Handler procesa un trabajo de su cola. Devolver error reintenta el trabajo
// hasta maxIntentos; después pasa a la dead-letter.
type Handler func(ctx context.Context, job Job) error

// Pool consume las colas registradas con BRPOP desde un grupo fijo de
// goroutines.
type Pool struct {
	rdb      *redis.Client
	size     int
	handlers map[string]Handler
	queues   []string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewPool(rdb *redis.Client, size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{rdb: rdb, size: size, handlers: make(map[string]Handler)}
}

// Registrar asocia una cola con su handler. Debe llamarse antes de Start.
func (p *Pool) Registrar(queue string, h Handler) {
	p.handlers[queue] = h
	p.queues = append(p.queues, queue)
}

func (p *Pool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.loop(ctx, i)
	}
	log.Info().Int("workers", p.size).Strs("colas", p.queues).Msg("worker pool iniciado")
}

// Stop detiene el pool y espera a que terminen los trabajos en curso.
func (p *Pool) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

func (p *Pool) loop(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		res, err := p.rdb.BRPop(ctx, 5*time.Second, p.queues...).Result()
		if err != nil {
			if err == redis.Nil || ctx.Err() != nil {
				continue
			}
			log.Error().Err(err).Int("worker", id).Msg("worker: error leyendo cola")
			time.Sleep(time.Second)
			continue
		}
		// BRPOP devuelve [cola, valor]
		queue, raw := res[0], res[1]
		var job Job
		if err := json.Unmarshal([]byte(raw), &job); err != nil {
			log.Error().Err(err).Str("cola", queue).Msg("worker: trabajo ilegible, descartado")
			continue
		}
		p.procesar(ctx, queue, job)
	}
}

func (p *Pool) procesar(ctx context.Context, queue string, job Job) {
	handler, ok := p.handlers[queue]
	if !ok {
		return
	}
	if err := handler(ctx, job); err != nil {
		job.Intentos++
		log.Warn().Err(err).
			Str("job_id", job.ID).
			Str("tipo", job.Tipo).
			Int("intentos", job.Intentos).
			Msg("worker: trabajo fallido")
		if job.Intentos >= maxIntentos {
			p.aDeadLetter(ctx, queue, job, err)
			return
		}
		if data, merr := json.Marshal(job); merr == nil {
			p.rdb.LPush(ctx, queue, data)
		}
	}
}
