package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/config"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/infra"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/repository"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/router"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Logger estructurado — dev: legible, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo cargar la configuración")
	}
	if cfg.Env == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo conectar a postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo conectar a redis")
	}

	// Pool de workers para tareas asíncronas (PDF, etiquetas, correo).
	// Los handlers se arman aquí, en la raíz de composición, para que el pool
	// tenga acceso a toda la infraestructura.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)
	pedidoRepo := repository.NewPedidoRepository(db)
	cierreRepo := repository.NewCierreRepository(db)

	pool := worker.NewPool(rdb, cfg.WorkerPoolSize)
	pool.Registrar(worker.QueueDocumentos, worker.NewDocumentoWorker(pedidoRepo, cierreRepo, dispatcher, cfg).Handle)
	pool.Registrar(worker.QueueEmail, worker.NewEmailWorker(mailer, smtpCB).Handle)
	pool.Start(ctx)

	r, pedidoSvc := router.New(cfg, db, rdb, dispatcher)

	// Barrido diario de pedidos vencidos, con una pasada inicial al arrancar.
	atrasos := worker.NewAtrasosCron(pedidoSvc)
	if err := atrasos.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("no se pudo programar el barrido de atrasos")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Apagado ordenado con SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("backend escuchando en :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("error del servidor")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando el servidor…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("apagado forzado")
	}
	atrasos.Stop()
	pool.Stop()
	log.Info().Msg("servidor detenido")
}
