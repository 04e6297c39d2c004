package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const fechaISO = "2006-01-02T15:04:05Z"

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func fmtFecha(t time.Time) string { return t.UTC().Format(fechaISO) }

func fmtFechaPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := fmtFecha(*t)
	return &s
}

// resumenCacheKey is the redis key holding the dashboard summary; mutating
// services delete it so the next read recomputes.
const resumenCacheKey = "resumen:dashboard"

// invalidarResumen borra el resumen cacheado; tolera cache nil (tests) y
// fallos de redis, que solo alargan la vida del dato viejo hasta su TTL.
func invalidarResumen(ctx context.Context, cache *redis.Client) {
	if cache == nil {
		return
	}
	if err := cache.Del(ctx, resumenCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("cache: no se pudo invalidar el resumen")
	}
}
