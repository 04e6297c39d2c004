package infra

import (
	"fmt"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase abre la conexión GORM sobre pgx, corre AutoMigrate sobre todos
// los modelos y aplica los parches SQL idempotentes que AutoMigrate no sabe
// expresar (secuencias, índices parciales).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations también la usan los tests de integración contra un postgres
// efímero.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Cliente{},
		&model.Pedido{},
		&model.Abono{},
		&model.MovimientoFinanciero{},
		&model.CreditoCliente{},
		&model.CuentaBancaria{},
		&model.CierreCaja{},
		&model.ReglaFidelizacion{},
		&model.PremioFidelizacion{},
		&model.CanjeFidelizacion{},
		&model.Rol{},
		&model.Permiso{},
		&model.Usuario{},
		&model.RegistroAuditoria{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches corre DDL que GORM no genera. Cada sentencia es
// idempotente, así que repetir el arranque sobre un esquema ya parchado es
// un no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// numeración de pedidos: secuencia dedicada para que creaciones
		// concurrentes nunca colisionen
		{"secuencia pedidos_numero_seq",
			`CREATE SEQUENCE IF NOT EXISTS pedidos_numero_seq START 1`},
		// unicidad de referencias bancarias solo entre valores no nulos
		{"índice parcial de referencias", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uniq_movimientos_referencia') THEN
    CREATE UNIQUE INDEX uniq_movimientos_referencia
        ON movimiento_financieros (referencia)
        WHERE referencia IS NOT NULL;
  END IF;
END $$`},
		// gen_random_uuid() requiere pgcrypto en postgres < 13
		{"extensión pgcrypto",
			`CREATE EXTENSION IF NOT EXISTS pgcrypto`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
