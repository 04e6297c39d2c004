package dto

import "github.com/shopspring/decimal"

type ReglaRequest struct {
	Nombre        string          `json:"nombre"          validate:"required,min=3"`
	MontoPorPunto decimal.Decimal `json:"monto_por_punto" validate:"required,gt=0"`
	Activa        bool            `json:"activa"`
}

type ReglaResponse struct {
	ID            string          `json:"id"`
	Nombre        string          `json:"nombre"`
	MontoPorPunto decimal.Decimal `json:"monto_por_punto"`
	Activa        bool            `json:"activa"`
	CreatedAt     string          `json:"created_at"`
}

type PremioRequest struct {
	Nombre      string  `json:"nombre"       validate:"required,min=3"`
	Descripcion *string `json:"descripcion"`
	CostoPuntos int     `json:"costo_puntos" validate:"required,gt=0"`
	Activo      bool    `json:"activo"`
}

type PremioResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	CostoPuntos int     `json:"costo_puntos"`
	Activo      bool    `json:"activo"`
	CreatedAt   string  `json:"created_at"`
}

type CanjearRequest struct {
	ClienteID string `json:"cliente_id" validate:"required,uuid"`
	PremioID  string `json:"premio_id"  validate:"required,uuid"`
}

type CanjeResponse struct {
	ID               string `json:"id"`
	ClienteID        string `json:"cliente_id"`
	PremioID         string `json:"premio_id"`
	PremioNombre     string `json:"premio_nombre"`
	PuntosUtilizados int    `json:"puntos_utilizados"`
	CreatedAt        string `json:"created_at"`
}
