package worker

import (
	"encoding/json"
	"time"
)

// Colas redis. Cada cola tiene su dead-letter con el sufijo ":dlq".
const (
	QueueDocumentos = "jobs:documentos"
	QueueEmail      = "jobs:email"

	dlqSuffix   = ":dlq"
	maxIntentos = 3
)

// Tipos de documento que genera el worker de documentos.
const (
	DocReporteCierre = "reporte_cierre"
	DocReciboEntrega = "recibo_entrega"
	DocEtiquetas     = "etiquetas"
)

// Job is the envelope pushed onto a redis list. Payload stays raw so each
// worker decodes its own shape.
type Job struct {
	ID        string          `json:"id"`
	Tipo      string          `json:"tipo"`
	Payload   json.RawMessage `json:"payload"`
	Intentos  int             `json:"intentos"`
	CreatedAt time.Time       `json:"created_at"`
}

// DocumentoJob asks the documento worker for a PDF. Exactly one of CierreID,
// PedidoID or PedidoIDs is set depending on Tipo.
type DocumentoJob struct {
	Tipo      string   `json:"tipo"`
	CierreID  string   `json:"cierre_id,omitempty"`
	PedidoID  string   `json:"pedido_id,omitempty"`
	PedidoIDs []string `json:"pedido_ids,omitempty"`
}

// EmailJob asks the email worker to send a message. Adjuntos are paths on
// the shared PDF storage volume.
type EmailJob struct {
	Para     []string `json:"para"`
	Asunto   string   `json:"asunto"`
	Cuerpo   string   `json:"cuerpo"`
	Adjuntos []string `json:"adjuntos,omitempty"`
}
