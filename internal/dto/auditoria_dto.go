package dto

// AuditoriaFilter mirrors the audit screen: user, module, severity,
// free text over username/accion/detalle, and an inclusive date range
// (Hasta extends to end of day).
type AuditoriaFilter struct {
	Username  string `form:"username"`
	Modulo    string `form:"modulo"`
	Severidad string `form:"severidad"`
	Texto     string `form:"texto"`
	Desde     string `form:"desde"`
	Hasta     string `form:"hasta"`
	Page      int    `form:"page"`
}

type AuditoriaResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Modulo    string `json:"modulo"`
	Accion    string `json:"accion"`
	Severidad string `json:"severidad"`
	Detalle   string `json:"detalle"`
	CreatedAt string `json:"created_at"`
}

type AuditoriaListResponse struct {
	Data  []AuditoriaResponse `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}
