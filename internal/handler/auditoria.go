package handler

import (
	"net/http"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/apierror"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/dto"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type AuditoriaHandler struct{ svc service.AuditoriaService }

func NewAuditoriaHandler(svc service.AuditoriaService) *AuditoriaHandler {
	return &AuditoriaHandler{svc: svc}
}

// Listar pagina de a 20 registros con filtros por usuario, módulo, severidad,
// texto libre y rango de fechas.
func (h *AuditoriaHandler) Listar(c *gin.Context) {
	var filter dto.AuditoriaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar auditoría"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
