package handler

import (
	"net/http"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/apierror"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/dto"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type RecepcionHandler struct{ svc service.RecepcionService }

func NewRecepcionHandler(svc service.RecepcionService) *RecepcionHandler {
	return &RecepcionHandler{svc: svc}
}

// ProcesarLote godoc
// @Summary Recepción en lote
// @Description Recibe varios pedidos en una transacción, con abono opcional por fila. Las filas inválidas se reportan sin tumbar el lote; al final encola las etiquetas de bodega.
// @Tags recepcion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RecepcionLoteRequest true "Ítems del lote"
// @Success 200 {object} dto.RecepcionLoteResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/recepcion/lote [post]
func (h *RecepcionHandler) ProcesarLote(c *gin.Context) {
	var req dto.RecepcionLoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ProcesarLote(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
