package handler

import (
	"net/http"
	"strconv"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/apierror"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/dto"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CierresHandler struct{ svc service.CierreService }

func NewCierresHandler(svc service.CierreService) *CierresHandler {
	return &CierresHandler{svc: svc}
}

// Previa calcula el período abierto sin persistir nada.
func (h *CierresHandler) Previa(c *gin.Context) {
	hasta := c.Query("hasta")
	if hasta == "" {
		c.JSON(http.StatusBadRequest, apierror.New("falta el parámetro hasta"))
		return
	}
	resp, err := h.svc.Previa(c.Request.Context(), hasta)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Confirmar godoc
// @Summary Confirmar cierre de caja
// @Description Persiste el cierre y sella sus movimientos. Un descuadre (|declarado − esperado| > 0.01) marca el registro pero no bloquea la confirmación. El reporte PDF y el correo se generan en segundo plano.
// @Tags cierres
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ConfirmarCierreRequest true "Efectivo declarado y fecha de corte"
// @Success 201 {object} dto.CierreResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/cierres [post]
func (h *CierresHandler) Confirmar(c *gin.Context) {
	var req dto.ConfirmarCierreRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Confirmar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CierresHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CierresHandler) Listar(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	data, total, err := h.svc.Listar(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar cierres"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": data, "total": total, "page": page, "limit": limit})
}

// Eliminar libera los movimientos del cierre; queda auditado como CRITICO.
func (h *CierresHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
