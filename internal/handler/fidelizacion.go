package handler

import (
	"net/http"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/apierror"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/dto"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FidelizacionHandler struct{ svc service.FidelizacionService }

func NewFidelizacionHandler(svc service.FidelizacionService) *FidelizacionHandler {
	return &FidelizacionHandler{svc: svc}
}

func (h *FidelizacionHandler) CrearRegla(c *gin.Context) {
	var req dto.ReglaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearRegla(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *FidelizacionHandler) ListarReglas(c *gin.Context) {
	resp, err := h.svc.ListarReglas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar reglas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FidelizacionHandler) ActualizarRegla(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ReglaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarRegla(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FidelizacionHandler) CrearPremio(c *gin.Context) {
	var req dto.PremioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearPremio(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *FidelizacionHandler) ListarPremios(c *gin.Context) {
	resp, err := h.svc.ListarPremios(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar premios"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FidelizacionHandler) ActualizarPremio(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.PremioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarPremio(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Canjear godoc
// @Summary Canjear premio
// @Description Consume el saldo completo de puntos del cliente a cambio del premio elegido.
// @Tags fidelizacion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CanjearRequest true "Cliente y premio"
// @Success 201 {object} dto.CanjeResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/fidelizacion/canjes [post]
func (h *FidelizacionHandler) Canjear(c *gin.Context) {
	var req dto.CanjearRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Canjear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *FidelizacionHandler) ListarCanjes(c *gin.Context) {
	var clienteID *uuid.UUID
	if raw := c.Query("cliente_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("cliente_id inválido"))
			return
		}
		clienteID = &id
	}
	resp, err := h.svc.ListarCanjes(c.Request.Context(), clienteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar canjes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
