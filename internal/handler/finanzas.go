package handler

import (
	"errors"
	"net/http"

	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/apierror"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/dto"
	"github.com/AndresMorquecho/VentasCatalogo-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type FinanzasHandler struct{ svc service.PagoService }

func NewFinanzasHandler(svc service.PagoService) *FinanzasHandler {
	return &FinanzasHandler{svc: svc}
}

// RegistrarPago godoc
// @Summary Registrar pago de pedido
// @Description Crea el movimiento de ingreso y el abono en una transacción. Si el monto excede el saldo pendiente genera un crédito del cliente. Referencias bancarias duplicadas se rechazan con 409.
// @Tags finanzas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegistrarPagoRequest true "Pago"
// @Success 201 {object} dto.PagoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/pagos [post]
func (h *FinanzasHandler) RegistrarPago(c *gin.Context) {
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarPago(c.Request.Context(), req)
	if err != nil {
		var dup *service.ReferenciaDuplicadaError
		if errors.As(err, &dup) {
			c.JSON(http.StatusConflict, apierror.NewCoded("REFERENCIA_DUPLICADA", dup.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *FinanzasHandler) MovimientoManual(c *gin.Context) {
	var req dto.MovimientoManualRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarMovimientoManual(c.Request.Context(), req)
	if err != nil {
		var dup *service.ReferenciaDuplicadaError
		if errors.As(err, &dup) {
			c.JSON(http.StatusConflict, apierror.NewCoded("REFERENCIA_DUPLICADA", dup.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *FinanzasHandler) ListarMovimientos(c *gin.Context) {
	var filter dto.MovimientoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarMovimientos(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar movimientos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportarLibro descarga el libro de movimientos filtrado como .xlsx.
func (h *FinanzasHandler) ExportarLibro(c *gin.Context) {
	var filter dto.MovimientoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	data, nombre, err := h.svc.ExportarLibroExcel(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al exportar el libro"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+nombre+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *FinanzasHandler) CrearCuenta(c *gin.Context) {
	var req dto.CrearCuentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearCuenta(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *FinanzasHandler) ListarCuentas(c *gin.Context) {
	resp, err := h.svc.ListarCuentas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar cuentas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
