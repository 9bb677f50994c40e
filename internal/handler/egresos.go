package handler

import (
	"errors"
	"net/http"
	"strconv"

	"galeriapos/internal/apierror"
	"galeriapos/internal/dto"
	"galeriapos/internal/middleware"
	"galeriapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EgresosHandler struct{ svc service.EgresoService }

func NewEgresosHandler(svc service.EgresoService) *EgresosHandler { return &EgresosHandler{svc: svc} }

func (h *EgresosHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarEgresoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Registrar(c.Request.Context(), usuarioID, req)
	if err != nil {
		if errors.Is(err, service.ErrPeriodoConCorte) {
			c.JSON(http.StatusConflict, apierror.Conflict(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EgresosHandler) Listar(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, total, err := h.svc.Listar(c.Request.Context(),
		c.Query("fecha_desde"), c.Query("fecha_hasta"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "total": total, "page": page, "limit": limit})
}
