package handler

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"galeriapos/internal/apierror"
	"galeriapos/internal/config"
	"galeriapos/internal/dto"
	"galeriapos/internal/middleware"
	"galeriapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CortesHandler struct {
	svc service.CorteService
	cfg *config.Config
}

func NewCortesHandler(svc service.CorteService, cfg *config.Config) *CortesHandler {
	return &CortesHandler{svc: svc, cfg: cfg}
}

// Generar godoc
// @Summary Genera el corte de un periodo
// @Tags cortes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.GenerarCorteRequest true "Rango de fechas (inclusive)"
// @Success 201 {object} dto.CorteResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/cortes [post]
func (h *CortesHandler) Generar(c *gin.Context) {
	var req dto.GenerarCorteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	generadoPor, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Generar(c.Request.Context(), generadoPor, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPeriodoYaCerrado):
			c.JSON(http.StatusConflict, apierror.Conflict(err.Error()))
		case errors.Is(err, service.ErrRangoFechasInvalido):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obtener returns one corte with its per-brand breakdown.
func (h *CortesHandler) Obtener(c *gin.Context) {
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

// Listar returns the settlement history, newest first.
func (h *CortesHandler) Listar(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	resp, err := h.svc.Listar(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary Elimina un corte (override administrativo)
// @Tags cortes
// @Security BearerAuth
// @Param id path string true "ID del corte"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/cortes/{id} [delete]
func (h *CortesHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// DescargarPDF serves the report PDF generated by the worker.
func (h *CortesHandler) DescargarPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	corte, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	path := filepath.Join(h.cfg.PDFStoragePath, "corte_"+corte.Periodo+".pdf")
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, apierror.New("el PDF aún no fue generado"))
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
