package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"galeriapos/internal/apierror"
	"galeriapos/internal/dto"
	"galeriapos/internal/repository"
	"galeriapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const precioCacheTTL = 4 * time.Hour

type ProductosHandler struct {
	svc  service.ProductoService
	repo repository.ProductoRepository
	rdb  *redis.Client
}

func NewProductosHandler(svc service.ProductoService, repo repository.ProductoRepository, rdb *redis.Client) *ProductosHandler {
	return &ProductosHandler{svc: svc, repo: repo, rdb: rdb}
}

func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductosHandler) Listar(c *gin.Context) {
	var marcaID *uuid.UUID
	if raw := c.Query("marca_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("marca_id inválido"))
			return
		}
		marcaID = &id
	}
	resp, err := h.svc.Listar(c.Request.Context(), marcaID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConsultaPrecio godoc
// @Summary Consulta de precio por codigo (sin autenticacion)
// @Tags precio
// @Produce json
// @Param codigo path string true "Codigo del producto"
// @Success 200 {object} dto.ConsultaPrecioResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/precio/{codigo} [get]
func (h *ProductosHandler) ConsultaPrecio(c *gin.Context) {
	codigo := c.Param("codigo")
	ctx := c.Request.Context()
	cacheKey := "precio:" + codigo

	// Try Redis first — the price endpoint is the hot path of the SPA.
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.ConsultaPrecioResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	producto, err := h.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		return
	}

	resp := dto.ConsultaPrecioResponse{
		Nombre: producto.Nombre,
		Precio: producto.Precio,
		Stock:  producto.Stock,
	}
	if producto.Marca != nil {
		resp.MarcaNombre = producto.Marca.Nombre
	}

	// Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, precioCacheTTL).Err()
	}
	c.JSON(http.StatusOK, resp)
}
