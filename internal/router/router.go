package router

import (
	"time"

	"galeriapos/internal/config"
	"galeriapos/internal/handler"
	"galeriapos/internal/middleware"
	"galeriapos/internal/repository"
	"galeriapos/internal/service"
	"galeriapos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	marcaRepo := repository.NewMarcaRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	egresoRepo := repository.NewEgresoRepository(db)
	corteRepo := repository.NewCorteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	marcaSvc := service.NewMarcaService(marcaRepo)
	productoSvc := service.NewProductoService(productoRepo, marcaRepo)
	ventaSvc := service.NewVentaService(ventaRepo, marcaRepo, corteRepo)
	egresoSvc := service.NewEgresoService(egresoRepo, corteRepo)
	corteSvc := service.NewCorteService(corteRepo, ventaRepo, egresoRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	marcasH := handler.NewMarcasHandler(marcaSvc)
	productosH := handler.NewProductosHandler(productoSvc, productoRepo, rdb)
	ventasH := handler.NewVentasHandler(ventaSvc)
	egresosH := handler.NewEgresosHandler(egresoSvc)
	cortesH := handler.NewCortesHandler(corteSvc, cfg)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required, served from Redis cache
	r.GET("/v1/precio/:codigo", productosH.ConsultaPrecio)

	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: vendedor, administrador — declared per endpoint
		v1.POST("/ventas", middleware.RequireRole("vendedor", "administrador"), ventasH.Registrar)
		v1.GET("/ventas", middleware.RequireRole("vendedor", "administrador"), ventasH.Listar)
		v1.DELETE("/ventas/:id", middleware.RequireRole("administrador"), ventasH.Anular)

		v1.POST("/egresos", middleware.RequireRole("vendedor", "administrador"), egresosH.Registrar)
		v1.GET("/egresos", middleware.RequireRole("vendedor", "administrador"), egresosH.Listar)

		v1.GET("/marcas", middleware.RequireRole("vendedor", "administrador"), marcasH.Listar)
		marcas := v1.Group("/marcas", middleware.RequireRole("administrador"))
		{
			marcas.POST("", marcasH.Crear)
			marcas.PUT("/:id", marcasH.Actualizar)
			marcas.DELETE("/:id", marcasH.Desactivar)
		}

		v1.GET("/productos", middleware.RequireRole("vendedor", "administrador"), productosH.Listar)
		v1.POST("/productos", middleware.RequireRole("administrador"), productosH.Crear)

		// Corte generation closes the period — administrador only
		cortes := v1.Group("/cortes", middleware.RequireRole("administrador"))
		{
			cortes.POST("", cortesH.Generar)
			cortes.GET("", cortesH.Listar)
			cortes.GET("/:id", cortesH.Obtener)
			cortes.GET("/:id/pdf", cortesH.DescargarPDF)
			cortes.DELETE("/:id", cortesH.Eliminar)
		}

		usuarios := v1.Group("/usuarios", middleware.RequireRole("administrador"))
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.PUT("/:id", authH.ActualizarUsuario)
			usuarios.DELETE("/:id", authH.DesactivarUsuario)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
