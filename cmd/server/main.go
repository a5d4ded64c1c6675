package main

import (
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Mofathy183/beggy-sub000/internal/config"
	"github.com/Mofathy183/beggy-sub000/internal/database"
	"github.com/Mofathy183/beggy-sub000/internal/handlers"
	"github.com/Mofathy183/beggy-sub000/internal/middleware"
	"github.com/Mofathy183/beggy-sub000/internal/models"
	"github.com/Mofathy183/beggy-sub000/internal/types"

	_ "github.com/Mofathy183/beggy-sub000/docs/api" // Swagger docs
)

// @title Beggy API
// @version 1.0.0
// @description Travel packing backend: users, bags, suitcases, items and capacity/weight accounting
// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{AllowCredentials: true}))

	prometheus := fiberprometheus.New("beggy")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	app.Get("/swagger/*", swagger.HandlerDefault)

	sessionStore := session.New(session.Config{
		Expiration:     cfg.SessionExpiry,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})

	// Browser clients get double-submit CSRF protection; bearer-token API
	// clients are exempt since the token never travels in a cookie.
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "header:X-Csrf-Token",
		CookieName:     "csrf_token",
		CookieSameSite: "Lax",
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		},
	}))

	api := app.Group("/api")
	api.Use(middleware.ParseQuery())

	healthHandler := &handlers.HealthHandler{DB: db, Cfg: cfg}
	api.Get("/health", healthHandler.Check)

	authHandler := &handlers.AuthHandler{DB: db, Cfg: cfg, Session: sessionStore}
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
	}))
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/signin", authHandler.Signin)
	auth.Post("/signout", authHandler.Signout)
	auth.Get("/me", middleware.Protect(cfg), authHandler.Me)
	auth.Patch("/password", middleware.Protect(cfg), authHandler.ChangePassword)

	bagHandler := &handlers.BagHandler{DB: db, Cfg: cfg}
	suitcaseHandler := &handlers.SuitcaseHandler{DB: db, Cfg: cfg}

	// Unauthenticated catalog reads.
	public := api.Group("/public")
	public.Get("/bags", bagHandler.PublicList)
	public.Get("/suitcases", suitcaseHandler.PublicList)

	protect := middleware.Protect(cfg)
	elevated := middleware.RequireRoles(models.RoleAdmin, models.RoleMember)

	itemHandler := &handlers.ItemHandler{DB: db, Cfg: cfg}
	items := api.Group("/items", protect)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Post("/many", itemHandler.CreateMany)
	items.Post("/suggest", itemHandler.Suggest)
	items.Delete("/", elevated, itemHandler.RemoveAll)
	items.Get("/:itemId", itemHandler.Get)
	items.Put("/:itemId", itemHandler.Replace)
	items.Patch("/:itemId", itemHandler.Modify)
	items.Delete("/:itemId", itemHandler.Remove)

	bags := api.Group("/bags", protect)
	bags.Get("/", bagHandler.List)
	bags.Post("/", bagHandler.Create)
	bags.Post("/many", bagHandler.CreateMany)
	bags.Post("/suggest", bagHandler.Suggest)
	bags.Delete("/", elevated, bagHandler.RemoveAll)
	bags.Get("/:bagId", bagHandler.Get)
	bags.Put("/:bagId", bagHandler.Replace)
	bags.Patch("/:bagId", bagHandler.Modify)
	bags.Delete("/:bagId", bagHandler.Remove)

	suitcases := api.Group("/suitcases", protect)
	suitcases.Get("/", suitcaseHandler.List)
	suitcases.Post("/", suitcaseHandler.Create)
	suitcases.Post("/many", suitcaseHandler.CreateMany)
	suitcases.Post("/suggest", suitcaseHandler.Suggest)
	suitcases.Delete("/", elevated, suitcaseHandler.RemoveAll)
	suitcases.Get("/:suitcaseId", suitcaseHandler.Get)
	suitcases.Put("/:suitcaseId", suitcaseHandler.Replace)
	suitcases.Patch("/:suitcaseId", suitcaseHandler.Modify)
	suitcases.Delete("/:suitcaseId", suitcaseHandler.Remove)

	bagItemsHandler := &handlers.BagItemsHandler{DB: db}
	bagItems := api.Group("/bag-items", protect)
	bagItems.Post("/:bagId/item/:itemId", bagItemsHandler.Attach)
	bagItems.Post("/:bagId/items", bagItemsHandler.AttachMany)
	bagItems.Delete("/:bagId/item/:itemId", bagItemsHandler.Detach)
	bagItems.Delete("/:bagId/items", bagItemsHandler.DetachMany)
	bagItems.Delete("/:bagId", bagItemsHandler.DetachAll)

	suitcaseItemsHandler := &handlers.SuitcaseItemsHandler{DB: db}
	suitcaseItems := api.Group("/suitcase-items", protect)
	suitcaseItems.Post("/:suitcaseId/item/:itemId", suitcaseItemsHandler.Attach)
	suitcaseItems.Post("/:suitcaseId/items", suitcaseItemsHandler.AttachMany)
	suitcaseItems.Delete("/:suitcaseId/item/:itemId", suitcaseItemsHandler.Detach)
	suitcaseItems.Delete("/:suitcaseId/items", suitcaseItemsHandler.DetachMany)
	suitcaseItems.Delete("/:suitcaseId", suitcaseItemsHandler.DetachAll)

	userHandler := &handlers.UserHandler{DB: db}
	users := api.Group("/users", protect, middleware.RequireRoles(models.RoleAdmin))
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Delete("/", userHandler.RemoveAll)
	users.Get("/:userId", userHandler.Get)
	users.Put("/:userId", userHandler.Replace)
	users.Patch("/:userId", userHandler.Modify)
	users.Delete("/:userId", userHandler.Remove)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Resource not found",
			"error":   "route.not_found",
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info().Msg("gracefully shutting down")
		_ = app.Shutdown()
	}()

	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}

	log.Info().Msg("server stopped")
}

// errorHandler is the global fallback for errors that escape the handlers,
// mainly middleware rejections and panics surfaced by recover.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	errorType := "internal"

	var custom *types.CustomError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &custom):
		code = custom.Code
		message = custom.Message
		errorType = custom.Type
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
		errorType = "http"
	default:
		log.Error().Err(err).Str("url", c.OriginalURL()).Msg("unhandled error")
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
		"error":   errorType,
	})
}
