package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Mofathy183/beggy-sub000/internal/config"
	"github.com/Mofathy183/beggy-sub000/internal/database"
	"github.com/Mofathy183/beggy-sub000/internal/handlers"
	"github.com/Mofathy183/beggy-sub000/internal/middleware"
	"github.com/Mofathy183/beggy-sub000/internal/models"
	"github.com/Mofathy183/beggy-sub000/internal/types"
	"github.com/Mofathy183/beggy-sub000/tests/helpers"
)

// newTestApp builds a fiber app with the same routing layout as the server
// entrypoint, backed by an in-memory sqlite database.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.SetupJoinTable(&models.Bag{}, "Items", &models.BagItem{}); err != nil {
		t.Fatalf("Failed to set up bag join table: %v", err)
	}
	if err := db.SetupJoinTable(&models.Suitcase{}, "Items", &models.SuitcaseItem{}); err != nil {
		t.Fatalf("Failed to set up suitcase join table: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:     "handlers-test-secret",
		JWTExpiry:     time.Hour,
		SessionExpiry: time.Hour,
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
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
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"message": message,
				"error":   errorType,
			})
		},
	})
	app.Use(recover.New())

	sessionStore := session.New(session.Config{
		Expiration:     cfg.SessionExpiry,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})

	api := app.Group("/api")
	api.Use(middleware.ParseQuery())

	authHandler := &handlers.AuthHandler{DB: db, Cfg: cfg, Session: sessionStore}
	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/signin", authHandler.Signin)
	auth.Post("/signout", authHandler.Signout)
	auth.Get("/me", middleware.Protect(cfg), authHandler.Me)
	auth.Patch("/password", middleware.Protect(cfg), authHandler.ChangePassword)

	bagHandler := &handlers.BagHandler{DB: db, Cfg: cfg}
	suitcaseHandler := &handlers.SuitcaseHandler{DB: db, Cfg: cfg}

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
	items.Delete("/", elevated, itemHandler.RemoveAll)
	items.Get("/:itemId", itemHandler.Get)
	items.Put("/:itemId", itemHandler.Replace)
	items.Patch("/:itemId", itemHandler.Modify)
	items.Delete("/:itemId", itemHandler.Remove)

	bags := api.Group("/bags", protect)
	bags.Get("/", bagHandler.List)
	bags.Post("/", bagHandler.Create)
	bags.Get("/:bagId", bagHandler.Get)
	bags.Delete("/:bagId", bagHandler.Remove)

	bagItemsHandler := &handlers.BagItemsHandler{DB: db}
	bagItems := api.Group("/bag-items", protect)
	bagItems.Post("/:bagId/item/:itemId", bagItemsHandler.Attach)
	bagItems.Post("/:bagId/items", bagItemsHandler.AttachMany)
	bagItems.Delete("/:bagId/item/:itemId", bagItemsHandler.Detach)
	bagItems.Delete("/:bagId/items", bagItemsHandler.DetachMany)
	bagItems.Delete("/:bagId", bagItemsHandler.DetachAll)

	userHandler := &handlers.UserHandler{DB: db}
	users := api.Group("/users", protect, middleware.RequireRoles(models.RoleAdmin))
	users.Get("/", userHandler.List)

	return app, db
}

func TestSignupSigninAndProfile(t *testing.T) {
	app, _ := newTestApp(t)

	resp := helpers.DoJSON(t, app, fiber.MethodPost, "/api/auth/signup", fiber.Map{
		"name":     "Mona",
		"email":    "mona@example.com",
		"password": "correct-horse-42",
	}, "")
	helpers.AssertStatus(t, resp, fiber.StatusCreated)

	token := helpers.AcquireAccount(t, app, "Mona", "mona@example.com", "correct-horse-42")

	resp = helpers.DoJSON(t, app, fiber.MethodGet, "/api/auth/me", nil, token)
	helpers.AssertStatus(t, resp, fiber.StatusOK)

	env := helpers.ParseEnvelope(t, resp)
	if !env.Success {
		t.Fatalf("Expected success envelope, got %+v", env)
	}
	var profile struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.Unmarshal(env.Data, &profile); err != nil {
		t.Fatalf("Failed to decode profile: %v", err)
	}
	if profile.Email != "mona@example.com" || profile.Role != "USER" {
		t.Errorf("Unexpected profile: %+v", profile)
	}
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp := helpers.DoJSON(t, app, fiber.MethodGet, "/api/items/", nil, "")
	helpers.AssertStatus(t, resp, fiber.StatusUnauthorized)

	env := helpers.ParseEnvelope(t, resp)
	if env.Success || env.Error != "auth.token.missing" {
		t.Errorf("Unexpected envelope: %+v", env)
	}
}

func TestProtectedRoutesRejectGarbageToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp := helpers.DoJSON(t, app, fiber.MethodGet, "/api/items/", nil, "not-a-jwt")
	helpers.AssertStatus(t, resp, fiber.StatusUnauthorized)

	env := helpers.ParseEnvelope(t, resp)
	if env.Success || env.Error != "auth.token.invalid" {
		t.Errorf("Unexpected envelope: %+v", env)
	}
}

func TestItemLifecycleOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	token := helpers.AcquireAccount(t, app, "Mona", "mona@example.com", "correct-horse-42")

	resp := helpers.DoJSON(t, app, fiber.MethodPost, "/api/items/", fiber.Map{
		"name":   "Camera",
		"volume": 1.5,
		"weight": 0.8,
	}, token)
	helpers.AssertStatus(t, resp, fiber.StatusCreated)

	env := helpers.ParseEnvelope(t, resp)
	var created struct {
		ID       uuid.UUID `json:"id"`
		Category string    `json:"category"`
		Quantity int       `json:"quantity"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("Failed to decode created item: %v", err)
	}
	if created.Category != "OTHER" || created.Quantity != 1 {
		t.Errorf("Defaults not applied: %+v", created)
	}

	resp = helpers.DoJSON(t, app, fiber.MethodGet, "/api/items/", nil, token)
	helpers.AssertStatus(t, resp, fiber.StatusOK)
	env = helpers.ParseEnvelope(t, resp)
	var meta struct {
		TotalCount int64 `json:"totalCount"`
	}
	if err := json.Unmarshal(env.Meta, &meta); err != nil {
		t.Fatalf("Failed to decode list meta: %v", err)
	}
	if meta.TotalCount != 1 {
		t.Errorf("Expected totalCount 1, got %d", meta.TotalCount)
	}

	resp = helpers.DoJSON(t, app, fiber.MethodPatch, fmt.Sprintf("/api/items/%s", created.ID), fiber.Map{
		"quantity": 3,
	}, token)
	helpers.AssertStatus(t, resp, fiber.StatusOK)

	resp = helpers.DoJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/items/%s", created.ID), nil, token)
	helpers.AssertStatus(t, resp, fiber.StatusOK)

	resp = helpers.DoJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/items/%s", created.ID), nil, token)
	helpers.AssertStatus(t, resp, fiber.StatusNotFound)
}

func TestCreateManyItems(t *testing.T) {
	app, _ := newTestApp(t)
	token := helpers.AcquireAccount(t, app, "Mona", "mona@example.com", "correct-horse-42")

	resp := helpers.DoJSON(t, app, fiber.MethodPost, "/api/items/many", []fiber.Map{
		{"name": "Shirt", "volume": 1, "weight": 0.3},
		{"name": "Charger", "volume": 0.2, "weight": 0.1, "category": "ELECTRONICS"},
	}, token)
	helpers.AssertStatus(t, resp, fiber.StatusCreated)

	env := helpers.ParseEnvelope(t, resp)
	var meta struct {
		Count int64 `json:"count"`
	}
	if err := json.Unmarshal(env.Meta, &meta); err != nil {
		t.Fatalf("Failed to decode count meta: %v", err)
	}
	if meta.Count != 2 {
		t.Errorf("Expected 2 created, got %d", meta.Count)
	}
}

func TestPublicBagsNeedNoToken(t *testing.T) {
	app, db := newTestApp(t)

	helpers.CreateTestBag(t, db, nil, "Shared duffel", 40, 20, 1)
	owner := helpers.CreateTestUser(t, db, "Mona", "mona@example.com", "correct-horse-42", models.RoleUser)
	helpers.CreateTestBag(t, db, &owner.ID, "Private pack", 30, 15, 1)

	resp := helpers.DoJSON(t, app, fiber.MethodGet, "/api/public/bags", nil, "")
	helpers.AssertStatus(t, resp, fiber.StatusOK)

	env := helpers.ParseEnvelope(t, resp)
	var bags []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(env.Data, &bags); err != nil {
		t.Fatalf("Failed to decode bags: %v", err)
	}
	if len(bags) != 1 || bags[0].Name != "Shared duffel" {
		t.Errorf("Expected only the public bag, got %+v", bags)
	}
}

func TestAttachAndDetachOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	token := helpers.AcquireAccount(t, app, "Mona", "mona@example.com", "correct-horse-42")

	resp := helpers.DoJSON(t, app, fiber.MethodPost, "/api/bags/", fiber.Map{
		"name":      "Weekender",
		"capacity":  11.2,
		"maxWeight": 12.55,
	}, token)
	helpers.AssertStatus(t, resp, fiber.StatusCreated)
	env := helpers.ParseEnvelope(t, resp)
	var bag struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &bag); err != nil {
		t.Fatalf("Failed to decode bag: %v", err)
	}

	resp = helpers.DoJSON(t, app, fiber.MethodPost, "/api/items/", fiber.Map{
		"name":     "Socks",
		"volume":   0.5,
		"weight":   0.2,
		"quantity": 10,
	}, token)
	helpers.AssertStatus(t, resp, fiber.StatusCreated)
	env = helpers.ParseEnvelope(t, resp)
	var item struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &item); err != nil {
		t.Fatalf("Failed to decode item: %v", err)
	}

	attachPath := fmt.Sprintf("/api/bag-items/%s/item/%s", bag.ID, item.ID)
	resp = helpers.DoJSON(t, app, fiber.MethodPost, attachPath, nil, token)
	helpers.AssertStatus(t, resp, fiber.StatusOK)
	env = helpers.ParseEnvelope(t, resp)
	var attachMeta struct {
		TotalAdd   int64 `json:"totalAdd"`
		TotalCount int   `json:"totalCount"`
	}
	if err := json.Unmarshal(env.Meta, &attachMeta); err != nil {
		t.Fatalf("Failed to decode attach meta: %v", err)
	}
	if attachMeta.TotalAdd != 1 || attachMeta.TotalCount != 1 {
		t.Errorf("Unexpected attach meta: %+v", attachMeta)
	}
	var status struct {
		IsCapacityExceeded bool `json:"isCapacityExceeded"`
		IsWeightExceeded   bool `json:"isWeightExceeded"`
	}
	if err := json.Unmarshal(env.Data, &status); err != nil {
		t.Fatalf("Failed to decode bag status: %v", err)
	}
	if status.IsCapacityExceeded || status.IsWeightExceeded {
		t.Errorf("Bag should not be over its limits: %+v", status)
	}

	resp = helpers.DoJSON(t, app, fiber.MethodDelete, attachPath, nil, token)
	helpers.AssertStatus(t, resp, fiber.StatusOK)

	resp = helpers.DoJSON(t, app, fiber.MethodDelete, attachPath, nil, token)
	helpers.AssertStatus(t, resp, fiber.StatusNotFound)
}

func TestAttachRejectedOverHTTP(t *testing.T) {
	app, db := newTestApp(t)
	token := helpers.AcquireAccount(t, app, "Mona", "mona@example.com", "correct-horse-42")

	var user models.User
	if err := db.Where("email = ?", "mona@example.com").First(&user).Error; err != nil {
		t.Fatalf("Failed to load user: %v", err)
	}
	bag := helpers.CreateTestBag(t, db, &user.ID, "Pouch", 1, 1, 0.1)
	item := helpers.CreateTestItem(t, db, &user.ID, "Anvil", 500, 500, 1)

	resp := helpers.DoJSON(t, app, fiber.MethodPost,
		fmt.Sprintf("/api/bag-items/%s/item/%s", bag.ID, item.ID), nil, token)
	helpers.AssertStatus(t, resp, fiber.StatusUnprocessableEntity)

	env := helpers.ParseEnvelope(t, resp)
	if env.Success || env.Error != "container.capacity" {
		t.Errorf("Unexpected envelope: %+v", env)
	}
}

func TestUsersRouteRequiresAdmin(t *testing.T) {
	app, _ := newTestApp(t)
	token := helpers.AcquireAccount(t, app, "Mona", "mona@example.com", "correct-horse-42")

	resp := helpers.DoJSON(t, app, fiber.MethodGet, "/api/users/", nil, token)
	helpers.AssertStatus(t, resp, fiber.StatusForbidden)

	env := helpers.ParseEnvelope(t, resp)
	if env.Success || env.Error != "auth.role.forbidden" {
		t.Errorf("Unexpected envelope: %+v", env)
	}
}

func TestOwnersCannotSeeEachOthersItems(t *testing.T) {
	app, _ := newTestApp(t)
	alice := helpers.AcquireAccount(t, app, "Alice", "alice@example.com", "correct-horse-42")
	bob := helpers.AcquireAccount(t, app, "Bob", "bob@example.com", "correct-horse-42")

	resp := helpers.DoJSON(t, app, fiber.MethodPost, "/api/items/", fiber.Map{
		"name": "Diary", "volume": 0.3, "weight": 0.2,
	}, alice)
	helpers.AssertStatus(t, resp, fiber.StatusCreated)
	env := helpers.ParseEnvelope(t, resp)
	var created struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("Failed to decode item: %v", err)
	}

	resp = helpers.DoJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/items/%s", created.ID), nil, bob)
	helpers.AssertStatus(t, resp, fiber.StatusNotFound)
}
