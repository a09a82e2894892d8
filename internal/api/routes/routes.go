// Package routes wires the generated endpoints and custom actions onto the
// application.
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/emotu/micro-cloud/config"
	"github.com/emotu/micro-cloud/internal/api/endpoint"
	"github.com/emotu/micro-cloud/internal/api/guard"
	"github.com/emotu/micro-cloud/internal/api/handlers"
	"github.com/emotu/micro-cloud/internal/auth"
	"github.com/emotu/micro-cloud/internal/cache"
	"github.com/emotu/micro-cloud/internal/db/models"
	"github.com/emotu/micro-cloud/internal/db/repos"
	"github.com/emotu/micro-cloud/internal/services"
	"github.com/emotu/micro-cloud/internal/types"
)

// Deps carries the shared resources the route tree is built from.
type Deps struct {
	DB       *gorm.DB
	Cache    *cache.Cache
	Settings *config.Settings
}

// Register mounts every route group on the app. The dashboard surface is
// guarded with bearer tokens, the /v1 integration surface with API keys.
func Register(app *fiber.App, deps *Deps) {
	users := repos.NewUserRepository(deps.DB)
	credentials := repos.NewCredentialRepository(deps.DB, deps.Cache)
	codec := auth.NewTokenCodec(deps.Settings.JWTSecretKey, deps.Settings.JWTExpiresIn)
	guards := guard.NewFactory(users, credentials, codec)

	authHandler := handlers.NewAuthHandler(
		services.NewAuthService(users, codec, deps.Settings.APIName))
	credHandler := handlers.NewCredentialHandler(
		services.NewCredentialService(credentials))

	bearer := guards.Bearer(guard.BearerConfig{Validate: true})
	apiKey := guards.APIKey(guard.APIKeyConfig{})
	apiKeyPublic := guards.APIKey(guard.APIKeyConfig{Public: true})
	entityID := guards.Value("entity_id", guard.ValueConfig{})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(types.APIInfo{
			Name:    deps.Settings.APIName,
			Version: deps.Settings.APIVersion,
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	endpoint.New(endpoint.Config{
		Prefix: "/auth",
		Route:  endpoint.RouteApp,
	}, repos.NewResource[models.User](deps.DB)).
		Action(endpoint.ActionConfig{Name: "signup", Type: endpoint.ActionSingle, Handler: authHandler.Signup}).
		Action(endpoint.ActionConfig{Name: "login", Type: endpoint.ActionSingle, Handler: authHandler.Login}).
		Action(endpoint.ActionConfig{Name: "request_password", Type: endpoint.ActionSingle, Handler: authHandler.RequestPassword}).
		Action(endpoint.ActionConfig{Name: "reset_password", Type: endpoint.ActionSingle, Handler: authHandler.ResetPassword}).
		Register(app)

	endpoint.New(endpoint.Config{
		Prefix:      "/apps",
		Route:       endpoint.RouteApp,
		Guards:      []fiber.Handler{bearer, entityID},
		AllowList:   true,
		AllowFetch:  true,
		AllowCreate: true,
		AllowUpdate: true,
	}, repos.NewResource[models.Credential](deps.DB)).
		Action(endpoint.ActionConfig{Name: "reset", Type: endpoint.ActionDetail, Handler: credHandler.Reset}).
		Action(endpoint.ActionConfig{Name: "toggle", Type: endpoint.ActionDetail, Handler: credHandler.Toggle}).
		Register(app)

	endpoint.New(endpoint.Config{
		Prefix:      "/addresses",
		Route:       endpoint.RouteApp,
		Guards:      []fiber.Handler{bearer, entityID},
		AllowList:   true,
		AllowFetch:  true,
		AllowCreate: true,
		AllowUpdate: true,
		AllowDelete: true,
	}, repos.NewResource[models.Address](deps.DB)).Register(app)

	endpoint.New(endpoint.Config{
		Prefix:     "/statuses",
		Route:      endpoint.RouteApp,
		AllowList:  true,
		AllowFetch: true,
	}, repos.NewResource[models.Status](deps.DB)).Register(app)

	// Platform reference data, managed by admins only.
	endpoint.New(endpoint.Config{
		Prefix:      "/business_types",
		Route:       endpoint.RouteApp,
		Guards:      []fiber.Handler{bearer, guards.Permissions("admin")},
		AllowList:   true,
		AllowFetch:  true,
		AllowCreate: true,
		AllowUpdate: true,
		AllowDelete: true,
	}, repos.NewResource[models.BusinessType](deps.DB)).Register(app)

	v1 := app.Group("/v1")

	endpoint.New(endpoint.Config{
		Prefix:      "/addresses",
		Route:       endpoint.RouteAPI,
		Guards:      []fiber.Handler{apiKey},
		AllowList:   true,
		AllowFetch:  true,
		AllowCreate: true,
		AllowUpdate: true,
		AllowDelete: true,
	}, repos.NewResource[models.Address](deps.DB)).Register(v1)

	endpoint.New(endpoint.Config{
		Prefix:     "/statuses",
		Route:      endpoint.RouteAPI,
		Guards:     []fiber.Handler{apiKeyPublic},
		AllowList:  true,
		AllowFetch: true,
	}, repos.NewResource[models.Status](deps.DB)).Register(v1)
}
