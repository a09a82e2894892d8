// Package endpoint generates CRUD route groups for persisted resource
// types. An endpoint is configured once with its prefix, guards and allowed
// operations, then registered on a fiber router. Every standard operation
// can be individually disabled, overridden with a custom handler, or
// extended with named actions mounted under the same prefix.
package endpoint

import (
	"github.com/gofiber/fiber/v2"

	"github.com/emotu/micro-cloud/internal/api/errs"
	"github.com/emotu/micro-cloud/internal/api/query"
	"github.com/emotu/micro-cloud/internal/db/repos"
	"gorm.io/gorm"
)

// RouteType selects the identity surface an endpoint is mounted on.
type RouteType string

const (
	// RouteApp serves dashboard traffic authenticated with bearer tokens.
	RouteApp RouteType = "app"
	// RouteAPI serves integration traffic authenticated with API keys.
	RouteAPI RouteType = "api"
)

// Standard operation names, used for overrides.
const (
	OpList   = "list"
	OpFetch  = "fetch"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Config declares the shape of a generated endpoint.
type Config struct {
	// Prefix is the route group path, e.g. "/addresses".
	Prefix string
	// Route selects where scoping values are read from on each request.
	Route RouteType
	// Guards run before every handler in the group.
	Guards []fiber.Handler

	// Operation toggles. Delete is off unless explicitly allowed.
	AllowList   bool
	AllowFetch  bool
	AllowCreate bool
	AllowUpdate bool
	AllowDelete bool

	// IgnoredKeys removes ambient scope values that the resource should not
	// be filtered or stamped by.
	IgnoredKeys []string
}

// Endpoint generates the route group for one resource type.
type Endpoint[T any] struct {
	cfg       Config
	store     *repos.Resource[T]
	fields    query.FieldSet
	validate  func(c *fiber.Ctx, obj *T) error
	overrides map[string]fiber.Handler
	actions   []ActionConfig
}

// New builds an endpoint for the resource type backed by the given store.
// The queryable field set is derived from the model type.
func New[T any](cfg Config, store *repos.Resource[T]) *Endpoint[T] {
	var model T
	return &Endpoint[T]{
		cfg:       cfg,
		store:     store,
		fields:    query.FieldsOf(&model),
		overrides: map[string]fiber.Handler{},
	}
}

// Fields exposes the queryable field set of the endpoint's resource type.
func (e *Endpoint[T]) Fields() query.FieldSet {
	return e.fields
}

// WithValidator installs a hook that checks incoming models on create and
// update before they are persisted.
func (e *Endpoint[T]) WithValidator(fn func(c *fiber.Ctx, obj *T) error) *Endpoint[T] {
	e.validate = fn
	return e
}

// Override replaces the default handler of a standard operation. A nil
// handler leaves the route mounted but unimplemented.
func (e *Endpoint[T]) Override(op string, handler fiber.Handler) *Endpoint[T] {
	e.overrides[op] = handler
	return e
}

// Action mounts a named custom route under the endpoint prefix.
func (e *Endpoint[T]) Action(action ActionConfig) *Endpoint[T] {
	e.actions = append(e.actions, action)
	return e
}

// Register mounts the endpoint's route group on the router. Collection
// actions are mounted before the detail routes so their paths are never
// swallowed by the `/:id` parameter.
func (e *Endpoint[T]) Register(router fiber.Router) {
	group := router.Group(e.cfg.Prefix, e.cfg.Guards...)

	group.Get("/", e.operation(OpList, e.cfg.AllowList, e.list))
	group.Post("/", e.operation(OpCreate, e.cfg.AllowCreate, e.create))

	for _, action := range e.actions {
		if action.Type == ActionDetail || action.Type == ActionSublist {
			continue
		}
		for _, method := range action.methods() {
			group.Add(method, action.Path(), action.handler())
		}
	}

	update := e.operation(OpUpdate, e.cfg.AllowUpdate, e.update)
	group.Get("/:id", e.operation(OpFetch, e.cfg.AllowFetch, e.fetch))
	group.Put("/:id", update)
	group.Post("/:id", update)
	group.Delete("/:id", e.operation(OpDelete, e.cfg.AllowDelete, e.delete))

	for _, action := range e.actions {
		if action.Type != ActionDetail && action.Type != ActionSublist {
			continue
		}
		for _, method := range action.methods() {
			group.Add(method, action.Path(), action.handler())
		}
	}
}

// operation resolves the effective handler for a standard operation:
// disabled operations reject with a fixed restriction error, overridden
// ones defer to their replacement.
func (e *Endpoint[T]) operation(op string, allowed bool, fallback fiber.Handler) fiber.Handler {
	if !allowed {
		return denied
	}
	if handler, ok := e.overrides[op]; ok {
		if handler == nil {
			return notImplemented
		}
		return handler
	}
	return fallback
}

func denied(c *fiber.Ctx) error {
	return errs.OperationDenied()
}

func notImplemented(c *fiber.Ctx) error {
	return errs.NotImplemented()
}

// scopedQuery returns the base query for the request with ambient scope
// values applied as mandatory filters.
func (e *Endpoint[T]) scopedQuery(c *fiber.Ctx) *gorm.DB {
	q := e.store.Query(c.Context())
	for attr, value := range e.scope(c) {
		q = q.Where(e.fields.Column(attr)+" = ?", value)
	}
	return q
}
