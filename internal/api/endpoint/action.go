package endpoint

import (
	"github.com/gofiber/fiber/v2"
)

// ActionType places a custom action relative to the endpoint's resources.
type ActionType string

const (
	// ActionSingle mounts on the collection, e.g. POST /auth/login.
	ActionSingle ActionType = "single"
	// ActionMany mounts a bulk operation under an action segment so it can
	// never collide with a resource id.
	ActionMany ActionType = "many"
	// ActionDetail mounts on one resource, e.g. POST /apps/:id/reset.
	ActionDetail ActionType = "detail"
	// ActionSublist reads a nested collection of one resource.
	ActionSublist ActionType = "sublist"
)

// ActionConfig declares a custom route mounted under an endpoint prefix.
type ActionConfig struct {
	Name    string
	Type    ActionType
	Method  string
	Handler fiber.Handler
}

// Path derives the route path of the action from its type and name.
func (a ActionConfig) Path() string {
	switch a.Type {
	case ActionDetail, ActionSublist:
		return "/:id/" + a.Name
	case ActionMany:
		return "/_action/" + a.Name
	default:
		return "/" + a.Name
	}
}

// methods returns the HTTP methods the action is mounted on. Mutating
// actions answer to both PUT and POST unless an explicit method is set.
func (a ActionConfig) methods() []string {
	if a.Method != "" {
		return []string{a.Method}
	}
	if a.Type == ActionSublist {
		return []string{fiber.MethodGet}
	}
	return []string{fiber.MethodPost, fiber.MethodPut}
}

func (a ActionConfig) handler() fiber.Handler {
	if a.Handler == nil {
		return notImplemented
	}
	return a.Handler
}
