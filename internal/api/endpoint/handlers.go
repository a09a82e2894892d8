package endpoint

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emotu/micro-cloud/internal/api/errs"
	"github.com/emotu/micro-cloud/internal/api/guard"
	"github.com/emotu/micro-cloud/internal/api/query"
	"github.com/emotu/micro-cloud/internal/types"
)

// scope collects the ambient identity values that constrain every operation
// of the endpoint. API routes read them from the resolved app token, app
// routes from the authenticated user and any value guards. Keys the
// resource cannot resolve, and explicitly ignored ones, are dropped.
func (e *Endpoint[T]) scope(c *fiber.Ctx) map[string]interface{} {
	values := map[string]interface{}{}

	switch e.cfg.Route {
	case RouteAPI:
		if token := guard.CurrentAppToken(c); token != nil {
			values["app_id"] = token.AppID
			values["live_mode"] = token.LiveMode
			if token.EntityID != "" {
				values["entity_id"] = token.EntityID
			}
			if token.UserID != "" {
				values["user_id"] = token.UserID
			}
		}
	default:
		if uid := guard.CurrentUserID(c); uid != "" {
			values["user_id"] = uid
		}
		if entity, ok := c.Locals("entity_id").(string); ok && entity != "" {
			values["entity_id"] = entity
		}
	}

	for _, key := range e.cfg.IgnoredKeys {
		delete(values, key)
	}
	for attr := range values {
		if _, ok := e.fields.Resolve(attr); !ok {
			delete(values, attr)
		}
	}
	return values
}

func (e *Endpoint[T]) list(c *fiber.Ctx) error {
	params := query.ParamsFrom(c, e.fields)
	q, err := params.BuildQuery(e.store.Query(c.Context()), e.scope(c))
	if err != nil {
		return err
	}
	items, err := e.store.List(q, params.Skip, params.PerPage, params.Order())
	if err != nil {
		return err
	}
	return c.JSON(types.ListResponse{
		FilterBy: params.FilterBy(),
		Query:    params.Query,
		View:     params.View,
		SortBy:   params.SortBy(),
		PageBy:   params.PageBy(),
		Results:  items,
	})
}

func (e *Endpoint[T]) fetch(c *fiber.Ctx) error {
	obj, err := e.fetchOne(c, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(obj)
}

func (e *Endpoint[T]) create(c *fiber.Ctx) error {
	obj := new(T)
	if err := c.BodyParser(obj); err != nil {
		return errs.Validation("body", "request body could not be parsed")
	}
	applyValues(obj, e.scope(c))
	if e.validate != nil {
		if err := e.validate(c, obj); err != nil {
			return err
		}
	}
	if err := e.store.Create(c.Context(), obj); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(obj)
}

// update merges the request body over the stored record, so absent fields
// keep their current values, then revalidates and saves the full record.
// Ambient scope values are reapplied after the merge so a body can never
// move a record across owners.
func (e *Endpoint[T]) update(c *fiber.Ctx) error {
	id := c.Params("id")
	obj, err := e.fetchOne(c, id)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(c.Body(), obj); err != nil {
		return errs.Validation("body", "request body could not be parsed")
	}
	applyValues(obj, e.scope(c))
	setAttr(obj, "id", id)
	if e.validate != nil {
		if err := e.validate(c, obj); err != nil {
			return err
		}
	}
	if err := e.store.Save(c.Context(), obj); err != nil {
		return err
	}
	return c.JSON(obj)
}

func (e *Endpoint[T]) delete(c *fiber.Ctx) error {
	obj, err := e.fetchOne(c, c.Params("id"))
	if err != nil {
		return err
	}
	if err := e.store.Delete(c.Context(), obj); err != nil {
		return err
	}
	return c.JSON(types.StatusResponse{Status: "processed"})
}

// fetchOne loads a record by id within the request scope. Records outside
// the scope are indistinguishable from absent ones.
func (e *Endpoint[T]) fetchOne(c *fiber.Ctx, id string) (*T, error) {
	obj := new(T)
	err := e.scopedQuery(c).Preload(clause.Associations).
		Where("id = ?", id).First(obj).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound(id)
		}
		return nil, err
	}
	return obj, nil
}

// applyValues stamps ambient scope values onto the model through its json
// field names.
func applyValues(obj interface{}, values map[string]interface{}) {
	for attr, value := range values {
		setAttr(obj, attr, value)
	}
}

func setAttr(obj interface{}, attr string, value interface{}) {
	v := reflect.ValueOf(obj).Elem()
	field := findField(v, attr)
	if !field.IsValid() || !field.CanSet() {
		return
	}
	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
	}
}

// findField resolves a struct field by json tag name, descending into
// embedded structs.
func findField(v reflect.Value, attr string) reflect.Value {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			if nested := findField(v.Field(i), attr); nested.IsValid() {
				return nested
			}
			continue
		}
		name := sf.Tag.Get("json")
		if idx := strings.IndexByte(name, ','); idx >= 0 {
			name = name[:idx]
		}
		if name == attr {
			return v.Field(i)
		}
	}
	return reflect.Value{}
}
