package endpoint

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emotu/micro-cloud/internal/api/errs"
	"github.com/emotu/micro-cloud/internal/api/guard"
	"github.com/emotu/micro-cloud/internal/db/models"
	"github.com/emotu/micro-cloud/internal/db/repos"
)

func testErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		return c.Status(appErr.Status).JSON(appErr)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to create in-memory database")
	require.NoError(t, db.Migrator().DropTable(&models.Status{}, &models.Address{}, &models.User{}))
	require.NoError(t, db.AutoMigrate(&models.Status{}, &models.Address{}, &models.User{}))
	return db
}

// asUser simulates an authenticated dashboard request.
func asUser(uid string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(guard.LocalUserID, uid)
		return c.Next()
	}
}

func doRequest(t *testing.T, app *fiber.App, method, target string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, payload
}

func newStatusApp(t *testing.T, db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: testErrorHandler})
	New(Config{
		Prefix:      "/statuses",
		Route:       RouteApp,
		AllowList:   true,
		AllowFetch:  true,
		AllowCreate: true,
		AllowUpdate: true,
	}, repos.NewResource[models.Status](db)).Register(app)
	return app
}

func TestListEnvelope(t *testing.T) {
	db := newTestDB(t)
	for i := 0; i < 12; i++ {
		require.NoError(t, db.Create(&models.Status{Name: fmt.Sprintf("status-%02d", i)}).Error)
	}
	app := newStatusApp(t, db)

	resp, payload := doRequest(t, app, fiber.MethodGet, "/statuses?page_by.page=2&page_by.per_page=5", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		PageBy struct {
			Page     int  `json:"page"`
			PerPage  int  `json:"per_page"`
			Total    int  `json:"total"`
			Pages    int  `json:"pages"`
			NextPage *int `json:"next_page"`
			PrevPage *int `json:"prev_page"`
		} `json:"page_by"`
		SortBy []struct {
			OrderBy string `json:"order_by"`
			AscDesc string `json:"asc_desc"`
		} `json:"sort_by"`
		Results []models.Status `json:"results"`
	}
	require.NoError(t, json.Unmarshal(payload, &envelope))

	assert.Equal(t, 2, envelope.PageBy.Page)
	assert.Equal(t, 12, envelope.PageBy.Total)
	assert.Equal(t, 3, envelope.PageBy.Pages)
	require.NotNil(t, envelope.PageBy.NextPage)
	assert.Equal(t, 3, *envelope.PageBy.NextPage)
	require.NotNil(t, envelope.PageBy.PrevPage)
	assert.Equal(t, 1, *envelope.PageBy.PrevPage)
	assert.Len(t, envelope.Results, 5)
	require.Len(t, envelope.SortBy, 1)
	assert.Equal(t, "id", envelope.SortBy[0].OrderBy)
	assert.Equal(t, "desc", envelope.SortBy[0].AscDesc)
}

func TestListFilteringResidualIgnored(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Status{Name: "active"}).Error)
	require.NoError(t, db.Create(&models.Status{Name: "pending"}).Error)
	app := newStatusApp(t, db)

	resp, payload := doRequest(t, app, fiber.MethodGet, "/statuses?name.eq=active&nonsense=1&ghost.eq=2", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Results []models.Status `json:"results"`
	}
	require.NoError(t, json.Unmarshal(payload, &envelope))
	require.Len(t, envelope.Results, 1)
	assert.Equal(t, "active", envelope.Results[0].Name)
}

func TestFetchMissing(t *testing.T) {
	db := newTestDB(t)
	app := newStatusApp(t, db)

	resp, payload := doRequest(t, app, fiber.MethodGet, "/statuses/ghost", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body struct {
		Detail []errs.Item `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(payload, &body))
	require.Len(t, body.Detail, 1)
	assert.Equal(t, errs.TypeMissing, body.Detail[0].Type)
	assert.Equal(t, []string{"path", "id"}, body.Detail[0].Loc)
	assert.Contains(t, body.Detail[0].Msg, "ghost")
}

func TestCreateAndFetch(t *testing.T) {
	db := newTestDB(t)
	app := newStatusApp(t, db)

	resp, payload := doRequest(t, app, fiber.MethodPost, "/statuses", fiber.Map{
		"name":        "in_transit",
		"description": "parcel is on the move",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Status
	require.NoError(t, json.Unmarshal(payload, &created))
	assert.NotEmpty(t, created.ID)

	resp, payload = doRequest(t, app, fiber.MethodGet, "/statuses/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched models.Status
	require.NoError(t, json.Unmarshal(payload, &fetched))
	assert.Equal(t, "in_transit", fetched.Name)
}

func TestUpdateMergesPartialBody(t *testing.T) {
	db := newTestDB(t)
	status := &models.Status{Name: "old", Description: "keep me"}
	require.NoError(t, db.Create(status).Error)
	app := newStatusApp(t, db)

	resp, payload := doRequest(t, app, fiber.MethodPut, "/statuses/"+status.ID, fiber.Map{"name": "new"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Status
	require.NoError(t, json.Unmarshal(payload, &updated))
	assert.Equal(t, status.ID, updated.ID)
	assert.Equal(t, "new", updated.Name)
	assert.Equal(t, "keep me", updated.Description)

	var stored models.Status
	require.NoError(t, db.First(&stored, "id = ?", status.ID).Error)
	assert.Equal(t, "new", stored.Name)
	assert.Equal(t, "keep me", stored.Description)
}

func TestDeleteDisabledByDefault(t *testing.T) {
	db := newTestDB(t)
	status := &models.Status{Name: "doomed"}
	require.NoError(t, db.Create(status).Error)
	app := newStatusApp(t, db)

	resp, payload := doRequest(t, app, fiber.MethodDelete, "/statuses/"+status.ID, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body struct {
		Detail []errs.Item `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(payload, &body))
	require.Len(t, body.Detail, 1)
	assert.Equal(t, errs.CodeEndpointOperationDenied, body.Detail[0].Code)

	var count int64
	require.NoError(t, db.Model(&models.Status{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestScopedEndpoint(t *testing.T) {
	db := newTestDB(t)
	app := fiber.New(fiber.Config{ErrorHandler: testErrorHandler})
	New(Config{
		Prefix:      "/addresses",
		Route:       RouteApp,
		Guards:      []fiber.Handler{asUser("user-a")},
		AllowList:   true,
		AllowFetch:  true,
		AllowCreate: true,
		AllowUpdate: true,
		AllowDelete: true,
	}, repos.NewResource[models.Address](db)).Register(app)

	foreign := &models.Address{Street: "1 Other Road", Country: "NG", UserID: "user-b"}
	require.NoError(t, db.Create(foreign).Error)

	// created records are stamped with the requesting user
	resp, payload := doRequest(t, app, fiber.MethodPost, "/addresses", fiber.Map{
		"street":  "12 Marina",
		"city":    "Lagos",
		"country": "NG",
		"user_id": "user-b",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Address
	require.NoError(t, json.Unmarshal(payload, &created))
	assert.Equal(t, "user-a", created.UserID)

	// records of other users resolve as missing
	resp, _ = doRequest(t, app, fiber.MethodGet, "/addresses/"+foreign.ID, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, payload = doRequest(t, app, fiber.MethodGet, "/addresses", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Results []models.Address `json:"results"`
	}
	require.NoError(t, json.Unmarshal(payload, &envelope))
	require.Len(t, envelope.Results, 1)
	assert.Equal(t, created.ID, envelope.Results[0].ID)

	// updates cannot move a record to another owner
	resp, payload = doRequest(t, app, fiber.MethodPut, "/addresses/"+created.ID, fiber.Map{
		"user_id": "user-b",
		"city":    "Abuja",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Address
	require.NoError(t, json.Unmarshal(payload, &updated))
	assert.Equal(t, "user-a", updated.UserID)
	assert.Equal(t, "Abuja", updated.City)
}

func TestActionsAndOverrides(t *testing.T) {
	db := newTestDB(t)
	app := fiber.New(fiber.Config{ErrorHandler: testErrorHandler})

	New(Config{
		Prefix: "/things",
		Route:  RouteApp,
	}, repos.NewResource[models.Status](db)).
		Action(ActionConfig{Name: "ping", Type: ActionSingle, Handler: func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"pong": true})
		}}).
		Action(ActionConfig{Name: "echo", Type: ActionDetail, Handler: func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"id": c.Params("id")})
		}}).
		Action(ActionConfig{Name: "pending", Type: ActionSingle}).
		Register(app)

	resp, _ := doRequest(t, app, fiber.MethodPost, "/things/ping", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, payload := doRequest(t, app, fiber.MethodPost, "/things/abc123/echo", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var echoed struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(payload, &echoed))
	assert.Equal(t, "abc123", echoed.ID)

	// an action without a handler is mounted but unimplemented
	resp, payload = doRequest(t, app, fiber.MethodPost, "/things/pending", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var body struct {
		Detail []errs.Item `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(payload, &body))
	require.Len(t, body.Detail, 1)
	assert.Equal(t, errs.CodeEndpointNotImplemented, body.Detail[0].Code)

	// standard operations stay disabled
	resp, _ = doRequest(t, app, fiber.MethodGet, "/things", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestActionPathDerivation(t *testing.T) {
	assert.Equal(t, "/login", ActionConfig{Name: "login", Type: ActionSingle}.Path())
	assert.Equal(t, "/:id/reset", ActionConfig{Name: "reset", Type: ActionDetail}.Path())
	assert.Equal(t, "/:id/items", ActionConfig{Name: "items", Type: ActionSublist}.Path())
	assert.Equal(t, "/_action/import", ActionConfig{Name: "import", Type: ActionMany}.Path())
}
