package routes_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emotu/micro-cloud/config"
	"github.com/emotu/micro-cloud/internal/api/errs"
	"github.com/emotu/micro-cloud/internal/api/routes"
	"github.com/emotu/micro-cloud/internal/app"
	"github.com/emotu/micro-cloud/internal/db"
	"github.com/emotu/micro-cloud/internal/db/models"
)

func newServer(t *testing.T) *fiber.App {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to create in-memory database")
	require.NoError(t, conn.Migrator().DropTable(
		&models.User{}, &models.Credential{}, &models.Address{}, &models.Status{}, &models.BusinessType{}))
	require.NoError(t, db.Migrate(conn))

	return app.New(&routes.Deps{
		DB: conn,
		Settings: &config.Settings{
			APIName:      "Micro Cloud API",
			APIVersion:   "test",
			JWTSecretKey: "routes-test-secret",
			JWTExpiresIn: time.Hour,
		},
	})
}

func call(t *testing.T, server *fiber.App, method, target, token string, body interface{}) (int, map[string]interface{}) {
	return callWith(t, server, method, target, token, nil, body)
}

func callWith(t *testing.T, server *fiber.App, method, target, token string, headers map[string]string, body interface{}) (int, map[string]interface{}) {
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
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	resp, err := server.Test(req, -1)
	require.NoError(t, err)

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	decoded := map[string]interface{}{}
	if len(payload) > 0 {
		_ = json.Unmarshal(payload, &decoded)
	}
	return resp.StatusCode, decoded
}

func signupAndLogin(t *testing.T, server *fiber.App) string {
	t.Helper()
	code, _ := call(t, server, fiber.MethodPost, "/auth/signup", "", fiber.Map{
		"first_name":      "John",
		"last_name":       "Doe",
		"country":         "NG",
		"email":           "john.doe@example.com",
		"phone":           "+2348102222280",
		"password":        "sendboxTest123",
		"verify_password": "sendboxTest123",
	})
	require.Equal(t, http.StatusCreated, code)

	code, body := call(t, server, fiber.MethodPost, "/auth/login", "", fiber.Map{
		"username": "john.doe@example.com",
		"password": "sendboxTest123",
	})
	require.Equal(t, http.StatusOK, code)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRootAndHealth(t *testing.T) {
	server := newServer(t)

	code, body := call(t, server, fiber.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Micro Cloud API", body["name"])
	assert.Equal(t, "test", body["version"])

	code, body = call(t, server, fiber.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
}

func TestDashboardSurface(t *testing.T) {
	server := newServer(t)

	// unauthenticated requests are rejected with the structured body
	code, body := call(t, server, fiber.MethodGet, "/apps", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	detail, ok := body["detail"].([]interface{})
	require.True(t, ok)
	require.Len(t, detail, 1)
	item := detail[0].(map[string]interface{})
	assert.Equal(t, string(errs.CodeTokenRequired), item["code"])

	token := signupAndLogin(t, server)

	code, created := call(t, server, fiber.MethodPost, "/apps", token, fiber.Map{
		"name": "checkout",
	})
	require.Equal(t, http.StatusCreated, code)
	appID, _ := created["id"].(string)
	require.NotEmpty(t, appID)
	testKey, _ := created["test_key"].(string)
	assert.Contains(t, testKey, "sk_test_")

	code, listed := call(t, server, fiber.MethodGet, "/apps", token, nil)
	require.Equal(t, http.StatusOK, code)
	results, ok := listed["results"].([]interface{})
	require.True(t, ok)
	assert.Len(t, results, 1)

	// key rotation through the detail action
	code, reset := call(t, server, fiber.MethodPost, "/apps/"+appID+"/reset", token, fiber.Map{
		"test_mode": true,
	})
	require.Equal(t, http.StatusOK, code)
	assert.NotEqual(t, testKey, reset["test_key"])

	// delete stays restricted on the credential endpoint
	code, _ = call(t, server, fiber.MethodDelete, "/apps/"+appID, token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	// reference data needs the admin role
	code, _ = call(t, server, fiber.MethodGet, "/business_types", token, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// public reference reads need no identity
	code, _ = call(t, server, fiber.MethodGet, "/statuses", "", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestEntityHeaderScoping(t *testing.T) {
	server := newServer(t)
	token := signupAndLogin(t, server)

	// the x-entity-id header scopes address writes and reads
	entity := map[string]string{"x-entity-id": "ent-1"}
	code, created := callWith(t, server, fiber.MethodPost, "/addresses", token, entity, fiber.Map{
		"street":  "4 Broad Street",
		"city":    "Lagos",
		"country": "NG",
	})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "ent-1", created["entity_id"])

	code, listed := callWith(t, server, fiber.MethodGet, "/addresses", token, entity, nil)
	require.Equal(t, http.StatusOK, code)
	results, ok := listed["results"].([]interface{})
	require.True(t, ok)
	assert.Len(t, results, 1)

	code, listed = callWith(t, server, fiber.MethodGet, "/addresses", token,
		map[string]string{"x-entity-id": "ent-2"}, nil)
	require.Equal(t, http.StatusOK, code)
	results, ok = listed["results"].([]interface{})
	require.True(t, ok)
	assert.Len(t, results, 0)
}

func TestIntegrationSurface(t *testing.T) {
	server := newServer(t)
	token := signupAndLogin(t, server)

	code, created := call(t, server, fiber.MethodPost, "/apps", token, fiber.Map{
		"name": "storefront",
	})
	require.Equal(t, http.StatusCreated, code)
	liveKey, _ := created["live_key"].(string)
	require.NotEmpty(t, liveKey)

	// API keys unlock the /v1 surface
	code, _ = call(t, server, fiber.MethodGet, "/v1/addresses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, address := call(t, server, fiber.MethodPost, "/v1/addresses", liveKey, fiber.Map{
		"street":  "12 Marina",
		"city":    "Lagos",
		"country": "NG",
	})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, created["app_id"], address["app_id"])
	assert.Equal(t, true, address["live_mode"])

	code, listed := call(t, server, fiber.MethodGet, "/v1/addresses", liveKey, nil)
	require.Equal(t, http.StatusOK, code)
	results, ok := listed["results"].([]interface{})
	require.True(t, ok)
	assert.Len(t, results, 1)

	// status reference data stays readable without a key
	code, _ = call(t, server, fiber.MethodGet, "/v1/statuses", "", nil)
	assert.Equal(t, http.StatusOK, code)
}
