// Package integration provides end-to-end integration tests for the API.
// Tests the user endpoints against both PostgreSQL and MySQL databases.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/ai-service/internal/app"
	"github.com/allisson/ai-service/internal/config"
	"github.com/allisson/ai-service/internal/httputil"
	"github.com/allisson/ai-service/internal/testutil"
)

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container *app.Container
	db        *sql.DB
	server    *httptest.Server
	dbDriver  string
}

// makeRequest performs an HTTP request and returns the response and body.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body interface{},
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// setupIntegrationTest initializes all components for integration testing.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	var db *sql.DB
	var dsn string
	if dbDriver == "postgres" {
		testutil.SkipIfNoPostgres(t)
		db = testutil.SetupPostgresDB(t)
		dsn = testutil.GetPostgresTestDSN()
	} else {
		testutil.SkipIfNoMySQL(t)
		db = testutil.SetupMySQLDB(t)
		dsn = testutil.GetMySQLTestDSN()
	}

	cfg := &config.Config{
		AppName:              "ai-service-test",
		DBDriver:             dbDriver,
		DBConnectionString:   dsn,
		DBMaxOpenConnections: 10,
		DBMaxIdleConnections: 5,
		DBConnMaxLifetime:    time.Hour,
		ServerHost:           "localhost",
		ServerPort:           8080,
		WeaviateScheme:       "http",
		WeaviateHost:         "localhost",
		WeaviatePort:         8090,
		LogLevel:             "error",
	}

	container := app.NewContainer(cfg)

	httpSrv, err := container.HTTPServer()
	require.NoError(t, err, "failed to get HTTP server")

	handler := httpSrv.GetHandler()
	require.NotNil(t, handler, "handler should not be nil")

	testServer := httptest.NewServer(handler)

	return &integrationTestContext{
		container: container,
		db:        db,
		server:    testServer,
		dbDriver:  dbDriver,
	}
}

// teardownIntegrationTest cleans up all resources.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}

	if ctx.container != nil {
		if err := ctx.container.Shutdown(context.Background()); err != nil {
			t.Logf("Warning: container shutdown error: %v", err)
		}
	}

	if ctx.db != nil {
		testutil.TeardownDB(t, ctx.db)
	}
}

// decodeEnvelope decodes a response body into the standard response envelope.
func decodeEnvelope(t *testing.T, body []byte) httputil.AppResponse {
	t.Helper()
	var envelope httputil.AppResponse
	require.NoError(t, json.Unmarshal(body, &envelope), "failed to decode response envelope")
	return envelope
}

func TestIntegration_Health_BasicChecks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testCases := []struct {
		name     string
		dbDriver string
	}{
		{"PostgreSQL", "postgres"},
		{"MySQL", "mysql"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			t.Run("01_HealthCheck", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/health", nil)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				var response map[string]string
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "healthy", response["status"])
			})

			// The vector store is not part of this suite, so only the database
			// component is asserted on the readiness payload.
			t.Run("02_ReadinessCheck", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/ready", nil)
				assert.Contains(t, []int{http.StatusOK, http.StatusServiceUnavailable}, resp.StatusCode)

				var response struct {
					Status     string            `json:"status"`
					Components map[string]string `json:"components"`
				}
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "ok", response.Components["database"])
			})

			t.Run("03_Hello", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodGet, "/api/v1/hello", nil)
				assert.Equal(t, http.StatusOK, resp.StatusCode)

				envelope := decodeEnvelope(t, body)
				assert.True(t, envelope.Success)
				data, ok := envelope.Data.(map[string]interface{})
				require.True(t, ok, "data should be an object")
				assert.Equal(t, "Hello, World!", data["message"])
				assert.NotEmpty(t, envelope.TraceID)
			})
		})
	}
}

func TestIntegration_Users_CompleteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testCases := []struct {
		name     string
		dbDriver string
	}{
		{"PostgreSQL", "postgres"},
		{"MySQL", "mysql"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := setupIntegrationTest(t, tc.dbDriver)
			defer teardownIntegrationTest(t, ctx)

			createPayload := map[string]string{
				"user_name":    "Jane",
				"user_surname": "Doe",
				"password":     "super-secret-password",
			}

			t.Run("01_CreateUser", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/api/v1/users", createPayload)
				assert.Equal(t, http.StatusCreated, resp.StatusCode)

				envelope := decodeEnvelope(t, body)
				assert.True(t, envelope.Success)
				data, ok := envelope.Data.(map[string]interface{})
				require.True(t, ok, "data should be an object")
				assert.Equal(t, "Jane", data["user_name"])
				assert.Equal(t, "Doe", data["user_surname"])
				assert.Equal(t, "jane.doe@example.com", data["email"])
				assert.NotEmpty(t, data["id"])
				assert.NotContains(t, data, "password")
			})

			t.Run("02_VerifyPersisted", func(t *testing.T) {
				var count int
				err := ctx.db.QueryRow(
					"SELECT COUNT(*) FROM users WHERE email = "+placeholder(tc.dbDriver),
					"jane.doe@example.com",
				).Scan(&count)
				require.NoError(t, err)
				assert.Equal(t, 1, count)
			})

			t.Run("03_DuplicateUserConflicts", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/api/v1/users", createPayload)
				assert.Equal(t, http.StatusConflict, resp.StatusCode)

				envelope := decodeEnvelope(t, body)
				assert.False(t, envelope.Success)
				require.NotNil(t, envelope.Error)
				assert.Equal(t, httputil.CodeConflict, envelope.Error.Code)
			})

			t.Run("04_ValidationErrors", func(t *testing.T) {
				resp, body := ctx.makeRequest(t, http.MethodPost, "/api/v1/users", map[string]string{
					"user_name":    "Jo",
					"user_surname": "Doe",
					"password":     "short",
				})
				assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

				envelope := decodeEnvelope(t, body)
				assert.False(t, envelope.Success)
				require.NotNil(t, envelope.Error)
				assert.Equal(t, httputil.CodeValidationError, envelope.Error.Code)
				assert.Len(t, envelope.Error.Errors, 2)
			})

			t.Run("05_MalformedBody", func(t *testing.T) {
				req, err := http.NewRequest(
					http.MethodPost,
					ctx.server.URL+"/api/v1/users",
					bytes.NewReader([]byte("{not json")),
				)
				require.NoError(t, err)
				req.Header.Set("Content-Type", "application/json")

				resp, err := (&http.Client{Timeout: 10 * time.Second}).Do(req)
				require.NoError(t, err)
				defer func() { _ = resp.Body.Close() }()

				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			})
		})
	}
}

// placeholder returns the SQL parameter placeholder for the given driver.
func placeholder(driver string) string {
	if driver == "postgres" {
		return "$1"
	}
	return "?"
}
