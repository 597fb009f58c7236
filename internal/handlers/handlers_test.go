package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/applytrack/applytrack/internal/testutil"
)

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func newAPI(t *testing.T) (*apiClient, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.OpenTestDB(t)
	router := gin.New()
	RegisterRoutes(router, db)
	return &apiClient{t: t, router: router}, db
}

func (c *apiClient) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func (c *apiClient) register(username, email string) {
	c.t.Helper()
	body := fmt.Sprintf(`{"username": %q, "email": %q, "password": "s3cretpass", "repeated_password": "s3cretpass"}`,
		username, email)
	w := c.do(http.MethodPost, "/api/registration", body)
	require.Equal(c.t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(c.t, resp.Token)
	c.token = resp.Token
}

func TestRegistrationAndLoginFlow(t *testing.T) {
	api, _ := newAPI(t)
	api.register("alice", "alice@example.com")

	w := api.do(http.MethodPost, "/api/login", `{"email": "alice@example.com", "password": "s3cretpass"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token    string `json:"token"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, api.token, resp.Token)
	assert.Equal(t, "alice", resp.Username)

	w = api.do(http.MethodPost, "/api/login", `{"email": "alice@example.com", "password": "nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequiresToken(t *testing.T) {
	api, _ := newAPI(t)

	w := api.do(http.MethodGet, "/api/v1/companies", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	api.token = "bogus"
	w = api.do(http.MethodGet, "/api/v1/companies", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCompanyEndpoints(t *testing.T) {
	api, _ := newAPI(t)
	api.register("alice", "alice@example.com")

	w := api.do(http.MethodPost, "/api/v1/companies", `{"name": "TechSolutions GmbH", "website": "https://tech.sol"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var company struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &company))
	require.NotZero(t, company.ID)

	// Missing required field.
	w = api.do(http.MethodPost, "/api/v1/companies", `{"website": "https://no.name"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodPatch, fmt.Sprintf("/api/v1/companies/%d", company.ID), `{"industry": "IT"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"industry":"IT"`)
	assert.Contains(t, w.Body.String(), `"name":"TechSolutions GmbH"`)

	w = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/companies/%d", company.ID), "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(http.MethodGet, fmt.Sprintf("/api/v1/companies/%d", company.ID), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApplicationEndpointsWithNestedNotes(t *testing.T) {
	api, _ := newAPI(t)
	api.register("alice", "alice@example.com")

	w := api.do(http.MethodPost, "/api/v1/companies", `{"name": "TechSolutions GmbH"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var company struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &company))

	w = api.do(http.MethodPost, "/api/v1/applications",
		fmt.Sprintf(`{"job_title": "Backend Engineer", "company_id": %d, "applied_on": "2025-03-14"}`, company.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var app struct {
		ID            uint   `json:"id"`
		Status        string `json:"status"`
		StatusDisplay string `json:"status_display"`
		AppliedOn     string `json:"applied_on"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &app))
	assert.Equal(t, "DRAFT", app.Status)
	assert.Equal(t, "Draft", app.StatusDisplay)
	assert.Equal(t, "2025-03-14", app.AppliedOn)

	// Invalid status is rejected by binding.
	w = api.do(http.MethodPatch, fmt.Sprintf("/api/v1/applications/%d", app.ID), `{"status": "MAYBE"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Nested note replacement.
	w = api.do(http.MethodPatch, fmt.Sprintf("/api/v1/applications/%d", app.ID),
		`{"notes": [{"text": "call back"}, {"text": "follow up"}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var withNotes struct {
		Notes []struct {
			ID   uint   `json:"id"`
			Text string `json:"text"`
		} `json:"notes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &withNotes))
	require.Len(t, withNotes.Notes, 2)

	w = api.do(http.MethodPatch, fmt.Sprintf("/api/v1/applications/%d", app.ID), `{"notes": []}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &withNotes))
	assert.Empty(t, withNotes.Notes)
}

func TestCrossUserAccessIsNotFound(t *testing.T) {
	api, _ := newAPI(t)
	api.register("alice", "alice@example.com")

	w := api.do(http.MethodPost, "/api/v1/companies", `{"name": "Acme Corp"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var company struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &company))

	aliceToken := api.token
	api.register("bob", "bob@example.com")

	w = api.do(http.MethodGet, fmt.Sprintf("/api/v1/companies/%d", company.ID), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodDelete, fmt.Sprintf("/api/v1/companies/%d", company.ID), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Bob referencing Alice's company is a bad request, not a leak.
	w = api.do(http.MethodPost, "/api/v1/applications",
		fmt.Sprintf(`{"job_title": "Spy", "company_id": %d}`, company.ID))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	api.token = aliceToken
	w = api.do(http.MethodGet, fmt.Sprintf("/api/v1/companies/%d", company.ID), "")
	assert.Equal(t, http.StatusOK, w.Code)
}
