package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bitswalk/jobly/src/common/errors"
	"github.com/bitswalk/jobly/src/joblyd/auth"
	"github.com/bitswalk/jobly/src/joblyd/db"
	"github.com/bitswalk/jobly/src/joblyd/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// =============================================================================
// Test Infrastructure
// =============================================================================

type testAPI struct {
	api        *API
	router     *gin.Engine
	database   *db.Database
	jwtService *auth.JWTService
	jobIDs     []int64
	userToken  string
	adminToken string
}

type testOptions struct {
	storage   storage.Backend
	rateLimit RateLimitConfig
}

// setupTestAPI builds the full router over a private in-memory database
// seeded with companies c1..c3, jobs J1..J4, a user u1 and an admin.
func setupTestAPI(t *testing.T, opts testOptions) *testAPI {
	t.Helper()
	ctx := context.Background()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	database, err := db.New(ctx, db.Config{
		Driver: db.DriverSQLite,
		DSN:    "file:api_" + name + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	jwtService, err := auth.NewJWTService(auth.Config{}, database)
	require.NoError(t, err)

	companies := db.NewCompanyRepository(database)
	jobs := db.NewJobRepository(database)
	users := db.NewUserRepository(database, bcrypt.MinCost)

	for i, handle := range []string{"c1", "c2", "c3"} {
		n := i + 1
		_, err := companies.Create(ctx, db.NewCompany{
			Handle:       handle,
			Name:         strings.ToUpper(handle),
			Description:  "Desc" + handle[1:],
			NumEmployees: &n,
		})
		require.NoError(t, err)
	}

	salary := func(n int) *int { return &n }
	equity := func(s string) *db.Equity { e := db.Equity(s); return &e }
	var ids []int64
	for _, nj := range []db.NewJob{
		{Title: "J1", Salary: salary(100), Equity: equity("0.1"), CompanyHandle: "c1"},
		{Title: "J2", Salary: salary(200), Equity: equity("0.2"), CompanyHandle: "c1"},
		{Title: "J3", Salary: salary(300), Equity: equity("0"), CompanyHandle: "c1"},
		{Title: "J4", CompanyHandle: "c2"},
	} {
		job, err := jobs.Create(ctx, nj)
		require.NoError(t, err)
		ids = append(ids, job.ID)
	}

	for _, nu := range []db.NewUser{
		{Username: "u1", Password: "password1", FirstName: "U1F", LastName: "U1L", Email: "u1@email.com"},
		{Username: "admin", Password: "password2", FirstName: "AF", LastName: "AL", Email: "admin@email.com", IsAdmin: true},
	} {
		_, err := users.Register(ctx, nu)
		require.NoError(t, err)
	}

	a := New(Config{
		Database:   database,
		Companies:  companies,
		Jobs:       jobs,
		Users:      users,
		JWTService: jwtService,
		Storage:    opts.storage,
		RateLimit:  opts.rateLimit,
	})
	t.Cleanup(a.Close)

	router := gin.New()
	a.RegisterRoutes(router)

	userToken, err := jwtService.CreateToken(auth.TokenPayload{Username: "u1"})
	require.NoError(t, err)
	adminToken, err := jwtService.CreateToken(auth.TokenPayload{Username: "admin", IsAdmin: true})
	require.NoError(t, err)

	return &testAPI{
		api:        a,
		router:     router,
		database:   database,
		jwtService: jwtService,
		jobIDs:     ids,
		userToken:  userToken,
		adminToken: adminToken,
	}
}

func (ta *testAPI) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ta.router.ServeHTTP(w, req)
	return w
}

func parseJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func parseError(t *testing.T, w *httptest.ResponseRecorder) errors.Response {
	t.Helper()
	var resp errors.Response
	parseJSON(t, w, &resp)
	return resp
}

// =============================================================================
// Jobs
// =============================================================================

func TestAPI_Jobs_Create(t *testing.T) {
	ta := setupTestAPI(t, testOptions{})
	body := map[string]interface{}{
		"title":          "newJob",
		"salary":         10000,
		"equity":         0.4,
		"company_handle": "c1",
	}

	t.Run("admin", func(t *testing.T) {
		w := ta.request(http.MethodPost, "/jobs", ta.adminToken, body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp struct {
			Job map[string]interface{} `json:"job"`
		}
		parseJSON(t, w, &resp)
		assert.Equal(t, "newJob", resp.Job["title"])
		assert.Equal(t, float64(10000), resp.Job["salary"])
		assert.Equal(t, "0.4", resp.Job["equity"])
		assert.Equal(t, "c1", resp.Job["company_handle"])
		assert.NotZero(t, resp.Job["id"])
	})

	t.Run("non admin", func(t *testing.T) {
		w := ta.request(http.MethodPost, "/jobs", ta.userToken, body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("anonymous", func(t *testing.T) {
		w := ta.request(http.MethodPost, "/jobs", "", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown company", func(t *testing.T) {
		w := ta.request(http.MethodPost, "/jobs", ta.adminToken, map[string]interface{}{
			"title": "x", "company_handle": "nope",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "job.unknown_company", parseError(t, w).Error)
	})

	t.Run("invalid", func(t *testing.T) {
		for _, raw := range []string{
			`{"company_handle": "c1"}`,
			`{"title": "x", "company_handle": "c1", "salary": "lots"}`,
			`{"title": "x", "company_handle": "c1", "equity": 1.5}`,
			`{"title": "x", "company_handle": "c1", "equity": "NaN"}`,
			`{"title": "x", "company_handle": "c1", "equity": "0x1p-2"}`,
			`{"title": "x", "company_handle": "c1", "bonus": 1}`,
		} {
			w := ta.request(http.MethodPost, "/jobs", ta.adminToken, raw)
			assert.Equal(t, http.StatusBadRequest, w.Code, raw)
		}
	})
}

func TestAPI_Jobs_List(t *testing.T) {
	ta := setupTestAPI(t, testOptions{})

	titles := func(w *httptest.ResponseRecorder) []string {
		var resp struct {
			Jobs []db.Job `json:"jobs"`
		}
		parseJSON(t, w, &resp)
		out := []string{}
		for _, j := range resp.Jobs {
			out = append(out, j.Title)
		}
		return out
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"J1", "J2", "J3", "J4"}},
		{"?hasEquity=true", []string{"J1", "J2"}},
		{"?hasEquity=false", []string{"J1", "J2", "J3", "J4"}},
		{"?minSalary=250", []string{"J3"}},
		{"?title=j&minSalary=150&hasEquity=true", []string{"J2"}},
		{"?title=nothing", []string{}},
	}
	for _, tt := range tests {
		w := ta.request(http.MethodGet, "/jobs"+tt.query, "", nil)
		require.Equal(t, http.StatusOK, w.Code, tt.query)
		assert.Equal(t, tt.want, titles(w), tt.query)
	}

	w := ta.request(http.MethodGet, "/jobs?company=c1", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid filter: company", parseError(t, w).Message)
}

func TestAPI_Jobs_Get(t *testing.T) {
	ta := setupTestAPI(t, testOptions{})

	w := ta.request(http.MethodGet, "/jobs/J1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Job struct {
			ID      int64      `json:"id"`
			Title   string     `json:"title"`
			Equity  string     `json:"equity"`
			Company db.Company `json:"company_handle"`
		} `json:"job"`
	}
	parseJSON(t, w, &resp)
	assert.Equal(t, ta.jobIDs[0], resp.Job.ID)
	assert.Equal(t, "0.1", resp.Job.Equity)
	assert.Equal(t, "c1", resp.Job.Company.Handle)
	assert.Equal(t, "C1", resp.Job.Company.Name)

	w = ta.request(http.MethodGet, "/jobs/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "job.not_found", parseError(t, w).Error)
}

func TestAPI_Jobs_Update(t *testing.T) {
	ta := setupTestAPI(t, testOptions{})
	path := fmt.Sprintf("/jobs/%d", ta.jobIDs[0])

	t.Run("non admin leaves the job unchanged", func(t *testing.T) {
		w := ta.request(http.MethodPatch, path, ta.userToken, `{"title": "J1-new"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = ta.request(http.MethodGet, "/jobs/J1", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admin", func(t *testing.T) {
		w := ta.request(http.MethodPatch, path, ta.adminToken, `{"salary": 500, "title": "J1-new", "equity": "0.05"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Job map[string]interface{} `json:"job"`
		}
		parseJSON(t, w, &resp)
		assert.Equal(t, "J1-new", resp.Job["title"])
		assert.Equal(t, float64(500), resp.Job["salary"])
		assert.Equal(t, "0.05", resp.Job["equity"])
		assert.Equal(t, "c1", resp.Job["company_handle"])
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			path string
			body string
			want int
		}{
			{path, `{}`, http.StatusBadRequest},
			{path, ``, http.StatusBadRequest},
			{path, `{"company_handle": "c2"}`, http.StatusBadRequest},
			{path, `{"salary": -1}`, http.StatusBadRequest},
			{path, `{"equity": "NaN"}`, http.StatusBadRequest},
			{path, `{"equity": "0x1p-2"}`, http.StatusBadRequest},
			{path, `{"equity": "1e-1"}`, http.StatusBadRequest},
			{"/jobs/0", `{"title": "x"}`, http.StatusNotFound},
			{"/jobs/abc", `{"title": "x"}`, http.StatusNotFound},
		}
		for _, tt := range tests {
			w := ta.request(http.MethodPatch, tt.path, ta.adminToken, tt.body)
			assert.Equal(t, tt.want, w.Code, "%s %s", tt.path, tt.body)
		}
	})
}

func TestAPI_Jobs_Delete(t *testing.T) {
	ta := setupTestAPI(t, testOptions{})
	id := ta.jobIDs[1]
	path := fmt.Sprintf("/jobs/%d", id)

	w := ta.request(http.MethodDelete, path, ta.userToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ta.request(http.MethodDelete, path, ta.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"deleted": "%d"}`, id), w.Body.String())

	w = ta.request(http.MethodDelete, path, ta.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// =============================================================================
// Companies
// =============================================================================

func TestAPI_Companies_Create(t *testing.T) {
	ta := setupTestAPI(t, testOptions{})
	body := map[string]interface{}{
		"handle":       "new",
		"name":         "New",
		"description":  "DescNew",
		"numEmployees": 10,
		"logoUrl":      "http://new.img",
	}

	w := ta.request(http.MethodPost, "/companies", ta.userToken, body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ta.request(http.MethodPost, "/companies", ta.adminToken, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Company map[string]interface{} `json:"company"`
	}
	parseJSON(t, w, &resp)
	assert.Equal(t, map[string]interface{}{
		"handle":       "new",
		"name":         "New",
		"description":  "DescNew",
		"numEmployees": float64(10),
		"logoUrl":      "http://new.img",
	}, resp.Company)

	w = ta.request(http.MethodPost, "/companies", ta.adminToken, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Duplicate company: new", parseError(t, w).Message)

	w = ta.request(http.MethodPost, "/companies", ta.adminToken, `{"handle": "x", "name": "X"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_Companies_List(t *testing.T) {
	ta := setupTestAPI(t, testOptions{})

	handles := func(w *httptest.ResponseRecorder) []string {
		var resp CompanyList
		parseJSON(t, w, &resp)
		out := []string{}
		for _, c := range resp.Companies {
			out = append(out, c.Handle)
		}
		return out
	}

	w := ta.request(http.MethodGet, "/companies", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"c1", "c2", "c3"}, handles(w))

	w = ta.request(http.MethodGet, "/companies?name=C&minEmployees=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"c2", "c3"}, handles(w))

	w = ta.request(http.MethodGet, "/companies?maxEmployees=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"c1"}, handles(w))

	w = ta.request(http.MethodGet, "/companies?minEmployees=3&maxEmployees=1", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ta.request(http.MethodGet, "/companies?handle=c1", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid filter: handle", parseError(t, w).Message)
}

// CompanyList mirrors the list response body
type CompanyList struct {
	Companies []db.Company `json:"companies"`
}

func TestAPI_Companies_GetUpdateDelete(t *testing.T) {
	ta := setupTestAPI(t, testOptions{})

	w := ta.request(http.MethodGet, "/companies/c1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Company db.CompanyWithJobs `json:"company"`
	}
	parseJSON(t, w, &got)
	assert.Equal(t, "C1", got.Company.Name)
	require.Len(t, got.Company.Jobs, 3)
	assert.Equal(t, "J1", got.Company.Jobs[0].Title)

	w = ta.request(http.MethodGet, "/companies/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No company: nope", parseError(t, w).Message)

	w = ta.request(http.MethodPatch, "/companies/c1", ta.userToken, `{"name": "C1-new"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ta.request(http.MethodPatch, "/companies/c1", ta.adminToken, `{"name": "C1-new", "numEmployees": null}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"company": {"handle": "c1", "name": "C1-new", "description": "Desc1", "numEmployees": null, "logoUrl": null}}`, w.Body.String())

	w = ta.request(http.MethodPatch, "/companies/c1", ta.adminToken, `{"handle": "c1-new"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ta.request(http.MethodPatch, "/companies/nope", ta.adminToken, `{"name": "x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ta.request(http.MethodDelete, "/companies/c1", ta.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted": "c1"}`, w.Body.String())

	// The schema cascades the delete to the company's jobs.
	w = ta.request(http.MethodGet, "/jobs", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var jobs struct {
		Jobs []db.Job `json:"jobs"`
	}
	parseJSON(t, w, &jobs)
	require.Len(t, jobs.Jobs, 1)
	assert.Equal(t, "J4", jobs.Jobs[0].Title)

	w = ta.request(http.MethodDelete, "/companies/c1", ta.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

func uploadLogo(ta *testAPI, handle, filename string, content []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("logo", filename)
	part.Write(content)
	mw.Close()

	req := httptest.NewRequest(http.MethodPut, "/companies/"+handle+"/logo", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+ta.adminToken)

	w := httptest.NewRecorder()
	ta.router.ServeHTTP(w, req)
	return w
}

func TestAPI_Companies_Logo(t *testing.T) {
	backend, err := storage.NewLocal(storage.LocalConfig{BasePath: t.TempDir()})
	require.NoError(t, err)
	ta := setupTestAPI(t, testOptions{storage: backend})

	w := ta.request(http.MethodGet, "/companies/c1/logo", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = uploadLogo(ta, "c1", "logo.png", pngBytes)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Company db.Company `json:"company"`
	}
	parseJSON(t, w, &resp)
	require.NotNil(t, resp.Company.LogoURL)
	assert.Equal(t, "/companies/c1/logo", *resp.Company.LogoURL)

	w = ta.request(http.MethodGet, "/companies/c1/logo", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, pngBytes, w.Body.Bytes())

	// A second upload replaces the first.
	w = uploadLogo(ta, "c1", "logo.png", append(pngBytes, 1))
	require.Equal(t, http.StatusOK, w.Code)
	w = ta.request(http.MethodGet, "/companies/c1/logo", "", nil)
	assert.Equal(t, append(pngBytes, 1), w.Body.Bytes())

	w = uploadLogo(ta, "c1", "notes.txt", []byte("plain text"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = uploadLogo(ta, "nope", "logo.png", pngBytes)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI_Companies_LogoRoutesNeedStorage(t *testing.T) {
	ta := setupTestAPI(t, testOptions{})

	w := ta.request(http.MethodGet, "/companies/c1/logo", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, ta.api.HasStorage())
}

// =============================================================================
// Users
// =============================================================================

func TestAPI_Users(t *testing.T) {
	ta := setupTestAPI(t, testOptions{})
	id := ta.jobIDs[0]

	w := ta.request(http.MethodGet, "/users", ta.userToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = ta.request(http.MethodGet, "/users", ta.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Users []db.User `json:"users"`
	}
	parseJSON(t, w, &list)
	require.Len(t, list.Users, 2)
	assert.Equal(t, "admin", list.Users[0].Username)

	w = ta.request(http.MethodPost, fmt.Sprintf("/users/u1/jobs/%d", id), ta.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, fmt.Sprintf(`{"applied": %d}`, id), w.Body.String())

	w = ta.request(http.MethodPost, fmt.Sprintf("/users/u1/jobs/%d", id), ta.userToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = ta.request(http.MethodPost, "/users/u1/jobs/0", ta.userToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ta.request(http.MethodGet, "/users/u1", ta.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		User db.UserWithJobs `json:"user"`
	}
	parseJSON(t, w, &got)
	assert.Equal(t, "u1@email.com", got.User.Email)
	assert.Equal(t, []int64{id}, got.User.Jobs)
	assert.NotContains(t, w.Body.String(), "password")

	w = ta.request(http.MethodGet, "/users/admin", ta.userToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = ta.request(http.MethodGet, "/users/u1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ta.request(http.MethodPatch, "/users/u1", ta.userToken, `{"isAdmin": true}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = ta.request(http.MethodPatch, "/users/u1", ta.userToken, `{"firstName": "New", "password": "new-password"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"firstName":"New"`)

	w = ta.request(http.MethodPost, "/auth/token", "", map[string]string{"username": "u1", "password": "new-password"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = ta.request(http.MethodPatch, "/users/u1", ta.adminToken, `{"isAdmin": true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isAdmin":true`)

	w = ta.request(http.MethodDelete, "/users/u1", ta.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted": "u1"}`, w.Body.String())
	w = ta.request(http.MethodDelete, "/users/u1", ta.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI_Users_Create(t *testing.T) {
	ta := setupTestAPI(t, testOptions{})
	body := map[string]interface{}{
		"username":  "new",
		"password":  "password-new",
		"firstName": "First",
		"lastName":  "Last",
		"email":     "new@email.com",
		"isAdmin":   true,
	}

	w := ta.request(http.MethodPost, "/users", ta.userToken, body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ta.request(http.MethodPost, "/users", ta.adminToken, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		User  db.User `json:"user"`
		Token string  `json:"token"`
	}
	parseJSON(t, w, &resp)
	assert.True(t, resp.User.IsAdmin)

	identity, err := ta.jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "new", identity.Username)
	assert.True(t, identity.IsAdmin)

	w = ta.request(http.MethodPost, "/users", ta.adminToken, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =============================================================================
// Auth
// =============================================================================

func TestAPI_Auth_Token(t *testing.T) {
	ta := setupTestAPI(t, testOptions{})

	w := ta.request(http.MethodPost, "/auth/token", "", map[string]string{"username": "admin", "password": "password2"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Token string `json:"token"`
	}
	parseJSON(t, w, &resp)
	identity, err := ta.jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", identity.Username)
	assert.True(t, identity.IsAdmin)

	for _, creds := range []map[string]string{
		{"username": "admin", "password": "wrong"},
		{"username": "nobody", "password": "password2"},
	} {
		w = ta.request(http.MethodPost, "/auth/token", "", creds)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid username/password", parseError(t, w).Message)
	}

	w = ta.request(http.MethodPost, "/auth/token", "", `{"username": "admin"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_Auth_Register(t *testing.T) {
	ta := setupTestAPI(t, testOptions{})
	body := map[string]interface{}{
		"username":  "new",
		"password":  "password-new",
		"firstName": "First",
		"lastName":  "Last",
		"email":     "new@email.com",
	}

	w := ta.request(http.MethodPost, "/auth/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	parseJSON(t, w, &resp)
	identity, err := ta.jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "new", identity.Username)
	assert.False(t, identity.IsAdmin)

	w = ta.request(http.MethodPost, "/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body["username"] = "sneaky"
	body["isAdmin"] = true
	w = ta.request(http.MethodPost, "/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPI_Auth_RateLimited(t *testing.T) {
	ta := setupTestAPI(t, testOptions{rateLimit: RateLimitConfig{Enabled: true, AuthRequestsPerMin: 2}})
	creds := map[string]string{"username": "u1", "password": "wrong"}

	for i := 0; i < 2; i++ {
		w := ta.request(http.MethodPost, "/auth/token", "", creds)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := ta.request(http.MethodPost, "/auth/token", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	// Only /auth is limited.
	w = ta.request(http.MethodGet, "/jobs", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

// =============================================================================
// Base
// =============================================================================

func TestAPI_Base(t *testing.T) {
	ta := setupTestAPI(t, testOptions{})

	w := ta.request(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"ok"`)

	w = ta.request(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
