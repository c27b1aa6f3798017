package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func intPtr(n int) *int { return &n }

func TestCompanyFilter_QueryString(t *testing.T) {
	var nilFilter *CompanyFilter
	assert.Equal(t, "", nilFilter.QueryString())
	assert.Equal(t, "", (&CompanyFilter{}).QueryString())
	assert.Equal(t, "?name=ac+me", (&CompanyFilter{Name: "ac me"}).QueryString())
	assert.Equal(t, "?maxEmployees=10&minEmployees=0",
		(&CompanyFilter{MinEmployees: intPtr(0), MaxEmployees: intPtr(10)}).QueryString())
}

func TestJobFilter_QueryString(t *testing.T) {
	var nilFilter *JobFilter
	assert.Equal(t, "", nilFilter.QueryString())
	assert.Equal(t, "", (&JobFilter{}).QueryString())
	assert.Equal(t, "?hasEquity=true&minSalary=150&title=eng",
		(&JobFilter{Title: "eng", MinSalary: intPtr(150), HasEquity: true}).QueryString())
}

func TestClient_SendsBearerToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]interface{}{"users": []User{{Username: "u1"}}})
	})
	c := newTestClient(t, mux)
	c.Token = "tok"

	users, err := c.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u1", users[0].Username)
}

func TestClient_APIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/companies/nope", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "company.not_found", Code: 404, Message: "No company: nope"})
	})
	mux.HandleFunc("/companies/plain", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway down", http.StatusBadGateway)
	})
	c := newTestClient(t, mux)

	_, err := c.GetCompany(context.Background(), "nope")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "company.not_found", apiErr.ErrorCode)
	assert.Equal(t, "No company: nope", apiErr.Message)
	assert.Contains(t, err.Error(), "Hint: Resource not found")

	_, err = c.GetCompany(context.Background(), "plain")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Empty(t, apiErr.ErrorCode)
	assert.Equal(t, "gateway down", apiErr.Message)
}

func TestClient_Login(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["username"] != "u1" || body["password"] != "password1" {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "auth.invalid_credentials", Code: 401, Message: "Invalid username/password"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"token": "tok"})
	})
	c := newTestClient(t, mux)

	token, err := c.Login(context.Background(), "u1", "password1")
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	_, err = c.Login(context.Background(), "u1", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "joblyctl login")
}

func TestClient_Register(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasAdmin := body["isAdmin"]
		assert.False(t, hasAdmin)
		assert.Equal(t, "new", body["username"])
		writeJSON(w, http.StatusCreated, map[string]string{"token": "tok"})
	})
	c := newTestClient(t, mux)

	token, err := c.Register(context.Background(), NewUser{
		Username: "new", Password: "password", FirstName: "N", LastName: "U", Email: "n@u.com", IsAdmin: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}

func TestClient_Companies(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/companies", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "c", r.URL.Query().Get("name"))
			writeJSON(w, http.StatusOK, map[string]interface{}{"companies": []Company{{Handle: "c1", Name: "C1"}}})
		case http.MethodPost:
			var nc NewCompany
			require.NoError(t, json.NewDecoder(r.Body).Decode(&nc))
			writeJSON(w, http.StatusCreated, map[string]interface{}{"company": Company{Handle: nc.Handle, Name: nc.Name}})
		}
	})
	mux.HandleFunc("/companies/c1", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]interface{}{"company": Company{
				Handle: "c1", Jobs: []Job{{ID: 1, Title: "J1", CompanyHandle: "c1"}},
			}})
		case http.MethodPatch:
			raw, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"name":"New","logoUrl":null}`, string(raw))
			writeJSON(w, http.StatusOK, map[string]interface{}{"company": Company{Handle: "c1", Name: "New"}})
		case http.MethodDelete:
			writeJSON(w, http.StatusOK, map[string]string{"deleted": "c1"})
		}
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	list, err := c.ListCompanies(ctx, &CompanyFilter{Name: "c"})
	require.NoError(t, err)
	assert.Equal(t, []Company{{Handle: "c1", Name: "C1"}}, list)

	created, err := c.CreateCompany(ctx, NewCompany{Handle: "c9", Name: "C9", Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, "c9", created.Handle)

	company, err := c.GetCompany(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, company.Jobs, 1)
	assert.Equal(t, "J1", company.Jobs[0].Title)

	updated, err := c.UpdateCompany(ctx, "c1", map[string]interface{}{"name": "New", "logoUrl": nil})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)

	assert.NoError(t, c.DeleteCompany(ctx, "c1"))
}

func TestClient_Logo(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nrest")

	mux := http.NewServeMux()
	mux.HandleFunc("/companies/c1/logo", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
			file, header, err := r.FormFile("logo")
			require.NoError(t, err)
			defer file.Close()
			assert.Equal(t, "logo.png", header.Filename)
			data, _ := io.ReadAll(file)
			assert.Equal(t, png, data)
			url := "/companies/c1/logo"
			writeJSON(w, http.StatusOK, map[string]interface{}{"company": Company{Handle: "c1", LogoURL: &url}})
		case http.MethodGet:
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(png)
		}
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	company, err := c.UploadLogo(ctx, "c1", "logo.png", bytes.NewReader(png))
	require.NoError(t, err)
	require.NotNil(t, company.LogoURL)
	assert.Equal(t, "/companies/c1/logo", *company.LogoURL)

	var buf bytes.Buffer
	contentType, err := c.DownloadLogo(ctx, "c1", &buf)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, png, buf.Bytes())
}

func TestClient_Jobs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/jobs", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "true", r.URL.Query().Get("hasEquity"))
			writeJSON(w, http.StatusOK, map[string]interface{}{"jobs": []Job{{ID: 1, Title: "J1"}}})
		case http.MethodPost:
			raw, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"title":"new","equity":"0.4","company_handle":"c1"}`, string(raw))
			writeJSON(w, http.StatusCreated, map[string]interface{}{"job": Job{ID: 7, Title: "new"}})
		}
	})
	mux.HandleFunc("/jobs/J1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"job":{"id":1,"title":"J1","salary":100,"equity":"0.1","company_handle":{"handle":"c1","name":"C1"}}}`)
	})
	mux.HandleFunc("/jobs/7", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPatch:
			writeJSON(w, http.StatusOK, map[string]interface{}{"job": Job{ID: 7, Title: "newer"}})
		case http.MethodDelete:
			writeJSON(w, http.StatusOK, map[string]string{"deleted": "7"})
		}
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	jobs, err := c.ListJobs(ctx, &JobFilter{HasEquity: true})
	require.NoError(t, err)
	assert.Len(t, jobs, 1)

	equity := "0.4"
	job, err := c.CreateJob(ctx, NewJob{Title: "new", Equity: &equity, CompanyHandle: "c1"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), job.ID)

	detail, err := c.GetJob(ctx, "J1")
	require.NoError(t, err)
	require.NotNil(t, detail.Company)
	assert.Equal(t, "c1", detail.Company.Handle)
	assert.Equal(t, "0.1", *detail.Equity)

	job, err = c.UpdateJob(ctx, 7, map[string]interface{}{"title": "newer"})
	require.NoError(t, err)
	assert.Equal(t, "newer", job.Title)

	assert.NoError(t, c.DeleteJob(ctx, 7))
}

func TestClient_Users(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]interface{}{"user": User{Username: "new", IsAdmin: true}, "token": "tok"})
	})
	mux.HandleFunc("/users/u1", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]interface{}{"user": User{Username: "u1", Jobs: []int64{1}}})
		case http.MethodPatch:
			writeJSON(w, http.StatusOK, map[string]interface{}{"user": User{Username: "u1", FirstName: "New"}})
		case http.MethodDelete:
			writeJSON(w, http.StatusOK, map[string]string{"deleted": "u1"})
		}
	})
	mux.HandleFunc("/users/u1/jobs/3", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		writeJSON(w, http.StatusOK, map[string]int{"applied": 3})
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	user, token, err := c.CreateUser(ctx, NewUser{Username: "new", IsAdmin: true})
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
	assert.Equal(t, "tok", token)

	user, err = c.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, user.Jobs)

	user, err = c.UpdateUser(ctx, "u1", map[string]interface{}{"firstName": "New"})
	require.NoError(t, err)
	assert.Equal(t, "New", user.FirstName)

	assert.NoError(t, c.Apply(ctx, "u1", 3))
	assert.NoError(t, c.DeleteUser(ctx, "u1"))
}

func TestClient_HealthAndVersion(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Health{Status: "healthy", Checks: map[string]string{"database": "ok"}})
	})
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ServerVersion{Version: "1.2.3"})
	})
	c := newTestClient(t, mux)

	health, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "ok", health.Checks["database"])

	v, err := c.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", v.Version)
}
