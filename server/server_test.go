package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jrsteele09/go-catalog-server/audit"
	"github.com/jrsteele09/go-catalog-server/auth"
	"github.com/jrsteele09/go-catalog-server/internal/config"
	fakeproductrepo "github.com/jrsteele09/go-catalog-server/products/repofake"
	"github.com/jrsteele09/go-catalog-server/registry"
	"github.com/jrsteele09/go-catalog-server/server"
	"github.com/jrsteele09/go-catalog-server/token"
	fakeuserrepo "github.com/jrsteele09/go-catalog-server/users/repofake"
)

// testFixture holds all test dependencies
type testFixture struct {
	server   *server.Server
	userRepo *fakeuserrepo.FakeUserRepo
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message *string         `json:"message"`
	Errors  []string        `json:"errors"`
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()
	t.Setenv("ENV", "TEST")

	userRepo := fakeuserrepo.NewFakeUserRepo()
	productRepo := fakeproductrepo.NewFakeProductRepo()
	reg := registry.NewInMemoryRegistry()

	accessCodec := token.NewCodec("test-access-secret", 15*time.Minute)
	refreshCodec := token.NewCodec("test-refresh-secret", 7*24*time.Hour)

	authService := auth.NewService(userRepo, reg, accessCodec, refreshCodec,
		auth.WithBcryptCost(bcrypt.MinCost))

	srv := server.New(config.New(), server.Deps{
		Auth:     authService,
		Users:    userRepo,
		Products: productRepo,
		Audit:    audit.NopSink{},
	})

	return &testFixture{server: srv, userRepo: userRepo}
}

func (f *testFixture) do(t *testing.T, method, path, bearer string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

// signup registers a user and returns the token pair from a follow-up
// login.
func (f *testFixture) signupAndLogin(t *testing.T, name, email, password string) (accessToken, refreshToken string) {
	t.Helper()

	rec, _ := f.do(t, http.MethodPost, "/signup", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.AccessToken)
	require.NotEmpty(t, login.RefreshToken)
	return login.AccessToken, login.RefreshToken
}

func TestRootHandler(t *testing.T) {
	f := setupTestFixture(t)

	rec, env := f.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)
	require.NotNil(t, env.Message)
	require.Equal(t, "Server running", *env.Message)
}

func TestSignupAndLoginFlow(t *testing.T) {
	f := setupTestFixture(t)

	rec, env := f.do(t, http.MethodPost, "/signup", "", map[string]string{
		"name": "Alice", "email": "alice@example.com", "password": "Abcdef1!",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)
	require.Equal(t, "User registered successfully!", *env.Message)
	require.Nil(t, env.Errors)

	rec, _ = f.do(t, http.MethodPost, "/login", "", map[string]string{
		"email": "alice@example.com", "password": "Abcdef1!",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		Success      bool   `json:"success"`
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
		Message      string `json:"message"`
		Data         struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.True(t, login.Success)
	require.Equal(t, "Access and refresh tokens generated", login.Message)
	require.NotEmpty(t, login.AccessToken)
	require.NotEmpty(t, login.RefreshToken)
	require.Equal(t, "alice@example.com", login.Data.Email)
	require.Equal(t, "user", login.Data.Role)
}

func TestSignupWeakPassword(t *testing.T) {
	f := setupTestFixture(t)

	rec, env := f.do(t, http.MethodPost, "/signup", "", map[string]string{
		"name": "Bob", "email": "bob@example.com", "password": "abcdefgh",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, env.Success)
	require.Len(t, env.Errors, 3) // missing uppercase, digit, symbol
}

func TestSignupDuplicateEmail(t *testing.T) {
	f := setupTestFixture(t)

	body := map[string]string{"name": "Alice", "email": "alice@example.com", "password": "Abcdef1!"}
	rec, _ := f.do(t, http.MethodPost, "/signup", "", body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := f.do(t, http.MethodPost, "/signup", "", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, []string{"Email already exists!"}, env.Errors)
}

func TestLoginFailures(t *testing.T) {
	f := setupTestFixture(t)
	f.signupAndLogin(t, "Alice", "alice@example.com", "Abcdef1!")

	rec, env := f.do(t, http.MethodPost, "/login", "", map[string]string{
		"email": "nobody@example.com", "password": "Abcdef1!",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, []string{"User not found!"}, env.Errors)

	rec, env = f.do(t, http.MethodPost, "/login", "", map[string]string{
		"email": "alice@example.com", "password": "Wrong1!!",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, []string{"Invalid password!"}, env.Errors)

	rec, env = f.do(t, http.MethodPost, "/login", "", map[string]string{"email": "alice@example.com"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, []string{"email and password are required"}, env.Errors)
}

func TestAuthGate(t *testing.T) {
	f := setupTestFixture(t)

	rec, env := f.do(t, http.MethodGet, "/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, []string{"Access token required"}, env.Errors)

	rec, env = f.do(t, http.MethodGet, "/me", "not-a-real-token", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, []string{"Invalid or expired access token"}, env.Errors)

	access, _ := f.signupAndLogin(t, "Alice", "alice@example.com", "Abcdef1!")
	rec, env = f.do(t, http.MethodGet, "/me", access, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)
	require.Equal(t, "User info retrieved successfully", *env.Message)
}

func TestAdminGate(t *testing.T) {
	f := setupTestFixture(t)

	access, _ := f.signupAndLogin(t, "Alice", "alice@example.com", "Abcdef1!")
	rec, _ := f.do(t, http.MethodPut, "/products/1", access, map[string]any{
		"name": "Widget", "price": 9.99,
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.JSONEq(t, `{"error":"Admin access required"}`, rec.Body.String())

	rec, env := f.do(t, http.MethodPost, "/seed-admin", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Admin user seeded.", *env.Message)

	adminAccess, _ := f.loginOnly(t, "admin@example.com", "Admin@1234")

	rec, _ = f.do(t, http.MethodPost, "/add-product", adminAccess, map[string]any{
		"name": "Widget", "price": 9.99,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = f.do(t, http.MethodPut, "/products/1", adminAccess, map[string]any{
		"name": "Widget v2", "price": 12.50,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Product updated successfully.", *env.Message)

	rec, env = f.do(t, http.MethodDelete, "/products/1", adminAccess, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Product deleted successfully.", *env.Message)
}

func (f *testFixture) loginOnly(t *testing.T, email, password string) (string, string) {
	t.Helper()

	rec, _ := f.do(t, http.MethodPost, "/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	return login.AccessToken, login.RefreshToken
}

func TestRefreshEndpoint(t *testing.T) {
	f := setupTestFixture(t)
	_, refresh := f.signupAndLogin(t, "Alice", "alice@example.com", "Abcdef1!")

	rec, env := f.do(t, http.MethodPost, "/token", "", map[string]string{"token": refresh})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)
	require.Equal(t, "New access token generated", *env.Message)

	var data struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AccessToken)

	// New access token must pass the auth gate.
	rec, _ = f.do(t, http.MethodGet, "/me", data.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRefreshFailures(t *testing.T) {
	f := setupTestFixture(t)

	rec, env := f.do(t, http.MethodPost, "/token", "", map[string]string{})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, []string{"Missing refresh token"}, env.Errors)

	rec, env = f.do(t, http.MethodPost, "/token", "", map[string]string{"token": "never-registered"})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, []string{"Refresh token not recognized"}, env.Errors)
}

func TestLogoutRevokesRefresh(t *testing.T) {
	f := setupTestFixture(t)
	_, refresh := f.signupAndLogin(t, "Alice", "alice@example.com", "Abcdef1!")

	rec, _ := f.do(t, http.MethodPost, "/logout", "", map[string]string{"token": refresh})
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Zero(t, rec.Body.Len())

	rec, env := f.do(t, http.MethodPost, "/token", "", map[string]string{"token": refresh})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, []string{"Refresh token not recognized"}, env.Errors)

	// Logout is idempotent.
	rec, _ = f.do(t, http.MethodPost, "/logout", "", map[string]string{"token": refresh})
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRefreshAfterUserDeleted(t *testing.T) {
	f := setupTestFixture(t)
	_, refresh := f.signupAndLogin(t, "Alice", "alice@example.com", "Abcdef1!")

	f.userRepo.Delete(1)

	rec, env := f.do(t, http.MethodPost, "/token", "", map[string]string{"token": refresh})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, []string{"User not found"}, env.Errors)
}

func TestProductListingAndSearch(t *testing.T) {
	f := setupTestFixture(t)
	access, _ := f.signupAndLogin(t, "Alice", "alice@example.com", "Abcdef1!")

	for _, p := range []map[string]any{
		{"name": "Hammer", "price": 5.0, "description": "claw hammer"},
		{"name": "Screwdriver", "price": 3.5},
		{"name": "Sledgehammer", "price": 25.0},
	} {
		rec, _ := f.do(t, http.MethodPost, "/add-product", access, p)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, env := f.do(t, http.MethodGet, "/products/all", access, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "All products retrieved successfully.", *env.Message)

	var all []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &all))
	require.Len(t, all, 3)

	rec, env = f.do(t, http.MethodPost, "/products/get-all", access, map[string]any{
		"search": "hammer", "pageSize": 1, "pageNumber": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Products retrieved successfully.", *env.Message)

	var page struct {
		CurrentPage int  `json:"currentPage"`
		TotalCount  int  `json:"totalCount"`
		TotalPages  int  `json:"totalPages"`
		HasNextPage bool `json:"hasNextPage"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Equal(t, 2, page.CurrentPage)
	require.Equal(t, 2, page.TotalCount)
	require.Equal(t, 2, page.TotalPages)
	require.False(t, page.HasNextPage)
}

func TestAddProductValidation(t *testing.T) {
	f := setupTestFixture(t)
	access, _ := f.signupAndLogin(t, "Alice", "alice@example.com", "Abcdef1!")

	rec, env := f.do(t, http.MethodPost, "/add-product", access, map[string]any{"price": 5.0})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, []string{"Product name and price are required"}, env.Errors)
}
