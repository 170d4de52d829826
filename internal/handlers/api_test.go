package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"LIBRARY_BACK-END/internal/config"
	"LIBRARY_BACK-END/internal/handlers"
	"LIBRARY_BACK-END/internal/library"
	"LIBRARY_BACK-END/internal/middleware"
	"LIBRARY_BACK-END/internal/routes"
	"LIBRARY_BACK-END/internal/testutil"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Details *struct {
		Field string `json:"field"`
		Error string `json:"error"`
	} `json:"details"`
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

type testAPI struct {
	t       *testing.T
	handler http.Handler
}

func newTestAPI(t *testing.T, pinger handlers.Pinger) *testAPI {
	t.Helper()
	jwtCfg := &config.JWTConfig{Secret: "test-secret", ExpiresIn: time.Hour}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := library.NewService(testutil.NewMemStore(),
		func(id uuid.UUID) (string, error) { return middleware.GenerateToken(id, jwtCfg) },
		library.WithLogger(logger),
		library.WithBcryptCost(bcrypt.MinCost),
	)

	if pinger == nil {
		pinger = pingerFunc(func(context.Context) error { return nil })
	}

	mux := http.NewServeMux()
	routes.SetupRoutes(mux, routes.Handlers{
		Auth:   handlers.NewAuthHandler(svc, logger),
		Books:  handlers.NewBookHandler(svc, logger),
		Users:  handlers.NewUserHandler(svc, logger),
		Health: handlers.NewHealthHandler(pinger),
	}, jwtCfg)

	return &testAPI{t: t, handler: mux}
}

func (a *testAPI) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

type authData struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

type bookData struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Pages      int     `json:"pages"`
	Status     string  `json:"status"`
	Owner      string  `json:"owner"`
	BorrowedBy *string `json:"borrowed_by"`
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func (a *testAPI) register(name, email string) authData {
	a.t.Helper()
	rec, env := a.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name": name, "email": email, "password": "secret1",
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[authData](a.t, env)
}

func (a *testAPI) addBook(token string) bookData {
	a.t.Helper()
	rec, env := a.do(http.MethodPost, "/api/v1/books", token, map[string]any{
		"name": "Dune", "pages": 412, "author": "Herbert", "genre": "sport",
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[struct {
		Book bookData `json:"book"`
	}](a.t, env).Book
}

func TestExampleScenario(t *testing.T) {
	api := newTestAPI(t, nil)

	ada := api.register("Ada", "ada@x.com")
	assert.NotEmpty(t, ada.Token)

	rec, env := api.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email": "ada@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, decodeData[authData](t, env).Token)

	book := api.addBook(ada.Token)
	assert.Equal(t, "Available", book.Status)
	assert.Equal(t, ada.User.ID, book.Owner)
	assert.Nil(t, book.BorrowedBy)

	bob := api.register("Bob", "bob@x.com")

	rec, env = api.do(http.MethodPut, "/api/v1/books/borrow/"+book.ID, bob.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	borrowed := decodeData[bookData](t, env)
	assert.Equal(t, "Borrowed", borrowed.Status)
	require.NotNil(t, borrowed.BorrowedBy)
	assert.Equal(t, bob.User.ID, *borrowed.BorrowedBy)

	rec, env = api.do(http.MethodPut, "/api/v1/books/return/"+book.ID, ada.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)

	rec, env = api.do(http.MethodPut, "/api/v1/books/return/"+book.ID, bob.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	returned := decodeData[bookData](t, env)
	assert.Equal(t, "Available", returned.Status)
	assert.Nil(t, returned.BorrowedBy)
}

func TestRegister_ResponseNeverCarriesPassword(t *testing.T) {
	api := newTestAPI(t, nil)

	rec, _ := api.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name": "Ada", "email": "ada@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "secret1")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	api := newTestAPI(t, nil)
	api.register("Ada", "ada@x.com")

	rec, env := api.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name": "Ada", "email": "ada@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Success)
	require.NotNil(t, env.Details)
	assert.Equal(t, "email", env.Details.Field)
}

func TestRegister_InvalidBody(t *testing.T) {
	api := newTestAPI(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "Invalid request body", env.Message)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t, nil)
	id := uuid.NewString()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/books"},
		{http.MethodPut, "/api/v1/books/" + id},
		{http.MethodDelete, "/api/v1/books/" + id},
		{http.MethodPut, "/api/v1/books/borrow/" + id},
		{http.MethodPut, "/api/v1/books/return/" + id},
		{http.MethodGet, "/api/v1/users/" + id},
		{http.MethodPut, "/api/v1/users/" + id},
		{http.MethodDelete, "/api/v1/users/" + id},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec, env := api.do(tt.method, tt.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, env.Success)
		})
	}
}

func TestPublicBookRoutes(t *testing.T) {
	api := newTestAPI(t, nil)

	rec, env := api.do(http.MethodGet, "/api/v1/books", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", string(env.Data))

	ada := api.register("Ada", "ada@x.com")
	book := api.addBook(ada.Token)

	rec, env = api.do(http.MethodGet, "/api/v1/books", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	books := decodeData[[]bookData](t, env)
	require.Len(t, books, 1)
	assert.Equal(t, book.ID, books[0].ID)

	rec, _ = api.do(http.MethodGet, "/api/v1/books/"+book.ID, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = api.do(http.MethodGet, "/api/v1/books/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
}

func TestOnlyOwnerUpdatesAndDeletesBook(t *testing.T) {
	api := newTestAPI(t, nil)
	ada := api.register("Ada", "ada@x.com")
	bob := api.register("Bob", "bob@x.com")
	book := api.addBook(ada.Token)

	rec, _ := api.do(http.MethodPut, "/api/v1/books/"+book.ID, bob.Token, map[string]any{"name": "Stolen"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = api.do(http.MethodDelete, "/api/v1/books/"+book.ID, bob.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := api.do(http.MethodPut, "/api/v1/books/"+book.ID, ada.Token, map[string]any{"pages": 500})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeData[bookData](t, env)
	assert.Equal(t, 500, updated.Pages)
	assert.Equal(t, "Dune", updated.Name)

	rec, _ = api.do(http.MethodDelete, "/api/v1/books/"+book.ID, ada.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = api.do(http.MethodGet, "/api/v1/books/"+book.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserRoutes(t *testing.T) {
	api := newTestAPI(t, nil)
	ada := api.register("Ada", "ada@x.com")
	bob := api.register("Bob", "bob@x.com")

	rec, env := api.do(http.MethodGet, "/api/v1/users/"+ada.User.ID, bob.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, string(env.Data), "password")

	rec, _ = api.do(http.MethodPut, "/api/v1/users/"+ada.User.ID, bob.Token, map[string]any{"name": "Mallory"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = api.do(http.MethodPut, "/api/v1/users/"+ada.User.ID, ada.Token, map[string]any{"name": "Ada Lovelace"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, string(env.Data), "Ada Lovelace")

	rec, _ = api.do(http.MethodDelete, "/api/v1/users/"+ada.User.ID, bob.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = api.do(http.MethodDelete, "/api/v1/users/"+ada.User.ID, ada.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogout(t *testing.T) {
	api := newTestAPI(t, nil)

	rec, env := api.do(http.MethodPost, "/api/v1/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
}

func TestReadiness(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestAPI(t, nil).handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	down := newTestAPI(t, pingerFunc(func(context.Context) error { return errors.New("db down") }))
	rec = httptest.NewRecorder()
	down.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "db down")
}
