package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"LIBRARY_BACK-END/internal/config"
	"LIBRARY_BACK-END/internal/handlers"
	"LIBRARY_BACK-END/internal/middleware"
)

const apiPrefix = "/api/v1"

// Handlers groups everything SetupRoutes mounts
type Handlers struct {
	Auth   *handlers.AuthHandler
	Books  *handlers.BookHandler
	Users  *handlers.UserHandler
	Health *handlers.HealthHandler
}

// SetupRoutes configures all application routes on mux
func SetupRoutes(mux *http.ServeMux, h Handlers, jwtCfg *config.JWTConfig) {
	auth := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.AuthMiddleware(next, jwtCfg)
	}

	// Health check routes
	mux.HandleFunc("GET /healthz", h.Health.HealthCheck)
	mux.HandleFunc("GET /livez", h.Health.LivenessCheck)
	mux.HandleFunc("GET /readyz", h.Health.ReadinessCheck)

	// API documentation
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Authentication routes
	mux.HandleFunc("POST "+apiPrefix+"/auth/register", h.Auth.Register)
	mux.HandleFunc("POST "+apiPrefix+"/auth/login", h.Auth.Login)
	mux.HandleFunc("POST "+apiPrefix+"/auth/logout", h.Auth.Logout)

	// User routes
	mux.HandleFunc("GET "+apiPrefix+"/users/{id}", auth(h.Users.GetUser))
	mux.HandleFunc("PUT "+apiPrefix+"/users/{id}", auth(h.Users.UpdateUser))
	mux.HandleFunc("DELETE "+apiPrefix+"/users/{id}", auth(h.Users.DeleteUser))

	// Book routes
	mux.HandleFunc("POST "+apiPrefix+"/books", auth(h.Books.CreateBook))
	mux.HandleFunc("GET "+apiPrefix+"/books", h.Books.ListBooks)
	mux.HandleFunc("GET "+apiPrefix+"/books/{id}", h.Books.GetBook)
	mux.HandleFunc("PUT "+apiPrefix+"/books/borrow/{id}", auth(h.Books.BorrowBook))
	mux.HandleFunc("PUT "+apiPrefix+"/books/return/{id}", auth(h.Books.ReturnBook))
	mux.HandleFunc("PUT "+apiPrefix+"/books/{id}", auth(h.Books.UpdateBook))
	mux.HandleFunc("DELETE "+apiPrefix+"/books/{id}", auth(h.Books.DeleteBook))

	// Root route
	mux.HandleFunc("GET /{$}", rootHandler)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Library backend is running."))
}
