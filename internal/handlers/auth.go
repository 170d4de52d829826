package handlers

import (
	"log/slog"
	"net/http"

	"LIBRARY_BACK-END/internal/dto"
	"LIBRARY_BACK-END/internal/library"
	"LIBRARY_BACK-END/internal/utils"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	svc    *library.Service
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(svc *library.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new user account with name, email, and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 201 {object} dto.Envelope{data=dto.AuthResponse} "User created successfully"
// @Failure 400 {object} dto.Envelope "Invalid request data"
// @Failure 409 {object} dto.Envelope "User already exists"
// @Failure 500 {object} dto.Envelope "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	user, token, err := h.svc.Register(r.Context(), req)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusCreated, "User registered", dto.AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate user with email and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.Envelope{data=dto.AuthResponse} "Login successful"
// @Failure 400 {object} dto.Envelope "Unknown email or invalid request"
// @Failure 401 {object} dto.Envelope "Wrong password"
// @Failure 500 {object} dto.Envelope "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	user, token, err := h.svc.Login(r.Context(), req)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, "Logged in", dto.AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

// Logout acknowledges a logout. Tokens are stateless, so the client just
// discards its copy.
// @Summary Logout user
// @Tags authentication
// @Produce json
// @Success 200 {object} dto.Envelope "Logged out"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context()); err != nil {
		respondError(h.logger, w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, http.StatusOK, "Logged out", nil)
}
