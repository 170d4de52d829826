package handlers

import (
	"log/slog"
	"net/http"

	"LIBRARY_BACK-END/internal/dto"
	"LIBRARY_BACK-END/internal/library"
	"LIBRARY_BACK-END/internal/utils"
)

// UserHandler handles user account requests
type UserHandler struct {
	svc    *library.Service
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(svc *library.Service, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

// GetUser returns a user's public fields
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} dto.Envelope{data=dto.UserResponse}
// @Failure 401 {object} dto.Envelope "Unauthorized"
// @Failure 404 {object} dto.Envelope "User not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.GetUser(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, http.StatusOK, "", toUserResponse(user))
}

// UpdateUser changes the caller's own account
// @Summary Update own user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} dto.Envelope{data=dto.UserResponse}
// @Failure 400 {object} dto.Envelope "Invalid request data"
// @Failure 404 {object} dto.Envelope "Not the caller or user not found"
// @Failure 409 {object} dto.Envelope "Email already registered"
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	user, err := h.svc.UpdateUser(r.Context(), caller, r.PathValue("id"), req)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, http.StatusOK, "User updated", toUserResponse(user))
}

// DeleteUser removes the caller's own account
// @Summary Delete own user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} dto.Envelope{data=dto.UserResponse}
// @Failure 404 {object} dto.Envelope "Not the caller or user not found"
// @Failure 409 {object} dto.Envelope "User still owns or holds books"
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	user, err := h.svc.DeleteUser(r.Context(), caller, r.PathValue("id"))
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, http.StatusOK, "User deleted", toUserResponse(user))
}
