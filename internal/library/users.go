package library

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"LIBRARY_BACK-END/internal/dto"
	"LIBRARY_BACK-END/internal/models"
	"LIBRARY_BACK-END/internal/store"
)

// GetUser returns a user; the password hash never leaves the models layer
func (s *Service) GetUser(ctx context.Context, rawID string) (*models.User, error) {
	id, err := parseID(rawID, errUserNotFound())
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByID(ctx, id)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, errUserNotFound()
	}
	return user, err
}

// UpdateUser changes the caller's own name, email or password
func (s *Service) UpdateUser(ctx context.Context, caller uuid.UUID, rawID string, req dto.UpdateUserRequest) (*models.User, error) {
	id, err := s.requireSelf(caller, rawID, "User can not edit another user's information")
	if err != nil {
		return nil, err
	}

	trimPtr(req.Name)
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		req.Email = &email
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return s.GetUser(ctx, rawID)
	}

	patch := store.UserPatch{Name: req.Name, Email: req.Email}
	if req.Password != nil {
		hashed, err := s.hashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		patch.PasswordHash = &hashed
	}

	user, err := s.store.UpdateUser(ctx, id, patch)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return nil, errUserNotFound()
	case errors.Is(err, store.ErrEmailTaken):
		return nil, errUserExists()
	case err != nil:
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the caller's own account
func (s *Service) DeleteUser(ctx context.Context, caller uuid.UUID, rawID string) (*models.User, error) {
	id, err := s.requireSelf(caller, rawID, "User can not delete another user's information")
	if err != nil {
		return nil, err
	}

	user, err := s.store.DeleteUser(ctx, id)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return nil, errUserNotFound()
	case errors.Is(err, store.ErrUserInUse):
		return nil, newError(http.StatusConflict, "User still owns or holds books")
	case err != nil:
		return nil, err
	}

	s.logger.Info("user deleted", "user_id", id)
	return user, nil
}

// requireSelf fails with 404 unless rawID names the caller
func (s *Service) requireSelf(caller uuid.UUID, rawID, message string) (uuid.UUID, error) {
	id, err := uuid.Parse(rawID)
	if err != nil || id != caller {
		return uuid.Nil, newError(http.StatusNotFound, message)
	}
	return id, nil
}
