package library

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"LIBRARY_BACK-END/internal/dto"
	"LIBRARY_BACK-END/internal/models"
	"LIBRARY_BACK-END/internal/store"
)

func errUserExists() *Error {
	return newError(http.StatusConflict, "User already exists").with("email", "Email already registered")
}

// Register creates a user and signs a token for it.
// The insert commits only if the token could be signed.
func (s *Service) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, string, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := validateRequest(req); err != nil {
		return nil, "", err
	}

	// Check if user already exists
	_, err := s.store.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return nil, "", errUserExists()
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return nil, "", err
	}

	hashed, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashed,
	}

	var token string
	err = s.store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.InsertUser(ctx, user); err != nil {
			return err
		}
		signed, err := s.issueToken(user.ID)
		if err != nil {
			return fmt.Errorf("generate token: %w", err)
		}
		token = signed
		return nil
	})
	if errors.Is(err, store.ErrEmailTaken) {
		return nil, "", errUserExists()
	}
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, token, nil
}

// Login checks the credentials and signs a token for the user
func (s *Service) Login(ctx context.Context, req dto.LoginRequest) (*models.User, string, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateRequest(req); err != nil {
		return nil, "", err
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, "", newError(http.StatusBadRequest, "User with email not found").
			with("email", "Invalid Email Address")
	}
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", newError(http.StatusUnauthorized, "Invalid password").
			with("password", "Your password is incorrect")
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

// Logout has nothing to revoke: tokens are stateless and expire on their own
func (s *Service) Logout(ctx context.Context) error {
	return nil
}
