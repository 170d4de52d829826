package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"LIBRARY_BACK-END/internal/models"
)

const selectUserSQL = `SELECT id, name, email, password_hash, created_at, updated_at FROM users`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func insertUser(ctx context.Context, q querier, user *models.User) error {
	err := q.QueryRow(ctx,
		`INSERT INTO users (id, name, email, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		user.ID, user.Name, user.Email, user.PasswordHash,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if pgErrorCode(err) == pgUniqueViolation {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUserByID returns the user with the given id
func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	user, err := scanUser(s.pool.QueryRow(ctx, selectUserSQL+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail returns the user registered with email
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	user, err := scanUser(s.pool.QueryRow(ctx, selectUserSQL+` WHERE email = $1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// UpdateUser applies patch and returns the updated user
func (s *Store) UpdateUser(ctx context.Context, id uuid.UUID, patch UserPatch) (*models.User, error) {
	query, args, err := buildUserPatch(id, patch)
	if err != nil {
		return nil, fmt.Errorf("build user update: %w", err)
	}
	s.logger.Debug("executed sql for: update user", "query", query)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	user, err := scanUser(s.pool.QueryRow(ctx, query, args...))
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, ErrUserNotFound
	case pgErrorCode(err) == pgUniqueViolation:
		return nil, ErrEmailTaken
	case err != nil:
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes the user and returns the deleted row
func (s *Store) DeleteUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	user, err := scanUser(s.pool.QueryRow(ctx,
		`DELETE FROM users WHERE id = $1
		 RETURNING id, name, email, password_hash, created_at, updated_at`, id))
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, ErrUserNotFound
	case pgErrorCode(err) == pgForeignKeyViolation:
		return nil, ErrUserInUse
	case err != nil:
		return nil, fmt.Errorf("delete user: %w", err)
	}
	return user, nil
}
