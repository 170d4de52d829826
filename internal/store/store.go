// Package store persists users and books in PostgreSQL through a pgx pool.
package store

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"LIBRARY_BACK-END/internal/models"
)

// Postgres error codes the store translates
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrBookNotFound = errors.New("book not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserInUse    = errors.New("user is referenced by books")
	// ErrConflict means a conditional write matched no row because the
	// record changed since it was read.
	ErrConflict = errors.New("concurrent modification")
)

//go:embed schema.sql
var schemaSQL string

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Tx exposes the writes that must share a transaction
type Tx interface {
	InsertUser(ctx context.Context, user *models.User) error
	InsertBook(ctx context.Context, book *models.Book) error
	LockUser(ctx context.Context, id uuid.UUID) (bool, error)
}

// Store is the PostgreSQL implementation of the library repository
type Store struct {
	pool         *pgxpool.Pool
	logger       *slog.Logger
	queryTimeout time.Duration
}

// New creates a new Store instance
func New(pool *pgxpool.Pool, logger *slog.Logger, queryTimeout time.Duration) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{pool: pool, logger: logger, queryTimeout: queryTimeout}
}

// Migrate creates the tables and indexes if they do not exist
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Ping checks database connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

// WithTx runs fn in a transaction, committing only if fn returns nil
func (s *Store) WithTx(ctx context.Context, fn func(tx Tx) error) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		// no-op after a successful commit
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			s.logger.Warn("failed to roll back transaction", "error", rbErr)
		}
	}()

	if err := fn(&pgTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) InsertUser(ctx context.Context, user *models.User) error {
	return insertUser(ctx, t.tx, user)
}

func (t *pgTx) InsertBook(ctx context.Context, book *models.Book) error {
	return insertBook(ctx, t.tx, book)
}

// LockUser takes a share lock on the user row so it cannot be deleted
// before the transaction commits.
func (t *pgTx) LockUser(ctx context.Context, id uuid.UUID) (bool, error) {
	var found uuid.UUID
	err := t.tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR SHARE`, id).Scan(&found)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lock user: %w", err)
	}
	return true, nil
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
