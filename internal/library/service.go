// Package library holds the register/login, book and user operations and
// the ownership and borrowing rules between them.
package library

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"LIBRARY_BACK-END/internal/models"
	"LIBRARY_BACK-END/internal/store"
)

// Store is the persistence the service needs; *store.Store implements it
type Store interface {
	WithTx(ctx context.Context, fn func(tx store.Tx) error) error

	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, patch store.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) (*models.User, error)

	ListBooks(ctx context.Context) ([]models.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (*models.Book, error)
	BorrowBook(ctx context.Context, id, borrower uuid.UUID) (*models.Book, error)
	ReturnBook(ctx context.Context, id, borrower uuid.UUID) (*models.Book, error)
	UpdateBook(ctx context.Context, id uuid.UUID, version int64, patch store.BookPatch) (*models.Book, error)
	DeleteBook(ctx context.Context, id, ownerID uuid.UUID) (*models.Book, error)
}

// TokenFunc signs an access token for a user
type TokenFunc func(userID uuid.UUID) (string, error)

// Service implements the library operations
type Service struct {
	store      Store
	issueToken TokenFunc
	logger     *slog.Logger
	bcryptCost int
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the logger for the Service
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithBcryptCost overrides bcrypt.DefaultCost
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

// NewService creates a new Service instance
func NewService(st Store, issueToken TokenFunc, opts ...Option) *Service {
	s := &Service{
		store:      st,
		issueToken: issueToken,
		logger:     slog.Default(),
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
