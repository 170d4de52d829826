package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"LIBRARY_BACK-END/internal/models"
)

const bookColumnList = `id, name, pages, author, genre, status, owner_id, borrowed_by, version, created_at, updated_at`

func scanBook(row pgx.Row) (*models.Book, error) {
	var (
		b             models.Book
		genre, status string
	)
	err := row.Scan(&b.ID, &b.Name, &b.Pages, &b.Author, &genre, &status,
		&b.OwnerID, &b.BorrowedBy, &b.Version, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Genre = models.Genre(genre)
	b.Status = models.BookStatus(status)
	return &b, nil
}

func insertBook(ctx context.Context, q querier, book *models.Book) error {
	err := q.QueryRow(ctx,
		`INSERT INTO books (id, name, pages, author, genre, status, owner_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING version, created_at, updated_at`,
		book.ID, book.Name, book.Pages, book.Author, string(book.Genre), string(book.Status), book.OwnerID,
	).Scan(&book.Version, &book.CreatedAt, &book.UpdatedAt)
	if pgErrorCode(err) == pgForeignKeyViolation {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// ListBooks returns every book, oldest first
func (s *Store) ListBooks(ctx context.Context) ([]models.Book, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.pool.Query(ctx, `SELECT `+bookColumnList+` FROM books ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// GetBook returns the book with the given id
func (s *Store) GetBook(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	book, err := scanBook(s.pool.QueryRow(ctx, `SELECT `+bookColumnList+` FROM books WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	return book, nil
}

// BorrowBook marks an Available book as Borrowed by borrower.
// It returns ErrConflict when the book is no longer Available.
func (s *Store) BorrowBook(ctx context.Context, id, borrower uuid.UUID) (*models.Book, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	book, err := scanBook(s.pool.QueryRow(ctx,
		`UPDATE books
		    SET status = 'Borrowed', borrowed_by = $2, version = version + 1, updated_at = now()
		  WHERE id = $1 AND status = 'Available'
		 RETURNING `+bookColumnList,
		id, borrower))
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		s.logger.Info("concurrency conflict detected", "action", "borrow", "book_id", id)
		return nil, ErrConflict
	case pgErrorCode(err) == pgForeignKeyViolation:
		return nil, ErrUserNotFound
	case err != nil:
		return nil, fmt.Errorf("borrow book: %w", err)
	}
	return book, nil
}

// ReturnBook makes a book borrowed by borrower Available again.
// It returns ErrConflict when borrower no longer holds the book.
func (s *Store) ReturnBook(ctx context.Context, id, borrower uuid.UUID) (*models.Book, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	book, err := scanBook(s.pool.QueryRow(ctx,
		`UPDATE books
		    SET status = 'Available', borrowed_by = NULL, version = version + 1, updated_at = now()
		  WHERE id = $1 AND status = 'Borrowed' AND borrowed_by = $2
		 RETURNING `+bookColumnList,
		id, borrower))
	if errors.Is(err, pgx.ErrNoRows) {
		s.logger.Info("concurrency conflict detected", "action", "return", "book_id", id)
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("return book: %w", err)
	}
	return book, nil
}

// UpdateBook applies patch if the stored version still equals version
func (s *Store) UpdateBook(ctx context.Context, id uuid.UUID, version int64, patch BookPatch) (*models.Book, error) {
	query, args, err := buildBookPatch(id, version, patch)
	if err != nil {
		return nil, fmt.Errorf("build book update: %w", err)
	}
	s.logger.Debug("executed sql for: update book", "query", query)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	book, err := scanBook(s.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		s.logger.Info("concurrency conflict detected", "action", "update", "book_id", id, "expected_version", version)
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}
	return book, nil
}

// DeleteBook removes a book owned by ownerID and returns the deleted row
func (s *Store) DeleteBook(ctx context.Context, id, ownerID uuid.UUID) (*models.Book, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	book, err := scanBook(s.pool.QueryRow(ctx,
		`DELETE FROM books WHERE id = $1 AND owner_id = $2 RETURNING `+bookColumnList,
		id, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete book: %w", err)
	}
	return book, nil
}
