package library

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"LIBRARY_BACK-END/internal/dto"
	"LIBRARY_BACK-END/internal/models"
	"LIBRARY_BACK-END/internal/store"
)

// AddBook creates a book owned by caller
func (s *Service) AddBook(ctx context.Context, caller uuid.UUID, req dto.CreateBookRequest) (*models.Book, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Author = strings.TrimSpace(req.Author)
	req.Genre = strings.TrimSpace(req.Genre)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	book := &models.Book{
		ID:      uuid.New(),
		Name:    req.Name,
		Pages:   req.Pages,
		Author:  req.Author,
		Genre:   models.Genre(req.Genre),
		Status:  models.StatusAvailable,
		OwnerID: caller,
	}

	err := s.store.WithTx(ctx, func(tx store.Tx) error {
		found, err := tx.LockUser(ctx, caller)
		if err != nil {
			return err
		}
		if !found {
			return errUnauthorized()
		}
		return tx.InsertBook(ctx, book)
	})
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, errUnauthorized()
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("book added", "book_id", book.ID, "owner_id", caller)
	return book, nil
}

// ListBooks returns every book
func (s *Service) ListBooks(ctx context.Context) ([]models.Book, error) {
	return s.store.ListBooks(ctx)
}

// GetBook returns one book
func (s *Service) GetBook(ctx context.Context, rawID string) (*models.Book, error) {
	id, err := parseID(rawID, errInvalidBookID(http.StatusNotFound))
	if err != nil {
		return nil, err
	}

	book, err := s.store.GetBook(ctx, id)
	if errors.Is(err, store.ErrBookNotFound) {
		return nil, errInvalidBookID(http.StatusNotFound)
	}
	return book, err
}

// BorrowBook lends an Available book to caller
func (s *Service) BorrowBook(ctx context.Context, caller uuid.UUID, rawID string) (*models.Book, error) {
	id, err := parseID(rawID, errInvalidBookID(http.StatusBadRequest))
	if err != nil {
		return nil, err
	}

	book, err := s.store.GetBook(ctx, id)
	if errors.Is(err, store.ErrBookNotFound) {
		return nil, errInvalidBookID(http.StatusBadRequest)
	}
	if err != nil {
		return nil, err
	}
	if book.Status != models.StatusAvailable {
		return nil, newError(http.StatusConflict, "Book is already borrowed")
	}

	borrowed, err := s.store.BorrowBook(ctx, id, caller)
	switch {
	case errors.Is(err, store.ErrConflict):
		// lost the race against another borrower
		return nil, newError(http.StatusConflict, "Book is already borrowed")
	case errors.Is(err, store.ErrUserNotFound):
		return nil, errUnauthorized()
	case err != nil:
		return nil, err
	}

	s.logger.Info("book borrowed", "book_id", id, "borrower_id", caller)
	return borrowed, nil
}

// ReturnBook hands a borrowed book back; only its borrower may do so
func (s *Service) ReturnBook(ctx context.Context, caller uuid.UUID, rawID string) (*models.Book, error) {
	id, err := parseID(rawID, errInvalidBookID(http.StatusNotFound))
	if err != nil {
		return nil, err
	}

	book, err := s.store.GetBook(ctx, id)
	if errors.Is(err, store.ErrBookNotFound) {
		return nil, errInvalidBookID(http.StatusNotFound)
	}
	if err != nil {
		return nil, err
	}

	if book.BorrowedBy == nil {
		return nil, newError(http.StatusBadRequest, "Book is not currently borrowed")
	}
	if !book.IsBorrowedBy(caller) {
		return nil, newError(http.StatusBadRequest, "Book can not be returned by another person.").
			with("userId", "Current user is not the borrower")
	}
	if book.Status != models.StatusBorrowed {
		return nil, newError(http.StatusConflict, "Book is already returned")
	}

	returned, err := s.store.ReturnBook(ctx, id, caller)
	if errors.Is(err, store.ErrConflict) {
		return nil, newError(http.StatusConflict, "Book is already returned")
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("book returned", "book_id", id, "borrower_id", caller)
	return returned, nil
}

// UpdateBook applies the owner's partial update
func (s *Service) UpdateBook(ctx context.Context, caller uuid.UUID, rawID string, req dto.UpdateBookRequest) (*models.Book, error) {
	id, err := parseID(rawID, errInvalidBookID(http.StatusNotFound))
	if err != nil {
		return nil, err
	}

	book, err := s.store.GetBook(ctx, id)
	if errors.Is(err, store.ErrBookNotFound) {
		return nil, errInvalidBookID(http.StatusNotFound)
	}
	if err != nil {
		return nil, err
	}
	if book.OwnerID != caller {
		return nil, newError(http.StatusBadRequest, "Book can only be updated by the owner.").
			with("userId", "Current user is not the owner")
	}

	trimPtr(req.Name)
	trimPtr(req.Author)
	trimPtr(req.Genre)
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return book, nil
	}

	patch := store.BookPatch{Name: req.Name, Pages: req.Pages, Author: req.Author}
	if req.Genre != nil {
		genre := models.Genre(*req.Genre)
		patch.Genre = &genre
	}

	updated, err := s.store.UpdateBook(ctx, id, book.Version, patch)
	if errors.Is(err, store.ErrConflict) {
		return nil, newError(http.StatusConflict, "Book was modified by another request")
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteBook removes a book; only its owner may do so
func (s *Service) DeleteBook(ctx context.Context, caller uuid.UUID, rawID string) (*models.Book, error) {
	id, err := parseID(rawID, errInvalidBookID(http.StatusBadRequest))
	if err != nil {
		return nil, err
	}

	book, err := s.store.GetBook(ctx, id)
	if errors.Is(err, store.ErrBookNotFound) {
		return nil, errInvalidBookID(http.StatusBadRequest)
	}
	if err != nil {
		return nil, err
	}
	if book.OwnerID != caller {
		return nil, newError(http.StatusBadRequest, "Books can only be deleted by their owner.").
			with("userId", "Current user is not the owner")
	}

	deleted, err := s.store.DeleteBook(ctx, id, caller)
	if errors.Is(err, store.ErrBookNotFound) {
		return nil, errInvalidBookID(http.StatusBadRequest)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("book deleted", "book_id", id, "owner_id", caller)
	return deleted, nil
}

func trimPtr(p *string) {
	if p != nil {
		*p = strings.TrimSpace(*p)
	}
}
