package handlers

import (
	"log/slog"
	"net/http"

	"LIBRARY_BACK-END/internal/dto"
	"LIBRARY_BACK-END/internal/library"
	"LIBRARY_BACK-END/internal/utils"
)

// BookHandler handles book catalogue and lending requests
type BookHandler struct {
	svc    *library.Service
	logger *slog.Logger
}

// NewBookHandler creates a new BookHandler instance
func NewBookHandler(svc *library.Service, logger *slog.Logger) *BookHandler {
	return &BookHandler{svc: svc, logger: logger}
}

// CreateBook adds a book owned by the caller
// @Summary Add a book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBookRequest true "Book data"
// @Success 201 {object} dto.Envelope{data=dto.CreateBookResponse} "Book created"
// @Failure 400 {object} dto.Envelope "Invalid request data"
// @Failure 401 {object} dto.Envelope "Unauthorized"
// @Router /books [post]
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dto.CreateBookRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	book, err := h.svc.AddBook(r.Context(), caller, req)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusCreated, "Book created",
		dto.CreateBookResponse{Book: toBookResponse(book)})
}

// ListBooks returns every book
// @Summary List books
// @Tags books
// @Produce json
// @Success 200 {object} dto.Envelope{data=[]dto.BookResponse}
// @Router /books [get]
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.ListBooks(r.Context())
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, http.StatusOK, "", toBookResponses(books))
}

// GetBook returns one book
// @Summary Get a book
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} dto.Envelope{data=dto.BookResponse}
// @Failure 404 {object} dto.Envelope "Book not found"
// @Router /books/{id} [get]
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.svc.GetBook(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, http.StatusOK, "", toBookResponse(book))
}

// BorrowBook lends an available book to the caller
// @Summary Borrow a book
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 200 {object} dto.Envelope{data=dto.BookResponse}
// @Failure 400 {object} dto.Envelope "Book not found"
// @Failure 401 {object} dto.Envelope "Unauthorized"
// @Failure 409 {object} dto.Envelope "Book is already borrowed"
// @Router /books/borrow/{id} [put]
func (h *BookHandler) BorrowBook(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	book, err := h.svc.BorrowBook(r.Context(), caller, r.PathValue("id"))
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, http.StatusOK, "Book borrowed", toBookResponse(book))
}

// ReturnBook gives a borrowed book back
// @Summary Return a book
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 200 {object} dto.Envelope{data=dto.BookResponse}
// @Failure 400 {object} dto.Envelope "Book not borrowed by the caller"
// @Failure 401 {object} dto.Envelope "Unauthorized"
// @Failure 404 {object} dto.Envelope "Book not found"
// @Failure 409 {object} dto.Envelope "Book is already returned"
// @Router /books/return/{id} [put]
func (h *BookHandler) ReturnBook(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	book, err := h.svc.ReturnBook(r.Context(), caller, r.PathValue("id"))
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, http.StatusOK, "Book returned", toBookResponse(book))
}

// UpdateBook changes the provided fields of a book the caller owns
// @Summary Update a book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Param request body dto.UpdateBookRequest true "Fields to change"
// @Success 200 {object} dto.Envelope{data=dto.BookResponse}
// @Failure 400 {object} dto.Envelope "Invalid data or not the owner"
// @Failure 404 {object} dto.Envelope "Book not found"
// @Failure 409 {object} dto.Envelope "Concurrent modification"
// @Router /books/{id} [put]
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	book, err := h.svc.UpdateBook(r.Context(), caller, r.PathValue("id"), req)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, http.StatusOK, "Book updated", toBookResponse(book))
}

// DeleteBook removes a book the caller owns
// @Summary Delete a book
// @Tags books
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 200 {object} dto.Envelope{data=dto.BookResponse}
// @Failure 400 {object} dto.Envelope "Book not found or not the owner"
// @Router /books/{id} [delete]
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	book, err := h.svc.DeleteBook(r.Context(), caller, r.PathValue("id"))
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, http.StatusOK, "Book deleted", toBookResponse(book))
}
