package handlers

import (
	"time"

	"LIBRARY_BACK-END/internal/dto"
	"LIBRARY_BACK-END/internal/models"
)

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

func toBookResponse(b *models.Book) dto.BookResponse {
	resp := dto.BookResponse{
		ID:        b.ID.String(),
		Name:      b.Name,
		Pages:     b.Pages,
		Author:    b.Author,
		Genre:     string(b.Genre),
		Status:    string(b.Status),
		Owner:     b.OwnerID.String(),
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.Format(time.RFC3339),
	}
	if b.BorrowedBy != nil {
		borrower := b.BorrowedBy.String()
		resp.BorrowedBy = &borrower
	}
	return resp
}

func toBookResponses(books []models.Book) []dto.BookResponse {
	out := make([]dto.BookResponse, 0, len(books))
	for i := range books {
		out = append(out, toBookResponse(&books[i]))
	}
	return out
}
