package dto

// CreateBookRequest represents the payload to add a book
type CreateBookRequest struct {
	Name   string `json:"name" validate:"required,min=2,max=40"`
	Pages  int    `json:"pages" validate:"required,gt=0"`
	Author string `json:"author" validate:"required"`
	Genre  string `json:"genre" validate:"required,oneof=war technology sport history politics"`
}

// UpdateBookRequest represents fields the owner may change.
// Owner, status and borrower change only through create, borrow and return.
type UpdateBookRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=2,max=40"`
	Pages  *int    `json:"pages" validate:"omitempty,gt=0"`
	Author *string `json:"author" validate:"omitempty,min=1"`
	Genre  *string `json:"genre" validate:"omitempty,oneof=war technology sport history politics"`
}

// IsEmpty reports whether the request changes nothing
func (r UpdateBookRequest) IsEmpty() bool {
	return r.Name == nil && r.Pages == nil && r.Author == nil && r.Genre == nil
}

// BookResponse represents a book object in responses
type BookResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Pages      int     `json:"pages"`
	Author     string  `json:"author"`
	Genre      string  `json:"genre"`
	Status     string  `json:"status"`
	Owner      string  `json:"owner"`
	BorrowedBy *string `json:"borrowed_by"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

// CreateBookResponse wraps the created book
type CreateBookResponse struct {
	Book BookResponse `json:"book"`
}
