package store

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"

	"LIBRARY_BACK-END/internal/models"
)

const (
	tableUsers      = "users"
	tableBooks      = "books"
	colID           = "id"
	colVersion      = "version"
	colUpdatedAt    = "updated_at"
	dialectPostgres = "postgres"
)

var (
	dialect = goqu.Dialect(dialectPostgres)

	userColumns = []any{"id", "name", "email", "password_hash", "created_at", "updated_at"}
	bookColumns = []any{"id", "name", "pages", "author", "genre", "status", "owner_id", "borrowed_by", "version", "created_at", "updated_at"}
)

// BookPatch lists the book fields an owner may change; nil means unchanged
type BookPatch struct {
	Name   *string
	Pages  *int
	Author *string
	Genre  *models.Genre
}

// IsEmpty reports whether the patch changes nothing
func (p BookPatch) IsEmpty() bool {
	return p.Name == nil && p.Pages == nil && p.Author == nil && p.Genre == nil
}

// UserPatch lists the user fields that may change; nil means unchanged
type UserPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

// IsEmpty reports whether the patch changes nothing
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.PasswordHash == nil
}

// buildBookPatch builds an UPDATE that only applies if the row still has
// the version the caller read.
func buildBookPatch(id uuid.UUID, version int64, p BookPatch) (string, []any, error) {
	rec := goqu.Record{
		colVersion:   goqu.L("version + 1"),
		colUpdatedAt: goqu.L("now()"),
	}
	if p.Name != nil {
		rec["name"] = *p.Name
	}
	if p.Pages != nil {
		rec["pages"] = *p.Pages
	}
	if p.Author != nil {
		rec["author"] = *p.Author
	}
	if p.Genre != nil {
		rec["genre"] = string(*p.Genre)
	}

	return dialect.Update(tableBooks).
		Prepared(true).
		Set(rec).
		Where(
			goqu.C(colID).Eq(id.String()),
			goqu.C(colVersion).Eq(version),
		).
		Returning(bookColumns...).
		ToSQL()
}

func buildUserPatch(id uuid.UUID, p UserPatch) (string, []any, error) {
	rec := goqu.Record{colUpdatedAt: goqu.L("now()")}
	if p.Name != nil {
		rec["name"] = *p.Name
	}
	if p.Email != nil {
		rec["email"] = *p.Email
	}
	if p.PasswordHash != nil {
		rec["password_hash"] = *p.PasswordHash
	}

	return dialect.Update(tableUsers).
		Prepared(true).
		Set(rec).
		Where(goqu.C(colID).Eq(id.String())).
		Returning(userColumns...).
		ToSQL()
}
