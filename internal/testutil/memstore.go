// Package testutil provides an in-memory store with the same conflict and
// constraint behaviour as the PostgreSQL store, for tests that should not
// need a database.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"LIBRARY_BACK-END/internal/models"
	"LIBRARY_BACK-END/internal/store"
)

// MemStore keeps users and books in maps guarded by one mutex
type MemStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
	books map[uuid.UUID]models.Book
	seq   int64
}

// NewMemStore creates an empty MemStore
func NewMemStore() *MemStore {
	return &MemStore{
		users: make(map[uuid.UUID]models.User),
		books: make(map[uuid.UUID]models.Book),
	}
}

func cloneBook(b models.Book) *models.Book {
	if b.BorrowedBy != nil {
		id := *b.BorrowedBy
		b.BorrowedBy = &id
	}
	return &b
}

func cloneUser(u models.User) *models.User {
	return &u
}

// stamp returns strictly increasing timestamps so list order is stable
func (m *MemStore) stamp() time.Time {
	m.seq++
	return time.Unix(0, 0).UTC().Add(time.Duration(m.seq) * time.Millisecond)
}

// WithTx stages the writes made by fn and applies them only if fn succeeds
func (m *MemStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memTx{
		m:     m,
		users: make(map[uuid.UUID]models.User),
		books: make(map[uuid.UUID]models.Book),
	}
	if err := fn(tx); err != nil {
		return err
	}
	for id, u := range tx.users {
		m.users[id] = u
	}
	for id, b := range tx.books {
		m.books[id] = b
	}
	return nil
}

type memTx struct {
	m     *MemStore
	users map[uuid.UUID]models.User
	books map[uuid.UUID]models.Book
}

func (t *memTx) userExists(id uuid.UUID) bool {
	if _, ok := t.users[id]; ok {
		return true
	}
	_, ok := t.m.users[id]
	return ok
}

func (t *memTx) InsertUser(ctx context.Context, user *models.User) error {
	for _, all := range []map[uuid.UUID]models.User{t.m.users, t.users} {
		for _, u := range all {
			if u.Email == user.Email {
				return store.ErrEmailTaken
			}
		}
	}
	now := t.m.stamp()
	user.CreatedAt, user.UpdatedAt = now, now
	t.users[user.ID] = *user
	return nil
}

func (t *memTx) InsertBook(ctx context.Context, book *models.Book) error {
	if !t.userExists(book.OwnerID) {
		return store.ErrUserNotFound
	}
	now := t.m.stamp()
	book.Version = 1
	book.CreatedAt, book.UpdatedAt = now, now
	t.books[book.ID] = *cloneBook(*book)
	return nil
}

func (t *memTx) LockUser(ctx context.Context, id uuid.UUID) (bool, error) {
	return t.userExists(id), nil
}

// GetUserByID returns the user with the given id
func (m *MemStore) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return cloneUser(u), nil
}

// GetUserByEmail returns the user registered with email
func (m *MemStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, store.ErrUserNotFound
}

// UpdateUser applies patch and returns the updated user
func (m *MemStore) UpdateUser(ctx context.Context, id uuid.UUID, patch store.UserPatch) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	if patch.Email != nil {
		for otherID, other := range m.users {
			if otherID != id && other.Email == *patch.Email {
				return nil, store.ErrEmailTaken
			}
		}
		u.Email = *patch.Email
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	u.UpdatedAt = m.stamp()
	m.users[id] = u
	return cloneUser(u), nil
}

// DeleteUser removes a user that no book references
func (m *MemStore) DeleteUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	for _, b := range m.books {
		if b.OwnerID == id || b.IsBorrowedBy(id) {
			return nil, store.ErrUserInUse
		}
	}
	delete(m.users, id)
	return cloneUser(u), nil
}

// ListBooks returns every book, oldest first
func (m *MemStore) ListBooks(ctx context.Context) ([]models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	books := make([]models.Book, 0, len(m.books))
	for _, b := range m.books {
		books = append(books, *cloneBook(b))
	}
	sort.Slice(books, func(i, j int) bool {
		return books[i].CreatedAt.Before(books[j].CreatedAt)
	})
	return books, nil
}

// GetBook returns the book with the given id
func (m *MemStore) GetBook(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.books[id]
	if !ok {
		return nil, store.ErrBookNotFound
	}
	return cloneBook(b), nil
}

// BorrowBook marks an Available book as Borrowed by borrower
func (m *MemStore) BorrowBook(ctx context.Context, id, borrower uuid.UUID) (*models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.books[id]
	if !ok || b.Status != models.StatusAvailable {
		return nil, store.ErrConflict
	}
	if _, ok := m.users[borrower]; !ok {
		return nil, store.ErrUserNotFound
	}
	b.Status = models.StatusBorrowed
	b.BorrowedBy = &borrower
	b.Version++
	b.UpdatedAt = m.stamp()
	m.books[id] = b
	return cloneBook(b), nil
}

// ReturnBook makes a book borrowed by borrower Available again
func (m *MemStore) ReturnBook(ctx context.Context, id, borrower uuid.UUID) (*models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.books[id]
	if !ok || b.Status != models.StatusBorrowed || !b.IsBorrowedBy(borrower) {
		return nil, store.ErrConflict
	}
	b.Status = models.StatusAvailable
	b.BorrowedBy = nil
	b.Version++
	b.UpdatedAt = m.stamp()
	m.books[id] = b
	return cloneBook(b), nil
}

// UpdateBook applies patch if the stored version still equals version
func (m *MemStore) UpdateBook(ctx context.Context, id uuid.UUID, version int64, patch store.BookPatch) (*models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.books[id]
	if !ok || b.Version != version {
		return nil, store.ErrConflict
	}
	if patch.Name != nil {
		b.Name = *patch.Name
	}
	if patch.Pages != nil {
		b.Pages = *patch.Pages
	}
	if patch.Author != nil {
		b.Author = *patch.Author
	}
	if patch.Genre != nil {
		b.Genre = *patch.Genre
	}
	b.Version++
	b.UpdatedAt = m.stamp()
	m.books[id] = b
	return cloneBook(b), nil
}

// DeleteBook removes a book owned by ownerID
func (m *MemStore) DeleteBook(ctx context.Context, id, ownerID uuid.UUID) (*models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.books[id]
	if !ok || b.OwnerID != ownerID {
		return nil, store.ErrBookNotFound
	}
	delete(m.books, id)
	return cloneBook(b), nil
}

// BumpBookVersion simulates a write by another request
func (m *MemStore) BumpBookVersion(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if b, ok := m.books[id]; ok {
		b.Version++
		m.books[id] = b
	}
}
