package store

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LIBRARY_BACK-END/internal/models"
)

// newTestStore connects to LIBRARY_TEST_DATABASE_URL and skips when unset
func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("LIBRARY_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("LIBRARY_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err, "error connecting to DB pool in test setup")
	t.Cleanup(pool.Close)

	require.NoError(t, Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE books, users`)
	require.NoError(t, err)

	return New(pool, nil, 5*time.Second)
}

func givenUser(t *testing.T, s *Store, email string) *models.User {
	t.Helper()
	u := &models.User{ID: uuid.New(), Name: "Tester", Email: email, PasswordHash: "hash"}
	require.NoError(t, s.WithTx(context.Background(), func(tx Tx) error {
		return tx.InsertUser(context.Background(), u)
	}))
	return u
}

func givenBook(t *testing.T, s *Store, owner uuid.UUID) *models.Book {
	t.Helper()
	b := &models.Book{
		ID:      uuid.New(),
		Name:    "Dune",
		Pages:   412,
		Author:  "Herbert",
		Genre:   models.GenreSport,
		Status:  models.StatusAvailable,
		OwnerID: owner,
	}
	require.NoError(t, s.WithTx(context.Background(), func(tx Tx) error {
		return tx.InsertBook(context.Background(), b)
	}))
	return b
}

func TestStore_DuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	givenUser(t, s, "ada@x.com")

	err := s.WithTx(context.Background(), func(tx Tx) error {
		return tx.InsertUser(context.Background(), &models.User{
			ID: uuid.New(), Name: "Ada", Email: "ada@x.com", PasswordHash: "hash",
		})
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestStore_TxRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	u := &models.User{ID: uuid.New(), Name: "Ada", Email: "ada@x.com", PasswordHash: "hash"}
	boom := errors.New("boom")

	err := s.WithTx(context.Background(), func(tx Tx) error {
		require.NoError(t, tx.InsertUser(context.Background(), u))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.GetUserByID(context.Background(), u.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestStore_BorrowAndReturn(t *testing.T) {
	s := newTestStore(t)
	owner := givenUser(t, s, "owner@x.com")
	reader := givenUser(t, s, "reader@x.com")
	book := givenBook(t, s, owner.ID)

	borrowed, err := s.BorrowBook(context.Background(), book.ID, reader.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusBorrowed, borrowed.Status)
	assert.True(t, borrowed.IsBorrowedBy(reader.ID))

	_, err = s.BorrowBook(context.Background(), book.ID, owner.ID)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = s.ReturnBook(context.Background(), book.ID, owner.ID)
	assert.ErrorIs(t, err, ErrConflict)

	returned, err := s.ReturnBook(context.Background(), book.ID, reader.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAvailable, returned.Status)
	assert.Nil(t, returned.BorrowedBy)
}

func TestStore_ConcurrentBorrow_ExactlyOneWins(t *testing.T) {
	s := newTestStore(t)
	owner := givenUser(t, s, "owner@x.com")
	book := givenBook(t, s, owner.ID)

	const readers = 8
	ids := make([]uuid.UUID, readers)
	for i := range ids {
		ids[i] = givenUser(t, s, uuid.NewString()+"@x.com").ID
	}

	var wins, conflicts atomic.Int32
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, err := s.BorrowBook(context.Background(), book.ID, id)
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, ErrConflict):
				conflicts.Add(1)
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, int32(readers-1), conflicts.Load())
}

func TestStore_UpdateBookChecksVersion(t *testing.T) {
	s := newTestStore(t)
	owner := givenUser(t, s, "owner@x.com")
	book := givenBook(t, s, owner.ID)
	name := "Children of Dune"

	updated, err := s.UpdateBook(context.Background(), book.ID, book.Version, BookPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, book.Version+1, updated.Version)

	_, err = s.UpdateBook(context.Background(), book.ID, book.Version, BookPatch{Name: &name})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestStore_DeleteUserInUse(t *testing.T) {
	s := newTestStore(t)
	owner := givenUser(t, s, "owner@x.com")
	givenBook(t, s, owner.ID)

	_, err := s.DeleteUser(context.Background(), owner.ID)
	assert.ErrorIs(t, err, ErrUserInUse)
}
