package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libreria-gestion/backoffice/internal/domain/models"
)

var fixedNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

// bookStore is an in-memory stand-in for the remote books resource.
type bookStore struct {
	mu      sync.Mutex
	books   []models.Book
	nextID  int
	listErr error
	saveErr error
	delErr  error
	block   chan struct{}

	lists   int
	created []models.Book
	updated []models.Book
	deleted []models.ID
}

func newBookStore(books ...models.Book) *bookStore {
	return &bookStore{books: books, nextID: 100}
}

func (s *bookStore) List(ctx context.Context) ([]models.Book, error) {
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]models.Book(nil), s.books...), nil
}

func (s *bookStore) Create(_ context.Context, draft models.Book) (models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return models.Book{}, s.saveErr
	}
	draft.ID = models.ID(strconv.Itoa(s.nextID))
	s.nextID++
	s.created = append(s.created, draft)
	s.books = append(s.books, draft)
	return draft, nil
}

func (s *bookStore) Update(_ context.Context, id models.ID, draft models.Book) (models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return models.Book{}, s.saveErr
	}
	s.updated = append(s.updated, draft)
	for i := range s.books {
		if s.books[i].ID == id {
			s.books[i] = draft
			return draft, nil
		}
	}
	return models.Book{}, fmt.Errorf("update: %w", models.ErrNotFound)
}

func (s *bookStore) Delete(_ context.Context, id models.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.delErr != nil {
		return s.delErr
	}
	for i := range s.books {
		if s.books[i].ID == id {
			s.books = append(s.books[:i], s.books[i+1:]...)
			s.deleted = append(s.deleted, id)
			return nil
		}
	}
	return fmt.Errorf("delete: %w", models.ErrNotFound)
}

// updateOnly hides Create and Delete, like the inventory resource.
type updateOnly struct{ inner *bookStore }

func (u updateOnly) List(ctx context.Context) ([]models.Book, error) { return u.inner.List(ctx) }
func (u updateOnly) Update(ctx context.Context, id models.ID, d models.Book) (models.Book, error) {
	return u.inner.Update(ctx, id, d)
}

type supplierSource struct {
	suppliers []models.Supplier
	err       error
}

func (s supplierSource) List(context.Context) ([]models.Supplier, error) {
	return s.suppliers, s.err
}

func sampleBooks() []models.Book {
	return []models.Book{
		{ID: "1", Title: "Dune", Author: "Herbert", Category: "Sci-Fi", Price: 25000, SupplierID: "7"},
		{ID: "2", Title: "1984", Author: "Orwell", Category: "Dystopian", Price: 18000, SupplierID: "8"},
	}
}

func bookFields(b models.Book, _ *Related) []string {
	return []string{b.Title, b.Author, b.Category}
}

func newBookVM(store Store[models.Book], opts ...func(*Config[models.Book])) *ListViewModel[models.Book] {
	cfg := Config[models.Book]{
		Kind:      models.KindBook,
		Store:     store,
		Fields:    bookFields,
		NewDraft:  func(time.Time) models.Book { return models.Book{} },
		Now:       func() time.Time { return fixedNow },
		NoticeTTL: time.Hour,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return New(cfg)
}

func TestFilter_IdentityOnEmptyTerm(t *testing.T) {
	books := sampleBooks()
	got := Filter(books, nil, "", bookFields)
	assert.Equal(t, books, got)
}

func TestFilter_CaseInsensitiveSubstring(t *testing.T) {
	books := sampleBooks()

	got := Filter(books, nil, "dun", bookFields)
	require.Len(t, got, 1)
	assert.Equal(t, "Dune", got[0].Title)

	got = Filter(books, nil, "ORWELL", bookFields)
	require.Len(t, got, 1)
	assert.Equal(t, "1984", got[0].Title)

	assert.Empty(t, Filter(books, nil, "tolkien", bookFields))
	assert.Len(t, Filter(books, nil, "i", bookFields), 2)
}

func TestLoad_PrimaryAndRelated(t *testing.T) {
	store := newBookStore(sampleBooks()...)
	suppliers := supplierSource{suppliers: []models.Supplier{{ID: "7", Name: "Planeta"}}}
	vm := newBookVM(store, func(c *Config[models.Book]) {
		c.Related = []Relation{RelateSuppliers(suppliers)}
	})

	assert.Equal(t, PhaseIdle, vm.Snapshot().Phase)
	require.NoError(t, vm.Load(context.Background()))

	st := vm.Snapshot()
	assert.Equal(t, PhaseReady, st.Phase)
	assert.False(t, st.Loading)
	assert.Len(t, st.Records, 2)
	assert.Len(t, st.Filtered, 2)
	assert.Equal(t, suppliers.suppliers, st.Related.Suppliers)
	assert.Nil(t, st.Error)
	assert.Equal(t, ModalNone, st.Modal)
}

func TestLoad_RelatedFailureStillReady(t *testing.T) {
	store := newBookStore(sampleBooks()...)
	suppliers := supplierSource{err: fmt.Errorf("list: %w", models.ErrNetwork)}
	vm := newBookVM(store, func(c *Config[models.Book]) {
		c.Related = []Relation{RelateSuppliers(suppliers)}
	})

	require.NoError(t, vm.Load(context.Background()))

	st := vm.Snapshot()
	assert.Equal(t, PhaseReady, st.Phase)
	assert.Len(t, st.Records, 2)
	require.NotNil(t, st.Error)
	assert.Equal(t, OpLoadRelated, st.Error.Op)
	assert.Equal(t, models.ErrorNetwork, st.Error.Kind)
	assert.Equal(t, "Could not load suppliers", st.Error.Message)
	require.Len(t, st.RelatedFailures, 1)
	assert.Equal(t, models.KindSupplier, st.RelatedFailures[0].Related)
}

func TestLoad_PrimaryFailure(t *testing.T) {
	store := newBookStore()
	store.listErr = fmt.Errorf("list: %w", models.ErrNetwork)
	vm := newBookVM(store)

	err := vm.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNetwork)

	st := vm.Snapshot()
	assert.Equal(t, PhaseFailed, st.Phase)
	require.NotNil(t, st.Error)
	assert.Equal(t, OpLoad, st.Error.Op)
	assert.Equal(t, "Could not load books", st.Error.Message)
	assert.Empty(t, st.Records)

	vm.DismissError()
	assert.Nil(t, vm.Snapshot().Error)
}

func TestLoad_FailedScreenCanReload(t *testing.T) {
	store := newBookStore(sampleBooks()...)
	store.listErr = models.ErrUnknown
	vm := newBookVM(store)

	require.Error(t, vm.Load(context.Background()))
	store.mu.Lock()
	store.listErr = nil
	store.mu.Unlock()

	require.NoError(t, vm.Load(context.Background()))
	st := vm.Snapshot()
	assert.Equal(t, PhaseReady, st.Phase)
	assert.Nil(t, st.Error)
	assert.Len(t, st.Records, 2)
}

func TestSetFilterTerm(t *testing.T) {
	vm := newBookVM(newBookStore(sampleBooks()...))
	require.NoError(t, vm.Load(context.Background()))

	vm.SetFilterTerm("dun")
	filtered := vm.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, "Dune", filtered[0].Title)
	assert.Equal(t, "dun", vm.Snapshot().FilterTerm)
	assert.Len(t, vm.Snapshot().Records, 2)

	vm.SetFilterTerm("")
	assert.Len(t, vm.Filtered(), 2)
}

func TestSubmit_CreateThenReload(t *testing.T) {
	store := newBookStore(sampleBooks()...)
	vm := newBookVM(store)
	require.NoError(t, vm.Load(context.Background()))

	require.NoError(t, vm.BeginCreate())
	st := vm.Snapshot()
	assert.Equal(t, ModalEdit, st.Modal)
	assert.True(t, st.Selected.ID.IsZero())

	draft := models.Book{Title: "Fahrenheit 451", Author: "Bradbury", Category: "Sci-Fi", Price: 20000}
	require.NoError(t, vm.Submit(context.Background(), draft))

	require.Len(t, store.created, 1)
	st = vm.Snapshot()
	assert.Equal(t, PhaseReady, st.Phase)
	assert.Equal(t, ModalNone, st.Modal)
	assert.Equal(t, "Book created successfully!", st.Notice)
	assert.Equal(t, models.Book{}, st.Selected)
	require.Len(t, st.Records, 3)

	var found bool
	for _, b := range st.Records {
		if b.Title == draft.Title {
			found = true
			assert.False(t, b.ID.IsZero())
			assert.Equal(t, draft.Author, b.Author)
		}
	}
	assert.True(t, found, "created record should be in the reloaded collection")
}

func TestSubmit_ReloadsPrimaryOnly(t *testing.T) {
	store := newBookStore(sampleBooks()...)
	calls := 0
	counting := Relation{
		Kind: models.KindSupplier,
		fetch: func(context.Context) (func(*Related), error) {
			calls++
			return func(*Related) {}, nil
		},
	}
	vm := newBookVM(store, func(c *Config[models.Book]) { c.Related = []Relation{counting} })

	require.NoError(t, vm.Load(context.Background()))
	require.NoError(t, vm.Submit(context.Background(), models.Book{Title: "New"}))

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, store.lists)
}

func TestSubmit_UnmodifiedEditIsIdempotent(t *testing.T) {
	store := newBookStore(sampleBooks()...)
	vm := newBookVM(store)
	require.NoError(t, vm.Load(context.Background()))

	original := vm.Records()[0]
	require.NoError(t, vm.BeginEdit(original))
	assert.Equal(t, original, vm.Snapshot().Selected)

	require.NoError(t, vm.Submit(context.Background(), vm.Snapshot().Selected))

	require.Len(t, store.updated, 1)
	assert.Equal(t, original, store.updated[0])
	assert.Equal(t, original, vm.Records()[0])
	assert.Equal(t, "Book updated successfully!", vm.Snapshot().Notice)
}

func TestSubmit_FailureKeepsModalAndDraft(t *testing.T) {
	store := newBookStore(sampleBooks()...)
	vm := newBookVM(store)
	require.NoError(t, vm.Load(context.Background()))

	store.saveErr = fmt.Errorf("create: %w", models.ErrValidation)
	require.NoError(t, vm.BeginCreate())
	draft := models.Book{Title: "Bad"}
	err := vm.Submit(context.Background(), draft)
	assert.ErrorIs(t, err, models.ErrValidation)

	st := vm.Snapshot()
	assert.Equal(t, PhaseReady, st.Phase)
	assert.Equal(t, ModalEdit, st.Modal)
	assert.Equal(t, draft, st.Selected)
	require.NotNil(t, st.Error)
	assert.Equal(t, OpSave, st.Error.Op)
	assert.Equal(t, models.ErrorValidation, st.Error.Kind)
	assert.Equal(t, "Error saving the book", st.Error.Message)
	assert.Empty(t, st.Notice)
	assert.Equal(t, 1, store.lists, "no reload after a failed mutation")
}

func TestSubmit_CheckRejectsBeforeNetwork(t *testing.T) {
	store := newBookStore(sampleBooks()...)
	vm := newBookVM(store, func(c *Config[models.Book]) {
		c.Check = func(b models.Book) error {
			if b.Price < 0 {
				return fmt.Errorf("price: %w", models.ErrValidation)
			}
			return nil
		}
	})

	err := vm.Submit(context.Background(), models.Book{Title: "x", Price: -1})
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, store.created)
}

func TestSubmit_PrepareAdjustsPayload(t *testing.T) {
	store := newBookStore(sampleBooks()...)
	vm := newBookVM(store, func(c *Config[models.Book]) {
		c.Prepare = func(b models.Book, now time.Time) models.Book {
			b.Category = now.Format("2006")
			return b
		}
	})

	require.NoError(t, vm.Submit(context.Background(), models.Book{Title: "x"}))
	require.Len(t, store.created, 1)
	assert.Equal(t, "2026", store.created[0].Category)
}

func TestConfirmDelete_RemovesExactlyOne(t *testing.T) {
	store := newBookStore(sampleBooks()...)
	vm := newBookVM(store)
	require.NoError(t, vm.Load(context.Background()))

	before := vm.Records()
	target := before[1]
	require.NoError(t, vm.BeginDelete(target))
	assert.Equal(t, ModalConfirmDelete, vm.Snapshot().Modal)

	require.NoError(t, vm.ConfirmDelete(context.Background()))

	after := vm.Records()
	assert.Len(t, after, len(before)-1)
	for _, b := range after {
		assert.NotEqual(t, target.ID, b.ID)
	}
	st := vm.Snapshot()
	assert.Equal(t, ModalNone, st.Modal)
	assert.Equal(t, "Book deleted successfully!", st.Notice)
}

func TestConfirmDelete_FailureKeepsModal(t *testing.T) {
	store := newBookStore(sampleBooks()...)
	vm := newBookVM(store)
	require.NoError(t, vm.Load(context.Background()))

	require.NoError(t, vm.BeginDelete(models.Book{ID: "404", Title: "Gone"}))
	err := vm.ConfirmDelete(context.Background())
	assert.ErrorIs(t, err, models.ErrNotFound)

	st := vm.Snapshot()
	assert.Equal(t, ModalConfirmDelete, st.Modal)
	require.NotNil(t, st.Error)
	assert.Equal(t, "Error deleting the book", st.Error.Message)
	assert.Equal(t, models.ErrorNotFound, st.Error.Kind)
	assert.Len(t, st.Records, 2)
}

func TestConfirmDelete_NothingSelected(t *testing.T) {
	vm := newBookVM(newBookStore(sampleBooks()...))
	assert.ErrorIs(t, vm.ConfirmDelete(context.Background()), ErrNoPendingDelete)
}

func TestConfirmDelete_RequiresConfirmationDialog(t *testing.T) {
	store := newBookStore(sampleBooks()...)
	vm := newBookVM(store)
	require.NoError(t, vm.Load(context.Background()))

	require.NoError(t, vm.BeginEdit(vm.Records()[0]))
	assert.ErrorIs(t, vm.ConfirmDelete(context.Background()), ErrNoPendingDelete)

	st := vm.Snapshot()
	assert.Equal(t, ModalEdit, st.Modal)
	assert.Nil(t, st.Error)
	assert.Len(t, st.Records, 2)
	assert.Empty(t, store.deleted)

	require.NoError(t, vm.BeginDelete(vm.Records()[0]))
	vm.Cancel()
	assert.ErrorIs(t, vm.ConfirmDelete(context.Background()), ErrNoPendingDelete)
	assert.Empty(t, store.deleted)
}

func TestCancel_DiscardsSelection(t *testing.T) {
	store := newBookStore(sampleBooks()...)
	vm := newBookVM(store)
	require.NoError(t, vm.Load(context.Background()))

	require.NoError(t, vm.BeginEdit(sampleBooks()[0]))
	vm.Cancel()

	st := vm.Snapshot()
	assert.Equal(t, ModalNone, st.Modal)
	assert.Equal(t, models.Book{}, st.Selected)
	assert.Equal(t, 1, store.lists)
	assert.Empty(t, store.updated)
}

func TestBeginEdit_Normalizes(t *testing.T) {
	vm := newBookVM(newBookStore(), func(c *Config[models.Book]) {
		c.Normalize = func(b models.Book, _ time.Time) models.Book {
			b.Category = "normalized"
			return b
		}
	})
	original := sampleBooks()[0]
	require.NoError(t, vm.BeginEdit(original))
	assert.Equal(t, "normalized", vm.Snapshot().Selected.Category)
	assert.Equal(t, "Sci-Fi", original.Category)
}

func TestUpdateOnlyStore(t *testing.T) {
	inner := newBookStore(sampleBooks()...)
	vm := newBookVM(updateOnly{inner: inner})

	assert.False(t, vm.CanCreate())
	assert.False(t, vm.CanDelete())
	assert.ErrorIs(t, vm.BeginCreate(), models.ErrUnsupported)
	assert.ErrorIs(t, vm.BeginDelete(sampleBooks()[0]), models.ErrUnsupported)
	assert.ErrorIs(t, vm.ConfirmDelete(context.Background()), models.ErrUnsupported)

	err := vm.Submit(context.Background(), models.Book{Title: "draft"})
	assert.ErrorIs(t, err, models.ErrUnsupported)
	assert.Empty(t, inner.created)

	require.NoError(t, vm.Submit(context.Background(), sampleBooks()[0]))
	assert.Len(t, inner.updated, 1)
}

func TestNotice_ClearsAfterTTL(t *testing.T) {
	vm := newBookVM(newBookStore(sampleBooks()...), func(c *Config[models.Book]) {
		c.NoticeTTL = 20 * time.Millisecond
	})
	require.NoError(t, vm.Submit(context.Background(), models.Book{Title: "x"}))
	assert.Equal(t, "Book created successfully!", vm.Snapshot().Notice)

	assert.Eventually(t, func() bool {
		return vm.Snapshot().Notice == ""
	}, time.Second, 5*time.Millisecond)
}

func TestNotice_NewerSupersedesOlder(t *testing.T) {
	vm := newBookVM(newBookStore(sampleBooks()...), func(c *Config[models.Book]) {
		c.NoticeTTL = 80 * time.Millisecond
	})
	require.NoError(t, vm.Submit(context.Background(), models.Book{Title: "x"}))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, vm.BeginDelete(sampleBooks()[0]))
	require.NoError(t, vm.ConfirmDelete(context.Background()))

	// The first notice's timer fires here but must not clear the second.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, "Book deleted successfully!", vm.Snapshot().Notice)

	assert.Eventually(t, func() bool {
		return vm.Snapshot().Notice == ""
	}, time.Second, 5*time.Millisecond)
}

func TestDispose_DropsInFlightLoad(t *testing.T) {
	store := newBookStore(sampleBooks()...)
	store.block = make(chan struct{})
	vm := newBookVM(store)

	errCh := make(chan error, 1)
	go func() { errCh <- vm.Load(context.Background()) }()

	assert.Eventually(t, func() bool {
		return vm.Snapshot().Phase == PhaseLoading
	}, time.Second, time.Millisecond)

	vm.Dispose()

	select {
	case err := <-errCh:
		assert.True(t, errors.Is(err, ErrDisposed), "got %v", err)
	case <-time.After(time.Second):
		t.Fatal("load did not return after dispose")
	}

	st := vm.Snapshot()
	assert.Empty(t, st.Records)
	assert.True(t, vm.Disposed())
	assert.ErrorIs(t, vm.Load(context.Background()), ErrDisposed)
	assert.ErrorIs(t, vm.BeginCreate(), ErrDisposed)
	assert.ErrorIs(t, vm.Submit(context.Background(), models.Book{}), ErrDisposed)
}

func TestDispose_StopsNoticeTimer(t *testing.T) {
	vm := newBookVM(newBookStore(), func(c *Config[models.Book]) {
		c.NoticeTTL = 10 * time.Millisecond
	})
	require.NoError(t, vm.Submit(context.Background(), models.Book{Title: "x"}))
	vm.Dispose()
	vm.Dispose()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, "Book created successfully!", vm.Snapshot().Notice)
}
