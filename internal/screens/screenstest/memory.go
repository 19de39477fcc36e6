// Package screenstest provides in-memory collections for tests of code built
// on the screens package.
package screenstest

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/libreria-gestion/backoffice/internal/domain/models"
	"github.com/libreria-gestion/backoffice/internal/screens"
)

// Store is an in-memory collection implementing screens.CRUD.
type Store[T models.Record] struct {
	mu      sync.Mutex
	items   []T
	nextID  int
	setID   func(T, models.ID) T
	listErr error
	saveErr error
	gate    chan struct{}

	Lists   int
	Created []T
	Updated []T
	Deleted []models.ID
}

// NewStore seeds a store. setID stamps server-assigned ids on created records.
func NewStore[T models.Record](setID func(T, models.ID) T, items ...T) *Store[T] {
	return &Store[T]{items: items, setID: setID, nextID: 1000}
}

// FailList makes List return err until cleared with nil.
func (s *Store[T]) FailList(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listErr = err
}

// FailSave makes Create, Update and Delete return err until cleared with nil.
func (s *Store[T]) FailSave(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// HoldList makes List block until the returned release is called or the
// caller's context ends.
func (s *Store[T]) HoldList() (release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gate := make(chan struct{})
	s.gate = gate
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			if s.gate == gate {
				s.gate = nil
			}
			s.mu.Unlock()
			close(gate)
		})
	}
}

// Items returns the current contents.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	gate := s.gate
	s.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Lists++
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrNetwork, err)
	}
	if s.listErr != nil {
		return nil, s.listErr
	}
	return slices.Clone(s.items), nil
}

func (s *Store[T]) Create(_ context.Context, draft T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		var zero T
		return zero, s.saveErr
	}
	s.nextID++
	rec := s.setID(draft, models.ID(strconv.Itoa(s.nextID)))
	s.items = append(s.items, rec)
	s.Created = append(s.Created, draft)
	return rec, nil
}

func (s *Store[T]) Update(_ context.Context, id models.ID, draft T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		var zero T
		return zero, s.saveErr
	}
	i := s.index(id)
	if i < 0 {
		var zero T
		return zero, fmt.Errorf("update %s: %w", id, models.ErrNotFound)
	}
	s.items[i] = draft
	s.Updated = append(s.Updated, draft)
	return draft, nil
}

func (s *Store[T]) Delete(_ context.Context, id models.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("delete %s: %w", id, models.ErrNotFound)
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.Deleted = append(s.Deleted, id)
	return nil
}

func (s *Store[T]) index(id models.ID) int {
	return slices.IndexFunc(s.items, func(rec T) bool { return rec.Identity() == id })
}

// UpdateOnly exposes only List and Update of a store, like the inventory
// collection.
type UpdateOnly[T models.Record] struct {
	store *Store[T]
}

// ReadUpdate wraps s as an UpdateOnly collection.
func ReadUpdate[T models.Record](s *Store[T]) UpdateOnly[T] {
	return UpdateOnly[T]{store: s}
}

func (u UpdateOnly[T]) List(ctx context.Context) ([]T, error) { return u.store.List(ctx) }

func (u UpdateOnly[T]) Update(ctx context.Context, id models.ID, draft T) (T, error) {
	return u.store.Update(ctx, id, draft)
}

// Fixture bundles the seeded stores behind a screens.Sources.
type Fixture struct {
	Books     *Store[models.Book]
	Customers *Store[models.Customer]
	Sales     *Store[models.Sale]
	Inventory *Store[models.InventoryRecord]
	Suppliers *Store[models.Supplier]
	Employees *Store[models.Employee]
}

// Sources exposes the fixture to screens.
func (f *Fixture) Sources() screens.Sources {
	return screens.Sources{
		Books:     f.Books,
		Customers: f.Customers,
		Sales:     f.Sales,
		Inventory: ReadUpdate(f.Inventory),
		Suppliers: f.Suppliers,
		Employees: f.Employees,
	}
}

// Seed returns a small bookstore. Sale 101 and book 2 carry dangling
// references.
func Seed() *Fixture {
	return &Fixture{
		Books: NewStore(func(b models.Book, id models.ID) models.Book { b.ID = id; return b },
			models.Book{ID: "1", Title: "Dune", Author: "Frank Herbert", Year: 1965, Category: "Ciencia ficción", Price: 25000, SupplierID: "10"},
			models.Book{ID: "2", Title: "Emma", Author: "Jane Austen", Year: 1815, Category: "Clásico", Price: 18000, SupplierID: "99"},
			models.Book{ID: "3", Title: "Rayuela", Author: "Julio Cortázar", Year: 1963, Category: "Novela", Price: 30000, SupplierID: "11"},
		),
		Customers: NewStore(func(c models.Customer, id models.ID) models.Customer { c.ID = id; return c },
			models.Customer{ID: "5", Name: "Ana Ruiz", Email: "ana@example.com", Phone: "3001234567"},
			models.Customer{ID: "8", Name: "Carlos Pérez", Email: "carlos@example.com", Phone: "3109876543"},
		),
		Sales: NewStore(func(s models.Sale, id models.ID) models.Sale { s.ID = id; return s },
			models.Sale{ID: "100", CustomerID: "5", BookID: "1", EmployeeID: "7", PurchaseDate: "2024-03-01T00:00:00.000Z", Quantity: 3},
			models.Sale{ID: "101", CustomerID: "6", BookID: "42", EmployeeID: "7", PurchaseDate: "2024-03-02", Quantity: 2},
		),
		Inventory: NewStore(func(r models.InventoryRecord, id models.ID) models.InventoryRecord { r.ID = id; return r },
			models.InventoryRecord{ID: "1", BookID: "1", Stock: 0, LastUpdated: "2024-01-10"},
			models.InventoryRecord{ID: "2", BookID: "2", Stock: 3, LastUpdated: "2024-01-11T05:00:00.000Z"},
			models.InventoryRecord{ID: "3", BookID: "3", Stock: 12, LastUpdated: "2024-01-12"},
		),
		Suppliers: NewStore(func(s models.Supplier, id models.ID) models.Supplier { s.ID = id; return s },
			models.Supplier{ID: "10", Name: "Planeta", Contact: "María Gómez", Email: "ventas@planeta.example", Phone: "6011234"},
			models.Supplier{ID: "11", Name: "Alfaguara", Contact: "Jorge Díaz", Email: "pedidos@alfaguara.example", Phone: "6015678"},
		),
		Employees: NewStore(func(e models.Employee, id models.ID) models.Employee { e.ID = id; return e },
			models.Employee{ID: "7", Name: "Luis Torres", Role: "Cajero", Email: "luis@libreria.example", HireDate: "2022-02-01"},
		),
	}
}
