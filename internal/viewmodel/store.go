package viewmodel

import (
	"context"

	"github.com/libreria-gestion/backoffice/internal/domain/models"
)

// Source lists a whole collection.
type Source[T any] interface {
	List(ctx context.Context) ([]T, error)
}

// Updater replaces a record.
type Updater[T any] interface {
	Update(ctx context.Context, id models.ID, draft T) (T, error)
}

// Creator creates a record from a draft.
type Creator[T any] interface {
	Create(ctx context.Context, draft T) (T, error)
}

// Deleter removes a record.
type Deleter interface {
	Delete(ctx context.Context, id models.ID) error
}

// Store is the minimum a screen's primary collection must support. Stores
// that also implement Creator and Deleter enable create and delete.
type Store[T any] interface {
	Source[T]
	Updater[T]
}

// Related holds the secondary collections a screen joins against.
type Related struct {
	Books     []models.Book     `json:"books,omitempty"`
	Customers []models.Customer `json:"customers,omitempty"`
	Suppliers []models.Supplier `json:"suppliers,omitempty"`
	Employees []models.Employee `json:"employees,omitempty"`
}

// Relation declares one secondary collection to load alongside the primary.
type Relation struct {
	Kind  models.Kind
	fetch func(ctx context.Context) (func(*Related), error)
}

// Relate builds a Relation that loads src and stores the result with assign.
func Relate[R any](kind models.Kind, src Source[R], assign func(*Related, []R)) Relation {
	return Relation{
		Kind: kind,
		fetch: func(ctx context.Context) (func(*Related), error) {
			items, err := src.List(ctx)
			if err != nil {
				return nil, err
			}
			return func(r *Related) { assign(r, items) }, nil
		},
	}
}

// RelateBooks declares the books collection as related data.
func RelateBooks(src Source[models.Book]) Relation {
	return Relate(models.KindBook, src, func(r *Related, v []models.Book) { r.Books = v })
}

// RelateCustomers declares the customers collection as related data.
func RelateCustomers(src Source[models.Customer]) Relation {
	return Relate(models.KindCustomer, src, func(r *Related, v []models.Customer) { r.Customers = v })
}

// RelateSuppliers declares the suppliers collection as related data.
func RelateSuppliers(src Source[models.Supplier]) Relation {
	return Relate(models.KindSupplier, src, func(r *Related, v []models.Supplier) { r.Suppliers = v })
}

// RelateEmployees declares the employees collection as related data.
func RelateEmployees(src Source[models.Employee]) Relation {
	return Relate(models.KindEmployee, src, func(r *Related, v []models.Employee) { r.Employees = v })
}
