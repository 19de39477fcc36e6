package screens

import (
	"github.com/libreria-gestion/backoffice/internal/domain/models"
	"github.com/libreria-gestion/backoffice/internal/viewmodel"
	"github.com/libreria-gestion/backoffice/pkg/clients/libreria"
)

// CRUD is a collection supporting every mutation.
type CRUD[T any] interface {
	viewmodel.Store[T]
	viewmodel.Creator[T]
	viewmodel.Deleter
}

// Sources are the remote collections the screens are built on.
type Sources struct {
	Books     CRUD[models.Book]
	Customers CRUD[models.Customer]
	Sales     CRUD[models.Sale]
	Inventory viewmodel.Store[models.InventoryRecord]
	Suppliers CRUD[models.Supplier]
	Employees CRUD[models.Employee]
}

// SourcesFrom binds the screens to an API client.
func SourcesFrom(c libreria.Client) Sources {
	return Sources{
		Books:     c.Books(),
		Customers: c.Customers(),
		Sales:     c.Sales(),
		Inventory: c.Inventory(),
		Suppliers: c.Suppliers(),
		Employees: c.Employees(),
	}
}
