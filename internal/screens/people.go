package screens

import (
	"time"

	"github.com/libreria-gestion/backoffice/internal/domain/models"
	"github.com/libreria-gestion/backoffice/internal/viewmodel"
)

// NewCustomers builds the customers screen.
func NewCustomers(src Sources, opts Options) Screen {
	cfg := viewmodel.Config[models.Customer]{
		Kind:  models.KindCustomer,
		Store: src.Customers,
		Fields: func(c models.Customer, _ *viewmodel.Related) []string {
			return []string{c.Name, c.Email, c.Phone}
		},
		NewDraft: func(time.Time) models.Customer { return models.Customer{} },
	}
	return newScreen("Customers", cfg, opts, nil)
}

// NewSuppliers builds the suppliers screen.
func NewSuppliers(src Sources, opts Options) Screen {
	cfg := viewmodel.Config[models.Supplier]{
		Kind:  models.KindSupplier,
		Store: src.Suppliers,
		Fields: func(s models.Supplier, _ *viewmodel.Related) []string {
			return []string{s.Name, s.Contact, s.Email, s.Phone}
		},
		NewDraft: func(time.Time) models.Supplier { return models.Supplier{} },
	}
	return newScreen("Suppliers", cfg, opts, nil)
}

// NewEmployees builds the employees screen.
func NewEmployees(src Sources, opts Options) Screen {
	cfg := viewmodel.Config[models.Employee]{
		Kind:  models.KindEmployee,
		Store: src.Employees,
		Fields: func(e models.Employee, _ *viewmodel.Related) []string {
			return []string{e.Name, e.Role, e.Email}
		},
		NewDraft: func(now time.Time) models.Employee {
			return models.Employee{HireDate: models.Today(now)}
		},
		Normalize: func(e models.Employee, _ time.Time) models.Employee {
			e.HireDate = e.HireDate.Calendar()
			return e
		},
	}
	return newScreen("Employees", cfg, opts, nil)
}

func customerName(c models.Customer) string { return c.Name }
func employeeName(e models.Employee) string { return e.Name }
