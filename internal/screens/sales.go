package screens

import (
	"fmt"
	"time"

	"github.com/libreria-gestion/backoffice/internal/domain/models"
	"github.com/libreria-gestion/backoffice/internal/lookup"
	"github.com/libreria-gestion/backoffice/internal/viewmodel"
)

// SaleRow is a sale joined with its customer, book and employee.
type SaleRow struct {
	models.Sale
	CustomerName string  `json:"customer_name"`
	BookTitle    string  `json:"book_title"`
	EmployeeName string  `json:"employee_name"`
	Total        float64 `json:"total"`
}

func saleConfig(src Sources) viewmodel.Config[models.Sale] {
	return viewmodel.Config[models.Sale]{
		Kind:  models.KindSale,
		Store: src.Sales,
		Related: []viewmodel.Relation{
			viewmodel.RelateBooks(src.Books),
			viewmodel.RelateCustomers(src.Customers),
			viewmodel.RelateEmployees(src.Employees),
		},
		Fields: func(s models.Sale, rel *viewmodel.Related) []string {
			return []string{
				lookup.Text(rel.Customers, s.CustomerID, customerName),
				lookup.Text(rel.Books, s.BookID, bookTitle),
				string(s.PurchaseDate),
			}
		},
		NewDraft: func(now time.Time) models.Sale {
			return models.Sale{PurchaseDate: models.Today(now), Quantity: 1}
		},
		Normalize: func(s models.Sale, _ time.Time) models.Sale {
			s.PurchaseDate = s.PurchaseDate.Calendar()
			return s
		},
		Check: func(s models.Sale) error {
			if s.Quantity < 1 {
				return fmt.Errorf("quantity %d: %w", s.Quantity, models.ErrValidation)
			}
			return nil
		},
	}
}

func saleRow(s models.Sale, rel *viewmodel.Related) any {
	book, found := lookup.Resolve(rel.Books, s.BookID)
	return SaleRow{
		Sale:         s,
		CustomerName: lookup.Label(rel.Customers, s.CustomerID, customerName),
		BookTitle:    lookup.Label(rel.Books, s.BookID, bookTitle),
		EmployeeName: lookup.Label(rel.Employees, s.EmployeeID, employeeName),
		Total:        models.SaleTotal(book, found, s.Quantity),
	}
}

// NewSales builds the sales screen.
func NewSales(src Sources, opts Options) Screen {
	return newScreen("Sales", saleConfig(src), opts, saleRow)
}
