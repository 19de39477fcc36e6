package screens

import (
	"time"

	"github.com/libreria-gestion/backoffice/internal/domain/models"
	"github.com/libreria-gestion/backoffice/internal/lookup"
	"github.com/libreria-gestion/backoffice/internal/viewmodel"
)

// BookRow is a book with its supplier resolved for display.
type BookRow struct {
	models.Book
	SupplierName string `json:"supplier_name"`
}

func bookConfig(src Sources) viewmodel.Config[models.Book] {
	return viewmodel.Config[models.Book]{
		Kind:    models.KindBook,
		Store:   src.Books,
		Related: []viewmodel.Relation{viewmodel.RelateSuppliers(src.Suppliers)},
		Fields: func(b models.Book, _ *viewmodel.Related) []string {
			return []string{b.Title, b.Author, b.Category}
		},
		NewDraft: func(time.Time) models.Book { return models.Book{} },
	}
}

func bookRow(b models.Book, rel *viewmodel.Related) any {
	return BookRow{
		Book:         b,
		SupplierName: lookup.Label(rel.Suppliers, b.SupplierID, supplierName),
	}
}

// NewBooks builds the books screen.
func NewBooks(src Sources, opts Options) Screen {
	return newScreen("Books", bookConfig(src), opts, bookRow)
}

func bookTitle(b models.Book) string        { return b.Title }
func supplierName(s models.Supplier) string { return s.Name }
