package screens

import (
	"fmt"
	"time"

	"github.com/libreria-gestion/backoffice/internal/domain/models"
	"github.com/libreria-gestion/backoffice/internal/lookup"
	"github.com/libreria-gestion/backoffice/internal/viewmodel"
)

// InventoryRow is an inventory record with its book and stock status.
type InventoryRow struct {
	models.InventoryRecord
	BookTitle   string             `json:"book_title"`
	Author      string             `json:"author"`
	Status      models.StockStatus `json:"status"`
	StatusClass string             `json:"status_class"`
}

func inventoryConfig(src Sources) viewmodel.Config[models.InventoryRecord] {
	return viewmodel.Config[models.InventoryRecord]{
		Kind:    models.KindInventory,
		Store:   src.Inventory,
		Related: []viewmodel.Relation{viewmodel.RelateBooks(src.Books)},
		Fields: func(r models.InventoryRecord, rel *viewmodel.Related) []string {
			book, ok := lookup.Resolve(rel.Books, r.BookID)
			if !ok {
				return nil
			}
			return []string{book.Title, book.Author, book.Category}
		},
		NewDraft: func(now time.Time) models.InventoryRecord {
			return models.InventoryRecord{LastUpdated: models.Today(now)}
		},
		Normalize: func(r models.InventoryRecord, now time.Time) models.InventoryRecord {
			if r.LastUpdated == "" {
				r.LastUpdated = models.Today(now)
			} else {
				r.LastUpdated = r.LastUpdated.Calendar()
			}
			return r
		},
		Prepare: func(r models.InventoryRecord, now time.Time) models.InventoryRecord {
			r.LastUpdated = models.Today(now)
			return r
		},
		Check: func(r models.InventoryRecord) error {
			if r.Stock < 0 {
				return fmt.Errorf("stock %d: %w", r.Stock, models.ErrValidation)
			}
			return nil
		},
	}
}

func inventoryRow(r models.InventoryRecord, rel *viewmodel.Related) any {
	book, found := lookup.Resolve(rel.Books, r.BookID)
	status := models.ClassifyStock(r.Stock)
	row := InventoryRow{
		InventoryRecord: r,
		BookTitle:       lookup.Placeholder,
		Author:          lookup.Placeholder,
		Status:          status,
		StatusClass:     status.Class(),
	}
	if found {
		row.BookTitle = book.Title
		row.Author = book.Author
	}
	return row
}

// NewInventory builds the inventory screen. Inventory rows can only be
// edited; they are created and removed by the server with their book.
func NewInventory(src Sources, opts Options) Screen {
	return newScreen("Inventory", inventoryConfig(src), opts, inventoryRow)
}
