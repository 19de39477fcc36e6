package libreria

import (
	"context"

	"github.com/libreria-gestion/backoffice/internal/domain/models"
)

// InventoryResource is the read/update-only inventory collection. Rows are
// created and removed by the server alongside their book.
type InventoryResource struct {
	resource *Resource[models.InventoryRecord]
}

// List fetches every inventory row.
func (r *InventoryResource) List(ctx context.Context) ([]models.InventoryRecord, error) {
	return r.resource.List(ctx)
}

// Get fetches one inventory row.
func (r *InventoryResource) Get(ctx context.Context, id models.ID) (models.InventoryRecord, error) {
	return r.resource.Get(ctx, id)
}

// Update replaces the stock fields of an inventory row.
func (r *InventoryResource) Update(ctx context.Context, id models.ID, draft models.InventoryRecord) (models.InventoryRecord, error) {
	return r.resource.Update(ctx, id, draft)
}
