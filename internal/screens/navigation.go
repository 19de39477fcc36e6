package screens

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/libreria-gestion/backoffice/internal/domain/models"
)

// ErrNotMounted is returned when an intent targets a screen that is not
// the one currently shown.
var ErrNotMounted = errors.New("screen not mounted")

// Route maps a navigation path to a screen.
type Route struct {
	Path  string      `json:"path"`
	Kind  models.Kind `json:"kind"`
	Label string      `json:"label"`
}

// Routes is the navigation bar, in display order.
var Routes = []Route{
	{Path: "/", Kind: models.KindBook, Label: "Books"},
	{Path: "/clientes", Kind: models.KindCustomer, Label: "Customers"},
	{Path: "/ventas", Kind: models.KindSale, Label: "Sales"},
	{Path: "/inventario", Kind: models.KindInventory, Label: "Inventory"},
	{Path: "/proveedores", Kind: models.KindSupplier, Label: "Suppliers"},
	{Path: "/empleados", Kind: models.KindEmployee, Label: "Employees"},
}

// RouteFor returns the route of a screen kind.
func RouteFor(kind models.Kind) (Route, bool) {
	for _, r := range Routes {
		if r.Kind == kind {
			return r, true
		}
	}
	return Route{}, false
}

// Build instantiates the screen for kind.
func Build(kind models.Kind, src Sources, opts Options) (Screen, error) {
	switch kind {
	case models.KindBook:
		return NewBooks(src, opts), nil
	case models.KindCustomer:
		return NewCustomers(src, opts), nil
	case models.KindSale:
		return NewSales(src, opts), nil
	case models.KindInventory:
		return NewInventory(src, opts), nil
	case models.KindSupplier:
		return NewSuppliers(src, opts), nil
	case models.KindEmployee:
		return NewEmployees(src, opts), nil
	default:
		return nil, fmt.Errorf("screen %q: %w", kind, models.ErrNotFound)
	}
}

// Navigator keeps exactly one screen mounted. Navigating builds a fresh
// screen and disposes the previous one, so nothing is cached across screens.
type Navigator struct {
	sources Sources
	opts    Options
	logger  *zap.Logger

	mu      sync.Mutex
	current Screen
}

// NewNavigator creates a navigator with nothing mounted.
func NewNavigator(src Sources, opts Options) *Navigator {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Navigator{sources: src, opts: opts, logger: logger.Named("navigator")}
}

// Navigate mounts the screen for kind and performs its initial load. The
// screen is returned even when the load fails; the failure is in its view.
func (n *Navigator) Navigate(ctx context.Context, kind models.Kind) (Screen, error) {
	next, err := Build(kind, n.sources, n.opts)
	if err != nil {
		return nil, err
	}

	n.mu.Lock()
	prev := n.current
	n.current = next
	n.mu.Unlock()

	if prev != nil {
		prev.Dispose()
		n.logger.Debug("screen disposed", zap.String("screen", string(prev.Kind())))
	}
	n.logger.Info("screen mounted", zap.String("screen", string(kind)))

	if err := next.Load(ctx); err != nil {
		n.logger.Warn("initial load failed", zap.String("screen", string(kind)), zap.Error(err))
	}
	return next, nil
}

// Active returns the mounted screen if it is of the given kind.
func (n *Navigator) Active(kind models.Kind) (Screen, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil || n.current.Kind() != kind {
		return nil, fmt.Errorf("%s: %w", kind, ErrNotMounted)
	}
	return n.current, nil
}

// Current returns the mounted screen, or nil.
func (n *Navigator) Current() Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Close disposes the mounted screen.
func (n *Navigator) Close() {
	n.mu.Lock()
	prev := n.current
	n.current = nil
	n.mu.Unlock()
	if prev != nil {
		prev.Dispose()
	}
}
