package libreria

import (
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/libreria-gestion/backoffice/internal/config"
	"github.com/libreria-gestion/backoffice/internal/domain/models"
)

// Client exposes the resource collections of the bookstore API.
type Client interface {
	Books() *Resource[models.Book]
	Customers() *Resource[models.Customer]
	Sales() *Resource[models.Sale]
	Inventory() *InventoryResource
	Suppliers() *Resource[models.Supplier]
	Employees() *Resource[models.Employee]
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client

	books     *Resource[models.Book]
	customers *Resource[models.Customer]
	sales     *Resource[models.Sale]
	inventory *InventoryResource
	suppliers *Resource[models.Supplier]
	employees *Resource[models.Employee]
}

// NewClient builds an API client for the configured base URL.
func NewClient(cfg config.APIConfig, logger *zap.Logger) *APIClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		restyClient.SetTimeout(cfg.Timeout)
	}

	return &APIClient{
		httpClient: restyClient,
		books:      NewResource[models.Book](restyClient, models.KindBook, logger),
		customers:  NewResource[models.Customer](restyClient, models.KindCustomer, logger),
		sales:      NewResource[models.Sale](restyClient, models.KindSale, logger),
		inventory:  &InventoryResource{resource: NewResource[models.InventoryRecord](restyClient, models.KindInventory, logger)},
		suppliers:  NewResource[models.Supplier](restyClient, models.KindSupplier, logger),
		employees:  NewResource[models.Employee](restyClient, models.KindEmployee, logger),
	}
}

func (c *APIClient) Books() *Resource[models.Book]         { return c.books }
func (c *APIClient) Customers() *Resource[models.Customer] { return c.customers }
func (c *APIClient) Sales() *Resource[models.Sale]         { return c.sales }
func (c *APIClient) Inventory() *InventoryResource         { return c.inventory }
func (c *APIClient) Suppliers() *Resource[models.Supplier] { return c.suppliers }
func (c *APIClient) Employees() *Resource[models.Employee] { return c.employees }
