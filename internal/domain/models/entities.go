package models

// Record is implemented by every entity so generic code can read its id.
type Record interface {
	Identity() ID
}

// Book is a catalogue title sold by the store.
type Book struct {
	ID         ID     `json:"id,omitempty"`
	Title      string `json:"titulo"`
	Author     string `json:"autor"`
	Year       int    `json:"anio"`
	Category   string `json:"categoria"`
	Price      Money  `json:"precio"`
	SupplierID ID     `json:"id_proveedor,omitempty"`
}

func (b Book) Identity() ID { return b.ID }

// Customer is a registered buyer.
type Customer struct {
	ID      ID     `json:"id,omitempty"`
	Name    string `json:"nombre"`
	Email   string `json:"email"`
	Phone   string `json:"telefono"`
	Address string `json:"direccion"`
}

func (c Customer) Identity() ID { return c.ID }

// Supplier provides books to the store.
type Supplier struct {
	ID      ID     `json:"id,omitempty"`
	Name    string `json:"nombre"`
	Contact string `json:"contacto"`
	Phone   string `json:"telefono"`
	Email   string `json:"email"`
}

func (s Supplier) Identity() ID { return s.ID }

// Employee is a member of staff who can register sales.
type Employee struct {
	ID       ID     `json:"id,omitempty"`
	Name     string `json:"nombre"`
	Role     string `json:"cargo"`
	Email    string `json:"email"`
	HireDate Date   `json:"fecha_ingreso"`
}

func (e Employee) Identity() ID { return e.ID }

// InventoryRecord tracks the stock of one book. Rows are owned by the
// server and follow the lifetime of the book they reference.
type InventoryRecord struct {
	ID          ID   `json:"id,omitempty"`
	BookID      ID   `json:"id_libro,omitempty"`
	Stock       int  `json:"stock"`
	LastUpdated Date `json:"ultima_actualizacion"`
}

func (r InventoryRecord) Identity() ID { return r.ID }

// Sale is a single line sale of one book to one customer.
type Sale struct {
	ID           ID   `json:"id,omitempty"`
	CustomerID   ID   `json:"id_cliente,omitempty"`
	BookID       ID   `json:"id_libro,omitempty"`
	EmployeeID   ID   `json:"id_empleado,omitempty"`
	PurchaseDate Date `json:"fecha_compra"`
	Quantity     int  `json:"cantidad"`
}

func (s Sale) Identity() ID { return s.ID }
