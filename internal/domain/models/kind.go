package models

// Kind enumerates the resource collections managed by the back-office.
type Kind string

const (
	KindBook      Kind = "books"
	KindCustomer  Kind = "customers"
	KindSale      Kind = "sales"
	KindInventory Kind = "inventory"
	KindSupplier  Kind = "suppliers"
	KindEmployee  Kind = "employees"
)

// Kinds lists every kind in navigation order.
var Kinds = []Kind{KindBook, KindCustomer, KindSale, KindInventory, KindSupplier, KindEmployee}

type kindInfo struct {
	singular string
	plural   string
	path     string
}

var kindTable = map[Kind]kindInfo{
	KindBook:      {singular: "book", plural: "books", path: "/libros"},
	KindCustomer:  {singular: "customer", plural: "customers", path: "/clientes"},
	KindSale:      {singular: "sale", plural: "sales", path: "/ventas"},
	KindInventory: {singular: "inventory record", plural: "inventory", path: "/inventario"},
	KindSupplier:  {singular: "supplier", plural: "suppliers", path: "/proveedores"},
	KindEmployee:  {singular: "employee", plural: "employees", path: "/empleados"},
}

// Singular returns the human label for one record of the kind.
func (k Kind) Singular() string {
	if info, ok := kindTable[k]; ok {
		return info.singular
	}
	return string(k)
}

// Plural returns the human label for the whole collection.
func (k Kind) Plural() string {
	if info, ok := kindTable[k]; ok {
		return info.plural
	}
	return string(k)
}

// Path returns the REST resource path relative to the API base URL.
func (k Kind) Path() string {
	return kindTable[k].path
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	_, ok := kindTable[k]
	return ok
}
