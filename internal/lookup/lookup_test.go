package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/libreria-gestion/backoffice/internal/domain/models"
)

var books = []models.Book{
	{ID: "1", Title: "Dune", Price: 25000},
	{ID: "2", Title: "1984"},
	{ID: "3"},
}

func title(b models.Book) string { return b.Title }

func TestResolve(t *testing.T) {
	book, ok := Resolve(books, "2")
	assert.True(t, ok)
	assert.Equal(t, "1984", book.Title)

	book, ok = Resolve(books, "99")
	assert.False(t, ok)
	assert.Equal(t, models.Book{}, book)

	_, ok = Resolve(books, "")
	assert.False(t, ok)

	_, ok = Resolve([]models.Book(nil), "1")
	assert.False(t, ok)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Dune", Label(books, "1", title))
	assert.Equal(t, Placeholder, Label(books, "99", title))
	assert.Equal(t, Placeholder, Label(books, "3", title))
}

func TestText(t *testing.T) {
	assert.Equal(t, "Dune", Text(books, "1", title))
	assert.Equal(t, "", Text(books, "99", title))
}

func TestDanglingSaleTotalIsZero(t *testing.T) {
	sale := models.Sale{ID: "8", BookID: "42", Quantity: 3}
	book, ok := Resolve(books, sale.BookID)
	assert.Zero(t, models.SaleTotal(book, ok, sale.Quantity))
	assert.Equal(t, Placeholder, Label(books, sale.BookID, title))
}
