package models

// StockStatus is the display classification of an inventory level.
type StockStatus string

const (
	StockOut       StockStatus = "out"
	StockLow       StockStatus = "low"
	StockAvailable StockStatus = "available"
)

// LowStockLimit is the first stock level that is no longer considered low.
const LowStockLimit = 5

// ClassifyStock maps a stock level to its status.
func ClassifyStock(stock int) StockStatus {
	switch {
	case stock <= 0:
		return StockOut
	case stock < LowStockLimit:
		return StockLow
	default:
		return StockAvailable
	}
}

// Class returns the presentation class for the status.
func (s StockStatus) Class() string {
	switch s {
	case StockOut:
		return "danger"
	case StockLow:
		return "warning"
	default:
		return "success"
	}
}

// SaleTotal computes the line total of a sale. A dangling book reference
// (found == false) yields zero.
func SaleTotal(book Book, found bool, quantity int) float64 {
	if !found {
		return 0
	}
	return book.Price.Float() * float64(quantity)
}
