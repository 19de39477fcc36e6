package models

import "time"

// StockReport summarises inventory levels at a point in time.
type StockReport struct {
	GeneratedAt time.Time         `bson:"generated_at" json:"generated_at"`
	Total       int               `bson:"total" json:"total"`
	Out         int               `bson:"out" json:"out"`
	Low         int               `bson:"low" json:"low"`
	Available   int               `bson:"available" json:"available"`
	Items       []StockReportItem `bson:"items" json:"items"`
}

// StockReportItem is one inventory row flagged as low or out of stock.
type StockReportItem struct {
	InventoryID ID          `bson:"inventory_id" json:"inventory_id"`
	BookID      ID          `bson:"book_id" json:"book_id"`
	Title       string      `bson:"title" json:"title"`
	Stock       int         `bson:"stock" json:"stock"`
	Status      StockStatus `bson:"status" json:"status"`
	LastUpdated Date        `bson:"last_updated" json:"last_updated"`
}
