package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/libreria-gestion/backoffice/internal/config"
	"github.com/libreria-gestion/backoffice/internal/domain/models"
)

const stockReportsCollection = "stock_reports"

// Repository archives stock reports.
type Repository interface {
	SaveStockReport(ctx context.Context, report models.StockReport) error
	LatestStockReport(ctx context.Context) (models.StockReport, error)
}

// MongoDBRepository implements Repository on a MongoDB collection.
type MongoDBRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, cfg config.MongoDBConfig) (*MongoDBRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		coll:   client.Database(cfg.DBName).Collection(stockReportsCollection),
	}, nil
}

// SaveStockReport inserts a report document.
func (r *MongoDBRepository) SaveStockReport(ctx context.Context, report models.StockReport) error {
	if _, err := r.coll.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to insert stock report: %w", err)
	}
	return nil
}

// LatestStockReport returns the most recently generated report.
func (r *MongoDBRepository) LatestStockReport(ctx context.Context) (models.StockReport, error) {
	var report models.StockReport
	opts := options.FindOne().SetSort(bson.D{{Key: "generated_at", Value: -1}})
	err := r.coll.FindOne(ctx, bson.D{}, opts).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return report, fmt.Errorf("stock report: %w", models.ErrNotFound)
	}
	if err != nil {
		return report, fmt.Errorf("failed to read latest stock report: %w", err)
	}
	return report, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
