package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the document store
const (
	EmployeesCollection = "employees"
	TasksCollection     = "tasks"
	CountersCollection  = "counters"
)

// MongoConfig holds document store configuration
type MongoConfig struct {
	URI      string
	Database string
}

// MongoClient wraps a connected mongo client bound to one database
type MongoClient struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger
}

// NewMongoClient connects and pings the document store
func NewMongoClient(ctx context.Context, config *MongoConfig, logger *slog.Logger) (*MongoClient, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if config.URI == "" {
		return nil, fmt.Errorf("mongodb uri is empty")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(config.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info("mongodb connected successfully", slog.String("database", config.Database))

	return &MongoClient{
		client: client,
		db:     client.Database(config.Database),
		logger: logger,
	}, nil
}

// Database returns the bound database handle
func (m *MongoClient) Database() *mongo.Database {
	return m.db
}

// Ping checks the document store health
func (m *MongoClient) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return m.client.Ping(pingCtx, nil)
}

// Close disconnects the client
func (m *MongoClient) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique email index and the ordering indexes.
// Emails are stored lower-cased, so a plain unique index is case-insensitive.
func (m *MongoClient) EnsureIndexes(ctx context.Context) error {
	employees := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("employees_email_key"),
		},
		{Keys: bson.D{{Key: "seq", Value: 1}}},
	}
	if _, err := m.db.Collection(EmployeesCollection).Indexes().CreateMany(ctx, employees); err != nil {
		return fmt.Errorf("failed to create employee indexes: %w", err)
	}

	tasks := []mongo.IndexModel{
		{Keys: bson.D{{Key: "seq", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_to", Value: 1}}},
	}
	if _, err := m.db.Collection(TasksCollection).Indexes().CreateMany(ctx, tasks); err != nil {
		return fmt.Errorf("failed to create task indexes: %w", err)
	}

	m.logger.Info("mongodb indexes ensured")
	return nil
}
