package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	// Collection names
	TestsCollection             = "tests"
	PackagesCollection          = "packages"
	LabLocationsCollection      = "labLocations"
	TimeSlotsCollection         = "timeSlots"
	BranchesCollection          = "branches"
	CategoriesCollection        = "inventoryCategories"
	SuppliersCollection         = "suppliers"
	InventoryItemsCollection    = "inventoryItems"
	StockTransactionsCollection = "stockTransactions"
	ReorderRequestsCollection   = "reorderRequests"
	AdminUsersCollection        = "adminUsers"
	OrdersCollection            = "orders"
	ApiOperationLogsCollection  = "apiOperationLogs"
)

// AllCollections every collection the service owns
var AllCollections = []string{
	TestsCollection,
	PackagesCollection,
	LabLocationsCollection,
	TimeSlotsCollection,
	BranchesCollection,
	CategoriesCollection,
	SuppliersCollection,
	InventoryItemsCollection,
	StockTransactionsCollection,
	ReorderRequestsCollection,
	AdminUsersCollection,
	OrdersCollection,
	ApiOperationLogsCollection,
}

// uniqueIndexes backstop for the uniqueness rules enforced by the services
var uniqueIndexes = map[string][]string{
	TestsCollection:          {"code"},
	BranchesCollection:       {"code"},
	CategoriesCollection:     {"code"},
	AdminUsersCollection:     {"username", "email"},
	OrdersCollection:         {"orderNumber"},
	InventoryItemsCollection: {"itemCode"},
}

// ConnectMongoDB opens and pings a client
func ConnectMongoDB(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("ping mongodb: %w", err)
	}

	utils.Logger.Info().Str("database", dbName).Msg("connected to MongoDB")
	return client, client.Database(dbName), nil
}

// CloseMongoDB disconnects the client
func CloseMongoDB(ctx context.Context, client *mongo.Client) {
	if client == nil {
		return
	}
	if err := client.Disconnect(ctx); err != nil {
		utils.Logger.Error().Err(err).Msg("failed to disconnect MongoDB")
		return
	}
	utils.Logger.Info().Msg("disconnected from MongoDB")
}

// InitializeCollections creates missing collections and their unique indexes.
// Collections must exist up front because they cannot be created inside a transaction.
func InitializeCollections(ctx context.Context, db *mongo.Database) error {
	for _, collName := range AllCollections {
		exists, err := CollectionExists(ctx, db, collName)
		if err != nil {
			return fmt.Errorf("check collection %s: %w", collName, err)
		}

		if !exists {
			if err := db.CreateCollection(ctx, collName); err != nil {
				return fmt.Errorf("create collection %s: %w", collName, err)
			}
			utils.Logger.Info().Str("collection", collName).Msg("collection created")
		}

		for _, field := range uniqueIndexes[collName] {
			model := mongo.IndexModel{
				Keys:    bson.D{{Key: field, Value: 1}},
				Options: options.Index().SetUnique(true).SetName(field + "_unique"),
			}
			if _, err := db.Collection(collName).Indexes().CreateOne(ctx, model); err != nil {
				return fmt.Errorf("create index %s.%s: %w", collName, field, err)
			}
		}
	}

	if _, err := db.Collection(StockTransactionsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "itemId", Value: 1}, {Key: "createdAt", Value: 1}},
	}); err != nil {
		return fmt.Errorf("create ledger index: %w", err)
	}

	return nil
}

// CollectionExists reports whether the named collection exists
func CollectionExists(ctx context.Context, db *mongo.Database, collName string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": collName})
	if err != nil {
		return false, err
	}
	for _, name := range names {
		if name == collName {
			return true, nil
		}
	}
	return false, nil
}
