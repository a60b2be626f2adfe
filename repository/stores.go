package repository

import (
	"context"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Stores every repository the services depend on, backed by one driver
type Stores struct {
	Driver string

	Tests         Repository[models.Test]
	Packages      Repository[models.HealthPackage]
	LabLocations  Repository[models.LabLocation]
	TimeSlots     Repository[models.TimeSlot]
	Branches      Repository[models.Branch]
	Categories    Repository[models.InventoryCategory]
	Suppliers     Repository[models.Supplier]
	Items         Repository[models.InventoryItem]
	Reorders      Repository[models.ReorderRequest]
	AdminUsers    Repository[models.AdminUser]
	Orders        Repository[models.Order]
	OperationLogs Repository[models.OperationLog]

	Ledger TransactionLog
	Tx     TxManager

	Cooldowns CooldownStore
	Sessions  SessionStore
}

// NewMemoryStores in-process stores sharing one lock
func NewMemoryStores(latency time.Duration) *Stores {
	store := NewMemoryStore(latency)
	return &Stores{
		Driver:        "memory",
		Tests:         NewMemoryRepository[models.Test](store),
		Packages:      NewMemoryRepository[models.HealthPackage](store),
		LabLocations:  NewMemoryRepository[models.LabLocation](store),
		TimeSlots:     NewMemoryRepository[models.TimeSlot](store),
		Branches:      NewMemoryRepository[models.Branch](store),
		Categories:    NewMemoryRepository[models.InventoryCategory](store),
		Suppliers:     NewMemoryRepository[models.Supplier](store),
		Items:         NewMemoryRepository[models.InventoryItem](store),
		Reorders:      NewMemoryRepository[models.ReorderRequest](store),
		AdminUsers:    NewMemoryRepository[models.AdminUser](store),
		Orders:        NewMemoryRepository[models.Order](store),
		OperationLogs: NewMemoryRepository[models.OperationLog](store),
		Ledger:        NewMemoryTransactionLog(store),
		Tx:            NewMemoryTx(store),
		Cooldowns:     NewMemoryCooldownStore(),
		Sessions:      NewMemorySessionStore(),
	}
}

// NewMongoStores collections of db; ledger writes use client sessions
func NewMongoStores(client *mongo.Client, db *mongo.Database) *Stores {
	return &Stores{
		Driver:        "mongo",
		Tests:         NewMongoRepository[models.Test](db, TestsCollection),
		Packages:      NewMongoRepository[models.HealthPackage](db, PackagesCollection),
		LabLocations:  NewMongoRepository[models.LabLocation](db, LabLocationsCollection),
		TimeSlots:     NewMongoRepository[models.TimeSlot](db, TimeSlotsCollection),
		Branches:      NewMongoRepository[models.Branch](db, BranchesCollection),
		Categories:    NewMongoRepository[models.InventoryCategory](db, CategoriesCollection),
		Suppliers:     NewMongoRepository[models.Supplier](db, SuppliersCollection),
		Items:         NewMongoRepository[models.InventoryItem](db, InventoryItemsCollection),
		Reorders:      NewMongoRepository[models.ReorderRequest](db, ReorderRequestsCollection),
		AdminUsers:    NewMongoRepository[models.AdminUser](db, AdminUsersCollection),
		Orders:        NewMongoRepository[models.Order](db, OrdersCollection),
		OperationLogs: NewMongoRepository[models.OperationLog](db, ApiOperationLogsCollection),
		Ledger:        NewMongoTransactionLog(db),
		Tx:            NewMongoTx(client),
		Cooldowns:     NewMemoryCooldownStore(),
		Sessions:      NewMemorySessionStore(),
	}
}

// UseRedis moves OTP cooldowns and booking sessions to Redis
func (s *Stores) UseRedis(client *redis.Client) {
	s.Cooldowns = NewRedisCooldownStore(client)
	s.Sessions = NewRedisSessionStore(client)
}

type counter interface {
	Count(ctx context.Context) (int64, error)
}

// Status record count per collection
func (s *Stores) Status(ctx context.Context) map[string]interface{} {
	collections := map[string]counter{
		TestsCollection:            s.Tests,
		PackagesCollection:         s.Packages,
		LabLocationsCollection:     s.LabLocations,
		TimeSlotsCollection:        s.TimeSlots,
		BranchesCollection:         s.Branches,
		CategoriesCollection:       s.Categories,
		SuppliersCollection:        s.Suppliers,
		InventoryItemsCollection:   s.Items,
		ReorderRequestsCollection:  s.Reorders,
		AdminUsersCollection:       s.AdminUsers,
		OrdersCollection:           s.Orders,
		ApiOperationLogsCollection: s.OperationLogs,
	}

	result := map[string]interface{}{"driver": s.Driver}
	for name, repo := range collections {
		count, err := repo.Count(ctx)
		if err != nil {
			utils.Logger.Error().Err(err).Str("collection", name).Msg("failed to count collection")
			result[name] = map[string]interface{}{"count": 0, "error": err.Error()}
			continue
		}
		result[name] = map[string]interface{}{"count": count}
	}

	if rows, err := s.Ledger.List(ctx, ""); err == nil {
		result[StockTransactionsCollection] = map[string]interface{}{"count": len(rows)}
	}
	return result
}
