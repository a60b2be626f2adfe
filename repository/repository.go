package repository

import (
	"context"
	"errors"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
)

var (
	// ErrNotFound no record with the requested id
	ErrNotFound = errors.New("not found")
	// ErrDuplicateID a record with the same id already exists
	ErrDuplicateID = errors.New("duplicate id")
)

// Entity anything stored by id
type Entity interface {
	GetID() string
}

// Repository uniform CRUD contract. List keeps creation order.
type Repository[T Entity] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, entity T) error
	Update(ctx context.Context, entity T) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// TransactionLog append-only stock ledger. There is deliberately no update or delete.
type TransactionLog interface {
	Append(ctx context.Context, tx models.StockTransaction) error
	// List returns the rows of one item, or every row when itemID is empty, oldest first
	List(ctx context.Context, itemID string) ([]models.StockTransaction, error)
}

// TxManager runs fn as one atomic unit. Repositories called with the ctx
// passed to fn participate in the transaction.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CooldownStore tracks per-key cooldown windows
type CooldownStore interface {
	Start(ctx context.Context, key string, d time.Duration) error
	Remaining(ctx context.Context, key string) (time.Duration, error)
}

// SessionStore keeps booking wizard sessions until they expire
type SessionStore interface {
	Load(ctx context.Context, id string) (*models.BookingSession, error)
	Save(ctx context.Context, session *models.BookingSession, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
