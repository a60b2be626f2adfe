package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository Repository backed by one collection. Documents are keyed by
// the entity id in _id and listed in creation order.
type MongoRepository[T Entity] struct {
	coll *mongo.Collection
}

// NewMongoRepository binds a repository to the named collection
func NewMongoRepository[T Entity](db *mongo.Database, collection string) *MongoRepository[T] {
	return &MongoRepository[T]{coll: db.Collection(collection)}
}

func (r *MongoRepository[T]) List(ctx context.Context) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.coll.Name(), err)
	}
	utils.LogDbOperation("find", r.coll.Name(), bson.M{}, len(out))
	return out, nil
}

func (r *MongoRepository[T]) Get(ctx context.Context, id string) (*T, error) {
	var out T
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %s: %w", r.coll.Name(), id, err)
	}
	return &out, nil
}

func (r *MongoRepository[T]) Create(ctx context.Context, entity T) error {
	_, err := r.coll.InsertOne(ctx, entity)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateID
	}
	if err != nil {
		return fmt.Errorf("insert %s: %w", r.coll.Name(), err)
	}
	utils.LogDbOperation("insert", r.coll.Name(), bson.M{"_id": entity.GetID()}, nil)
	return nil
}

func (r *MongoRepository[T]) Update(ctx context.Context, entity T) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": entity.GetID()}, entity)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateID
	}
	if err != nil {
		return fmt.Errorf("replace %s: %w", r.coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	utils.LogDbOperation("replace", r.coll.Name(), bson.M{"_id": entity.GetID()}, res.ModifiedCount)
	return nil
}

func (r *MongoRepository[T]) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	utils.LogDbOperation("delete", r.coll.Name(), bson.M{"_id": id}, res.DeletedCount)
	return nil
}

func (r *MongoRepository[T]) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", r.coll.Name(), err)
	}
	return n, nil
}

// MongoTransactionLog ledger collection, insert-only
type MongoTransactionLog struct {
	coll *mongo.Collection
}

func NewMongoTransactionLog(db *mongo.Database) *MongoTransactionLog {
	return &MongoTransactionLog{coll: db.Collection(StockTransactionsCollection)}
}

func (l *MongoTransactionLog) Append(ctx context.Context, tx models.StockTransaction) error {
	_, err := l.coll.InsertOne(ctx, tx)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateID
	}
	if err != nil {
		return fmt.Errorf("append stock transaction: %w", err)
	}
	return nil
}

func (l *MongoTransactionLog) List(ctx context.Context, itemID string) ([]models.StockTransaction, error) {
	filter := bson.M{}
	if itemID != "" {
		filter["itemId"] = itemID
	}
	cursor, err := l.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.StockTransaction, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode stock transactions: %w", err)
	}
	return out, nil
}

// MongoTx runs the unit inside a session transaction. Requires a replica set.
// The transaction is committed once; transient failures surface to the caller.
type MongoTx struct {
	client *mongo.Client
}

func NewMongoTx(client *mongo.Client) *MongoTx { return &MongoTx{client: client} }

func (tx *MongoTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}
	session, err := tx.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	return mongo.WithSession(ctx, session, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return fmt.Errorf("start transaction: %w", err)
		}
		if err := fn(sc); err != nil {
			if abortErr := sc.AbortTransaction(context.Background()); abortErr != nil {
				utils.Logger.Error().Err(abortErr).Msg("failed to abort transaction")
			}
			return err
		}
		if err := sc.CommitTransaction(sc); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	})
}
