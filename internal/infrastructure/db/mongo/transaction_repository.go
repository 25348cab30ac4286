package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/greenstreet/ledger-api/internal/core/domain"
	"github.com/greenstreet/ledger-api/internal/core/ports"
)

const transactionCollection = "transactions"

type MongoTransactionRepository struct {
	coll *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *MongoTransactionRepository {
	return &MongoTransactionRepository{coll: db.Collection(transactionCollection)}
}

type mongoTransaction struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ContractorID string             `bson:"contractor_id"`
	Amount       float64            `bson:"amount"`
	Currency     string             `bson:"currency"`
	Status       string             `bson:"status"`
	Method       string             `bson:"method"`
	TrackingID   string             `bson:"tracking_id,omitempty"`
	SentAt       *time.Time         `bson:"sent_at,omitempty"`
	ReceivedAt   *time.Time         `bson:"received_at,omitempty"`
	PayedAt      *time.Time         `bson:"payed_at,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (r *MongoTransactionRepository) Insert(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	res, err := r.coll.InsertOne(ctx, toMongoTransaction(tx))
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	created := *tx
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoTransactionRepository) FindByID(ctx context.Context, id string) (*domain.Transaction, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTransactionNotFound
	}

	var mt mongoTransaction
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	return fromMongoTransaction(&mt), nil
}

func (r *MongoTransactionRepository) List(ctx context.Context, filter ports.TransactionFilter, opts ports.ListOptions) ([]domain.Transaction, int64, error) {
	query := bson.M{}
	if filter.ContractorID != "" {
		query["contractor_id"] = filter.ContractorID
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.Method != "" {
		query["method"] = string(filter.Method)
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	cursor, err := r.coll.Find(ctx, query, listFindOptions(opts, "created_at"))
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var txs []domain.Transaction
	for cursor.Next(ctx) {
		var mt mongoTransaction
		if err := cursor.Decode(&mt); err != nil {
			return nil, 0, fmt.Errorf("decode transaction: %w", err)
		}
		txs = append(txs, *fromMongoTransaction(&mt))
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, total, nil
}

func (r *MongoTransactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	oid, err := primitive.ObjectIDFromHex(tx.ID)
	if err != nil {
		return domain.ErrTransactionNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"status":      string(tx.Status),
		"sent_at":     tx.SentAt,
		"received_at": tx.ReceivedAt,
		"payed_at":    tx.PayedAt,
		"updated_at":  tx.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func (r *MongoTransactionRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTransactionNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func toMongoTransaction(tx *domain.Transaction) *mongoTransaction {
	return &mongoTransaction{
		ContractorID: tx.ContractorID,
		Amount:       tx.Amount,
		Currency:     string(tx.Currency),
		Status:       string(tx.Status),
		Method:       string(tx.Method),
		TrackingID:   tx.TrackingID,
		SentAt:       tx.SentAt,
		ReceivedAt:   tx.ReceivedAt,
		PayedAt:      tx.PayedAt,
		CreatedAt:    tx.CreatedAt,
		UpdatedAt:    tx.UpdatedAt,
	}
}

func fromMongoTransaction(mt *mongoTransaction) *domain.Transaction {
	return &domain.Transaction{
		ID:           mt.ID.Hex(),
		ContractorID: mt.ContractorID,
		Amount:       mt.Amount,
		Currency:     domain.Currency(mt.Currency),
		Status:       domain.TransactionStatus(mt.Status),
		Method:       domain.PaymentMethod(mt.Method),
		TrackingID:   mt.TrackingID,
		SentAt:       mt.SentAt,
		ReceivedAt:   mt.ReceivedAt,
		PayedAt:      mt.PayedAt,
		CreatedAt:    mt.CreatedAt.UTC(),
		UpdatedAt:    mt.UpdatedAt.UTC(),
	}
}
