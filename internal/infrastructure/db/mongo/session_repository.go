package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/greenstreet/ledger-api/internal/core/domain"
)

const sessionCollection = "sessions"

// MongoSessionRepository persists refresh sessions. Rows carry only the
// SHA-256 hash of the refresh secret.
type MongoSessionRepository struct {
	coll *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *MongoSessionRepository {
	return &MongoSessionRepository{coll: db.Collection(sessionCollection)}
}

type mongoSession struct {
	ID                string    `bson:"_id"`
	UserID            string    `bson:"user_id"`
	RefreshHash       string    `bson:"refresh_hash"`
	RefreshExpiration time.Time `bson:"refresh_expiration"`
	Revoked           bool      `bson:"revoked"`
	CreatedAt         time.Time `bson:"created_at"`
	UpdatedAt         time.Time `bson:"updated_at"`
}

// EnsureIndexes creates the unique refresh-hash index and the expiration
// index used by the cleanup sweep.
func (r *MongoSessionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "refresh_hash", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "refresh_expiration", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("create session indexes: %w", err)
	}
	return nil
}

func (r *MongoSessionRepository) Insert(ctx context.Context, session *domain.Session) error {
	if _, err := r.coll.InsertOne(ctx, toMongoSession(session)); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *MongoSessionRepository) FindByRefreshHash(ctx context.Context, hash string) (*domain.Session, error) {
	var ms mongoSession
	if err := r.coll.FindOne(ctx, bson.M{"refresh_hash": hash}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return fromMongoSession(&ms), nil
}

// UpdateExpiration conditionally moves the refresh expiration. The filter
// matches on the expiration the caller last observed, so a concurrent rotation
// that already moved it makes this call fail with ErrRotationConflict instead
// of silently overwriting.
func (r *MongoSessionRepository) UpdateExpiration(ctx context.Context, id string, prevExpiration, newExpiration time.Time, revoked bool) (*domain.Session, error) {
	filter := bson.M{
		"_id":                id,
		"refresh_expiration": truncateForBSON(prevExpiration),
	}
	update := bson.M{"$set": bson.M{
		"refresh_expiration": truncateForBSON(newExpiration),
		"revoked":            revoked,
		"updated_at":         time.Now().UTC(),
	}}

	var ms mongoSession
	err := r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&ms)
	if err == nil {
		return fromMongoSession(&ms), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update session expiration: %w", err)
	}

	// No match: either the row is gone or someone rotated it first.
	if cnt, cntErr := r.coll.CountDocuments(ctx, bson.M{"_id": id}); cntErr == nil && cnt > 0 {
		return nil, domain.ErrRotationConflict
	}
	return nil, domain.ErrSessionNotFound
}

func (r *MongoSessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"refresh_expiration": bson.M{"$lt": before}})
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.DeletedCount, nil
}

func toMongoSession(s *domain.Session) *mongoSession {
	return &mongoSession{
		ID:                s.ID,
		UserID:            s.UserID,
		RefreshHash:       s.RefreshHash,
		RefreshExpiration: truncateForBSON(s.RefreshExpiration),
		Revoked:           s.Revoked,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func fromMongoSession(ms *mongoSession) *domain.Session {
	return &domain.Session{
		ID:                ms.ID,
		UserID:            ms.UserID,
		RefreshHash:       ms.RefreshHash,
		RefreshExpiration: ms.RefreshExpiration.UTC(),
		Revoked:           ms.Revoked,
		CreatedAt:         ms.CreatedAt.UTC(),
		UpdatedAt:         ms.UpdatedAt.UTC(),
	}
}

// truncateForBSON drops sub-millisecond precision so an expiration read back
// from the database compares equal in the conditional-update filter.
func truncateForBSON(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
