package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/greenstreet/ledger-api/internal/core/domain"
	"github.com/greenstreet/ledger-api/internal/core/ports"
)

const contractorCollection = "contractors"

type MongoContractorRepository struct {
	coll *mongo.Collection
}

func NewContractorRepository(db *mongo.Database) *MongoContractorRepository {
	return &MongoContractorRepository{coll: db.Collection(contractorCollection)}
}

type mongoContractor struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (r *MongoContractorRepository) Insert(ctx context.Context, contractor *domain.Contractor) (*domain.Contractor, error) {
	doc := mongoContractor{
		Name:      contractor.Name,
		CreatedAt: contractor.CreatedAt,
		UpdatedAt: contractor.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert contractor: %w", err)
	}

	created := *contractor
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoContractorRepository) FindByID(ctx context.Context, id string) (*domain.Contractor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrContractorNotFound
	}

	var mc mongoContractor
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContractorNotFound
		}
		return nil, fmt.Errorf("find contractor: %w", err)
	}
	return fromMongoContractor(&mc), nil
}

func (r *MongoContractorRepository) List(ctx context.Context, opts ports.ListOptions) ([]domain.Contractor, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count contractors: %w", err)
	}

	cursor, err := r.coll.Find(ctx, bson.M{}, listFindOptions(opts, "name"))
	if err != nil {
		return nil, 0, fmt.Errorf("list contractors: %w", err)
	}
	defer cursor.Close(ctx)

	var contractors []domain.Contractor
	for cursor.Next(ctx) {
		var mc mongoContractor
		if err := cursor.Decode(&mc); err != nil {
			return nil, 0, fmt.Errorf("decode contractor: %w", err)
		}
		contractors = append(contractors, *fromMongoContractor(&mc))
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate contractors: %w", err)
	}
	return contractors, total, nil
}

func (r *MongoContractorRepository) Update(ctx context.Context, contractor *domain.Contractor) error {
	oid, err := primitive.ObjectIDFromHex(contractor.ID)
	if err != nil {
		return domain.ErrContractorNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":       contractor.Name,
		"updated_at": contractor.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update contractor: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrContractorNotFound
	}
	return nil
}

func (r *MongoContractorRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrContractorNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete contractor: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrContractorNotFound
	}
	return nil
}

func fromMongoContractor(mc *mongoContractor) *domain.Contractor {
	return &domain.Contractor{
		ID:        mc.ID.Hex(),
		Name:      mc.Name,
		CreatedAt: mc.CreatedAt.UTC(),
		UpdatedAt: mc.UpdatedAt.UTC(),
	}
}

// listFindOptions translates pagination and sorting into mongo find options.
func listFindOptions(opts ports.ListOptions, defaultSort string) *options.FindOptions {
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = defaultSort
	}
	order := 1
	if opts.SortDesc {
		order = -1
	}
	return options.Find().
		SetSort(bson.D{{Key: sortBy, Value: order}}).
		SetSkip(int64((opts.Page - 1) * opts.PageSize)).
		SetLimit(int64(opts.PageSize))
}
