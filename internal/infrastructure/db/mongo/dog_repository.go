package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dogwalk/marketplace/internal/core/domain"
	"github.com/dogwalk/marketplace/internal/core/ports"
)

const dogsCollection = "dogs"

type DogRepository struct {
	coll *mongo.Collection
}

func NewDogRepository(db *mongo.Database) *DogRepository {
	return &DogRepository{coll: db.Collection(dogsCollection)}
}

type mongoDog struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID string             `bson:"owner_id"`
	Name    string             `bson:"name"`
	Breed   string             `bson:"breed"`
	Age     int                `bson:"age"`
}

func (md mongoDog) toDomain() *domain.Dog {
	return &domain.Dog{
		ID:      md.ID.Hex(),
		OwnerID: md.OwnerID,
		Name:    md.Name,
		Breed:   md.Breed,
		Age:     md.Age,
	}
}

func (r *DogRepository) Create(ctx context.Context, dog *domain.Dog) (*domain.Dog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoDog{
		OwnerID: dog.OwnerID,
		Name:    dog.Name,
		Breed:   dog.Breed,
		Age:     dog.Age,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert dog: %w", err)
	}

	created := *dog
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *DogRepository) FindByID(ctx context.Context, id string) (*domain.Dog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDogNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var md mongoDog
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&md); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDogNotFound
		}
		return nil, fmt.Errorf("find dog: %w", err)
	}
	return md.toDomain(), nil
}

func (r *DogRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Dog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("list dogs: %w", err)
	}
	defer cursor.Close(ctx)

	dogs := make([]*domain.Dog, 0)
	for cursor.Next(ctx) {
		var md mongoDog
		if err := cursor.Decode(&md); err != nil {
			return nil, fmt.Errorf("decode dog: %w", err)
		}
		dogs = append(dogs, md.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list dogs: %w", err)
	}
	return dogs, nil
}

// Update applies a partial update built from the patch's set fields only.
func (r *DogRepository) Update(ctx context.Context, id string, patch ports.DogPatch) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrDogNotFound
	}

	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Breed != nil {
		set["breed"] = *patch.Breed
	}
	if patch.Age != nil {
		set["age"] = *patch.Age
	}
	if len(set) == 0 {
		return domain.ErrEmptyUpdate
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update dog: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrDogNotFound
	}
	return nil
}

func (r *DogRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrDogNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete dog: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrDogNotFound
	}
	return nil
}

// EnsureIndexes creates the owner lookup index.
func (r *DogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	})
	return err
}
