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

const jobsCollection = "jobs"

type JobRepository struct {
	coll *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{coll: db.Collection(jobsCollection)}
}

type mongoJob struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID     string             `bson:"owner_id"`
	DogID       string             `bson:"dog_id"`
	WalkerID    string             `bson:"walker_id,omitempty"`
	Status      domain.JobStatus   `bson:"status"`
	Pay         float64            `bson:"pay"`
	LocationLat float64            `bson:"location_lat"`
	LocationLng float64            `bson:"location_lng"`
	Deadline    int64              `bson:"deadline,omitempty"`
	CreatedAt   int64              `bson:"created_at"`
}

func (mj mongoJob) toDomain() *domain.Job {
	return &domain.Job{
		ID:       mj.ID.Hex(),
		OwnerID:  mj.OwnerID,
		DogID:    mj.DogID,
		WalkerID: mj.WalkerID,
		Status:   mj.Status,
		Pay:      mj.Pay,
		Location: domain.Coordinates{
			Latitude:  mj.LocationLat,
			Longitude: mj.LocationLng,
		},
		Deadline:  mj.Deadline,
		CreatedAt: unixToTime(mj.CreatedAt),
	}
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoJob{
		OwnerID:     job.OwnerID,
		DogID:       job.DogID,
		WalkerID:    job.WalkerID,
		Status:      job.Status,
		Pay:         job.Pay,
		LocationLat: job.Location.Latitude,
		LocationLng: job.Location.Longitude,
		Deadline:    job.Deadline,
		CreatedAt:   job.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}

	created := *job
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mj mongoJob
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mj); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return mj.toDomain(), nil
}

func (r *JobRepository) List(ctx context.Context, filter ports.JobFilter) ([]*domain.Job, error) {
	query := bson.M{}
	switch {
	case filter.OwnerID != "":
		query["owner_id"] = filter.OwnerID
	case filter.DogID != "":
		query["dog_id"] = filter.DogID
	case filter.WalkerID != "":
		query["walker_id"] = filter.WalkerID
	case filter.Status != "":
		query["status"] = filter.Status
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer cursor.Close(ctx)

	jobs := make([]*domain.Job, 0)
	for cursor.Next(ctx) {
		var mj mongoJob
		if err := cursor.Decode(&mj); err != nil {
			return nil, fmt.Errorf("decode job: %w", err)
		}
		jobs = append(jobs, mj.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// Transition is a compare-and-set on the status field: the filter pins the
// expected current status, so of two racing transitions only one matches.
func (r *JobRepository) Transition(ctx context.Context, id string, from []domain.JobStatus, to domain.JobStatus, walkerID string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, domain.ErrJobNotFound
	}

	set := bson.M{"status": to}
	if walkerID != "" {
		set["walker_id"] = walkerID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "status": bson.M{"$in": from}},
		bson.M{"$set": set},
	)
	if err != nil {
		return false, fmt.Errorf("transition job: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) CountActiveByDog(ctx context.Context, dogID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{
		"dog_id": dogID,
		"status": bson.M{"$ne": domain.StatusPaid},
	})
	if err != nil {
		return 0, fmt.Errorf("count active jobs: %w", err)
	}
	return n, nil
}

// MarkOverdue flips posted jobs whose deadline has elapsed. Jobs without a
// deadline store zero and are never matched.
func (r *JobRepository) MarkOverdue(ctx context.Context, now int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateMany(ctx,
		bson.M{
			"status":   domain.StatusPosted,
			"deadline": bson.M{"$gt": 0, "$lte": now},
		},
		bson.M{"$set": bson.M{"status": domain.StatusOverdue}},
	)
	if err != nil {
		return 0, fmt.Errorf("mark overdue: %w", err)
	}
	return res.ModifiedCount, nil
}

// EnsureIndexes creates the filter indexes used by List.
func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "dog_id", Value: 1}}},
		{Keys: bson.D{{Key: "walker_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
