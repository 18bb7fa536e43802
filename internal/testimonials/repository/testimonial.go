package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nuffjamz/pkg/config"
	"nuffjamz/pkg/model"
)

const CollectionName = "testimonials"

var (
	ErrNotFound  = errors.New("testimonial not found")
	ErrInvalidID = errors.New("invalid testimonial ID format")
)

// Filter narrows testimonial listings. Nil pointers mean "any".
type Filter struct {
	Approved *bool
	Featured *bool
}

type TestimonialRepository interface {
	Create(ctx context.Context, testimonial *model.Testimonial) error
	FindAll(ctx context.Context, filter Filter) ([]*model.Testimonial, error)
	SetFlags(ctx context.Context, id string, approved, featured *bool) (*model.Testimonial, error)
	Delete(ctx context.Context, id string) error
}

type mongoTestimonialRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoTestimonialRepository(cfg *config.Config) TestimonialRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoTestimonialRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoTestimonialRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			return context.WithTimeout(ctx, remaining)
		}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoTestimonialRepository) Create(ctx context.Context, testimonial *model.Testimonial) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	testimonial.CreatedAt = now
	testimonial.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, testimonial)
	if err != nil {
		return fmt.Errorf("failed to create testimonial: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		testimonial.ID = oid.Hex()
	}
	return nil
}

func (r *mongoTestimonialRepository) FindAll(ctx context.Context, filter Filter) ([]*model.Testimonial, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Approved != nil {
		query["approved"] = *filter.Approved
	}
	if filter.Featured != nil {
		query["featured"] = *filter.Featured
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find testimonials: %w", err)
	}
	defer cursor.Close(ctx)

	var testimonials []*model.Testimonial
	if err = cursor.All(ctx, &testimonials); err != nil {
		return nil, fmt.Errorf("failed to decode testimonials: %w", err)
	}

	return testimonials, nil
}

func (r *mongoTestimonialRepository) SetFlags(ctx context.Context, id string, approved, featured *bool) (*model.Testimonial, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	set := bson.M{"updated_at": time.Now().UTC().Truncate(time.Millisecond)}
	if approved != nil {
		set["approved"] = *approved
	}
	if featured != nil {
		set["featured"] = *featured
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var testimonial model.Testimonial
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}, opts).Decode(&testimonial)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update testimonial: %w", err)
	}

	return &testimonial, nil
}

func (r *mongoTestimonialRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete testimonial: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}
