package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"property-portal/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no property matches the given identifier.
// A malformed identifier cannot address any stored document, so it maps to
// ErrNotFound as well.
var ErrNotFound = errors.New("property not found")

// PropertyRepo provides CRUD access to the properties collection
type PropertyRepo struct {
	col *mongo.Collection
}

// NewPropertyRepo creates a repository over the given MongoDB handle
func NewPropertyRepo(db *MongoDB) *PropertyRepo {
	return &PropertyRepo{col: db.Collection(models.Property{}.CollectionName())}
}

// NewPropertyRepoFromCollection creates a repository from an existing collection handle
func NewPropertyRepoFromCollection(col *mongo.Collection) *PropertyRepo {
	return &PropertyRepo{col: col}
}

// Create persists a new property and returns it with the store-assigned ID
func (r *PropertyRepo) Create(ctx context.Context, p *models.Property) (*models.Property, error) {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("insert property: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return p, nil
}

// GetAll retrieves the full collection in store-native order
func (r *PropertyRepo) GetAll(ctx context.Context) ([]models.Property, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find properties: %w", err)
	}
	defer cursor.Close(ctx)

	// Empty store yields an empty list, not nil
	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	return properties, nil
}

// GetByID retrieves a property by its hex identifier
func (r *PropertyRepo) GetByID(ctx context.Context, id string) (*models.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var property models.Property
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&property)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find property %s: %w", id, err)
	}
	return &property, nil
}

// Update replaces the mutable fields of a property and returns the stored
// record as it is after the write.
func (r *PropertyRepo) Update(ctx context.Context, id string, p *models.Property) (*models.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	p.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"title":        p.Title,
		"location":     p.Location,
		"price":        p.Price,
		"beds":         p.Beds,
		"baths":        p.Baths,
		"sqft":         p.Sqft,
		"type":         p.Type,
		"availability": p.Availability,
		"description":  p.Description,
		"amenities":    p.Amenities,
		"image":        p.Image,
		"phone":        p.Phone,
		"updated_at":   p.UpdatedAt,
	}}

	var updated models.Property
	err = r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update property %s: %w", id, err)
	}
	return &updated, nil
}

// DeleteByID atomically removes a property and returns the deleted record
func (r *PropertyRepo) DeleteByID(ctx context.Context, id string) (*models.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var deleted models.Property
	err = r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&deleted)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete property %s: %w", id, err)
	}
	return &deleted, nil
}
