package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stockwise/inventory-system/internal/core/domain"
	"github.com/stockwise/inventory-system/internal/core/ports"
)

const authEventsCollection = "auth_events"

// AuthEventRepository implements ports.AuthEventRepository using MongoDB.
type AuthEventRepository struct {
	coll *mongo.Collection
}

// NewAuthEventRepository creates a new AuthEventRepository.
func NewAuthEventRepository(db *mongo.Database) ports.AuthEventRepository {
	return &AuthEventRepository{coll: db.Collection(authEventsCollection)}
}

// Insert appends an event to the auth_events collection.
func (r *AuthEventRepository) Insert(ctx context.Context, event *domain.AuthEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"username":    event.Username,
		"kind":        string(event.Kind),
		"occurred_at": event.OccurredAt.UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("%w: insert auth event: %w", domain.ErrPersistence, err)
	}
	return nil
}
