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

	"github.com/stockwise/inventory-system/internal/core/domain"
	"github.com/stockwise/inventory-system/internal/core/ports"
)

const collectionProducts = "products"

type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts)}
}

// mongoProduct omits category when unset so the $group stage buckets it
// under a null _id.
type mongoProduct struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Price     float64            `bson:"price"`
	Quantity  int64              `bson:"quantity"`
	Category  *string            `bson:"category,omitempty"`
	InStock   bool               `bson:"in_stock"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (m mongoProduct) toDomain() domain.Product {
	return domain.Product{
		ID:        m.ID.Hex(),
		Name:      m.Name,
		Price:     m.Price,
		Quantity:  m.Quantity,
		Category:  m.Category,
		InStock:   m.InStock,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

func toDomainProducts(docs []mongoProduct) []domain.Product {
	out := make([]domain.Product, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out
}

func persistenceErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, op, err)
}

// List returns every product in insertion order.
func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, persistenceErr("find products", err)
	}
	var docs []mongoProduct
	if err := cur.All(ctx, &docs); err != nil {
		return nil, persistenceErr("decode products", err)
	}
	return toDomainProducts(docs), nil
}

// Create inserts a new product document and sets p.ID.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, mongoProduct{
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  p.Quantity,
		Category:  p.Category,
		InStock:   p.InStock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	})
	if err != nil {
		return persistenceErr("insert product", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}
	return nil
}

// Update applies upd to the product with the given hex id and returns the
// updated document. Malformed ids match nothing.
func (r *ProductRepository) Update(ctx context.Context, id string, upd ports.ProductUpdate) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"name":       upd.Name,
		"price":      upd.Price,
		"quantity":   upd.Quantity,
		"in_stock":   upd.InStock,
		"updated_at": upd.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if upd.Category != nil {
		set["category"] = *upd.Category
	} else {
		update["$unset"] = bson.M{"category": ""}
	}

	var doc mongoProduct
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, persistenceErr("update product", err)
	}

	p := doc.toDomain()
	return &p, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, persistenceErr("count products", err)
	}
	return n, nil
}

// InStockQuantity sums quantity over products flagged in stock.
func (r *ProductRepository) InStockQuantity(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "in_stock", Value: true}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "qty", Value: bson.D{{Key: "$sum", Value: "$quantity"}}},
		}}},
	}

	var rows []struct {
		Qty int64 `bson:"qty"`
	}
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return 0, persistenceErr("aggregate in-stock quantity", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Qty, nil
}

// PriceStats computes avg/max/min price over every product.
func (r *ProductRepository) PriceStats(ctx context.Context) (domain.PriceStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "avg", Value: bson.D{{Key: "$avg", Value: "$price"}}},
			{Key: "max", Value: bson.D{{Key: "$max", Value: "$price"}}},
			{Key: "min", Value: bson.D{{Key: "$min", Value: "$price"}}},
		}}},
	}

	var rows []struct {
		Avg *float64 `bson:"avg"`
		Max *float64 `bson:"max"`
		Min *float64 `bson:"min"`
	}
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return domain.PriceStats{}, persistenceErr("aggregate price stats", err)
	}
	if len(rows) == 0 {
		return domain.PriceStats{}, nil
	}
	return domain.PriceStats{Avg: rows[0].Avg, Max: rows[0].Max, Min: rows[0].Min}, nil
}

// QuantityByCategory sums quantity per category. The unlabeled bucket has a
// null _id and sorts first.
func (r *ProductRepository) QuantityByCategory(ctx context.Context) ([]domain.CategoryQuantity, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "quantity", Value: bson.D{{Key: "$sum", Value: "$quantity"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	var rows []struct {
		Category *string `bson:"_id"`
		Quantity int64   `bson:"quantity"`
	}
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return nil, persistenceErr("aggregate quantity by category", err)
	}

	out := make([]domain.CategoryQuantity, len(rows))
	for i, row := range rows {
		out[i] = domain.CategoryQuantity{Category: row.Category, Quantity: row.Quantity}
	}
	return out, nil
}

// RecentlyUpdated sorts by updated_at descending; _id ascending keeps ties
// in insertion order.
func (r *ProductRepository) RecentlyUpdated(ctx context.Context, limit int) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, persistenceErr("find recent products", err)
	}
	var docs []mongoProduct
	if err := cur.All(ctx, &docs); err != nil {
		return nil, persistenceErr("decode recent products", err)
	}
	return toDomainProducts(docs), nil
}

func (r *ProductRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline, out any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}

// EnsureIndexes creates the index backing the recent-updates query.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: 1}},
	})
	return err
}
