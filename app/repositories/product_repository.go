package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/nexus/app/models"
	"github.com/shashiranjanraj/nexus/pkg/metrics"
)

// DefaultProductCollection is the collection products live in.
const DefaultProductCollection = "products"

// ProductRepository handles document-store operations for Product. Every
// call runs in its own client session, ended when the call returns.
type ProductRepository struct {
	client *mongo.Client
	col    *mongo.Collection
}

func NewProductRepository(client *mongo.Client, database, collection string) *ProductRepository {
	if collection == "" {
		collection = DefaultProductCollection
	}
	return &ProductRepository{
		client: client,
		col:    client.Database(database).Collection(collection),
	}
}

// Create inserts the document and reads it back by its generated id.
func (r *ProductRepository) Create(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	defer metrics.ObserveStore("products", "insert", time.Now())

	doc := models.NewProduct(in)
	var saved models.Product

	err := r.client.UseSession(ctx, func(sc mongo.SessionContext) error {
		res, err := r.col.InsertOne(sc, doc)
		if err != nil {
			return storeError("insert product", err)
		}

		oid, ok := res.InsertedID.(primitive.ObjectID)
		if !ok {
			return fmt.Errorf("insert product: unexpected id type %T", res.InsertedID)
		}

		if err := r.col.FindOne(sc, bson.M{"_id": oid}).Decode(&saved); err != nil {
			return storeError("reload product", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	saved.Normalize()
	return &saved, nil
}

// List returns every product in the store's natural order.
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	defer metrics.ObserveStore("products", "find", time.Now())

	var products []models.Product

	err := r.client.UseSession(ctx, func(sc mongo.SessionContext) error {
		cursor, err := r.col.Find(sc, bson.D{})
		if err != nil {
			return storeError("list products", err)
		}
		defer cursor.Close(sc)

		if err := cursor.All(sc, &products); err != nil {
			return storeError("decode products", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if products == nil {
		products = []models.Product{}
	}
	for i := range products {
		products[i].Normalize()
	}
	return products, nil
}

// GetByID fails with ErrInvalidIdentifier before any I/O when raw is not an
// ObjectID, and with ErrNotFound when nothing matches.
func (r *ProductRepository) GetByID(ctx context.Context, raw string) (*models.Product, error) {
	id, err := models.ParseProductID(raw)
	if err != nil {
		return nil, err
	}

	defer metrics.ObserveStore("products", "find_one", time.Now())

	var product models.Product
	err = r.client.UseSession(ctx, func(sc mongo.SessionContext) error {
		err := r.col.FindOne(sc, bson.M{"_id": id.ObjectID()}).Decode(&product)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("%w: %s", models.ErrNotFound, id)
		}
		if err != nil {
			return storeError("find product", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	product.Normalize()
	return &product, nil
}
