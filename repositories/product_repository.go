package repositories

import (
	"context"

	"prodigy-server/catalog"
	"prodigy-server/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection("products")}
}

// Query returns one page of products matching q. Description is projected
// out of listing results.
func (r *ProductRepository) Query(ctx context.Context, q catalog.Query) ([]models.Product, error) {
	cursor, err := r.coll.Find(ctx, q.Filter(), q.FindOptions())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Count returns the number of documents matching q, independent of
// pagination.
func (r *ProductRepository) Count(ctx context.Context, q catalog.Query) (int64, error) {
	return r.coll.CountDocuments(ctx, q.Filter())
}

func (r *ProductRepository) DistinctCategories(ctx context.Context, scope bson.M) ([]string, error) {
	return r.distinct(ctx, "category", scope)
}

func (r *ProductRepository) DistinctBrands(ctx context.Context, scope bson.M) ([]string, error) {
	return r.distinct(ctx, "brand", scope)
}

func (r *ProductRepository) distinct(ctx context.Context, field string, scope bson.M) ([]string, error) {
	raw, err := r.coll.Distinct(ctx, field, scope)
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			values = append(values, s)
		}
	}
	return values, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	res, err := r.coll.InsertOne(ctx, product)
	if err != nil {
		return err
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// CreateMany inserts products unordered: a failing document does not abort
// the batch. It returns the ids that were inserted alongside the write
// errors of the documents that were not.
func (r *ProductRepository) CreateMany(ctx context.Context, products []models.Product) ([]string, []string, error) {
	docs := make([]interface{}, len(products))
	for i := range products {
		docs[i] = products[i]
	}

	opts := options.InsertMany().SetOrdered(false)
	res, err := r.coll.InsertMany(ctx, docs, opts)

	failed := []string{}
	failedIdx := map[int]bool{}
	if err != nil {
		bwe, ok := err.(mongo.BulkWriteException)
		if !ok {
			return nil, nil, err
		}
		for _, we := range bwe.WriteErrors {
			failedIdx[we.Index] = true
			failed = append(failed, we.Message)
		}
	}

	inserted := []string{}
	if res != nil {
		for i, id := range res.InsertedIDs {
			if failedIdx[i] {
				continue
			}
			if oid, ok := id.(primitive.ObjectID); ok {
				inserted = append(inserted, oid.Hex())
			}
		}
	}
	return inserted, failed, nil
}

// Update overwrites the mutable fields of an existing product.
func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, product *models.Product) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"title":       product.Title,
		"image":       product.Image,
		"description": product.Description,
		"price":       product.Price,
		"brand":       product.Brand,
		"category":    product.Category,
		"ratings":     product.Ratings,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
