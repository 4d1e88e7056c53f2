package repositories

import (
	"context"

	"prodigy-server/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CartRepository struct {
	carts    *mongo.Collection
	products *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{
		carts:    db.Collection("carts"),
		products: db.Collection("products"),
	}
}

// AddOrIncrement merges a quantity delta into the (userEmail, productId)
// cart line as a single upsert: the increment and the insert-if-absent
// happen in one store operation, so two concurrent calls cannot produce a
// duplicate line or lose an increment.
func (r *CartRepository) AddOrIncrement(ctx context.Context, userEmail string, productID primitive.ObjectID, quantity int) (primitive.ObjectID, bool, error) {
	filter := bson.M{"userEmail": userEmail, "productId": productID}
	update := bson.M{"$inc": bson.M{"quantity": quantity}}

	res, err := r.carts.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return primitive.NilObjectID, false, err
	}

	if res.UpsertedID != nil {
		return res.UpsertedID.(primitive.ObjectID), true, nil
	}

	var line models.CartItem
	if err := r.carts.FindOne(ctx, filter).Decode(&line); err != nil {
		return primitive.NilObjectID, false, err
	}
	return line.ID, false, nil
}

// ListForUser returns the user's cart lines with each line's product
// resolved. A line whose product no longer exists keeps a nil Product.
func (r *CartRepository) ListForUser(ctx context.Context, userEmail string) ([]models.CartItem, error) {
	cursor, err := r.carts.Find(ctx, bson.M{"userEmail": userEmail})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []models.CartItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return items, nil
	}

	ids := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	prodCursor, err := r.products.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer prodCursor.Close(ctx)

	products := []models.Product{}
	if err := prodCursor.All(ctx, &products); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for i := range items {
		items[i].Product = byID[items[i].ProductID]
	}
	return items, nil
}

func (r *CartRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.CartItem, error) {
	var line models.CartItem
	if err := r.carts.FindOne(ctx, bson.M{"_id": id}).Decode(&line); err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *CartRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.carts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
