package services

import (
	"context"
	"errors"
	"math"

	"prodigy-server/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CartStore is the slice of the entity store the cart consolidator needs.
type CartStore interface {
	AddOrIncrement(ctx context.Context, userEmail string, productID primitive.ObjectID, quantity int) (primitive.ObjectID, bool, error)
	ListForUser(ctx context.Context, userEmail string) ([]models.CartItem, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.CartItem, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type CartService struct {
	store CartStore
}

func NewCartService(store CartStore) *CartService {
	return &CartService{store: store}
}

// AddResult reports whether the delta landed on an existing line or created
// a new one.
type AddResult struct {
	InsertedID string
	Created    bool
}

// AddOrIncrement merges the quantity delta into the user's cart line for
// the product, creating the line when none exists. Repeated calls
// accumulate: add 2 then add 3 yields one line with quantity 5.
func (s *CartService) AddOrIncrement(ctx context.Context, userEmail, productID string, quantity int) (*AddResult, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrInvalidID
	}

	id, created, err := s.store.AddOrIncrement(ctx, userEmail, oid, quantity)
	if err != nil {
		return nil, err
	}
	return &AddResult{InsertedID: id.Hex(), Created: created}, nil
}

// ListForUser returns the user's cart lines with products resolved and the
// cart total. A line whose product has been deleted contributes nothing to
// the total and is returned without a product.
func (s *CartService) ListForUser(ctx context.Context, userEmail string) (*models.CartListResponse, error) {
	items, err := s.store.ListForUser(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		total += float64(item.Quantity) * item.Product.Price
	}

	return &models.CartListResponse{
		Success:    true,
		TotalPrice: math.Round(total*100) / 100,
		CartItems:  items,
	}, nil
}

// Delete removes a cart line after checking the requester owns it. A
// foreign owner is reported as forbidden regardless of anything else; a
// missing line as not found.
func (s *CartService) Delete(ctx context.Context, id, requesterEmail string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	line, err := s.store.FindByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if line.UserEmail != requesterEmail {
		return ErrForbidden
	}

	if err := s.store.Delete(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
