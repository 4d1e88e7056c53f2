package services

import (
	"context"
	"errors"
	"time"

	"prodigy-server/catalog"
	"prodigy-server/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProductStore is the slice of the entity store the catalog needs. The
// mongo-backed repository satisfies it; tests inject an in-memory fake.
type ProductStore interface {
	Query(ctx context.Context, q catalog.Query) ([]models.Product, error)
	Count(ctx context.Context, q catalog.Query) (int64, error)
	DistinctCategories(ctx context.Context, scope bson.M) ([]string, error)
	DistinctBrands(ctx context.Context, scope bson.M) ([]string, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	CreateMany(ctx context.Context, products []models.Product) ([]string, []string, error)
	Update(ctx context.Context, id primitive.ObjectID, product *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// timeNow is swapped out in tests.
var timeNow = time.Now

type ProductService struct {
	store ProductStore
}

func NewProductService(store ProductStore) *ProductService {
	return &ProductService{store: store}
}

// Catalog runs the query against the store: one page of products, the
// filter-wide match count, and the facet value sets. Categories are scoped
// by the brand filter alone and brands by the category filter alone, so a
// selected facet never erases its own remaining options. Without an active
// brand or category filter the full distinct sets are returned.
func (s *ProductService) Catalog(ctx context.Context, q catalog.Query) (*models.CatalogResponse, error) {
	products, err := s.store.Query(ctx, q)
	if err != nil {
		return nil, err
	}

	count, err := s.store.Count(ctx, q)
	if err != nil {
		return nil, err
	}

	categories, err := s.store.DistinctCategories(ctx, q.CategoryScope())
	if err != nil {
		return nil, err
	}
	brands, err := s.store.DistinctBrands(ctx, q.BrandScope())
	if err != nil {
		return nil, err
	}

	return &models.CatalogResponse{
		Success:      true,
		ProductCount: count,
		TotalPages:   q.Pages(count),
		Products:     products,
		Categories:   categories,
		Brands:       brands,
	}, nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	product, err := s.store.FindByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	return product, err
}

func (s *ProductService) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		Title:       req.Title,
		Image:       req.Image,
		Description: req.Description,
		Price:       req.Price,
		Brand:       req.Brand,
		Category:    req.Category,
		Ratings:     req.Ratings,
		CreatedAt:   timeNow(),
	}
	if err := s.store.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// CreateMany inserts a batch of products, reporting which documents made it
// in rather than aborting the whole batch on the first failure.
func (s *ProductService) CreateMany(ctx context.Context, reqs []models.CreateProductRequest) ([]string, []string, error) {
	now := timeNow()
	products := make([]models.Product, len(reqs))
	for i, req := range reqs {
		products[i] = models.Product{
			Title:       req.Title,
			Image:       req.Image,
			Description: req.Description,
			Price:       req.Price,
			Brand:       req.Brand,
			Category:    req.Category,
			Ratings:     req.Ratings,
			CreatedAt:   now,
		}
	}
	return s.store.CreateMany(ctx, products)
}

func (s *ProductService) Update(ctx context.Context, id string, req models.UpdateProductRequest) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	product, err := s.store.FindByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		product.Title = req.Title
	}
	if req.Image != "" {
		product.Image = req.Image
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Brand != "" {
		product.Brand = req.Brand
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.Ratings != nil {
		product.Ratings = *req.Ratings
	}

	if err := s.store.Update(ctx, oid, product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	if err := s.store.Delete(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
