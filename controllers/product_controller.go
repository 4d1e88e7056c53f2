package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"prodigy-server/catalog"
	"prodigy-server/config"
	"prodigy-server/libs"
	"prodigy-server/models"
	"prodigy-server/services"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

func invalidateProductCache() {
	if config.RedisClient == nil {
		return
	}
	ctx := context.Background()
	iter := config.RedisClient.Scan(ctx, 0, "products_list_*", 0).Iterator()
	for iter.Next(ctx) {
		config.RedisClient.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("Failed to invalidate product cache: %v", err)
	}
}

// @Summary List products
// @Description Filtered, sorted, paginated product listing with facet value sets
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Items per page" default(12)
// @Param sort query string false "Sort mode" Enums(price_asc, price_desc, date_asc, date_desc, ratings_asc, ratings_desc)
// @Param search query string false "Search in product title"
// @Param brand query string false "Filter by brand"
// @Param category query string false "Filter by category"
// @Param minPrice query number false "Minimum price (inclusive)"
// @Param maxPrice query number false "Maximum price (inclusive)"
// @Success 200 {object} models.CatalogResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	q, err := catalog.Parse(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid query parameters",
			Error:   err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	cacheKey := q.CacheKey()

	if config.RedisClient != nil {
		if cached, err := config.RedisClient.Get(ctx, cacheKey).Result(); err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	resp, err := ctrl.service.Catalog(ctx, q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Internal Server Error!",
			Error:   err.Error(),
		})
		return
	}

	if config.RedisClient != nil {
		if jsonData, err := json.Marshal(resp); err == nil {
			config.RedisClient.Set(ctx, cacheKey, string(jsonData), 5*time.Minute)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	product, err := ctrl.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidID):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid product ID"})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Product Not Found!"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Internal Server Error!", Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Product retrieved", Data: product})
}

// @Summary Create product
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param product body models.CreateProductRequest true "Product"
// @Success 201 {object} models.InsertResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid request body", Error: err.Error()})
		return
	}

	product, err := ctrl.service.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Failed to create product", Error: err.Error()})
		return
	}

	invalidateProductCache()

	c.JSON(http.StatusCreated, models.InsertResponse{
		Success:    true,
		InsertedID: product.ID.Hex(),
		Message:    "Product Added Successfully!",
	})
}

// @Summary Create products in bulk
// @Description Unordered insert: failing documents are reported, the rest are stored
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param products body []models.CreateProductRequest true "Products"
// @Success 201 {object} models.BulkInsertResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products/bulk [post]
func (ctrl *ProductController) CreateProducts(c *gin.Context) {
	var reqs []models.CreateProductRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid request body", Error: err.Error()})
		return
	}
	if len(reqs) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "No products supplied"})
		return
	}

	inserted, failed, err := ctrl.service.CreateMany(c.Request.Context(), reqs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Failed to create products", Error: err.Error()})
		return
	}

	invalidateProductCache()

	c.JSON(http.StatusCreated, models.BulkInsertResponse{
		Success:     true,
		InsertedIDs: inserted,
		Failed:      failed,
		Message:     fmt.Sprintf("%d of %d products stored", len(inserted), len(reqs)),
	})
}

// @Summary Update product
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body models.UpdateProductRequest true "Fields to overwrite"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id} [patch]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid request body", Error: err.Error()})
		return
	}

	product, err := ctrl.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidID):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid product ID"})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Product Not Found!"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Failed to update product", Error: err.Error()})
		}
		return
	}

	invalidateProductCache()

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Product updated successfully", Data: product})
}

// @Summary Delete product
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	if err := ctrl.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidID):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid product ID"})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Product Not Found!"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Failed to delete product", Error: err.Error()})
		}
		return
	}

	invalidateProductCache()

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Product deleted permanently"})
}

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// @Summary Upload product image
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Product ID"
// @Param image formData file true "Product image"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products/{id}/image [post]
func (ctrl *ProductController) UploadProductImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Image file is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid file type. Only jpg, jpeg, png, gif, webp allowed"})
		return
	}
	if file.Size > 5*1024*1024 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "File size too large. Maximum 5MB"})
		return
	}

	localPath := filepath.Join(os.TempDir(), fmt.Sprintf("%d%s", time.Now().UnixNano(), ext))
	if err := c.SaveUploadedFile(file, localPath); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Failed to save image", Error: err.Error()})
		return
	}

	imageURL, err := libs.UploadToCloudinary(c.Request.Context(), localPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Failed to upload image", Error: err.Error()})
		return
	}

	product, err := ctrl.service.Update(c.Request.Context(), c.Param("id"), models.UpdateProductRequest{Image: imageURL})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidID):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid product ID"})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Product Not Found!"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Failed to update product", Error: err.Error()})
		}
		return
	}

	invalidateProductCache()

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Product image updated", Data: product})
}
