package controllers

import (
	"errors"
	"net/http"

	"prodigy-server/models"
	"prodigy-server/services"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	service *services.CartService
}

func NewCartController(service *services.CartService) *CartController {
	return &CartController{service: service}
}

// @Summary Add item to cart
// @Description Adds the quantity to an existing cart line for the product, or creates one
// @Tags Carts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param item body models.AddToCartRequest true "Cart item"
// @Success 200 {object} models.InsertResponse
// @Success 201 {object} models.InsertResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /carts [post]
func (ctrl *CartController) AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid request body", Error: err.Error()})
		return
	}

	if email := c.GetString("user_email"); email != req.UserEmail {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Success: false, Message: "Forbidden Access!"})
		return
	}

	result, err := ctrl.service.AddOrIncrement(c.Request.Context(), req.UserEmail, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Quantity must be at least 1"})
		case errors.Is(err, services.ErrInvalidID):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid product ID"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Internal Server Error!", Error: err.Error()})
		}
		return
	}

	if result.Created {
		c.JSON(http.StatusCreated, models.InsertResponse{
			Success:    true,
			InsertedID: result.InsertedID,
			Message:    "Item Added to Your Cart Successfully!",
		})
		return
	}

	c.JSON(http.StatusOK, models.InsertResponse{
		Success:    true,
		InsertedID: result.InsertedID,
		Message:    "Item Appended in Your Existing Cart!",
	})
}

// @Summary Get cart items for a user
// @Tags Carts
// @Security BearerAuth
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} models.CartListResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /carts/{email} [get]
func (ctrl *CartController) GetCartItems(c *gin.Context) {
	email := c.Param("email")

	if requester := c.GetString("user_email"); requester != email {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Success: false, Message: "Forbidden Access!"})
		return
	}

	resp, err := ctrl.service.ListForUser(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Internal Server Error!", Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete cart item
// @Description Deletes a cart line owned by the authenticated user
// @Tags Carts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Cart line ID"
// @Success 200 {object} models.Response
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /carts/{id} [delete]
func (ctrl *CartController) DeleteCartItem(c *gin.Context) {
	err := ctrl.service.Delete(c.Request.Context(), c.Param("id"), c.GetString("user_email"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidID):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid cart item ID"})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Cart Item Not Found!"})
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, models.ErrorResponse{Success: false, Message: "Forbidden Access!"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Internal Server Error!", Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Item Removed from Your Cart!"})
}
