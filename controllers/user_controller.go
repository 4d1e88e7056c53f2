package controllers

import (
	"errors"
	"net/http"

	"prodigy-server/models"
	"prodigy-server/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

// @Summary Create user
// @Description Stores a user record; an existing email answers success:false without failing
// @Tags Users
// @Accept json
// @Produce json
// @Param user body models.CreateUserRequest true "User"
// @Success 200 {object} models.Response
// @Success 201 {object} models.InsertResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /users [post]
func (ctrl *UserController) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid request body", Error: err.Error()})
		return
	}

	user, err := ctrl.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			c.JSON(http.StatusOK, models.Response{Success: false, Message: "User Already Exists!"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Internal Server Error!", Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, models.InsertResponse{
		Success:    true,
		InsertedID: user.ID.Hex(),
		Message:    "User Saved in DB!",
	})
}

// @Summary List users
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/users [get]
func (ctrl *UserController) GetAllUsers(c *gin.Context) {
	users, err := ctrl.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Internal Server Error!", Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Users retrieved", Data: users})
}

// @Summary Delete user
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/users/{id} [delete]
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	if err := ctrl.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidID):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid user ID"})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "User Not Found!"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Internal Server Error!", Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "User deleted"})
}
