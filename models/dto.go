package models

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Name  string `json:"name" binding:"required,min=3"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"omitempty,oneof=user admin"`
}

type CreateProductRequest struct {
	Title       string  `json:"title" binding:"required"`
	Image       string  `json:"image" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Brand       string  `json:"brand" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Ratings     float64 `json:"ratings" binding:"gte=0,lte=5"`
}

type UpdateProductRequest struct {
	Title       string   `json:"title"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Brand       string   `json:"brand"`
	Category    string   `json:"category"`
	Ratings     *float64 `json:"ratings" binding:"omitempty,gte=0,lte=5"`
}

type AddToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	UserEmail string `json:"userEmail" binding:"required,email"`
	Quantity  int    `json:"quantity" binding:"required"`
}
