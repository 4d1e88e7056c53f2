package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type InsertResponse struct {
	Success    bool   `json:"success"`
	InsertedID string `json:"insertedId"`
	Message    string `json:"message"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// CatalogResponse is the catalog listing payload. Categories and brands are
// the facet value sets scoped by the currently active filters.
type CatalogResponse struct {
	Success      bool      `json:"success"`
	ProductCount int64     `json:"productCount"`
	TotalPages   int       `json:"totalPages"`
	Products     []Product `json:"products"`
	Categories   []string  `json:"categories"`
	Brands       []string  `json:"brands"`
}

type CartListResponse struct {
	Success    bool       `json:"success"`
	TotalPrice float64    `json:"totalPrice"`
	CartItems  []CartItem `json:"cartItems"`
}

type BulkInsertResponse struct {
	Success     bool     `json:"success"`
	InsertedIDs []string `json:"insertedIds"`
	Failed      []string `json:"failed,omitempty"`
	Message     string   `json:"message"`
}
