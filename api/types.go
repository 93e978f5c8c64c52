package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler      authHandler
	blogHandler      blogHandler
	postHandler      postHandler
	categoryHandler  categoryHandler
	tagHandler       tagHandler
	imageHandler     imageHandler
	dashboardHandler dashboardHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}

// Pagination describes a paged collection response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}
