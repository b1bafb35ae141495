// Package responses defines the standard JSON envelope returned by every handler.
package responses

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessResponse is the envelope for successful operations.
type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// ErrorResponse is the envelope for rejected or failed operations.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// PaginatedResponse wraps list data with pagination details.
type PaginatedResponse struct {
	Status     string      `json:"status"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

type Pagination struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	HasNextPage bool  `json:"has_next_page"`
	HasPrevPage bool  `json:"has_prev_page"`
}

// SendSuccess sends a standardized success response.
func SendSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	if message == "" {
		message = "Operation completed successfully"
	}
	c.JSON(statusCode, SuccessResponse{Status: "success", Message: message, Data: data})
}

// SendError sends a standardized error response and aborts the handler chain.
func SendError(c *gin.Context, statusCode int, message string) {
	statusText := "error"
	if statusCode >= http.StatusInternalServerError {
		statusText = "fail"
	}
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Status:  statusText,
		Message: message,
		Code:    statusCode,
	})
}

// SendPaginated sends a standardized success response for paginated data.
func SendPaginated(c *gin.Context, statusCode int, message string, data interface{}, totalItems int64, currentPage, pageSize int) {
	if message == "" {
		message = "Data retrieved successfully"
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	totalPages := int(math.Ceil(float64(totalItems) / float64(pageSize)))
	if totalPages == 0 && totalItems > 0 {
		totalPages = 1
	}

	c.JSON(statusCode, PaginatedResponse{
		Status:  "success",
		Message: message,
		Data:    data,
		Pagination: Pagination{
			TotalItems:  totalItems,
			TotalPages:  totalPages,
			CurrentPage: currentPage,
			PageSize:    pageSize,
			HasNextPage: currentPage < totalPages,
			HasPrevPage: currentPage > 1,
		},
	})
}

// NotFound sends a 404 response naming the missing resource.
func NotFound(c *gin.Context, resourceName string) {
	SendError(c, http.StatusNotFound, resourceName+" not found")
}

// Unauthorized sends a 401 response.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized access"
	}
	SendError(c, http.StatusUnauthorized, message)
}

// BadRequest sends a 400 response.
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request payload or parameters"
	}
	SendError(c, http.StatusBadRequest, message)
}

// InternalServerError sends a 500 response.
func InternalServerError(c *gin.Context, message string) {
	if message == "" {
		message = "An unexpected error occurred on the server"
	}
	SendError(c, http.StatusInternalServerError, message)
}
