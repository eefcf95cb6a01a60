package response

import (
	"net/http"

	"renthub/internal/pkg/domain"

	"github.com/gin-gonic/gin"
)

// envelope is the uniform JSON body for every API response.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *errorBody  `json:"error,omitempty"`
	Meta    *pageMeta   `json:"meta,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type pageMeta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, envelope{Success: true, Data: data})
}

// NoContent writes an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Paginated writes a 200 response with paging metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, envelope{
		Success: true,
		Data:    items,
		Meta:    &pageMeta{Total: total, Page: page, Limit: limit},
	})
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, envelope{
		Success: false,
		Error:   &errorBody{Code: string(domain.CodeValidation), Message: msg},
	})
}

// Error maps a domain error to its HTTP status. Anything that is not a
// domain error becomes a generic 500 so internals never leak to callers.
func Error(c *gin.Context, err error) {
	code := domain.CodeOf(err)
	switch code {
	case domain.CodeNotFound:
		c.JSON(http.StatusNotFound, envelope{Success: false, Error: &errorBody{Code: string(code), Message: err.Error()}})
	case domain.CodeForbidden:
		c.JSON(http.StatusForbidden, envelope{Success: false, Error: &errorBody{Code: string(code), Message: err.Error()}})
	case domain.CodeValidation, domain.CodeUnsupported:
		c.JSON(http.StatusBadRequest, envelope{Success: false, Error: &errorBody{Code: string(code), Message: err.Error()}})
	case domain.CodeConflict:
		c.JSON(http.StatusConflict, envelope{Success: false, Error: &errorBody{Code: string(code), Message: err.Error()}})
	default:
		c.JSON(http.StatusInternalServerError, envelope{
			Success: false,
			Error:   &errorBody{Code: "INTERNAL", Message: "internal server error"},
		})
	}
}
