package utils

import (
	"github.com/gofiber/fiber/v2"
)

// SuccessResponse sends the uniform success envelope.
func SuccessResponse(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// SuccessResponseWithMeta sends the success envelope with a meta block
// (pagination totals, attach/detach counters).
func SuccessResponseWithMeta(c *fiber.Ctx, status int, message string, data interface{}, meta interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
		"meta":    meta,
	})
}

// ErrorResponse sends the uniform error envelope. Stack traces are never
// included in responses.
func ErrorResponse(c *fiber.Ctx, status int, message, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
		"error":   errorType,
	})
}

// ListMeta is the meta block attached to paginated list responses.
type ListMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int64 `json:"totalPages"`
}

// NewListMeta computes pagination totals for a list response.
func NewListMeta(page, limit int, totalCount int64) ListMeta {
	totalPages := int64(0)
	if limit > 0 {
		totalPages = (totalCount + int64(limit) - 1) / int64(limit)
	}
	return ListMeta{
		Page:       page,
		Limit:      limit,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}

// AttachMeta is the meta block returned by attach operations.
type AttachMeta struct {
	TotalCount int   `json:"totalCount"`
	TotalAdd   int64 `json:"totalAdd"`
}

// DetachMeta is the meta block returned by detach operations.
type DetachMeta struct {
	TotalCount  int   `json:"totalCount"`
	TotalDelete int64 `json:"totalDelete"`
}

// CountMeta is the meta block returned by bulk create/delete operations.
type CountMeta struct {
	Count int64 `json:"count"`
}

// SuccessResponseStruct documents the success envelope for swagger.
type SuccessResponseStruct struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponseStruct documents the error envelope for swagger.
type ErrorResponseStruct struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}
