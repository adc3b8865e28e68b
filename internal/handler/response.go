package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meetly/planner-api/pkg/errors"
)

// ErrorResponse is the wire shape of every non-success response.
type ErrorResponse struct {
	Error string `json:"error"`
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// RespondError writes err as `{"error": ...}` with the status implied by
// its code; unknown errors map to 500.
func RespondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	if appErr, ok := err.(*errors.AppError); ok {
		message = appErr.Message
		switch appErr.Code {
		case errors.ErrBadRequest:
			status = http.StatusBadRequest
		case errors.ErrNotFound:
			status = http.StatusNotFound
		}
	}

	c.JSON(status, NewErrorResponse(message))
}
