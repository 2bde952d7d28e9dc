// Package handlers implements the HTTP request handlers of the advisory
// API.
package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agriconnect/agrointel/pkg/errors"
)

// errorBody is the error response envelope.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError maps an engine error onto its HTTP status via the error
// code taxonomy.  Unrecognised errors become opaque 500s.
func respondError(c *gin.Context, err error) {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		c.JSON(appErr.Code.HTTPStatus(), errorBody{
			Code:    appErr.Code.String(),
			Message: appErr.Message,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, errorBody{
		Code:    errors.ErrCodeInternal.String(),
		Message: "internal error",
	})
}

// badRequest rejects malformed request payloads before they reach the
// engine.
func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errorBody{
		Code:    errors.ErrCodeBadRequest.String(),
		Message: message,
	})
}
