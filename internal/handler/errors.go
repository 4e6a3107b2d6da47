package handler

import (
	"errors"
	"net/http"

	"github.com/CamiloCastellanos/drop-sub000/internal/dto"
	"github.com/CamiloCastellanos/drop-sub000/internal/service"
	"github.com/CamiloCastellanos/drop-sub000/internal/utils"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error kind to an HTTP status and a
// {error, message} body. Unrecognized errors become 500 with a generic
// message so internals do not leak.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad request",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, utils.ErrMalformedToken),
		errors.Is(err, utils.ErrExpiredToken),
		errors.Is(err, utils.ErrInvalidSignature),
		errors.Is(err, utils.ErrInvalidClaims):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrDuplicateEmail), errors.Is(err, service.ErrInsufficientBalance):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error:   "Conflict",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "something went wrong, try again later",
		})
	}
}
