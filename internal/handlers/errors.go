package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rdityo/nearbox/internal/models"
)

// respondError maps service errors onto the normalized status codes:
// validation and duplicate email 422, bad credentials 401, missing resources
// 404, anything else goes through the centralized 500 path.
func respondError(c *gin.Context, err error) {
	var fieldErr models.ValidationError
	if errors.As(err, &fieldErr) {
		c.JSON(http.StatusUnprocessableEntity, models.NewError(422, fieldErr.Message))
		return
	}

	var valErrs validator.ValidationErrors
	if errors.As(err, &valErrs) {
		info := make(map[string]string, len(valErrs))
		for _, fe := range valErrs {
			info[fe.Field()] = fe.Error()
		}
		c.JSON(http.StatusUnprocessableEntity, models.NewValidationError(422, info))
		return
	}

	switch {
	case errors.Is(err, models.ErrDuplicateEmail):
		c.JSON(http.StatusUnprocessableEntity, models.NewError(422, "That email address is already in use."))
	case errors.Is(err, models.ErrInvalidResetToken):
		c.JSON(http.StatusUnprocessableEntity, models.NewError(422, "Your token has expired. Please attempt to reset your password again."))
	case errors.Is(err, models.ErrBadCredentials):
		c.JSON(http.StatusUnauthorized, models.NewError(401, "Invalid email or password."))
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.NewError(404, "No user could be found for this ID."))
	default:
		// Store or query failure; the error middleware logs it and the
		// client sees a generic body.
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.NewError(500, "Internal server error"))
	}
}
