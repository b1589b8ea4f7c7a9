package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rdityo/nearbox/internal/models"
	"github.com/rdityo/nearbox/internal/services"
)

func Register(as *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string         `json:"email"`
			Name     string         `json:"name"`
			Password string         `json:"password"`
			Phone    []models.Phone `json:"phone"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, models.NewError(422, "Invalid request payload."))
			return
		}

		token, user, err := as.Register(c.Request.Context(), req.Email, req.Name, req.Password, req.Phone)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"token": token,
			"user":  user,
		})
	}
}

func Login(as *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, models.NewError(422, "You must enter an email address and a password."))
			return
		}

		token, user, err := as.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"code":  200,
			"token": token,
			"user":  user,
		})
	}
}

func ForgotPassword(as *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, models.NewError(422, "You must enter an email address."))
			return
		}

		if err := as.ForgotPassword(c.Request.Context(), req.Email); err != nil {
			// The message stays generic so the response does not confirm
			// whether an account exists.
			if errors.Is(err, models.ErrNotFound) {
				c.JSON(http.StatusUnprocessableEntity, models.NewError(422, "Your request could not be processed as entered. Please try again."))
				return
			}
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.NewMessage(200, "Please check your email for the link to reset your password."))
	}
}

func ResetPassword(as *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")

		var req struct {
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, models.NewError(422, "Invalid request payload."))
			return
		}

		if err := as.ResetPassword(c.Request.Context(), token, req.Password); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.NewMessage(200, "Password changed successfully. Please login with your new password."))
	}
}
