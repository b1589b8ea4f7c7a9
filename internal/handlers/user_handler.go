package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rdityo/nearbox/internal/middleware"
	"github.com/rdityo/nearbox/internal/models"
	"github.com/rdityo/nearbox/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func AllUsers(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, _ := strconv.ParseInt(c.Query("skip"), 10, 64)
		limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)

		users, err := us.ListUsers(c.Request.Context(), skip, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, users)
	}
}

func ViewProfile(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("userId"))
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, models.NewError(422, "You must provide a valid user ID."))
			return
		}

		user, err := us.GetUser(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, []models.UserInfo{models.SetUserInfo(user)})
	}
}

func SearchUsers(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := us.SearchUsers(c.Request.Context(), c.Query("name"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, users)
	}
}

func MyProfile(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.NewError(401, "Unauthorized."))
			return
		}

		user, err := us.GetUser(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": models.SetUserInfo(user)})
	}
}

func UpdateProfile(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.NewError(401, "Unauthorized."))
			return
		}

		var req struct {
			Name    string `json:"name"`
			Address string `json:"address"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, models.NewError(422, "Invalid request payload."))
			return
		}

		user, err := us.UpdateProfile(c.Request.Context(), userID, req.Name, req.Address)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"code":    201,
			"message": "Successfully updated.",
			"user":    models.SetUserInfo(user),
		})
	}
}

func UpdateIsActive(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.NewError(401, "Unauthorized."))
			return
		}

		var req struct {
			Active *bool `json:"active"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
			c.JSON(http.StatusUnprocessableEntity, models.NewError(422, "You must select status."))
			return
		}

		user, err := us.UpdateActive(c.Request.Context(), userID, *req.Active)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"code":    201,
			"message": "Successfully updated.",
			"user":    models.SetUserInfo(user),
		})
	}
}

func UpdateLocation(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.NewError(401, "Unauthorized."))
			return
		}

		var req struct {
			Long *float64 `json:"long"`
			Lat  *float64 `json:"lat"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, models.NewError(422, "Invalid request payload."))
			return
		}
		if req.Long == nil {
			c.JSON(http.StatusUnprocessableEntity, models.NewError(422, "You must enter a valid longitude."))
			return
		}
		if req.Lat == nil {
			c.JSON(http.StatusUnprocessableEntity, models.NewError(422, "You must enter a valid latitude."))
			return
		}

		user, err := us.UpdateLocation(c.Request.Context(), userID, *req.Long, *req.Lat)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"code":    201,
			"message": "Successfully updated.",
			"user":    models.SetUserInfo(user),
		})
	}
}

func AddPhone(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.NewError(401, "Unauthorized."))
			return
		}

		var req struct {
			Category string `json:"phone_category"`
			Number   string `json:"phone_number"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, models.NewError(422, "Invalid request payload."))
			return
		}

		if err := us.AddPhone(c.Request.Context(), userID, req.Category, req.Number); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.NewMessage(201, "Successfully added."))
	}
}

func DeletePhone(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.NewError(401, "Unauthorized."))
			return
		}

		var req struct {
			PhoneID string `json:"phone_id"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, models.NewError(422, "Invalid request payload."))
			return
		}

		if err := us.RemovePhone(c.Request.Context(), userID, req.PhoneID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.NewMessage(201, "Successfully deleted."))
	}
}

// NearbyUsers searches from the caller's stored location, which is
// re-fetched so a stale token location is never used.
func NearbyUsers(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.NewError(401, "Unauthorized."))
			return
		}

		caller, err := us.GetUser(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		dist, err := strconv.ParseFloat(c.Query("dist"), 64)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, models.NewError(422, "You must enter a valid maximum distance."))
			return
		}
		mindist, err := strconv.ParseFloat(c.DefaultQuery("mindist", "0"), 64)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, models.NewError(422, "You must enter a valid minimum distance."))
			return
		}
		skipval, _ := strconv.ParseInt(c.DefaultQuery("skipval", "0"), 10, 64)

		users, err := us.NearbyUsers(c.Request.Context(), caller.Loc, mindist, dist, skipval)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, users)
	}
}
