package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rdityo/nearbox/internal/middleware"
	"github.com/rdityo/nearbox/internal/models"
	"github.com/rdityo/nearbox/internal/services"
)

// NewPost creates a listing owned by the caller. The owner snapshot is taken
// from the stored user, not from the token, so it reflects the profile as it
// stands at creation time.
func NewPost(ps *services.PostService, us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.NewError(401, "Unauthorized."))
			return
		}

		var input services.PostInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusUnprocessableEntity, models.NewError(422, "Invalid request payload."))
			return
		}

		owner, err := us.GetUser(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		post, err := ps.CreatePost(c.Request.Context(), owner, input)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"code":    201,
			"message": "Successfully saved.",
			"post":    models.SetPostInfo(post),
		})
	}
}

func NearbyPosts(ps *services.PostService, us *services.UserService) gin.HandlerFunc {
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

		posts, err := ps.NearbyPosts(c.Request.Context(), caller.Loc, mindist, dist, skipval)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, posts)
	}
}
