package handlers

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rdityo/nearbox/internal/middleware"
	"github.com/rdityo/nearbox/internal/models"
	"github.com/rdityo/nearbox/internal/services"
	"github.com/rdityo/nearbox/internal/storage"
)

func fileURL(baseURL, filename string) string {
	return fmt.Sprintf("%s/api/file/%s", baseURL, filename)
}

// UploadPicture stores a picture and returns its id and URL without touching
// any document. The stream is committed before the response is written.
func UploadPicture(store storage.BlobStore, baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.NewError(401, "Unauthorized."))
			return
		}

		header, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, models.NewError(422, "You must attach a file."))
			return
		}

		src, err := header.Open()
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, models.NewError(422, "Could not read the uploaded file."))
			return
		}
		defer src.Close()

		key := storage.FileKey(userID.Hex(), header.Filename)
		stored, err := store.Save(c.Request.Context(), key, src, map[string]string{
			"originalname": header.Filename,
			"uploaded_by":  userID.Hex(),
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"code":    201,
			"message": "Successfully updated.",
			"picture": models.Picture{ID: stored.ID, URL: fileURL(baseURL, stored.Filename)},
		})
	}
}

// ChangeUserPicture stores a picture and points the caller's profile picture
// at it.
func ChangeUserPicture(store storage.BlobStore, us *services.UserService, baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.NewError(401, "Unauthorized."))
			return
		}

		header, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, models.NewError(422, "You must attach a file."))
			return
		}

		src, err := header.Open()
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, models.NewError(422, "Could not read the uploaded file."))
			return
		}
		defer src.Close()

		key := storage.FileKey(userID.Hex(), header.Filename)
		stored, err := store.Save(c.Request.Context(), key, src, map[string]string{
			"originalname": header.Filename,
			"uploaded_by":  userID.Hex(),
		})
		if err != nil {
			respondError(c, err)
			return
		}

		picture := models.Picture{ID: stored.ID, URL: fileURL(baseURL, stored.Filename)}
		user, err := us.UpdatePicture(c.Request.Context(), userID, picture)
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

// GetFile streams a stored blob by filename. Public, 404 on miss.
func GetFile(store storage.BlobStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		filename := c.Param("filename")

		stream, length, err := store.Open(c.Request.Context(), filename)
		if err != nil {
			if errors.Is(err, storage.ErrFileNotFound) {
				c.JSON(http.StatusNotFound, models.NewError(404, "File not found."))
				return
			}
			respondError(c, err)
			return
		}
		defer stream.Close()

		contentType := mime.TypeByExtension(filepath.Ext(filename))
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		c.DataFromReader(http.StatusOK, length, contentType, stream, nil)
	}
}
