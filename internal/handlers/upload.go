package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UploadImage accepts a single file under the "image" field and returns the
// public URL the store produced.
func UploadImage(store MediaStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) || strings.Contains(err.Error(), "no such file") {
				c.JSON(http.StatusBadRequest, gin.H{"error": "image file required"})
				return
			}
			log.Println("[UPLOAD] [ERROR] form parse failed:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid upload"})
			return
		}

		url, err := store.Save(file)
		if err != nil {
			log.Println("[UPLOAD] [ERROR] save failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"imageUrl": url})
	}
}
