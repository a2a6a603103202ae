package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"blum-backend/internal/models"
)

// fetchOrCreateAbout returns the singleton document, inserting an empty one
// when the collection has never been written.
func fetchOrCreateAbout(ctx context.Context, db *mongo.Database) (models.About, error) {
	var about models.About
	err := db.Collection("about").FindOne(ctx, bson.M{}).Decode(&about)
	if err == nil {
		return about, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.About{}, err
	}

	now := time.Now()
	about = models.About{
		Text:          "",
		Media:         []string{},
		ExternalLinks: []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	res, err := db.Collection("about").InsertOne(ctx, about)
	if err != nil {
		return models.About{}, err
	}
	about.ID = res.InsertedID.(primitive.ObjectID)
	log.Println("[ABOUT] [INFO] singleton created:", about.ID.Hex())
	return about, nil
}

func GetAbout(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		about, err := fetchOrCreateAbout(ctx, db)
		if err != nil {
			log.Println("[ABOUT] [ERROR] fetch failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch about"})
			return
		}

		c.JSON(http.StatusOK, about)
	}
}

// UpdateAbout replaces the singleton content from a multipart form: text,
// the ordered list of retained media URLs, newly uploaded files (stored via
// the MediaStore and appended after the retained set), and the full
// replacement list of external links.
func UpdateAbout(db *mongo.Database, store MediaStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "multipart/form-data required"})
			return
		}

		input, err := parseAboutForm(c)
		if err != nil {
			log.Println("[ABOUT] [ERROR] multipart parse failed:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		about, err := fetchOrCreateAbout(ctx, db)
		if err != nil {
			log.Println("[ABOUT] [ERROR] fetch failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		uploaded := make([]string, 0, len(input.NewFiles))
		for _, file := range input.NewFiles {
			url, err := store.Save(file)
			if err != nil {
				log.Println("[ABOUT] [ERROR] media upload failed:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "media upload failed"})
				return
			}
			uploaded = append(uploaded, url)
		}

		// When mediaOrder is present it is the full retained list in caller
		// order; when absent the existing media is kept untouched.
		retained := about.Media
		if input.MediaOrderSet {
			retained = input.MediaOrder
		}
		if retained == nil {
			retained = []string{}
		}

		updateSet := bson.M{
			"media":     mergeAboutMedia(retained, uploaded),
			"updatedAt": time.Now(),
		}
		if input.TextSet {
			updateSet["text"] = input.Text
		}

		// external links are a full replacement: omitting them clears the list
		links := input.ExternalLinks
		if links == nil {
			links = []string{}
		}
		updateSet["externalLinks"] = links

		if _, err := db.Collection("about").UpdateByID(ctx, about.ID, bson.M{"$set": updateSet}); err != nil {
			log.Println("[ABOUT] [ERROR] update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		var updated models.About
		if err := db.Collection("about").FindOne(ctx, bson.M{"_id": about.ID}).Decode(&updated); err != nil {
			log.Println("[ABOUT] [ERROR] find after update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

type deleteAboutMediaRequest struct {
	URL string `json:"url"`
}

// DeleteAboutMedia removes one media reference by value match. A missing
// singleton or an unknown URL both read as not-found.
func DeleteAboutMedia(db *mongo.Database, store MediaStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req deleteAboutMediaRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		target := strings.TrimSpace(req.URL)
		if target == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "url required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var about models.About
		err := db.Collection("about").FindOne(ctx, bson.M{}).Decode(&about)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "about not found"})
			return
		}
		if err != nil {
			log.Println("[ABOUT] [ERROR] fetch failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		media, removed := removeMediaValue(about.Media, target)
		if !removed {
			c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
			return
		}

		if _, err := db.Collection("about").UpdateByID(ctx, about.ID, bson.M{"$set": bson.M{
			"media":     media,
			"updatedAt": time.Now(),
		}}); err != nil {
			log.Println("[ABOUT] [ERROR] media delete failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if err := store.Delete(target); err != nil {
			log.Println("[ABOUT] [WARN] stored file delete failed:", err)
		}

		about.Media = media
		c.JSON(http.StatusOK, about)
	}
}
