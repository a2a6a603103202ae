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
	"go.mongodb.org/mongo-driver/mongo/options"

	"blum-backend/internal/models"
)

type ArticleCreateRequest struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

type ArticleUpdateRequest struct {
	Title   *string `json:"title"`
	Author  *string `json:"author"`
	Content *string `json:"content"`
	Image   *string `json:"image"`
}

// buildArticleUpdate maps the set fields of a partial update onto a $set
// document. updatedAt is always bumped by the caller.
func buildArticleUpdate(req ArticleUpdateRequest) bson.M {
	updateSet := bson.M{}

	if req.Title != nil {
		updateSet["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Author != nil {
		updateSet["author"] = strings.TrimSpace(*req.Author)
	}
	if req.Content != nil {
		updateSet["content"] = *req.Content
	}
	if req.Image != nil {
		updateSet["image"] = strings.TrimSpace(*req.Image)
	}

	return updateSet
}

func CreateArticle(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ArticleCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		now := time.Now()
		article := models.Article{
			Title:     strings.TrimSpace(req.Title),
			Author:    strings.TrimSpace(req.Author),
			Content:   req.Content,
			Image:     strings.TrimSpace(req.Image),
			CreatedAt: now,
			UpdatedAt: now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("articles").InsertOne(ctx, article)
		if err != nil {
			log.Println("CreateArticle insert error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add article"})
			return
		}

		article.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, article)
	}
}

func GetArticles(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("articles").Find(ctx, bson.M{}, opts)
		if err != nil {
			log.Println("GetArticles find error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch articles"})
			return
		}
		defer cursor.Close(ctx)

		articles := []models.Article{}
		if err := cursor.All(ctx, &articles); err != nil {
			log.Println("GetArticles decode error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch articles"})
			return
		}

		c.JSON(http.StatusOK, articles)
	}
}

func GetArticle(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var article models.Article
		err := db.Collection("articles").FindOne(ctx, bson.M{"_id": id}).Decode(&article)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
			return
		}
		if err != nil {
			log.Println("GetArticle find error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, article)
	}
}

func UpdateArticle(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c)
		if !ok {
			return
		}

		var req ArticleUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		updateSet := buildArticleUpdate(req)
		if len(updateSet) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}
		updateSet["updatedAt"] = time.Now()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("articles").UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updateSet})
		if err != nil {
			log.Println("UpdateArticle update error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
			return
		}

		var updated models.Article
		if err := db.Collection("articles").FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
			log.Println("UpdateArticle find error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

func DeleteArticle(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("articles").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			log.Println("DeleteArticle delete error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
