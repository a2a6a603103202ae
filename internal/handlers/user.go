package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"blum-backend/internal/models"
)

type UserCreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

/* =======================
   CREATE
======================= */

// CreateUser registers an admin account. The pre-insert existence check gives
// a clean 409; the unique username index catches the concurrent case, and a
// duplicate-key error from the insert maps to 409 as well.
func CreateUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UserCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		username := strings.TrimSpace(req.Username)
		password := strings.TrimSpace(req.Password)
		if username == "" || password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("users").CountDocuments(ctx, bson.M{"username": username})
		if err != nil {
			log.Println("CreateUser count error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add user"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Println("CreateUser hash error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add user"})
			return
		}

		user := models.User{
			Username:     username,
			PasswordHash: string(hash),
			CreatedAt:    time.Now(),
		}

		res, err := db.Collection("users").InsertOne(ctx, user)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
				return
			}
			log.Println("CreateUser insert error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add user"})
			return
		}

		id := res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, gin.H{"id": id.Hex(), "username": user.Username})
	}
}

/* =======================
   LIST / DELETE
======================= */

// GetUsers lists accounts with the password hash projected out at the query
// level, in addition to the json:"-" tag on the model.
func GetUsers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetProjection(bson.M{"passwordHash": 0})

		cursor, err := db.Collection("users").Find(ctx, bson.M{}, opts)
		if err != nil {
			log.Println("GetUsers find error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch users"})
			return
		}
		defer cursor.Close(ctx)

		users := []models.User{}
		if err := cursor.All(ctx, &users); err != nil {
			log.Println("GetUsers decode error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch users"})
			return
		}

		c.JSON(http.StatusOK, users)
	}
}

func DeleteUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("users").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			log.Println("DeleteUser delete error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}

/* =======================
   LOGIN
======================= */

// Login verifies credentials and returns a signed token. Nothing in the API
// verifies that token on later requests, so this is an identity check for the
// admin SPA, not session security.
func Login(db *mongo.Database, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		username := strings.TrimSpace(req.Username)
		password := strings.TrimSpace(req.Password)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"username": username}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid username or password"})
			return
		}
		if err != nil {
			log.Println("Login find error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid username or password"})
			return
		}

		token, err := issueToken(user.Username, jwtSecret, tokenTTL)
		if err != nil {
			log.Println("Login token error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "server error"})
			return
		}

		log.Println("[AUTH] [INFO] login succeeded for:", username)
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

func issueToken(username, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
