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

/* =========================
   REQUEST DTOs
========================= */

type createOrderItemRequest struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type createOrderRequest struct {
	CustomerEmail string                   `json:"customerEmail"`
	Items         []createOrderItemRequest `json:"items"`
	Total         float64                  `json:"total"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// buildOrderFromRequest snapshots the cart lines as submitted. The total is
// taken from the client without recomputation, matching the checkout
// contract; see DESIGN.md for the flagged integrity gap.
func buildOrderFromRequest(req createOrderRequest) (models.Order, error) {
	if err := validateCustomerEmail(req.CustomerEmail); err != nil {
		return models.Order{}, err
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			ProductID: strings.TrimSpace(item.ID),
			Name:      strings.TrimSpace(item.Name),
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	return models.Order{
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		Items:         items,
		Total:         req.Total,
		Status:        OrderStatusPending,
		CreatedAt:     time.Now(),
	}, nil
}

/* =========================
   CREATE
========================= */

func CreateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		order, err := buildOrderFromRequest(req)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("orders").InsertOne(ctx, order)
		if err != nil {
			log.Println("[ORDER] [ERROR] insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "failed to create order")
			return
		}

		order.ID = res.InsertedID.(primitive.ObjectID)
		log.Println("[ORDER] [INFO] order created:", order.ID.Hex())
		c.JSON(http.StatusCreated, order)
	}
}

/* =========================
   LIST / READ
========================= */

func GetOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("orders").Find(ctx, bson.M{}, opts)
		if err != nil {
			log.Println("[ORDER] [ERROR] list failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}
		defer cursor.Close(ctx)

		orders := []models.Order{}
		if err := cursor.All(ctx, &orders); err != nil {
			log.Println("[ORDER] [ERROR] decode failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

func GetOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err := db.Collection("orders").FindOne(ctx, bson.M{"_id": id}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			log.Println("[ORDER] [ERROR] find failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

/* =========================
   STATUS UPDATE
========================= */

func UpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c)
		if !ok {
			return
		}

		var req updateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		status := strings.TrimSpace(req.Status)
		if err := validateOrderStatus(status); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("orders").UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
		if err != nil {
			log.Println("[ORDER] [ERROR] status update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		var updated models.Order
		if err := db.Collection("orders").FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
			log.Println("[ORDER] [ERROR] find after status update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		log.Println("[ORDER] [INFO] status updated:", id.Hex(), "->", status)
		c.JSON(http.StatusOK, updated)
	}
}

/* =========================
   DELETE
========================= */

func DeleteOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := objectIDParam(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("orders").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			log.Println("[ORDER] [ERROR] delete failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
