package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"blum-backend/internal/config"
	"blum-backend/internal/database"
	"blum-backend/internal/handlers"
	"blum-backend/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureArticleIndexes(db); err != nil {
		log.Printf("article index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}

	var store handlers.MediaStore
	if config.AppEnv.MediaUploadURL != "" {
		store = handlers.NewRelayStore(config.AppEnv.MediaUploadURL)
	} else {
		store = handlers.NewDiskStore(config.AppEnv.UploadDir, config.AppEnv.PublicBaseURL)
	}

	r := gin.Default()
	r.Use(middleware.CORS(config.AppEnv.AllowedOrigins))

	if config.AppEnv.MediaUploadURL == "" {
		r.Static("/uploads", config.AppEnv.UploadDir)
	}

	r.POST("/products", handlers.CreateProduct(db))
	r.GET("/products", handlers.GetProducts(db))
	r.GET("/products/:id", handlers.GetProduct(db))
	r.PUT("/products/:id", handlers.UpdateProduct(db))
	r.DELETE("/products/:id", handlers.DeleteProduct(db))

	r.POST("/articles", handlers.CreateArticle(db))
	r.GET("/articles", handlers.GetArticles(db))
	r.GET("/articles/:id", handlers.GetArticle(db))
	r.PUT("/articles/:id", handlers.UpdateArticle(db))
	r.DELETE("/articles/:id", handlers.DeleteArticle(db))

	r.POST("/users", handlers.CreateUser(db))
	r.GET("/users", handlers.GetUsers(db))
	r.DELETE("/users/:id", handlers.DeleteUser(db))
	r.POST("/login", handlers.Login(db, config.AppEnv.JWTSecret, config.AppEnv.TokenTTL))

	r.GET("/about", handlers.GetAbout(db))
	r.PUT("/about", handlers.UpdateAbout(db, store))
	r.DELETE("/about/media", handlers.DeleteAboutMedia(db, store))

	r.POST("/orders", handlers.CreateOrder(db))
	r.GET("/orders", handlers.GetOrders(db))
	r.GET("/orders/:id", handlers.GetOrder(db))
	r.PUT("/orders/:id/status", handlers.UpdateOrderStatus(db))
	r.DELETE("/orders/:id", handlers.DeleteOrder(db))

	r.POST("/upload", handlers.UploadImage(store))

	if err := r.Run(":" + config.AppEnv.Port); err != nil {
		log.Fatal(err)
	}
}
