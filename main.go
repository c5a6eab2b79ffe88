// main.go
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"restaurant-api/config"
	"restaurant-api/controllers"
	"restaurant-api/middleware"
	"restaurant-api/routes"
	"restaurant-api/stores"
	"restaurant-api/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// Token signing is process-wide configuration
	utils.JwtKey = []byte(cfg.JWTSecret)
	utils.JwtExpires = cfg.JWTExpires

	ctx := context.Background()

	// Connect to MongoDB
	client, err := stores.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			log.Fatal(err)
		}
	}()

	db := client.Database(cfg.MongoDB)
	userStore := stores.NewUserStore(db)
	if err := userStore.EnsureIndexes(ctx); err != nil {
		log.Fatal(err)
	}
	restaurantStore := stores.NewRestaurantStore(db)
	mealStore := stores.NewMealStore(db)
	txRunner := stores.NewTxRunner(client)

	// External collaborators
	storage, err := utils.NewS3Storage(ctx, cfg.AWSRegion, cfg.S3Bucket)
	if err != nil {
		log.Fatal(err)
	}
	geocoder := utils.NewGeoService(cfg.GoogleMapsAPIKey)

	var mailer utils.Mailer
	if cfg.PostmarkAPIToken != "" {
		mailer = utils.NewEmailService(cfg.PostmarkAPIToken, cfg.EmailSender)
	}

	// Initialize controllers
	authController := controllers.NewAuthController(userStore, mailer)
	restaurantController := controllers.NewRestaurantController(restaurantStore, storage, geocoder)
	mealController := controllers.NewMealController(mealStore, restaurantStore, txRunner)

	// Set up the router
	router := mux.NewRouter()
	router.Use(middleware.Logging)
	routes.RegisterRoutes(router, middleware.NewAuthMiddleware(userStore), authController, restaurantController, mealController)

	slog.Info("server listening", "port", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}
