package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"restaurant-api/controllers"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(
	router *mux.Router,
	authMiddleware func(http.Handler) http.Handler,
	authController *controllers.AuthController,
	restaurantController *controllers.RestaurantController,
	mealController *controllers.MealController,
) {
	// Auth routes
	router.HandleFunc("/auth/signup", authController.SignUp).Methods("POST")
	router.HandleFunc("/auth/login", authController.Login).Methods("GET")

	// Public restaurant routes
	router.HandleFunc("/restaurants", restaurantController.GetRestaurants).Methods("GET")
	router.HandleFunc("/restaurants/{id}", restaurantController.GetRestaurant).Methods("GET")

	// Public meal routes
	router.HandleFunc("/meals", mealController.GetMeals).Methods("GET")
	router.HandleFunc("/meals/restaurant/{id}", mealController.GetMealsByRestaurant).Methods("GET")
	router.HandleFunc("/meals/{id}", mealController.GetMeal).Methods("GET")

	// Protected routes
	protected := router.PathPrefix("/").Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/restaurants", restaurantController.CreateRestaurant).Methods("POST")
	protected.HandleFunc("/restaurants/upload/{id}", restaurantController.UploadFiles).Methods("PUT")
	protected.HandleFunc("/restaurants/{id}", restaurantController.UpdateRestaurant).Methods("PUT")
	protected.HandleFunc("/restaurants/{id}", restaurantController.DeleteRestaurant).Methods("DELETE")
	protected.HandleFunc("/meals", mealController.CreateMeal).Methods("POST")
	protected.HandleFunc("/meals/{id}", mealController.UpdateMeal).Methods("PUT")
	protected.HandleFunc("/meals/{id}", mealController.DeleteMeal).Methods("DELETE")
}
