package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"restaurant-api/apperrors"
	"restaurant-api/middleware"
	"restaurant-api/models"
	"restaurant-api/stores"
	"restaurant-api/utils"
)

// CreateMealDTO is the meal creation body. The creating user is
// server-assigned and cannot be supplied by the client.
type CreateMealDTO struct {
	Name        string              `json:"name" validate:"required"`
	Description string              `json:"description" validate:"required"`
	Price       *float64            `json:"price" validate:"required,gte=0"`
	Category    models.MealCategory `json:"category" validate:"required,oneof=Soups Salads Sandwiches Pasta"`
	Restaurant  string              `json:"restaurant" validate:"required"`
}

// UpdateMealDTO is the meal update body; all fields optional. The
// restaurant reference is immutable and not accepted here.
type UpdateMealDTO struct {
	Name        *string              `json:"name" validate:"omitempty"`
	Description *string              `json:"description" validate:"omitempty"`
	Price       *float64             `json:"price" validate:"omitempty,gte=0"`
	Category    *models.MealCategory `json:"category" validate:"omitempty,oneof=Soups Salads Sandwiches Pasta"`
}

// MealController handles meal requests
type MealController struct {
	Meals       stores.MealStore
	Restaurants stores.RestaurantStore
	Tx          stores.TxRunner
}

// NewMealController creates a new MealController
func NewMealController(meals stores.MealStore, restaurants stores.RestaurantStore, tx stores.TxRunner) *MealController {
	return &MealController{Meals: meals, Restaurants: restaurants, Tx: tx}
}

// GetMeals lists all meals
func (mc *MealController) GetMeals(w http.ResponseWriter, r *http.Request) {
	meals, err := mc.Meals.FindAll(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, meals)
}

// GetMealsByRestaurant lists the meals belonging to one restaurant
func (mc *MealController) GetMealsByRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	meals, err := mc.Meals.FindByRestaurant(r.Context(), id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, meals)
}

// GetMeal retrieves a single meal by ID
func (mc *MealController) GetMeal(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	meal, err := mc.Meals.FindByID(r.Context(), id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, meal)
}

// CreateMeal creates a meal on a restaurant owned by the current user and
// appends it to that restaurant's menu. Both writes commit together.
func (mc *MealController) CreateMeal(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		utils.WriteError(w, apperrors.New(apperrors.KindAuthentication, "Login first to access this resource."))
		return
	}

	var dto CreateMealDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, apperrors.New(apperrors.KindValidation, "Invalid input."))
		return
	}
	if err := utils.ValidateStruct(dto); err != nil {
		utils.WriteError(w, err)
		return
	}

	restaurantID, err := parseID(dto.Restaurant)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	// Load, verify existence, verify ownership, only then mutate. A user
	// may only add meals to restaurants they own.
	restaurant, err := mc.Restaurants.FindByID(r.Context(), restaurantID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if !ownedBy(restaurant.User, user) {
		utils.WriteError(w, apperrors.New(apperrors.KindAuthorization, "You cannot add a meal to this restaurant."))
		return
	}

	meal := &models.Meal{
		Name:        dto.Name,
		Description: dto.Description,
		Price:       *dto.Price,
		Category:    dto.Category,
		Restaurant:  restaurant.ID,
		User:        user.ID,
	}

	err = mc.Tx.WithTransaction(r.Context(), func(ctx context.Context) error {
		if err := mc.Meals.Create(ctx, meal); err != nil {
			return err
		}
		return mc.Restaurants.PushMenuEntry(ctx, restaurant.ID, meal.ID)
	})
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, meal)
}

// UpdateMeal updates a meal after verifying ownership.
func (mc *MealController) UpdateMeal(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		utils.WriteError(w, apperrors.New(apperrors.KindAuthentication, "Login first to access this resource."))
		return
	}

	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var dto UpdateMealDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, apperrors.New(apperrors.KindValidation, "Invalid input."))
		return
	}
	if err := utils.ValidateStruct(dto); err != nil {
		utils.WriteError(w, err)
		return
	}

	meal, err := mc.Meals.FindByID(r.Context(), id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if !ownedBy(meal.User, user) {
		utils.WriteError(w, apperrors.New(apperrors.KindAuthorization, "You cannot update this meal."))
		return
	}

	updated, err := mc.Meals.Update(r.Context(), id, stores.MealUpdate{
		Name:        dto.Name,
		Description: dto.Description,
		Price:       dto.Price,
		Category:    dto.Category,
	})
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, updated)
}

// DeleteMeal deletes a meal after verifying ownership. The meal id is
// pulled from the owning restaurant's menu before the meal document itself
// is removed; both writes commit together.
func (mc *MealController) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		utils.WriteError(w, apperrors.New(apperrors.KindAuthentication, "Login first to access this resource."))
		return
	}

	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	meal, err := mc.Meals.FindByID(r.Context(), id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if !ownedBy(meal.User, user) {
		utils.WriteError(w, apperrors.New(apperrors.KindAuthorization, "You cannot delete this meal."))
		return
	}

	err = mc.Tx.WithTransaction(r.Context(), func(ctx context.Context) error {
		restaurant, err := mc.Restaurants.FindByMenuEntry(ctx, meal.ID)
		switch {
		case err == nil:
			if err := mc.Restaurants.PullMenuEntry(ctx, restaurant.ID, meal.ID); err != nil {
				return err
			}
		case apperrors.IsKind(err, apperrors.KindNotFound):
			// Orphaned meal; nothing to unlink.
		default:
			return err
		}
		return mc.Meals.Delete(ctx, meal.ID)
	})
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
