package controllers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"restaurant-api/apperrors"
	"restaurant-api/middleware"
	"restaurant-api/models"
	"restaurant-api/stores"
	"restaurant-api/utils"
)

const maxUploadBytes = 32 << 20

// CreateRestaurantDTO is the restaurant creation body. The owner and
// location are server-assigned and cannot be supplied by the client.
type CreateRestaurantDTO struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Email       string          `json:"email" validate:"required,email"`
	PhoneNo     string          `json:"phoneNo" validate:"required,e164"`
	Address     string          `json:"address" validate:"required"`
	Category    models.Category `json:"category" validate:"required,oneof='Fast Food' 'Cafe' 'Fine Dinning'"`
}

// UpdateRestaurantDTO is the restaurant update body; all fields optional.
type UpdateRestaurantDTO struct {
	Name        *string          `json:"name" validate:"omitempty"`
	Description *string          `json:"description" validate:"omitempty"`
	Email       *string          `json:"email" validate:"omitempty,email"`
	PhoneNo     *string          `json:"phoneNo" validate:"omitempty,e164"`
	Address     *string          `json:"address" validate:"omitempty"`
	Category    *models.Category `json:"category" validate:"omitempty,oneof='Fast Food' 'Cafe' 'Fine Dinning'"`
}

// RestaurantController handles restaurant requests
type RestaurantController struct {
	Restaurants stores.RestaurantStore
	Storage     utils.ImageStorage
	Geocoder    utils.Geocoder
}

// NewRestaurantController creates a new RestaurantController
func NewRestaurantController(restaurants stores.RestaurantStore, storage utils.ImageStorage, geocoder utils.Geocoder) *RestaurantController {
	return &RestaurantController{
		Restaurants: restaurants,
		Storage:     storage,
		Geocoder:    geocoder,
	}
}

// GetRestaurants lists restaurants, filtered by keyword and paginated.
func (rc *RestaurantController) GetRestaurants(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	restaurants, err := rc.Restaurants.Find(r.Context(), keyword, page)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, restaurants)
}

// CreateRestaurant creates a restaurant owned by the current user.
func (rc *RestaurantController) CreateRestaurant(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		utils.WriteError(w, apperrors.New(apperrors.KindAuthentication, "Login first to access this resource."))
		return
	}

	var dto CreateRestaurantDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, apperrors.New(apperrors.KindValidation, "Invalid input."))
		return
	}
	if err := utils.ValidateStruct(dto); err != nil {
		utils.WriteError(w, err)
		return
	}

	restaurant := &models.Restaurant{
		Name:        dto.Name,
		Description: dto.Description,
		Email:       dto.Email,
		PhoneNo:     dto.PhoneNo,
		Address:     dto.Address,
		Category:    dto.Category,
		Images:      []models.Image{},
		Menu:        []primitive.ObjectID{},
		User:        user.ID,
	}

	// Geocoding is enrichment, not a gate: on failure the restaurant is
	// stored without a location.
	location, err := rc.Geocoder.Lookup(r.Context(), dto.Address)
	if err != nil {
		slog.Warn("geocode address", "address", dto.Address, "error", err)
	} else {
		restaurant.Location = location
	}

	if err := rc.Restaurants.Create(r.Context(), restaurant); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, restaurant)
}

// GetRestaurant retrieves a single restaurant by ID
func (rc *RestaurantController) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	restaurant, err := rc.Restaurants.FindByID(r.Context(), id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, restaurant)
}

// UpdateRestaurant updates a restaurant after verifying ownership.
func (rc *RestaurantController) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
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

	var dto UpdateRestaurantDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, apperrors.New(apperrors.KindValidation, "Invalid input."))
		return
	}
	if err := utils.ValidateStruct(dto); err != nil {
		utils.WriteError(w, err)
		return
	}

	// Load, verify existence, verify ownership, only then mutate.
	restaurant, err := rc.Restaurants.FindByID(r.Context(), id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if !ownedBy(restaurant.User, user) {
		utils.WriteError(w, apperrors.New(apperrors.KindAuthorization, "You cannot update this restaurant."))
		return
	}

	updated, err := rc.Restaurants.Update(r.Context(), id, stores.RestaurantUpdate{
		Name:        dto.Name,
		Description: dto.Description,
		Email:       dto.Email,
		PhoneNo:     dto.PhoneNo,
		Address:     dto.Address,
		Category:    dto.Category,
	})
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, updated)
}

// DeleteRestaurant deletes a restaurant after verifying ownership. The
// stored images must be removed first; if removal fails the document is
// retained and {deleted:false} is returned.
func (rc *RestaurantController) DeleteRestaurant(w http.ResponseWriter, r *http.Request) {
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

	restaurant, err := rc.Restaurants.FindByID(r.Context(), id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if !ownedBy(restaurant.User, user) {
		utils.WriteError(w, apperrors.New(apperrors.KindAuthorization, "You cannot delete this restaurant."))
		return
	}

	if !rc.Storage.Delete(r.Context(), restaurant.Images) {
		slog.Warn("image removal failed, restaurant retained", "restaurant", id.Hex())
		utils.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": false})
		return
	}

	if err := rc.Restaurants.Delete(r.Context(), id); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// UploadFiles uploads restaurant images and appends their descriptors.
func (rc *RestaurantController) UploadFiles(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	// Verify the restaurant exists before touching storage.
	if _, err := rc.Restaurants.FindByID(r.Context(), id); err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.WriteError(w, apperrors.New(apperrors.KindValidation, "Invalid multipart form."))
		return
	}
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		utils.WriteError(w, apperrors.New(apperrors.KindValidation, "No files provided."))
		return
	}

	files := make([]utils.UploadFile, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			utils.WriteError(w, err)
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			utils.WriteError(w, err)
			return
		}
		files = append(files, utils.UploadFile{Name: header.Filename, Data: data})
	}

	images, err := rc.Storage.Upload(r.Context(), id.Hex(), files)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	restaurant, err := rc.Restaurants.AppendImages(r.Context(), id, images)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, restaurant)
}

// parseID parses a path id, mapping malformed input to a validation error.
func parseID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperrors.New(apperrors.KindValidation, "Please enter a correct ID.")
	}
	return id, nil
}

// ownedBy compares owner and caller by identifier value. The two sides may
// be differently sourced representations of the same id, so the comparison
// goes through the canonical hex form.
func ownedBy(owner primitive.ObjectID, user *models.User) bool {
	return owner.Hex() == user.ID.Hex()
}
