package middleware

import (
	"context"
	"net/http"
	"strings"

	"restaurant-api/apperrors"
	"restaurant-api/models"
	"restaurant-api/stores"
	"restaurant-api/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Key type for context
type contextKey string

const userContextKey = contextKey("user")

// NewAuthMiddleware verifies the bearer token on each protected request and
// resolves it to a full User record. The token only embeds the user id; the
// record is re-fetched so a deleted account stops authenticating immediately.
func NewAuthMiddleware(users stores.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.WriteError(w, apperrors.New(apperrors.KindAuthentication, "Login first to access this resource."))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.WriteError(w, apperrors.New(apperrors.KindAuthentication, "Invalid Authorization header format."))
				return
			}

			claims, err := utils.ParseJWT(parts[1])
			if err != nil {
				utils.WriteError(w, apperrors.New(apperrors.KindAuthentication, "Invalid or expired token."))
				return
			}

			userID, err := primitive.ObjectIDFromHex(claims.ID)
			if err != nil {
				utils.WriteError(w, apperrors.New(apperrors.KindAuthentication, "Invalid or expired token."))
				return
			}

			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				utils.WriteError(w, apperrors.New(apperrors.KindAuthentication, "Login first to access this resource."))
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the authenticated user attached by the auth middleware.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}
