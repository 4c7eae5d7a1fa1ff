package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/estatehub/listing-api/internal/core/domain"
	"github.com/estatehub/listing-api/internal/core/ports"
)

// UserHandler serves account administration and favorites.
type UserHandler struct {
	users     ports.UserService
	favorites ports.FavoriteService
}

func NewUserHandler(users ports.UserService, favorites ports.FavoriteService) *UserHandler {
	return &UserHandler{users: users, favorites: favorites}
}

type updateUserRequest struct {
	Name  string `json:"name" validate:"max=100"`
	Email string `json:"email" validate:"omitempty,email"`
	Role  string `json:"role" validate:"omitempty,oneof=user agent admin"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72,bcrypt"`
}

type favoriteRequest struct {
	PropertyID string `json:"propertyId" validate:"required"`
}

type usersResponse struct {
	Items []domain.User `json:"items"`
}

type statsResponse struct {
	Days []domain.RegistrationStats `json:"days"`
}

// List handles GET /users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  usersResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []domain.User{}
	}
	return c.JSON(http.StatusOK, usersResponse{Items: users})
}

// Get handles GET /users/:id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  ErrorBody
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /users/:id.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  ErrorBody
// @Failure      409   {object}  ErrorBody
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id   path  string  true  "User ID"
// @Success      204
// @Failure      404  {object}  ErrorBody
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ChangePassword handles PUT /users/:id/password. Admins changing another
// account skip the current password check.
//
// @Summary      Change password
// @Tags         users
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string                 true  "User ID"
// @Param        body  body  changePasswordRequest  true  "Passwords"
// @Success      204
// @Failure      401  {object}  ErrorBody
// @Router       /users/{id}/password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	callerID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	target := c.Param("id")
	err = h.users.ChangePassword(c.Request().Context(), ports.ChangePasswordInput{
		UserID:          target,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ByAdmin:         role == domain.RoleAdmin && callerID != target,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RegistrationStats handles GET /users/stats/registrations.
//
// @Summary      Daily registrations by sign-up method
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Router       /users/stats/registrations [get]
func (h *UserHandler) RegistrationStats(c echo.Context) error {
	days, err := h.users.RegistrationStats(c.Request().Context())
	if err != nil {
		return err
	}
	if days == nil {
		days = []domain.RegistrationStats{}
	}
	return c.JSON(http.StatusOK, statsResponse{Days: days})
}

// ListFavorites handles GET /users/:id/favorites, most recently added first.
//
// @Summary      List favorites
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  listResponse
// @Router       /users/{id}/favorites [get]
func (h *UserHandler) ListFavorites(c echo.Context) error {
	items, err := h.favorites.List(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(items))
}

// AddFavorite handles POST /users/:id/favorites. Adding twice is not an error.
//
// @Summary      Add a favorite
// @Tags         favorites
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string           true  "User ID"
// @Param        body  body  favoriteRequest  true  "Property"
// @Success      204
// @Failure      404  {object}  ErrorBody
// @Router       /users/{id}/favorites [post]
func (h *UserHandler) AddFavorite(c echo.Context) error {
	var req favoriteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.favorites.Add(c.Request().Context(), c.Param("id"), req.PropertyID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveFavorite handles DELETE /users/:id/favorites/:propertyId.
//
// @Summary      Remove a favorite
// @Tags         favorites
// @Security     BearerAuth
// @Param        id          path  string  true  "User ID"
// @Param        propertyId  path  string  true  "Property ID"
// @Success      204
// @Router       /users/{id}/favorites/{propertyId} [delete]
func (h *UserHandler) RemoveFavorite(c echo.Context) error {
	if err := h.favorites.Remove(c.Request().Context(), c.Param("id"), c.Param("propertyId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
