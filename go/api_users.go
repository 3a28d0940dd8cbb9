package sokoserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	usermapper "github.com/sokoyetu/soko-api/internal/domains/users/adapters/http/mapper"
	userports "github.com/sokoyetu/soko-api/internal/domains/users/ports"
	apierrors "github.com/sokoyetu/soko-api/internal/shared/errors"
	"github.com/sokoyetu/soko-api/internal/validation"
)

// UsersAPI wires HTTP transport with the account service.
type UsersAPI struct {
	service   userports.Service
	validator *validatorv10.Validate
}

// NewUsersAPI creates a UsersAPI backed by the provided service.
func NewUsersAPI(service userports.Service) UsersAPI {
	return UsersAPI{service: service, validator: validation.New()}
}

// RegisterRequest is the account creation payload.
type RegisterRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role" validate:"required,oneof=farmer wholesaler retailer"`
	County    string `json:"county"`
	SubCounty string `json:"subCounty"`
}

// LoginRequest is the credential payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest carries optional profile changes.
type UpdateProfileRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	County    string `json:"county"`
	SubCounty string `json:"subCounty"`
}

// SessionResponse returns the bearer token with its account.
type SessionResponse struct {
	Token string          `json:"token"`
	User  usermapper.User `json:"user"`
}

// Post /v1/auth/register
// Create a marketplace account
func (api *UsersAPI) Register(c *gin.Context) {
	var payload RegisterRequest
	if err := validation.BindAndValidate(c, &payload, api.validator); err != nil {
		return
	}
	user, err := api.service.Register(c.Request.Context(), userports.RegisterInput{
		Name:      payload.Name,
		Email:     payload.Email,
		Phone:     payload.Phone,
		Password:  payload.Password,
		Role:      payload.Role,
		County:    payload.County,
		SubCounty: payload.SubCounty,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, usermapper.FromDomainUser(user))
}

// Post /v1/auth/login
// Open a session
func (api *UsersAPI) Login(c *gin.Context) {
	var payload LoginRequest
	if err := validation.BindAndValidate(c, &payload, api.validator); err != nil {
		return
	}
	token, user, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SessionResponse{Token: token, User: usermapper.FromDomainUser(user)})
}

// Post /v1/auth/logout
// Close the current session
func (api *UsersAPI) Logout(c *gin.Context) {
	if err := api.service.Logout(c.Request.Context(), bearerToken(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/users/me
// Fetch the authenticated account
func (api *UsersAPI) GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondProblem(c, apierrors.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromDomainUser(user))
}

// Patch /v1/users/me
// Update the authenticated account's profile
func (api *UsersAPI) UpdateMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondProblem(c, apierrors.ErrUnauthorized)
		return
	}
	var payload UpdateProfileRequest
	if err := validation.BindAndValidate(c, &payload, api.validator); err != nil {
		return
	}
	updated, err := api.service.UpdateProfile(c.Request.Context(), user.ID, userports.UpdateProfileInput{
		Name:      payload.Name,
		Phone:     payload.Phone,
		County:    payload.County,
		SubCounty: payload.SubCounty,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromDomainUser(updated))
}
