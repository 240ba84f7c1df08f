package handlers

import (
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication and profiles.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the authentication routes. protect guards the profile routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, protect fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/signup", h.HandleSignup)
	authRoutes.Post("/signin", h.HandleSignin)
	authRoutes.Post("/token/refresh", h.HandleRefresh)
	authRoutes.Post("/signout", h.HandleSignout)
	authRoutes.Get("/roles", h.HandleRoles)
	authRoutes.Get("/profile", protect, h.HandleGetProfile)
	authRoutes.Put("/profile", protect, h.HandleUpdateProfile)
	authRoutes.Delete("/profile", protect, h.HandleDeleteProfile)
}

// SignupRequest represents the request body for signup.
type SignupRequest struct {
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Username  string `json:"username" validate:"required,max=150"`
	Password  string `json:"password" validate:"required"`
	Groups    *uint  `json:"groups" validate:"required"`
}

// HandleSignup registers a user and returns a token pair.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := decodeStrict(h.validate, c.Body(), &req, "first_name", "last_name", "username", "password", "groups"); err != nil {
		return err
	}

	pair, err := h.authService.Signup(c.UserContext(), services.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Password:  req.Password,
		RoleID:    *req.Groups,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(pair)
}

// SigninRequest represents the request body for signin.
type SigninRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,max=72"`
}

// HandleSignin authenticates a user and returns a token pair.
func (h *AuthHandler) HandleSignin(c *fiber.Ctx) error {
	var req SigninRequest
	if err := decodeStrict(h.validate, c.Body(), &req, "username", "password"); err != nil {
		return err
	}

	pair, err := h.authService.Signin(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(pair)
}

// RefreshRequest carries a refresh token.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// HandleRefresh rotates a refresh token.
func (h *AuthHandler) HandleRefresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := decodeStrict(h.validate, c.Body(), &req, "refresh"); err != nil {
		return err
	}

	pair, err := h.authService.Refresh(c.UserContext(), req.Refresh)
	if err != nil {
		return err
	}
	return c.JSON(pair)
}

// HandleSignout revokes a refresh token.
func (h *AuthHandler) HandleSignout(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := decodeStrict(h.validate, c.Body(), &req, "refresh"); err != nil {
		return err
	}

	if err := h.authService.Signout(c.UserContext(), req.Refresh); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Signed out"})
}

type roleResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// HandleRoles lists the roles available at signup.
func (h *AuthHandler) HandleRoles(c *fiber.Ctx) error {
	roles, err := h.authService.Roles()
	if err != nil {
		return err
	}
	resp := make([]roleResponse, 0, len(roles))
	for _, r := range roles {
		resp = append(resp, roleResponse{ID: r.ID, Name: r.Name})
	}
	return c.JSON(resp)
}

type groupName struct {
	Name string `json:"name"`
}

type profileResponse struct {
	ID        uint        `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Username  string      `json:"username"`
	Groups    []groupName `json:"groups"`
}

func newProfileResponse(u *models.User) profileResponse {
	resp := profileResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Groups:    []groupName{},
	}
	if u.Role != nil {
		resp.Groups = append(resp.Groups, groupName{Name: u.Role.Name})
	}
	return resp
}

// HandleGetProfile returns the caller's profile.
func (h *AuthHandler) HandleGetProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	user, err := h.authService.Profile(userID)
	if err != nil {
		return err
	}
	return c.JSON(newProfileResponse(user))
}

// ProfileUpdateRequest is a partial profile update.
type ProfileUpdateRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	Username  *string `json:"username" validate:"omitempty,min=1,max=150"`
	Password  *string `json:"password" validate:"omitempty,min=1"`
}

// HandleUpdateProfile applies a partial update to the caller's profile.
func (h *AuthHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req ProfileUpdateRequest
	if err := decodeStrict(h.validate, c.Body(), &req, "first_name", "last_name", "username", "password"); err != nil {
		return err
	}

	user, err := h.authService.UpdateProfile(c.UserContext(), userID, services.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(newProfileResponse(user))
}

// HandleDeleteProfile removes the caller's account.
func (h *AuthHandler) HandleDeleteProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	if err := h.authService.DeleteAccount(userID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}
