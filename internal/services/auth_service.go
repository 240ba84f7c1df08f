package services

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	passwordvalidator "github.com/wagslane/go-password-validator"
	"golang.org/x/crypto/bcrypt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenBlacklist remembers revoked token ids until they expire.
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// TokenPair is returned on signup, signin and refresh.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Claims are the JWT claims issued by AuthService.
type Claims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.StandardClaims
}

// AuthConfig configures token lifetimes and password policy.
type AuthConfig struct {
	Secret             string
	AccessTTL          time.Duration
	RefreshTTL         time.Duration
	PasswordMinEntropy float64
}

// SignupInput is the validated signup request.
type SignupInput struct {
	FirstName string
	LastName  string
	Username  string
	Password  string
	RoleID    uint
}

// ProfileUpdate carries the fields to change; nil fields are left as they are.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Username  *string
	Password  *string
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo  repositories.UserRepository
	roleRepo  repositories.RoleRepository
	blacklist TokenBlacklist
	cfg       AuthConfig
	now       func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, roleRepo repositories.RoleRepository, blacklist TokenBlacklist, cfg AuthConfig) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		blacklist: blacklist,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Signup registers a new user and issues a token pair. Checks run in order:
// username uniqueness, password strength, role existence.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*TokenPair, error) {
	if err := s.ensureUsernameFree(in.Username, 0); err != nil {
		return nil, err
	}
	if err := s.checkPassword(in.Password); err != nil {
		return nil, err
	}
	if _, err := s.roleRepo.GetByID(in.RoleID); err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, apperrors.FieldError("groups", "Invalid role")
		}
		return nil, fmt.Errorf("failed to resolve role: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  in.Username,
		Password:  string(hashed),
		RoleID:    in.RoleID,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return s.issuePair(user)
}

// Signin checks credentials and issues a fresh token pair.
func (s *AuthService) Signin(ctx context.Context, username, password string) (*TokenPair, error) {
	invalid := apperrors.Authentication("Incorrect username or password")

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, invalid
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, invalid
	}
	return s.issuePair(user)
}

// Refresh rotates a refresh token: the old one is revoked and a new pair issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.validate(ctx, refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, apperrors.Authorization("User not found")
		}
		return nil, err
	}
	if err := s.revoke(ctx, claims); err != nil {
		return nil, err
	}
	return s.issuePair(user)
}

// Signout revokes a refresh token.
func (s *AuthService) Signout(ctx context.Context, refreshToken string) error {
	claims, err := s.validate(ctx, refreshToken, TokenTypeRefresh)
	if err != nil {
		return err
	}
	return s.revoke(ctx, claims)
}

// Authenticate resolves the user behind an access token.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := s.validate(ctx, accessToken, TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, apperrors.Authorization("User not found")
		}
		return nil, err
	}
	return user, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.Authorization("Token is invalid or expired")
	}
	return claims, nil
}

// Profile returns the user with its role.
func (s *AuthService) Profile(userID uint) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// UpdateProfile applies a partial update; the password is re-hashed only when given.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, upd ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if upd.Username != nil && *upd.Username != user.Username {
		if err := s.ensureUsernameFree(*upd.Username, user.ID); err != nil {
			return nil, err
		}
		user.Username = *upd.Username
	}
	if upd.FirstName != nil {
		user.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		user.LastName = *upd.LastName
	}
	if upd.Password != nil {
		if err := s.checkPassword(*upd.Password); err != nil {
			return nil, err
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount permanently removes the user.
func (s *AuthService) DeleteAccount(userID uint) error {
	return s.userRepo.Delete(userID)
}

// Roles lists the roles a user can sign up with.
func (s *AuthService) Roles() ([]models.Role, error) {
	return s.roleRepo.GetAll()
}

func (s *AuthService) ensureUsernameFree(username string, selfID uint) error {
	existing, err := s.userRepo.GetByUsername(username)
	switch {
	case err == nil && existing.ID != selfID:
		return apperrors.FieldError("username", "A user with that username already exists.")
	case err != nil && !apperrors.Is(err, apperrors.KindNotFound):
		return fmt.Errorf("failed to check username: %w", err)
	}
	return nil
}

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

func (s *AuthService) checkPassword(password string) error {
	if len(password) > maxPasswordBytes {
		return apperrors.FieldError("password", fmt.Sprintf("Ensure this field has no more than %d bytes.", maxPasswordBytes))
	}
	if err := passwordvalidator.Validate(password, s.cfg.PasswordMinEntropy); err != nil {
		return apperrors.FieldError("password", err.Error())
	}
	return nil
}

func (s *AuthService) validate(ctx context.Context, tokenString, tokenType string) (*Claims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenType {
		return nil, apperrors.Authorization("Token has wrong type")
	}
	revoked, err := s.blacklist.IsRevoked(ctx, claims.Id)
	if err != nil {
		return nil, fmt.Errorf("failed to check token: %w", err)
	}
	if revoked {
		return nil, apperrors.Authorization("Token is blacklisted")
	}
	return claims, nil
}

func (s *AuthService) revoke(ctx context.Context, claims *Claims) error {
	ttl := time.Unix(claims.ExpiresAt, 0).Sub(s.now())
	if err := s.blacklist.Revoke(ctx, claims.Id, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *AuthService) issuePair(user *models.User) (*TokenPair, error) {
	access, err := s.sign(user, TokenTypeAccess, s.cfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(user, TokenTypeRefresh, s.cfg.RefreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *AuthService) sign(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:    user.ID,
		Username:  user.Username,
		TokenType: tokenType,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
