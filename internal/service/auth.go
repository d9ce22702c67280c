package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/el-receso/cafeteria-service/internal/apperr"
	"github.com/el-receso/cafeteria-service/internal/models"
)

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, user models.User) (*models.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// JWTConfig holds configuration for JWT token generation
type JWTConfig struct {
	Secret    string
	ExpiresIn int // hours
}

// AuthService handles registration, authentication and session tokens
type AuthService struct {
	users     UserStore
	jwtConfig JWTConfig
}

// NewAuthService creates a new authentication service
func NewAuthService(users UserStore, jwtConfig JWTConfig) *AuthService {
	return &AuthService{
		users:     users,
		jwtConfig: jwtConfig,
	}
}

// Claims represents JWT claims. SessionID keys the holder's cart.
type Claims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// Register creates a new user from a registration request. Only a
// bcrypt hash of the password is ever stored. The first user of an
// empty store is promoted to admin by the user store.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if username == "" {
		return nil, apperr.Validation("username", "must not be empty")
	}
	if email == "" {
		return nil, apperr.Validation("email", "must not be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperr.Validation("email", "must be a valid address")
	}
	if req.Password == "" {
		return nil, apperr.Validation("password", "must not be empty")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := models.RoleStudent
	// The first registration in an empty store gets the admin role so a
	// fresh deployment can be administered without manual seeding.
	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if count == 0 {
		role = models.RoleAdmin
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}

	createdUser, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, apperr.ErrDuplicate) {
			return nil, apperr.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return createdUser, nil
}

// Login authenticates a user and returns a session token. Unknown
// usernames and wrong passwords fail identically so callers cannot
// enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, apperr.ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return "", nil, apperr.ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, user, nil
}

// generateToken generates a JWT token carrying a fresh session ID
func (s *AuthService) generateToken(userID uuid.UUID, role models.UserRole) (string, error) {
	expirationTime := time.Now().Add(time.Duration(s.jwtConfig.ExpiresIn) * time.Hour)

	claims := &Claims{
		UserID:    userID.String(),
		Role:      string(role),
		SessionID: uuid.New().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// GetUser gets a user by ID
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	return user, nil
}

// ChangePassword changes a user's password after verifying the current one
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword))
	if err != nil {
		return apperr.ErrInvalidCredentials
	}

	if newPassword == "" {
		return apperr.Validation("password", "must not be empty")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.users.UpdatePassword(ctx, userID, string(hashedPassword))
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
