package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Mofathy183/beggy-sub000/internal/config"
	"github.com/Mofathy183/beggy-sub000/internal/models"
	"github.com/Mofathy183/beggy-sub000/internal/types"
	"github.com/Mofathy183/beggy-sub000/internal/validation"
)

// Claims is the JWT payload: the authenticated user id and role.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"userRole"`
	jwt.RegisteredClaims
}

// SignupInput is the request body for account creation.
type SignupInput struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Gender   string `json:"gender" validate:"omitempty,oneof=FEMALE MALE OTHER"`
}

// SigninInput is the request body for authentication.
type SigninInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Signup creates a user with a bcrypt-hashed password and the default USER
// role. Duplicate emails surface as ErrUniqueConstraint.
func Signup(db *gorm.DB, input SignupInput) (*models.User, error) {
	input.Gender = validation.Normalize(input.Gender)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hash),
		Role:     models.RoleUser,
		Gender:   models.Gender(input.Gender),
		Provider: models.ProviderLocal,
	}

	if err := db.Create(&user).Error; err != nil {
		return nil, translateError(err)
	}

	return &user, nil
}

// Signin verifies credentials and returns the matching user. Wrong email and
// wrong password are indistinguishable to the caller.
func Signin(db *gorm.DB, input SigninInput) (*models.User, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	var user models.User
	if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if translateError(err) == types.ErrNotFound {
			return nil, types.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, types.ErrUnauthorized
	}

	return &user, nil
}

// IssueToken signs an HS256 access token for the user.
func IssueToken(cfg *config.Config, user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID.String(),
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.JWTExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "beggy",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ValidateToken parses and verifies an access token, rejecting any signing
// method other than HMAC.
func ValidateToken(cfg *config.Config, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, types.ErrUnauthorized
	}

	return claims, nil
}
