package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"realtime-chat/config"
	"realtime-chat/internal/domain/user"
	"realtime-chat/internal/repository"
	chat_errors "realtime-chat/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)

type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  time.Duration(cfg.JWTExpiryHour) * time.Hour,
	}
}

type RegisterInput struct {
	Name     string
	Mobile   string
	Password string
}

type LoginInput struct {
	Mobile   string
	Password string
}

type AuthResult struct {
	User  user.User
	Token string
}

type AccessClaims struct {
	UserID string `json:"sub"`
	jwt.RegisteredClaims
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	if err := validateRegister(in); err != nil {
		return AuthResult{}, err
	}

	// Credentials always route through the one-way hash before persistence.
	hash, err := HashPassword(in.Password)
	if err != nil {
		return AuthResult{}, err
	}

	newUser := &user.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(in.Name),
		Mobile:       in.Mobile,
		PasswordHash: hash,
		ProfilePic:   user.DefaultProfilePic,
		Status:       user.StatusOffline,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return AuthResult{}, err
	}

	token, err := s.issueToken(newUser.ID)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: *newUser, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	u, err := s.userRepo.GetByMobile(ctx, in.Mobile)
	if err != nil {
		return AuthResult{}, chat_errors.ErrUnauthorized
	}

	if !CheckPassword(u.PasswordHash, in.Password) {
		return AuthResult{}, chat_errors.ErrUnauthorized
	}

	if err := s.userRepo.UpdateStatus(ctx, u.ID, user.StatusOnline); err != nil {
		return AuthResult{}, err
	}
	u.Status = user.StatusOnline

	token, err := s.issueToken(u.ID)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: u, Token: token}, nil
}

func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.userRepo.UpdateStatus(ctx, userID, user.StatusOffline)
}

func (s *AuthService) issueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) ParseAccessToken(tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, chat_errors.ErrUnauthorized
	}
	var claims AccessClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, chat_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return AccessClaims{}, chat_errors.ErrUnauthorized
	}
	return claims, nil
}

func validateRegister(in RegisterInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 50 {
		return chat_errors.ErrInvalidInput
	}
	if !mobilePattern.MatchString(in.Mobile) {
		return chat_errors.ErrInvalidInput
	}
	if len(in.Password) < 6 {
		return chat_errors.ErrInvalidInput
	}
	return nil
}

// HashPassword is the construction-time transform for credentials; raw
// passwords never reach a repository.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
