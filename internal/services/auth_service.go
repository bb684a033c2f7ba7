package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/nanomedia/social-backend/internal/models"
	"github.com/nanomedia/social-backend/internal/repositories"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// FirebaseVerifier verifies Firebase ID tokens; *auth.Client implements it.
type FirebaseVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// AuthService registers users and issues, checks and revokes access tokens.
type AuthService struct {
	users    repositories.UserRepository
	tokens   repositories.TokenStore
	firebase FirebaseVerifier // nil when Firebase login is disabled
	cfg      AuthConfig
	log      *zap.Logger
	now      func() time.Time
}

func NewAuthService(users repositories.UserRepository, tokens repositories.TokenStore, firebase FirebaseVerifier, cfg AuthConfig, log *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		firebase: firebase,
		cfg:      cfg,
		log:      log.Named("auth"),
		now:      time.Now,
	}
}

// Register creates a local account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if _, err := s.users.GetUserByUsername(ctx, req.Login); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "failed to look up username")
	}
	if _, err := s.users.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "failed to look up email")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &models.User{Username: req.Login, Email: req.Email, Password: string(hashed)}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, errors.Wrap(err, "failed to create user")
	}
	return user, nil
}

// Login checks the password of the user named req.Login and issues a token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (string, *models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, req.Login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, errors.Wrap(err, "failed to look up user")
	}
	if user.Password == "" {
		// firebase-only account
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// FirebaseLogin exchanges a verified Firebase ID token for a local token, linking or
// creating the account on first use.
func (s *AuthService) FirebaseLogin(ctx context.Context, idToken string) (string, *models.User, error) {
	if s.firebase == nil {
		return "", nil, errors.WithMessage(ErrInvalidOperation, "firebase login is not configured")
	}

	fbToken, err := s.firebase.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.log.Debug("firebase token rejected", zap.Error(err))
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.firebaseUser(ctx, fbToken)
	if err != nil {
		return "", nil, err
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) firebaseUser(ctx context.Context, fbToken *auth.Token) (*models.User, error) {
	user, err := s.users.GetUserByFirebaseUID(ctx, fbToken.UID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "failed to look up firebase user")
	}

	email, _ := fbToken.Claims["email"].(string)
	uid := fbToken.UID
	if email != "" {
		user, err = s.users.GetUserByEmail(ctx, email)
		if err == nil {
			user.FirebaseUID = &uid
			if err := s.users.UpdateUser(ctx, user); err != nil {
				return nil, errors.Wrap(err, "failed to link firebase account")
			}
			return user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(err, "failed to look up email")
		}
	} else {
		email = uid + "@firebase.local"
	}

	user = &models.User{
		Username:    firebaseUsername(fbToken),
		Email:       email,
		FirebaseUID: &uid,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, errors.Wrap(err, "failed to create firebase user")
	}
	return user, nil
}

func firebaseUsername(t *auth.Token) string {
	uid := t.UID
	if len(uid) > 8 {
		uid = uid[:8]
	}
	name, _ := t.Claims["name"].(string)
	name = strings.ToLower(strings.Join(strings.Fields(name), "_"))
	if name == "" {
		return "user_" + uid
	}
	if len(name) > 40 {
		name = name[:40]
	}
	return fmt.Sprintf("%s_%s", name, uid)
}

func (s *AuthService) issueToken(ctx context.Context, user *models.User) (string, error) {
	now := s.now()
	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	if err := s.tokens.Save(ctx, token, user.ID, s.cfg.TokenTTL); err != nil {
		return "", errors.Wrap(err, "failed to store token")
	}
	return token, nil
}

// ParseToken validates signature and expiry and checks that the token was not revoked.
func (s *AuthService) ParseToken(ctx context.Context, tokenString string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}

	active, err := s.tokens.Exists(ctx, tokenString)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check token")
	}
	if !active {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}

// Logout revokes the token; later requests carrying it are rejected.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return errors.Wrap(s.tokens.Revoke(ctx, token), "failed to revoke token")
}
