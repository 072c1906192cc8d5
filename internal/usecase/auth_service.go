package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/roomly/backend/internal/domain"
)

const usersKey = "users"

const minPasswordLength = 8

// AuthService handles registration, login, and HS256 session tokens.
type AuthService struct {
	store    domain.BlobStore
	secret   []byte
	tokenTTL time.Duration

	mu     sync.Mutex
	loaded bool
	users  []domain.User

	newID func() string
	now   func() time.Time
}

// AuthConfig holds configuration for the auth service
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// NewAuthService creates an auth service backed by the given store
func NewAuthService(store domain.BlobStore, config AuthConfig) *AuthService {
	ttl := config.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{
		store:    store,
		secret:   []byte(config.JWTSecret),
		tokenTTL: ttl,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Register creates a user with a bcrypt password hash. Email is the unique
// key, compared case-insensitively.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") || len(password) < minPasswordLength {
		return nil, domain.ErrInvalidRequest
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	for _, u := range s.users {
		if u.Email == email {
			return nil, domain.ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           s.newID(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	s.users = append(s.users, user)
	s.persist(ctx)
	return &user, nil
}

// Login verifies credentials and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	for _, u := range s.users {
		if u.Email != email {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
			return "", nil, domain.ErrInvalidCredentials
		}
		token, err := s.signToken(u.ID)
		if err != nil {
			return "", nil, err
		}
		user := u
		return token, &user, nil
	}
	return "", nil, domain.ErrInvalidCredentials
}

// VerifyToken validates a session token and returns the user ID.
func (s *AuthService) VerifyToken(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}

// Me returns the user record for an ID.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	for _, u := range s.users {
		if u.ID == userID {
			user := u
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *AuthService) signToken(userID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// userRecord is the persisted user shape; unlike domain.User it carries the
// password hash.
type userRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (s *AuthService) ensureLoaded(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true

	data, err := s.store.Load(ctx, usersKey)
	if err != nil {
		if err != domain.ErrBlobNotFound {
			log.Printf("[AUTH] load users failed, starting empty: %v", err)
		}
		return
	}

	var records []userRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("[AUTH] decode users failed, starting empty: %v", err)
		return
	}
	for _, r := range records {
		if r.ID == "" || r.Email == "" {
			continue
		}
		s.users = append(s.users, domain.User{
			ID:           r.ID,
			Email:        r.Email,
			Name:         r.Name,
			PasswordHash: r.PasswordHash,
			CreatedAt:    r.CreatedAt,
		})
	}
}

func (s *AuthService) persist(ctx context.Context) {
	records := make([]userRecord, 0, len(s.users))
	for _, u := range s.users {
		records = append(records, userRecord{
			ID:           u.ID,
			Email:        u.Email,
			Name:         u.Name,
			PasswordHash: u.PasswordHash,
			CreatedAt:    u.CreatedAt,
		})
	}
	data, err := json.Marshal(records)
	if err != nil {
		log.Printf("[AUTH] marshal users failed: %v", err)
		return
	}
	if err := s.store.Save(ctx, usersKey, data); err != nil {
		log.Printf("[AUTH] persist users failed, keeping session-only state: %v", err)
	}
}
