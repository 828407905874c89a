package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Imdachu/imf-gadget/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultTokenTTL is the lifetime of an issued bearer token
const DefaultTokenTTL = time.Hour

// Claims is the payload of a bearer token
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller attached to a request
type Identity struct {
	UserID string
	Email  string
}

// CredentialOptions configures a CredentialManager
type CredentialOptions struct {
	Secret     []byte
	TokenTTL   time.Duration
	BcryptCost int
}

// CredentialManager owns password hashing, token issuance and token
// verification. The signing secret is copied on construction and never
// changed afterwards, so a manager is safe for concurrent use.
type CredentialManager struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
}

// NewCredentialManager creates a credential manager
func NewCredentialManager(db *gorm.DB, opts CredentialOptions) (*CredentialManager, error) {
	if len(opts.Secret) == 0 {
		return nil, errors.New("token signing secret is required")
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = DefaultTokenTTL
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}

	secret := make([]byte, len(opts.Secret))
	copy(secret, opts.Secret)

	return &CredentialManager{
		db:     db,
		secret: secret,
		ttl:    opts.TokenTTL,
		cost:   opts.BcryptCost,
		now:    time.Now,
	}, nil
}

// Register creates a user with a bcrypt hash of the password
func (m *CredentialManager) Register(email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	var count int64
	if err := m.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("%w: looking up user: %w", ErrInternal, err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: user %s already exists", ErrConflict, email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if err != nil {
		return nil, fmt.Errorf("%w: hashing password: %w", ErrInternal, err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := m.db.Create(&user).Error; err != nil {
		// A concurrent registration can win the race between Count and Create
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: user %s already exists", ErrConflict, email)
		}
		return nil, fmt.Errorf("%w: creating user: %w", ErrInternal, err)
	}

	return &user, nil
}

// Login verifies credentials and issues a signed token. Unknown email and
// wrong password both yield ErrInvalidCredentials.
func (m *CredentialManager) Login(email, password string) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	var user models.User
	if err := m.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%w: looking up user: %w", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%w: comparing password: %w", ErrInternal, err)
	}

	return m.IssueToken(&user)
}

// IssueToken signs a token for user that expires after the configured TTL
func (m *CredentialManager) IssueToken(user *models.User) (string, error) {
	now := m.now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("%w: signing token: %w", ErrInternal, err)
	}
	return signed, nil
}

// AuthenticateRequest verifies the value of an Authorization header and
// returns the identity it carries
func (m *CredentialManager) AuthenticateRequest(authHeader string) (*Identity, error) {
	tokenString := BearerToken(authHeader)
	if tokenString == "" {
		return nil, ErrMissingToken
	}
	return m.VerifyToken(tokenString)
}

// VerifyToken checks signature, algorithm and expiry of a raw token
func (m *CredentialManager) VerifyToken(tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(_ *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing userId", ErrInvalidToken)
	}

	return &Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

// BearerToken extracts the token from "Bearer <token>". It returns ""
// when the header carries no token.
func BearerToken(authHeader string) string {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
