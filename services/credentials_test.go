package services

import (
	"errors"
	"testing"
	"time"

	"github.com/Imdachu/imf-gadget/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCredentialManager_RequiresSecret(t *testing.T) {
	_, err := NewCredentialManager(newTestDB(t), CredentialOptions{})
	assert.Error(t, err)
}

func TestNewCredentialManager_CopiesSecret(t *testing.T) {
	secret := []byte("original")
	m, err := NewCredentialManager(newTestDB(t), CredentialOptions{Secret: secret})
	require.NoError(t, err)

	secret[0] = 'X'
	assert.Equal(t, []byte("original"), m.secret)
	assert.Equal(t, DefaultTokenTTL, m.ttl)
}

func TestRegisterLoginAuthenticate_RoundTrip(t *testing.T) {
	m := newTestCredentials(t, newTestDB(t), "secret")

	user, err := m.Register("bond@imf.gov", "shaken-not-stirred")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "shaken-not-stirred", user.PasswordHash)

	token, err := m.Login("bond@imf.gov", "shaken-not-stirred")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := m.AuthenticateRequest("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, "bond@imf.gov", identity.Email)
}

func TestRegister_StoresOnlyHash(t *testing.T) {
	db := newTestDB(t)
	m := newTestCredentials(t, db, "secret")

	_, err := m.Register("q@imf.gov", "gadgets")
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, db.First(&stored, "email = ?", "q@imf.gov").Error)
	assert.NotEqual(t, "gadgets", stored.PasswordHash)
	assert.Contains(t, stored.PasswordHash, "$2")
}

func TestRegister_Validation(t *testing.T) {
	m := newTestCredentials(t, newTestDB(t), "secret")

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"missing email", "", "pw"},
		{"missing password", "a@imf.gov", ""},
		{"missing both", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Register(tt.email, tt.password)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestRegister_Conflict(t *testing.T) {
	m := newTestCredentials(t, newTestDB(t), "secret")

	_, err := m.Register("ethan@imf.gov", "pw1")
	require.NoError(t, err)

	_, err = m.Register("ethan@imf.gov", "pw2")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegister_EmailIsCaseSensitive(t *testing.T) {
	m := newTestCredentials(t, newTestDB(t), "secret")

	_, err := m.Register("Ethan@imf.gov", "pw")
	require.NoError(t, err)
	_, err = m.Register("ethan@imf.gov", "pw")
	assert.NoError(t, err)
}

func TestLogin_UniformFailure(t *testing.T) {
	m := newTestCredentials(t, newTestDB(t), "secret")
	_, err := m.Register("luther@imf.gov", "right")
	require.NoError(t, err)

	_, wrongPassword := m.Login("luther@imf.gov", "wrong")
	_, unknownEmail := m.Login("nobody@imf.gov", "right")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLogin_Validation(t *testing.T) {
	m := newTestCredentials(t, newTestDB(t), "secret")

	_, err := m.Login("", "pw")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestIssueToken_ExpiresAfterOneHour(t *testing.T) {
	m := newTestCredentials(t, newTestDB(t), "secret")
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }

	token, err := m.IssueToken(&models.User{ID: "u1", Email: "a@imf.gov"})
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "a@imf.gov", claims.Email)
	assert.Equal(t, issued.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())

	m.now = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = m.VerifyToken(token)
	assert.NoError(t, err)

	m.now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = m.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticateRequest_Rejections(t *testing.T) {
	db := newTestDB(t)
	m := newTestCredentials(t, db, "secret")
	other := newTestCredentials(t, db, "different-secret")

	user := &models.User{ID: "u1", Email: "a@imf.gov"}
	foreign, err := other.IssueToken(user)
	require.NoError(t, err)

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID:           "u1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	wrongAlg, err := hs512.SignedString([]byte("secret"))
	require.NoError(t, err)

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "u1"})
	unbounded, err := noExpiry.SignedString([]byte("secret"))
	require.NoError(t, err)

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	anonymous, err := noSubject.SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   error
	}{
		{"empty header", "", ErrMissingToken},
		{"scheme only", "Bearer", ErrMissingToken},
		{"wrong scheme", "Basic abc", ErrMissingToken},
		{"too many parts", "Bearer a b", ErrMissingToken},
		{"garbage token", "Bearer not.a.jwt", ErrInvalidToken},
		{"different secret", "Bearer " + foreign, ErrInvalidToken},
		{"different algorithm", "Bearer " + wrongAlg, ErrInvalidToken},
		{"missing expiry", "Bearer " + unbounded, ErrInvalidToken},
		{"missing user id", "Bearer " + anonymous, ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.AuthenticateRequest(tt.header)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"  Bearer   abc  ", "abc"},
		{"Bearer", ""},
		{"Token abc", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, BearerToken(tt.header))
		})
	}
}
