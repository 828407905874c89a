package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/Imdachu/imf-gadget/metrics"
	"github.com/Imdachu/imf-gadget/services"
	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware
const (
	ContextUserID = "userId"
	ContextEmail  = "email"
)

// CredentialsRequest is the body of /register and /login
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	Token string `json:"token"`
}

// bindOptionalJSON decodes the body into v. An empty body leaves v untouched.
func bindOptionalJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

var credentialsMessages = errorMessages{validation: "Email and password are required"}

// Register handles user registration
// POST /register
func Register(c *gin.Context) {
	var req CredentialsRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	_, err := credentials.Register(req.Email, req.Password)
	metrics.AuthAttempts.WithLabelValues("register", outcome(err)).Inc()
	if err != nil {
		m := credentialsMessages
		m.internal = "Registration failed"
		respondError(c, "AUTH", err, m)
		return
	}

	log.Printf("🔐 [AUTH] Registered user %s", req.Email)
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

// Login handles user authentication
// POST /login
func Login(c *gin.Context) {
	var req CredentialsRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	token, err := credentials.Login(req.Email, req.Password)
	metrics.AuthAttempts.WithLabelValues("login", outcome(err)).Inc()
	if err != nil {
		m := credentialsMessages
		m.internal = "Login failed"
		respondError(c, "AUTH", err, m)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// AuthMiddleware protects routes. It rejects requests without a valid
// bearer token and attaches the caller's identity to the request.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := credentials.AuthenticateRequest(c.GetHeader("Authorization"))
		if err != nil {
			metrics.AuthAttempts.WithLabelValues("verify", outcome(err)).Inc()
			respondError(c, "AUTH", err, errorMessages{internal: "Invalid token", internalStatus: http.StatusForbidden})
			return
		}

		c.Set(ContextUserID, identity.UserID)
		c.Set(ContextEmail, identity.Email)
		c.Request = c.Request.WithContext(services.WithIdentity(c.Request.Context(), identity))

		c.Next()
	}
}
