package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carried in a session token. The role rides along with the user id
// so handlers can gate operator/supervisor actions without a user lookup.
type Claims struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// tokenTTL bounds a session; clients re-login after it lapses.
const tokenTTL = 72 * time.Hour

var signingKey []byte

// UseSecret installs the JWT signing key. Wired once at startup from the
// loaded configuration; there is no env fallback here.
func UseSecret(secret string) {
	signingKey = []byte(secret)
}

// GenerateToken issues a signed session token for the user.
func GenerateToken(userID uuid.UUID, email, role string) (string, error) {
	if len(signingKey) == 0 {
		return "", errors.New("jwt signing key not configured")
	}

	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
}

// Protected rejects requests without a valid bearer token and stores the
// caller's identity in the request locals.
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == "" || tokenString == header {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing or malformed authorization header",
			})
		}

		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return signingKey, nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token claims",
			})
		}

		c.Locals("userId", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// GetUserID returns the authenticated user's id, or uuid.Nil outside a
// protected route.
func GetUserID(c *fiber.Ctx) uuid.UUID {
	userID, ok := c.Locals("userId").(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

// GetRole returns the authenticated user's role, empty outside a protected
// route.
func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals("role").(string)
	return role
}
