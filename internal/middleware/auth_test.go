package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/whoami", Protected(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId": GetUserID(c).String(),
			"role":   GetRole(c),
		})
	})
	return app
}

func TestProtectedRoundTrip(t *testing.T) {
	UseSecret("unit-test-secret")
	app := protectedApp()

	userID := uuid.New()
	token, err := GenerateToken(userID, "residente@example.com", "operator")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectedRejectsBadTokens(t *testing.T) {
	UseSecret("unit-test-secret")
	app := protectedApp()

	cases := map[string]string{
		"missing header": "",
		"not bearer":     "Basic abcdef",
		"garbage token":  "Bearer not-a-jwt",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestProtectedRejectsForeignKey(t *testing.T) {
	UseSecret("first-secret")
	token, err := GenerateToken(uuid.New(), "residente@example.com", "operator")
	require.NoError(t, err)

	// A key rotation invalidates previously issued tokens.
	UseSecret("second-secret")
	app := protectedApp()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGenerateTokenRequiresKey(t *testing.T) {
	UseSecret("")
	_, err := GenerateToken(uuid.New(), "residente@example.com", "operator")
	assert.Error(t, err)
}
