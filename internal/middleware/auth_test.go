package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newApp() *fiber.App {
	app := fiber.New()
	app.Get("/whoami", Protected(testSecret), func(c *fiber.Ctx) error {
		return c.SendString(GetUserID(c).String() + " " + GetEmail(c))
	})
	return app
}

func TestProtected_ValidToken(t *testing.T) {
	userID := uuid.New()
	token, err := GenerateToken(testSecret, userID, "a@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := newApp().Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, userID.String()+" a@example.com", string(body))
}

func TestProtected_Rejects(t *testing.T) {
	wrong, err := GenerateToken("other-secret", uuid.New(), "")
	require.NoError(t, err)

	for name, header := range map[string]string{
		"missing":      "",
		"no bearer":    "Token abc",
		"garbage":      "Bearer not-a-jwt",
		"wrong secret": "Bearer " + wrong,
	} {
		req := httptest.NewRequest("GET", "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := newApp().Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, name)
	}
}
