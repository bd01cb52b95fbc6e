package middleware_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/glebarez/sqlite"

	"messenger-api/config"
	"messenger-api/entity"
	"messenger-api/enum"
	"messenger-api/middleware"
	"messenger-api/repository"
	"messenger-api/security"
)

type harness struct {
	app *fiber.App
	jwt *security.JWT
	db  *gorm.DB
}

func newHarness(t *testing.T, accessTTL time.Duration) *harness {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{TablePrefix: "t_", SingularTable: true},
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.User{}))

	accessKey, err := ecdsa.GenerateKey(elliptic.P521(), rand.Reader)
	require.NoError(t, err)
	refreshKey, err := ecdsa.GenerateKey(elliptic.P521(), rand.Reader)
	require.NoError(t, err)
	jwtSecurity := security.NewJWTFromKeys(accessKey, refreshKey, accessTTL, 24*time.Hour)

	log := logrus.New()
	log.SetOutput(io.Discard)

	m := middleware.NewMiddleware(jwtSecurity, repository.NewUserRepository(), db, log)

	app := fiber.New(fiber.Config{ErrorHandler: config.ErrorHandler})
	echo := func(c *fiber.Ctx) error {
		return c.SendString(middleware.CurrentUserID(c))
	}
	app.Get("/protected",
		m.AccessProtected(), m.RequireTokenType(enum.TokenTypeAccess), echo)
	app.Get("/admin",
		m.AccessProtected(), m.RequireTokenType(enum.TokenTypeAccess), m.AdminOnly(), echo)
	app.Post("/refresh",
		m.RefreshProtected(), m.RequireTokenType(enum.TokenTypeRefresh), echo)

	return &harness{app: app, jwt: jwtSecurity, db: db}
}

func (h *harness) seedUser(t *testing.T, role enum.Role) entity.User {
	t.Helper()

	user := entity.User{
		FirstName: "Ada",
		LastName:  "Tester",
		Email:     string(role) + "@example.com",
		Password:  "irrelevant",
		Role:      role,
	}
	require.NoError(t, h.db.Create(&user).Error)
	return user
}

func (h *harness) request(t *testing.T, method, path, token string) *http.Response {
	t.Helper()

	request := httptest.NewRequest(method, path, nil)
	if token != "" {
		request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	response, err := h.app.Test(request)
	require.NoError(t, err)
	return response
}

func TestMissingTokenRejected(t *testing.T) {
	h := newHarness(t, 15*time.Minute)

	response := h.request(t, http.MethodGet, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)
}

func TestAccessTokenPassesAndResolvesUser(t *testing.T) {
	h := newHarness(t, 15*time.Minute)
	user := h.seedUser(t, enum.RoleUser)

	tokens, err := h.jwt.GenerateTokenPair(user.ID)
	require.NoError(t, err)

	response := h.request(t, http.MethodGet, "/protected", tokens.Access)
	assert.Equal(t, http.StatusOK, response.StatusCode)

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	assert.Equal(t, user.ID, string(body))
}

// A refresh token fails the access guard at the signature check; the key
// pairs are distinct.
func TestTokenRolesNotInterchangeableOverHTTP(t *testing.T) {
	h := newHarness(t, 15*time.Minute)
	user := h.seedUser(t, enum.RoleUser)

	tokens, err := h.jwt.GenerateTokenPair(user.ID)
	require.NoError(t, err)

	response := h.request(t, http.MethodGet, "/protected", tokens.Refresh)
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)

	response = h.request(t, http.MethodPost, "/refresh", tokens.Access)
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)
}

func TestExpiredTokenMessage(t *testing.T) {
	h := newHarness(t, -time.Minute)
	user := h.seedUser(t, enum.RoleUser)

	tokens, err := h.jwt.GenerateTokenPair(user.ID)
	require.NoError(t, err)

	response := h.request(t, http.MethodGet, "/protected", tokens.Access)
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "token has expired")
}

func TestDeletedUserTokenRejected(t *testing.T) {
	h := newHarness(t, 15*time.Minute)
	user := h.seedUser(t, enum.RoleUser)

	tokens, err := h.jwt.GenerateTokenPair(user.ID)
	require.NoError(t, err)
	require.NoError(t, h.db.Delete(&entity.User{}, "id = ?", user.ID).Error)

	response := h.request(t, http.MethodGet, "/protected", tokens.Access)
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)
}

func TestAdminGuard(t *testing.T) {
	h := newHarness(t, 15*time.Minute)
	user := h.seedUser(t, enum.RoleUser)
	admin := h.seedUser(t, enum.RoleAdmin)

	userTokens, err := h.jwt.GenerateTokenPair(user.ID)
	require.NoError(t, err)
	adminTokens, err := h.jwt.GenerateTokenPair(admin.ID)
	require.NoError(t, err)

	response := h.request(t, http.MethodGet, "/admin", userTokens.Access)
	assert.Equal(t, http.StatusForbidden, response.StatusCode)

	response = h.request(t, http.MethodGet, "/admin", adminTokens.Access)
	assert.Equal(t, http.StatusOK, response.StatusCode)
}
