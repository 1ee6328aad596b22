package commerce_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	commerce "github.com/goliatone/go-commerce"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// loginReply is the union of the shapes the login endpoint produces: the
// token pair rides at the top level, acknowledgments carry only msg, and
// failures carry only err.
type loginReply struct {
	Msg          string         `json:"msg"`
	Err          string         `json:"err"`
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
	User         *commerce.User `json:"user"`
}

func newLoginApp(t *testing.T, store *MockUserStore, tokens commerce.TokenService) *fiber.App {
	t.Helper()

	auther := commerce.NewAuthenticator(store, tokens)

	controller := &commerce.AuthController{
		Logger: commerce.DefaultLogger(),
		Auther: auther,
	}

	app := fiber.New()
	app.Post("/auth/login", controller.LoginPost)
	app.Get("/auth/logout", controller.Logout)
	return app
}

func postLogin(t *testing.T, app *fiber.App, body map[string]any, authHeader string) (*http.Response, loginReply) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var reply loginReply
	require.NoError(t, json.Unmarshal(raw, &reply))

	return res, reply
}

func TestLoginPost(t *testing.T) {
	tokens := commerce.NewTokenService(newTestConfig(), nil)

	t.Run("fresh login returns the token pair", func(t *testing.T) {
		user := newTestUser(t, "user@example.com", "correct-password")

		store := new(MockUserStore)
		store.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil).Once()

		app := newLoginApp(t, store, tokens)

		res, reply := postLogin(t, app, map[string]any{
			"email":    "user@example.com",
			"password": "correct-password",
		}, "")

		assert.Equal(t, http.StatusOK, res.StatusCode)
		// the pair lives at the response root, not under a data envelope
		assert.Empty(t, reply.Msg)
		assert.NotEmpty(t, reply.AccessToken)
		assert.NotEmpty(t, reply.RefreshToken)
		require.NotNil(t, reply.User)
		assert.Equal(t, user.Email, reply.User.Email)

		claims, err := tokens.ValidateAccess(reply.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID())
	})

	t.Run("access-only header acknowledges without tokens", func(t *testing.T) {
		user := newTestUser(t, "user@example.com", "correct-password")

		store := new(MockUserStore)
		store.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil).Once()

		app := newLoginApp(t, store, tokens)

		res, reply := postLogin(t, app, map[string]any{
			"email":    "user@example.com",
			"password": "correct-password",
		}, "Bearer some-access-token")

		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "Success", reply.Msg)
		assert.Empty(t, reply.AccessToken)
		assert.Empty(t, reply.RefreshToken)
	})

	t.Run("unknown email", func(t *testing.T) {
		store := new(MockUserStore)
		store.On("GetByEmail", mock.Anything, "ghost@example.com").
			Return(nil, repository.NewRecordNotFound()).Once()

		app := newLoginApp(t, store, tokens)

		res, reply := postLogin(t, app, map[string]any{
			"email":    "ghost@example.com",
			"password": "whatever",
		}, "")

		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Equal(t, "Incorrect email or User does not exist", reply.Err)
	})

	t.Run("wrong password", func(t *testing.T) {
		user := newTestUser(t, "user@example.com", "correct-password")

		store := new(MockUserStore)
		store.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil).Once()

		app := newLoginApp(t, store, tokens)

		res, reply := postLogin(t, app, map[string]any{
			"email":    "user@example.com",
			"password": "wrong-password",
		}, "")

		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
		assert.Equal(t, "Wrong password", reply.Err)
	})

	t.Run("provider account", func(t *testing.T) {
		store := new(MockUserStore)
		store.On("GetByEmail", mock.Anything, "oauth@example.com").
			Return(&commerce.User{Email: "oauth@example.com"}, nil).Once()

		app := newLoginApp(t, store, tokens)

		res, reply := postLogin(t, app, map[string]any{
			"email":    "oauth@example.com",
			"password": "whatever",
		}, "")

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "Please log in back via a provider", reply.Err)
	})

	t.Run("invalid payload", func(t *testing.T) {
		store := new(MockUserStore)
		app := newLoginApp(t, store, tokens)

		res, reply := postLogin(t, app, map[string]any{
			"email":    "not-an-email",
			"password": "whatever",
		}, "")

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.NotEmpty(t, reply.Err)
		store.AssertNotCalled(t, "GetByEmail")
	})

	t.Run("valid refresh-only header returns a fresh pair", func(t *testing.T) {
		user := newTestUser(t, "user@example.com", "correct-password")

		refresh, err := tokens.IssueRefreshToken(user.ID.String())
		require.NoError(t, err)

		store := new(MockUserStore)
		store.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil).Once()

		app := newLoginApp(t, store, tokens)

		res, reply := postLogin(t, app, map[string]any{
			"email":    "user@example.com",
			"password": "correct-password",
		}, "Bearer  "+refresh)

		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.NotEmpty(t, reply.AccessToken)
		assert.NotEmpty(t, reply.RefreshToken)
	})
}

func TestLogout(t *testing.T) {
	store := new(MockUserStore)
	tokens := commerce.NewTokenService(newTestConfig(), nil)
	app := newLoginApp(t, store, tokens)

	req := httptest.NewRequest(http.MethodGet, "/auth/logout", nil)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestRegisterRequestValidate(t *testing.T) {
	valid := commerce.RegisterRequest{
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "jane@example.com",
		Phone:           "0712345678",
		Password:        "long-enough-password",
		ConfirmPassword: "long-enough-password",
	}
	assert.NoError(t, valid.Validate())

	t.Run("password confirmation must match", func(t *testing.T) {
		payload := valid
		payload.ConfirmPassword = "different-password"
		assert.Error(t, payload.Validate())
	})

	t.Run("email is required", func(t *testing.T) {
		payload := valid
		payload.Email = ""
		assert.Error(t, payload.Validate())
	})

	t.Run("short password rejected", func(t *testing.T) {
		payload := valid
		payload.Password = "short"
		payload.ConfirmPassword = "short"
		assert.Error(t, payload.Validate())
	})
}

func TestLoginRequestValidate(t *testing.T) {
	assert.NoError(t, commerce.LoginRequest{
		Email:    "user@example.com",
		Password: "secret",
	}.Validate())

	assert.Error(t, commerce.LoginRequest{Email: "nope", Password: "secret"}.Validate())
	assert.Error(t, commerce.LoginRequest{Email: "user@example.com"}.Validate())
}
