package commerce_test

import (
	"context"
	"time"

	commerce "github.com/goliatone/go-commerce"
	"github.com/stretchr/testify/mock"
)

// MockUserStore implements commerce.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*commerce.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commerce.User), args.Error(1)
}

// MockTokenService implements commerce.TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) IssueAccessToken(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) IssueRefreshToken(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) ValidateAccess(tokenString string) (commerce.AuthClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(commerce.AuthClaims), args.Error(1)
}

func (m *MockTokenService) ValidateRefresh(tokenString string) (commerce.AuthClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(commerce.AuthClaims), args.Error(1)
}

// testConfig implements commerce.Config
type testConfig struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	contextKey    string
}

func newTestConfig() *testConfig {
	return &testConfig{
		accessSecret:  "test-access-secret",
		refreshSecret: "test-refresh-secret",
		accessTTL:     time.Minute * 15,
		refreshTTL:    time.Hour * 24,
		issuer:        "test-issuer",
		contextKey:    "user",
	}
}

func (c *testConfig) GetAccessTokenSecret() string      { return c.accessSecret }
func (c *testConfig) GetRefreshTokenSecret() string     { return c.refreshSecret }
func (c *testConfig) GetAccessTokenTTL() time.Duration  { return c.accessTTL }
func (c *testConfig) GetRefreshTokenTTL() time.Duration { return c.refreshTTL }
func (c *testConfig) GetIssuer() string                 { return c.issuer }
func (c *testConfig) GetContextKey() string             { return c.contextKey }

// spyStrategy records verifier calls so tests can assert the verifier is
// never reached for provider accounts.
type spyStrategy struct {
	verifyCalls int
	verifyErr   error
}

func (s *spyStrategy) Name() string { return "spy" }

func (s *spyStrategy) Hash(plaintext string) (string, error) {
	return commerce.HashPassword(plaintext)
}

func (s *spyStrategy) Verify(plaintext, hash string) error {
	s.verifyCalls++
	return s.verifyErr
}
