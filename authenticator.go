package commerce

import (
	"context"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
)

// LoginOutcome enumerates the terminal shapes a successful login can take.
// The set is closed on purpose: callers switch over it and every arm must
// finalize exactly one response.
type LoginOutcome int

const (
	// LoginTokenPair means the response carries the freshly minted tokens
	// plus the user record.
	LoginTokenPair LoginOutcome = iota + 1
	// LoginAcknowledged means the client already holds an access token and
	// no refresh token; the response is a bare success acknowledgment with
	// no tokens in the body. Inherited behavior, kept for compatibility.
	LoginAcknowledged
)

// LoginResult is the negotiator's terminal state for a successful login.
type LoginResult struct {
	Outcome      LoginOutcome
	AccessToken  string
	RefreshToken string
	User         *User
}

// UserStore is the slice of the users repository the login flow needs.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// Auther orchestrates the login flow: credential lookup, password
// verification, then token negotiation against whatever the request's
// Authorization header already carried.
type Auther struct {
	users    UserStore
	tokens   TokenService
	strategy CredentialStrategy
	logger   Logger
}

// AutherOption mutates the Auther during construction.
type AutherOption func(*Auther)

// NewAuthenticator returns a new Auther. The credential strategy defaults to
// local email+password.
func NewAuthenticator(users UserStore, tokens TokenService, opts ...AutherOption) *Auther {
	a := &Auther{
		users:    users,
		tokens:   tokens,
		strategy: LocalStrategy{},
		logger:   defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	return a
}

// WithLogger sets the Auther logger.
func WithLogger(logger Logger) AutherOption {
	return func(a *Auther) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithStrategy overrides the credential strategy.
func WithStrategy(strategy CredentialStrategy) AutherOption {
	return func(a *Auther) {
		if strategy != nil {
			a.strategy = strategy
		}
	}
}

// Login runs the negotiation for a password login.
//
// The token pair is always freshly minted once the password checks out; the
// incoming header only decides the response shape:
//
//   - refresh token only: the refresh token must verify (signature+expiry)
//     before the new pair is released
//   - access token only: bare acknowledgment, no tokens returned
//   - both or neither: the new pair plus the user record
func (s *Auther) Login(ctx context.Context, email, password string, header AuthorizationHeader) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("Login credential lookup failed", "email", email, "error", err)
		return nil, errors.Wrap(err, errors.CategoryInternal, "Error while retrieving user")
	}

	// Accounts provisioned through a provider have no local password and
	// must never reach the verifier.
	if !user.HasLocalPassword() {
		return nil, ErrExternalProvider
	}

	verifier, ok := s.strategy.(PasswordStrategy)
	if !ok {
		// the configured strategy cannot verify passwords at all
		return nil, ErrExternalProvider
	}

	if err := verifier.Verify(password, user.PasswordHash); err != nil {
		s.logger.Info("Login password mismatch", "user", user.ID.String())
		return nil, ErrWrongPassword
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID.String())
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to issue access token")
	}

	refreshToken, err := s.tokens.IssueRefreshToken(user.ID.String())
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to issue refresh token")
	}

	result := &LoginResult{
		Outcome:      LoginTokenPair,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}

	switch {
	case header.AccessToken == "" && header.RefreshToken != "":
		// Re-entry with only a refresh token: the presented token must
		// verify before the fresh pair is released. Signature and expiry
		// are both checked; there is no unverified-decode shortcut.
		if _, err := s.tokens.ValidateRefresh(header.RefreshToken); err != nil {
			return nil, err
		}
		return result, nil

	case header.AccessToken != "" && header.RefreshToken == "":
		// Client still holds an access token: acknowledge without
		// returning tokens.
		return &LoginResult{Outcome: LoginAcknowledged, User: user}, nil

	default:
		// Both present, or neither: hand over the fresh pair.
		return result, nil
	}
}
