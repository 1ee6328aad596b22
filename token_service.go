package commerce

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenService mints and validates the access/refresh token pair. The two
// token kinds share a claim shape but are signed with distinct secrets and
// lifetimes, so an attacker who leaks one secret cannot forge the other kind.
type TokenService interface {
	IssueAccessToken(userID string) (string, error)
	IssueRefreshToken(userID string) (string, error)
	ValidateAccess(tokenString string) (AuthClaims, error)
	ValidateRefresh(tokenString string) (AuthClaims, error)
}

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	logger        Logger
}

// NewTokenService creates a new TokenService from the app Config.
func NewTokenService(cfg Config, logger Logger) *TokenServiceImpl {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenServiceImpl{
		accessSecret:  []byte(cfg.GetAccessTokenSecret()),
		refreshSecret: []byte(cfg.GetRefreshTokenSecret()),
		accessTTL:     cfg.GetAccessTokenTTL(),
		refreshTTL:    cfg.GetRefreshTokenTTL(),
		issuer:        cfg.GetIssuer(),
		logger:        logger,
	}
}

// IssueAccessToken signs a short-lived token binding userID.
func (ts *TokenServiceImpl) IssueAccessToken(userID string) (string, error) {
	return ts.sign(userID, ts.accessSecret, ts.accessTTL)
}

// IssueRefreshToken signs the longer-lived companion token for userID.
func (ts *TokenServiceImpl) IssueRefreshToken(userID string) (string, error) {
	return ts.sign(userID, ts.refreshSecret, ts.refreshTTL)
}

func (ts *TokenServiceImpl) sign(userID string, secret []byte, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("cannot issue token without a user id", errors.CategoryInternal)
	}

	now := time.Now()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedString, err := token.SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// ValidateAccess parses and validates an access token, returning structured
// claims. There is deliberately no unverified decode path anywhere in this
// service; every read goes through signature and expiry checks.
func (ts *TokenServiceImpl) ValidateAccess(tokenString string) (AuthClaims, error) {
	return ts.validate(tokenString, ts.accessSecret)
}

// ValidateRefresh parses and validates a refresh token.
func (ts *TokenServiceImpl) ValidateRefresh(tokenString string) (AuthClaims, error) {
	return ts.validate(tokenString, ts.refreshSecret)
}

func (ts *TokenServiceImpl) validate(tokenString string, secret []byte) (AuthClaims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 1)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService validate encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, parserOptions...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, errors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode).
			WithCode(ErrTokenMalformed.Code)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		ts.logger.Error("TokenService validate could not decode claims")
		return nil, ErrClaimsDecode
	}

	if claims.UserID() == "" {
		return nil, ErrNoIdentityClaim
	}

	return claims, nil
}
