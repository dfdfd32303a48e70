package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenTTL is the absolute lifetime of an issued token.
const DefaultTokenTTL = time.Hour

// Reason explains why a token failed verification.
type Reason string

const (
	ReasonMissing      Reason = "missing"
	ReasonMalformed    Reason = "malformed"
	ReasonExpired      Reason = "expired"
	ReasonBadSignature Reason = "bad-signature"
)

// VerificationError is returned by TokenService.Verify.
type VerificationError struct {
	Reason Reason
	Err    error
}

func (e *VerificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token %s: %v", e.Reason, e.Err)
	}
	return "token " + string(e.Reason)
}

func (e *VerificationError) Unwrap() error { return e.Err }

// Claims carries only the identity (sub) and token bookkeeping. There are no
// role or scope claims: authorization is decided per resource.
type Claims struct {
	jwt.RegisteredClaims
}

// Token is a freshly issued credential.
type Token struct {
	Value      string
	ID         string
	IdentityID string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// Principal is the decoded identity of a verified token.
type Principal struct {
	IdentityID string
	TokenID    string
	ExpiresAt  time.Time
}

// TokenService issues and verifies HS256 identity tokens. It holds no state
// beyond the secret.
type TokenService struct {
	secret Secret
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a token service. A non-positive ttl selects DefaultTokenTTL.
func NewTokenService(secret Secret, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: secret, ttl: ttl, now: time.Now}
}

// Issue signs a token asserting identityID, expiring ttl after issuance.
func (s *TokenService) Issue(identityID string) (Token, error) {
	if identityID == "" {
		return Token{}, errors.New("identity id is required")
	}
	now := s.now().UTC().Truncate(time.Second)
	exp := now.Add(s.ttl)
	tokenID := uuid.NewString()

	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   identityID,
		ID:        tokenID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	return Token{Value: signed, ID: tokenID, IdentityID: identityID, IssuedAt: now, ExpiresAt: exp}, nil
}

// Verify checks the signature and expiry of tokenString. Failures are always
// a *VerificationError. An expired token reports ReasonExpired whether or not
// its signature is valid.
func (s *TokenService) Verify(tokenString string) (Principal, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return Principal{}, &VerificationError{Reason: ReasonMissing}
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return []byte(s.secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Principal{}, s.classify(tokenString, err)
	}
	if claims.Subject == "" {
		return Principal{}, &VerificationError{Reason: ReasonMalformed, Err: errors.New("missing subject")}
	}

	return Principal{
		IdentityID: claims.Subject,
		TokenID:    claims.ID,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}

func (s *TokenService) classify(tokenString string, err error) *VerificationError {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return &VerificationError{Reason: ReasonExpired, Err: err}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		if s.expiredUnverified(tokenString) {
			return &VerificationError{Reason: ReasonExpired, Err: err}
		}
		return &VerificationError{Reason: ReasonBadSignature, Err: err}
	default:
		return &VerificationError{Reason: ReasonMalformed, Err: err}
	}
}

// expiredUnverified reads exp without trusting the signature.
func (s *TokenService) expiredUnverified(tokenString string) bool {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && !s.now().Before(claims.ExpiresAt.Time)
}

// ExtractBearer strips a leading "Bearer" scheme (any case) from an
// Authorization header value and trims whitespace.
func ExtractBearer(header string) string {
	header = strings.TrimSpace(header)
	const scheme = "bearer"
	if len(header) >= len(scheme) && strings.EqualFold(header[:len(scheme)], scheme) {
		rest := header[len(scheme):]
		if rest == "" || rest[0] == ' ' || rest[0] == '\t' {
			header = rest
		}
	}
	return strings.TrimSpace(header)
}
