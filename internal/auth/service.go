package auth

import (
    "context"
    "errors"
    "fmt"

    "github.com/deepakjoshi9239/finance-tracker/internal/identity"
)

// ErrRevoked is returned for a validly signed token that was logged out.
var ErrRevoked = errors.New("token has been revoked")

type Service struct {
    ids      *identity.Service
    tokens   *TokenService
    denylist Denylist
}

func NewService(ids *identity.Service, tokens *TokenService, denylist Denylist) *Service {
    if denylist == nil {
        denylist = NewMemoryDenylist()
    }
    return &Service{ids: ids, tokens: tokens, denylist: denylist}
}

// Login validates credentials (by delegating to identity.Service) and issues a token.
func (s *Service) Login(ctx context.Context, creds identity.Credentials) (Token, error) {
    user, err := s.ids.Authenticate(ctx, creds)
    if err != nil {
        return Token{}, err
    }
    return s.tokens.Issue(user.ID)
}

// Authenticate verifies tokenString and rejects revoked tokens. Verification
// failures are *VerificationError; store failures are wrapped as-is.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (Principal, error) {
    p, err := s.tokens.Verify(tokenString)
    if err != nil {
        return Principal{}, err
    }
    revoked, err := s.denylist.IsRevoked(ctx, p.TokenID)
    if err != nil {
        return Principal{}, fmt.Errorf("check denylist: %w", err)
    }
    if revoked {
        return Principal{}, ErrRevoked
    }
    return p, nil
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *Service) Logout(ctx context.Context, p Principal) error {
    return s.denylist.Revoke(ctx, p.TokenID, p.ExpiresAt)
}

// Me returns the identity behind a verified principal.
func (s *Service) Me(ctx context.Context, p Principal) (identity.User, error) {
    return s.ids.Get(ctx, p.IdentityID)
}
