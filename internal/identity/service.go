package identity

import (
    "context"
    "errors"
    "fmt"
    "strings"
    "time"

    "github.com/google/uuid"
    "golang.org/x/crypto/bcrypt"
)

var (
    // ErrInvalidCredentials means the email exists but the password does not match.
    ErrInvalidCredentials = errors.New("invalid credentials")
    // ErrPasswordTooLong means the password exceeds what bcrypt can hash.
    ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

// Service manages identity lifecycle.
type Service struct {
    repo Repository
    cost int
}

// NewService creates a new identity service. A non-positive cost selects bcrypt.DefaultCost.
func NewService(repo Repository, cost int) *Service {
    if cost <= 0 {
        cost = bcrypt.DefaultCost
    }
    return &Service{repo: repo, cost: cost}
}

// NormalizeEmail folds case and surrounding whitespace so lookups are stable.
func NormalizeEmail(email string) string {
    return strings.ToLower(strings.TrimSpace(email))
}

// Register stores a new identity with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, reg Registration) (User, error) {
    if len(reg.Password) > maxPasswordBytes {
        return User{}, ErrPasswordTooLong
    }

    email := NormalizeEmail(reg.Email)

    if _, err := s.repo.FindByEmail(ctx, email); err == nil {
        return User{}, ErrEmailTaken
    } else if !errors.Is(err, ErrUserNotFound) {
        return User{}, err
    }

    hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.cost)
    if err != nil {
        return User{}, fmt.Errorf("hash password: %w", err)
    }

    user := User{
        ID:                 uuid.New().String(),
        Name:               strings.TrimSpace(reg.Name),
        Email:              email,
        PasswordHash:       hash,
        FinancialCondition: reg.FinancialCondition,
        CreatedAt:          time.Now().UTC(),
    }

    if err := s.repo.Create(ctx, user); err != nil {
        return User{}, err
    }

    return user, nil
}

// Authenticate verifies credentials. It returns ErrUserNotFound for an
// unknown email and ErrInvalidCredentials for a wrong password.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (User, error) {
    user, err := s.repo.FindByEmail(ctx, NormalizeEmail(creds.Email))
    if err != nil {
        return User{}, err
    }

    if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(creds.Password)); err != nil {
        if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
            return User{}, ErrInvalidCredentials
        }
        return User{}, fmt.Errorf("compare password: %w", err)
    }

    return user, nil
}

// Get returns the identity with the given id.
func (s *Service) Get(ctx context.Context, id string) (User, error) {
    return s.repo.FindByID(ctx, id)
}
