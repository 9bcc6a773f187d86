package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"novadash/internal/auth"
	"novadash/internal/domain"
)

const bcryptCost = 10

var errUnknownAccount = Unauthorized("Invalid or expired token")

var errEmailInUse = Validation("Email already in use",
	FieldError{Path: "body.email", Message: "Email already in use"})

// PublicUser is the account view returned to clients.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

func Public(u *domain.User) PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin, CreatedAt: u.CreatedAt}
}

type LoginResult struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

type AuthService struct {
	Users  UserStore
	Tokens *auth.Tokens
}

func NewAuthService(users UserStore, tokens *auth.Tokens) *AuthService {
	return &AuthService{Users: users, Tokens: tokens}
}

// Register creates an admin account. No token is issued; the caller logs in afterwards.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	email = NormalizeEmail(email)
	if _, err := s.Users.ByEmail(ctx, email); err == nil {
		return nil, errEmailInUse
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}
	ts := now()
	u := &domain.User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Email:     email,
		Hash:      string(hash),
		IsAdmin:   true,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, translate(err, "User not found", errEmailInUse)
	}
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.Users.ByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrBadCreds
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	tok, err := s.Tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: tok, User: Public(u)}, nil
}

// Me loads the account behind a verified principal. A token whose account is gone is rejected.
func (s *AuthService) Me(ctx context.Context, p domain.Principal) (*domain.User, error) {
	u, err := s.Users.ByID(ctx, p.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errUnknownAccount
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate verifies a bearer token.
func (s *AuthService) Authenticate(raw string) (domain.Principal, error) {
	return s.Tokens.Verify(raw)
}
