package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Murilo211205/rede-social/internal/apperror"
	"github.com/Murilo211205/rede-social/internal/auth"
	"github.com/Murilo211205/rede-social/internal/model"
	"github.com/Murilo211205/rede-social/internal/repository"
)

// Validation limits for accounts.
const (
	MinPasswordLength = 8
	MaxBioLength      = 500
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	// characters stripped when deriving a username from a GitHub login
	usernameCleanRe = regexp.MustCompile(`[^a-zA-Z0-9_]`)
)

// AuthService handles registration, login, and token verification.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenService, passwords *auth.PasswordService, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult carries a freshly issued token together with the account it
// belongs to.
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"-"`
}

// Register creates an account and signs the user in.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))

	if !usernameRe.MatchString(username) {
		return nil, apperror.ValidationFailed("username", "username must be 3-20 characters: letters, digits, underscore")
	}
	if !emailRe.MatchString(email) {
		return nil, apperror.ValidationFailed("email", "a valid email address is required")
	}
	if len(password) < MinPasswordLength {
		return nil, apperror.ValidationFailed("password", fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, translateUserConflict(err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return s.issueToken(user)
}

// Login checks credentials and issues a token. Wrong email and wrong
// password produce the same error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, apperror.AuthFailed("invalid credentials")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperror.AuthFailed("invalid credentials")
	}
	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.AuthFailed("invalid credentials")
	}
	if user.IsBanned {
		return nil, apperror.AccountBanned()
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return s.issueToken(user)
}

// Verify resolves a bearer token to the current account state.
func (s *AuthService) Verify(ctx context.Context, token string) (*model.User, error) {
	identity, err := s.tokens.Validate(token)
	if err != nil {
		return nil, apperror.Unauthorized()
	}

	user, err := s.users.GetByID(ctx, identity.UserID)
	if err != nil {
		return nil, apperror.Unauthorized()
	}
	if user.IsBanned {
		return nil, apperror.AccountBanned()
	}
	return user, nil
}

// CheckActive reports whether the account may keep using an issued
// token. Satisfies auth.AccountChecker so bans take effect before token
// expiry.
func (s *AuthService) CheckActive(ctx context.Context, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return apperror.Unauthorized()
	}
	if user.IsBanned {
		return apperror.AccountBanned()
	}
	return nil
}

var _ auth.AccountChecker = (*AuthService)(nil)

// GetUser loads an account by id.
func (s *AuthService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// LoginOrRegisterGitHub signs in the account matching the GitHub email,
// creating it on first login. OAuth accounts carry an empty password
// hash, so password login never succeeds for them.
func (s *AuthService) LoginOrRegisterGitHub(ctx context.Context, gh *auth.GitHubUser) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(gh.Email))
	if email == "" {
		return nil, apperror.AuthFailed("github account has no public email")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		if user.IsBanned {
			return nil, apperror.AccountBanned()
		}
		return s.issueToken(user)
	}

	base := usernameCleanRe.ReplaceAllString(gh.Login, "")
	if len(base) < 3 {
		base = "user"
	}
	if len(base) > 15 {
		base = base[:15]
	}

	user = &model.User{Email: email, AvatarURL: gh.AvatarURL}
	_, err = createWithUniqueValue(ctx, base, repository.ConstraintUserUsername,
		func(ctx context.Context, candidate string) error {
			user.Username = candidate
			return s.users.Create(ctx, user)
		})
	if err != nil {
		return nil, translateUserConflict(err)
	}

	s.logger.Info("user registered via github", "user_id", user.ID, "username", user.Username)
	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *model.User) (*AuthResult, error) {
	token, err := s.tokens.Generate(auth.Identity{UserID: user.ID, Username: user.Username})
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

// translateUserConflict maps account unique-constraint violations to the
// wire-level conflict errors.
func translateUserConflict(err error) error {
	switch {
	case repository.IsConflict(err, repository.ConstraintUserEmail):
		return apperror.Conflict("EMAIL_EXISTS", "email is already registered", "email")
	case repository.IsConflict(err, repository.ConstraintUserUsername):
		return apperror.Conflict("USERNAME_EXISTS", "username is already taken", "username")
	default:
		return err
	}
}
