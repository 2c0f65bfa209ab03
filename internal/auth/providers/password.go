package providers

import (
	"context"
	"errors"
	"strings"

	"github.com/ccmadmin/ccm-admin/internal/auth"
	"github.com/ccmadmin/ccm-admin/internal/db/gen"
	"github.com/ccmadmin/ccm-admin/internal/logging"
	"github.com/jackc/pgx/v5"
)

// Provider authenticates a console login.
type Provider interface {
	Name() string
	Authenticate(ctx context.Context, login, password string) (auth.Principal, error)
}

var _ Provider = (*PasswordProvider)(nil)

// UserLookup is the subset of the generated queries the password provider needs.
type UserLookup interface {
	GetUserByName(ctx context.Context, name string) (gen.User, error)
	GetUserByEmail(ctx context.Context, primaryEmail string) (gen.User, error)
}

// PasswordUpdater is implemented by stores that can replace a stored hash.
// The provider uses it to upgrade hashes made with outdated parameters.
type PasswordUpdater interface {
	UpdateUserPasswordHash(ctx context.Context, arg gen.UpdateUserPasswordHashParams) error
}

type PasswordProvider struct {
	Users UserLookup
}

func NewPasswordProvider(users UserLookup) *PasswordProvider {
	return &PasswordProvider{Users: users}
}

func (p *PasswordProvider) Name() string {
	return auth.MethodPassword
}

// Authenticate accepts either the account name or the primary email as login.
func (p *PasswordProvider) Authenticate(ctx context.Context, login, password string) (auth.Principal, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return auth.Principal{}, auth.ErrInvalidCredentials
	}

	var (
		user gen.User
		err  error
	)
	if strings.Contains(login, "@") {
		user, err = p.Users.GetUserByEmail(ctx, auth.NormalizeEmail(login))
	} else {
		user, err = p.Users.GetUserByName(ctx, login)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Principal{}, auth.ErrInvalidCredentials
		}
		return auth.Principal{}, err
	}
	if !auth.CanSignIn(user.ConsoleRole, user.Banned) {
		return auth.Principal{}, auth.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil {
		return auth.Principal{}, err
	}
	if !match {
		return auth.Principal{}, auth.ErrInvalidCredentials
	}
	p.upgradeHash(ctx, user, password)

	return auth.Principal{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.PrimaryEmail,
		Role:   auth.NormalizeRole(user.ConsoleRole),
		Method: auth.MethodPassword,
	}, nil
}

func (p *PasswordProvider) upgradeHash(ctx context.Context, user gen.User, password string) {
	updater, ok := p.Users.(PasswordUpdater)
	// The update clears the reset flag, so pending resets keep the old hash.
	if !ok || user.PasswordResetRequired || !auth.NeedsRehash(user.PasswordHash) {
		return
	}
	hash, err := auth.HashPassword(password)
	if err == nil {
		err = updater.UpdateUserPasswordHash(ctx, gen.UpdateUserPasswordHashParams{ID: user.ID, PasswordHash: hash})
	}
	if err != nil {
		logging.FromContext(ctx).Warn("password hash upgrade failed", "user_id", user.ID, "error", err)
	}
}
