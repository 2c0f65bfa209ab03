package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/ccmadmin/ccm-admin/internal/auth"
	"github.com/ccmadmin/ccm-admin/internal/db/gen"
	"github.com/jackc/pgx/v5"
)

type userLookupStub struct {
	byName  map[string]gen.User
	byEmail map[string]gen.User
}

func (s userLookupStub) GetUserByName(_ context.Context, name string) (gen.User, error) {
	if u, ok := s.byName[name]; ok {
		return u, nil
	}
	return gen.User{}, pgx.ErrNoRows
}

func (s userLookupStub) GetUserByEmail(_ context.Context, email string) (gen.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return gen.User{}, pgx.ErrNoRows
}

func TestPasswordProviderAuthenticate(t *testing.T) {
	t.Parallel()

	hash, err := auth.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	admin := gen.User{ID: 7, Name: "jdoe", PrimaryEmail: "jdoe@example.org", PasswordHash: hash, ConsoleRole: auth.RoleAdmin}
	banned := gen.User{ID: 8, Name: "banned", PrimaryEmail: "banned@example.org", PasswordHash: hash, ConsoleRole: auth.RoleAdmin, Banned: true}
	noConsole := gen.User{ID: 9, Name: "author", PrimaryEmail: "author@example.org", PasswordHash: hash}

	p := NewPasswordProvider(userLookupStub{
		byName:  map[string]gen.User{"jdoe": admin, "banned": banned, "author": noConsole},
		byEmail: map[string]gen.User{"jdoe@example.org": admin},
	})

	principal, err := p.Authenticate(context.Background(), "jdoe", "s3cret-pass")
	if err != nil {
		t.Fatalf("Authenticate(name) error = %v", err)
	}
	if principal.UserID != 7 || !principal.IsAdmin() {
		t.Fatalf("principal = %+v, want admin user 7", principal)
	}

	if _, err := p.Authenticate(context.Background(), "JDoe@Example.org", "s3cret-pass"); err != nil {
		t.Fatalf("Authenticate(email) error = %v", err)
	}

	for _, tc := range []struct {
		name, login, password string
	}{
		{name: "wrong password", login: "jdoe", password: "nope"},
		{name: "unknown user", login: "ghost", password: "s3cret-pass"},
		{name: "banned", login: "banned", password: "s3cret-pass"},
		{name: "no console role", login: "author", password: "s3cret-pass"},
		{name: "empty password", login: "jdoe", password: ""},
	} {
		if _, err := p.Authenticate(context.Background(), tc.login, tc.password); !errors.Is(err, auth.ErrInvalidCredentials) {
			t.Fatalf("%s: err = %v, want ErrInvalidCredentials", tc.name, err)
		}
	}
}

type updatingLookupStub struct {
	userLookupStub
	updated map[int64]string
}

func (s *updatingLookupStub) UpdateUserPasswordHash(_ context.Context, arg gen.UpdateUserPasswordHashParams) error {
	s.updated[arg.ID] = arg.PasswordHash
	return nil
}

func TestPasswordProviderUpgradesOutdatedHash(t *testing.T) {
	t.Parallel()

	weak, err := argon2id.CreateHash("s3cret-pass", &argon2id.Params{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
	if err != nil {
		t.Fatalf("CreateHash() error = %v", err)
	}
	current, err := auth.HashPassword("other-pass")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	stub := &updatingLookupStub{
		userLookupStub: userLookupStub{byName: map[string]gen.User{
			"legacy": {ID: 3, Name: "legacy", PasswordHash: weak, ConsoleRole: auth.RoleAdmin},
			"fresh":  {ID: 4, Name: "fresh", PasswordHash: current, ConsoleRole: auth.RoleAdmin},
		}},
		updated: map[int64]string{},
	}
	p := NewPasswordProvider(stub)

	if _, err := p.Authenticate(context.Background(), "legacy", "s3cret-pass"); err != nil {
		t.Fatalf("Authenticate(legacy) error = %v", err)
	}
	if _, err := p.Authenticate(context.Background(), "fresh", "other-pass"); err != nil {
		t.Fatalf("Authenticate(fresh) error = %v", err)
	}

	upgraded, ok := stub.updated[3]
	if !ok {
		t.Fatal("legacy hash was not upgraded")
	}
	if auth.NeedsRehash(upgraded) {
		t.Fatal("upgraded hash still uses outdated parameters")
	}
	if match, err := auth.ComparePassword("s3cret-pass", upgraded); err != nil || !match {
		t.Fatalf("ComparePassword(upgraded) = %v, %v", match, err)
	}
	if _, ok := stub.updated[4]; ok {
		t.Fatal("current hash should not be rewritten")
	}
}
