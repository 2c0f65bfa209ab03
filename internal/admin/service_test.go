package admin_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ccmadmin/ccm-admin/internal/admin"
	"github.com/ccmadmin/ccm-admin/internal/admin/memstore"
	"github.com/ccmadmin/ccm-admin/internal/apptree"
	"github.com/ccmadmin/ccm-admin/internal/db/gen"
	"github.com/ccmadmin/ccm-admin/internal/forms"
	"github.com/jackc/pgx/v5"
)

const testTypes = `
types:
  - name: sections
    title: Content Sections
  - name: shortcuts
    title: Shortcuts
    singleton: true
`

func newService(t *testing.T) (*admin.Service, *memstore.Store) {
	t.Helper()
	reg, err := apptree.ParseRegistry([]byte(testTypes))
	if err != nil {
		t.Fatalf("ParseRegistry() error = %v", err)
	}
	store := memstore.New()
	return admin.NewService(store, store, reg), store
}

func wantFieldError(t *testing.T, err error, field, key string) {
	t.Helper()
	errs, ok := forms.FieldErrors(err)
	if !ok {
		t.Fatalf("error = %v, want validation error on %s", err, field)
	}
	if got := errs.Get(field); got != key {
		t.Fatalf("field %s error = %q, want %q (all: %v)", field, got, key, errs)
	}
}

func mustCreateUser(t *testing.T, svc *admin.Service, name, role string) gen.User {
	t.Helper()
	u, err := svc.CreateUser(context.Background(), admin.UserInput{
		Name:            name,
		Email:           name + "@example.org",
		Password:        "password123",
		PasswordConfirm: "password123",
		ConsoleRole:     role,
	})
	if err != nil {
		t.Fatalf("CreateUser(%s) error = %v", name, err)
	}
	return u
}

// racyUserStore hides existing users from the pre-save lookups so the save
// itself hits the unique index.
type racyUserStore struct {
	*memstore.Store
}

func (racyUserStore) GetUserByName(context.Context, string) (gen.User, error) {
	return gen.User{}, pgx.ErrNoRows
}

func TestUniqueViolationOnSaveMapsToFieldError(t *testing.T) {
	t.Parallel()

	svc, store := newService(t)
	mustCreateUser(t, svc, "jdoe", "")

	racy := admin.NewService(racyUserStore{store}, store, svc.Registry())
	_, err := racy.CreateUser(context.Background(), admin.UserInput{
		Name:            "JDoe",
		Email:           "other@example.org",
		Password:        "password123",
		PasswordConfirm: "password123",
	})
	wantFieldError(t, err, admin.FieldName, forms.MsgNotUnique)
}

func TestCounts(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()
	mustCreateUser(t, svc, "root", "admin")
	mustCreateUser(t, svc, "author", "")
	if _, err := svc.CreateGroup(ctx, admin.GroupInput{Name: "Editors"}); err != nil {
		t.Fatalf("CreateGroup() error = %v", err)
	}

	counts, err := svc.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts() error = %v", err)
	}
	if counts.Users != 2 || counts.Groups != 1 || counts.ActiveAdmins != 1 {
		t.Fatalf("Counts() = %+v", counts)
	}
}

func TestCountsPropagatesStoreErrors(t *testing.T) {
	t.Parallel()

	svc, store := newService(t)
	store.Err = errors.New("connection refused")
	if _, err := svc.Counts(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
