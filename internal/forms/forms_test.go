package forms

import (
	"context"
	"errors"
	"net/url"
	"testing"
)

func TestErrorsKeepFirstMessagePerField(t *testing.T) {
	t.Parallel()

	errs := Errors{}
	errs.Required("name", "  ")
	errs.MaxLength("name", "ignored because name already failed", 3)
	if got := errs.Get("name"); got != MsgRequired {
		t.Fatalf("Get(name) = %q, want %q", got, MsgRequired)
	}
	if errs.Valid() {
		t.Fatal("Valid() = true, want false")
	}

	fields, ok := FieldErrors(errs.Err())
	if !ok || !fields.Has("name") {
		t.Fatalf("FieldErrors() = %v, %v", fields, ok)
	}
	if (Errors{}).Err() != nil {
		t.Fatal("empty Errors should produce a nil error")
	}
}

func TestValidators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		check func(Errors) bool
		want  string
	}{
		{name: "required ok", check: func(e Errors) bool { return e.Required("f", "x") }},
		{name: "too long", check: func(e Errors) bool { return e.MaxLength("f", "äöüß", 3) }, want: MsgTooLong},
		{name: "max length counts runes", check: func(e Errors) bool { return e.MaxLength("f", "äöü", 3) }},
		{name: "email ok", check: func(e Errors) bool { return e.Email("f", "jane@example.org") }},
		{name: "email empty is not checked", check: func(e Errors) bool { return e.Email("f", "") }},
		{name: "email invalid", check: func(e Errors) bool { return e.Email("f", "jane@") }, want: MsgInvalidEmail},
		{name: "email display name", check: func(e Errors) bool { return e.Email("f", "Jane <jane@example.org>") }, want: MsgInvalidEmail},
		{name: "passwords mismatch", check: func(e Errors) bool { return e.PasswordsMatch("f", "a", "b") }, want: MsgPasswordsMismatch},
		{name: "password too short", check: func(e Errors) bool { return e.MinLength("f", "short", 8, MsgPasswordTooShort) }, want: MsgPasswordTooShort},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			errs := Errors{}
			ok := tc.check(errs)
			if ok != (tc.want == "") {
				t.Fatalf("validator returned %v, want %v", ok, tc.want == "")
			}
			if got := errs.Get("f"); got != tc.want {
				t.Fatalf("Get(f) = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestUnique(t *testing.T) {
	t.Parallel()

	taken := func(_ context.Context, value string) (bool, error) { return value == "admins", nil }

	errs := Errors{}
	if err := errs.Unique(context.Background(), "name", "admins", taken); err != nil {
		t.Fatalf("Unique() error = %v", err)
	}
	if errs.Get("name") != MsgNotUnique {
		t.Fatalf("Get(name) = %q, want %q", errs.Get("name"), MsgNotUnique)
	}

	errs = Errors{}
	if err := errs.Unique(context.Background(), "name", "editors", taken); err != nil || !errs.Valid() {
		t.Fatalf("Unique(free) = %v, errs = %v", err, errs)
	}

	boom := errors.New("boom")
	calls := 0
	failing := func(context.Context, string) (bool, error) {
		calls++
		return false, boom
	}
	if err := (Errors{}).Unique(context.Background(), "name", "x", failing); !errors.Is(err, boom) {
		t.Fatalf("Unique() error = %v, want boom", err)
	}

	errs = Errors{"name": MsgRequired}
	if err := errs.Unique(context.Background(), "name", "x", failing); err != nil || calls != 1 {
		t.Fatalf("lookup should be skipped once the field already failed (calls=%d, err=%v)", calls, err)
	}
}

func TestResolveCancel(t *testing.T) {
	t.Parallel()

	original := Snapshot{"name": "editors", "description": ""}

	tests := []struct {
		name      string
		submitted url.Values
		confirmed bool
		want      CancelOutcome
	}{
		{name: "unchanged", submitted: url.Values{"name": {" editors "}}, want: CancelClose},
		{name: "changed", submitted: url.Values{"name": {"authors"}}, want: CancelConfirm},
		{name: "new field value", submitted: url.Values{"name": {"editors"}, "description": {"x"}}, want: CancelConfirm},
		{name: "changed and confirmed", submitted: url.Values{"name": {"authors"}}, confirmed: true, want: CancelClose},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			submitted := SnapshotFrom(tc.submitted, "name", "description")
			if got := ResolveCancel(original, submitted, tc.confirmed); got != tc.want {
				t.Fatalf("ResolveCancel() = %v, want %v", got, tc.want)
			}
		})
	}
}
