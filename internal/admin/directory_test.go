package admin_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ccmadmin/ccm-admin/internal/admin"
	"github.com/ccmadmin/ccm-admin/internal/forms"
)

func TestGroupLifecycle(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()
	mustCreateUser(t, svc, "jdoe", "")

	g, err := svc.CreateGroup(ctx, admin.GroupInput{Name: "  Editors "})
	if err != nil {
		t.Fatalf("CreateGroup() error = %v", err)
	}
	if g.Name != "Editors" {
		t.Fatalf("group name = %q, want trimmed", g.Name)
	}

	_, err = svc.CreateGroup(ctx, admin.GroupInput{Name: "editors"})
	wantFieldError(t, err, admin.FieldName, forms.MsgNotUnique)

	// Renaming to its own name differing only in case is not a conflict.
	if _, err := svc.RenameGroup(ctx, g.ID, admin.GroupInput{Name: "EDITORS"}); err != nil {
		t.Fatalf("RenameGroup() error = %v", err)
	}

	_, err = svc.AddGroupMember(ctx, g.ID, "nobody")
	wantFieldError(t, err, admin.FieldMember, admin.MsgUnknownUser)

	if _, err := svc.AddGroupMember(ctx, g.ID, "jdoe"); err != nil {
		t.Fatalf("AddGroupMember() error = %v", err)
	}
	if _, err := svc.AddGroupMember(ctx, g.ID, "jdoe"); err != nil {
		t.Fatalf("AddGroupMember(again) error = %v", err)
	}
	members, err := svc.GroupMembers(ctx, g.ID)
	if err != nil {
		t.Fatalf("GroupMembers() error = %v", err)
	}
	if len(members) != 1 || members[0].Name != "jdoe" {
		t.Fatalf("members = %+v, want [jdoe]", members)
	}

	if err := svc.RemoveGroupMember(ctx, g.ID, members[0].ID); err != nil {
		t.Fatalf("RemoveGroupMember() error = %v", err)
	}
	if members, _ = svc.GroupMembers(ctx, g.ID); len(members) != 0 {
		t.Fatalf("members after remove = %+v", members)
	}

	if _, err := svc.DeleteGroup(ctx, g.ID); err != nil {
		t.Fatalf("DeleteGroup() error = %v", err)
	}
	if _, err := svc.GetGroup(ctx, g.ID); !errors.Is(err, admin.ErrNotFound) {
		t.Fatalf("GetGroup(deleted) error = %v, want ErrNotFound", err)
	}
}

func TestRoleMembers(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()
	mustCreateUser(t, svc, "jdoe", "")
	g, err := svc.CreateGroup(ctx, admin.GroupInput{Name: "Editors"})
	if err != nil {
		t.Fatalf("CreateGroup() error = %v", err)
	}
	role, err := svc.CreateRole(ctx, admin.RoleInput{Name: "Publisher", Description: "May publish"})
	if err != nil {
		t.Fatalf("CreateRole() error = %v", err)
	}

	tests := []struct {
		name  string
		kind  string
		party string
		field string
		key   string
	}{
		{name: "bad kind", kind: "robot", party: "jdoe", field: admin.FieldMemberKind, key: forms.MsgInvalidValue},
		{name: "missing party", kind: admin.PartyKindUser, party: " ", field: admin.FieldMember, key: forms.MsgRequired},
		{name: "unknown user", kind: admin.PartyKindUser, party: "ghost", field: admin.FieldMember, key: admin.MsgUnknownUser},
		{name: "unknown group", kind: admin.PartyKindGroup, party: "ghosts", field: admin.FieldMember, key: admin.MsgUnknownGroup},
	}
	for _, tc := range tests {
		_, err := svc.AddRoleMember(ctx, role.ID, tc.kind, tc.party)
		if errs, ok := forms.FieldErrors(err); !ok || errs.Get(tc.field) != tc.key {
			t.Fatalf("%s: AddRoleMember() error = %v, want %s on %s", tc.name, err, tc.key, tc.field)
		}
	}

	if _, err := svc.AddRoleMember(ctx, role.ID, "User", "jdoe"); err != nil {
		t.Fatalf("AddRoleMember(user) error = %v", err)
	}
	groupID, err := svc.AddRoleMember(ctx, role.ID, admin.PartyKindGroup, "editors")
	if err != nil {
		t.Fatalf("AddRoleMember(group) error = %v", err)
	}
	if groupID != g.ID {
		t.Fatalf("AddRoleMember(group) id = %d, want %d", groupID, g.ID)
	}

	members, err := svc.RoleMembers(ctx, role.ID)
	if err != nil {
		t.Fatalf("RoleMembers() error = %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("members = %+v, want 2", members)
	}

	if _, err := svc.DeleteGroup(ctx, g.ID); err != nil {
		t.Fatalf("DeleteGroup() error = %v", err)
	}
	members, _ = svc.RoleMembers(ctx, role.ID)
	if len(members) != 1 || members[0].PartyKind != admin.PartyKindUser {
		t.Fatalf("members after group delete = %+v", members)
	}

	if err := svc.RemoveRoleMember(ctx, role.ID, "robot", 1); !errors.Is(err, admin.ErrNotFound) {
		t.Fatalf("RemoveRoleMember(bad kind) error = %v, want ErrNotFound", err)
	}
}

func TestUpdateRoleUniqueness(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()
	a, err := svc.CreateRole(ctx, admin.RoleInput{Name: "Authors"})
	if err != nil {
		t.Fatalf("CreateRole() error = %v", err)
	}
	if _, err := svc.CreateRole(ctx, admin.RoleInput{Name: "Reviewers"}); err != nil {
		t.Fatalf("CreateRole() error = %v", err)
	}

	_, err = svc.UpdateRole(ctx, a.ID, admin.RoleInput{Name: "reviewers"})
	wantFieldError(t, err, admin.FieldName, forms.MsgNotUnique)

	updated, err := svc.UpdateRole(ctx, a.ID, admin.RoleInput{Name: "Authors", Description: " Write content "})
	if err != nil {
		t.Fatalf("UpdateRole() error = %v", err)
	}
	if updated.Description != "Write content" {
		t.Fatalf("description = %q", updated.Description)
	}

	if _, err := svc.DeleteRole(ctx, 999); !errors.Is(err, admin.ErrNotFound) {
		t.Fatalf("DeleteRole(missing) error = %v, want ErrNotFound", err)
	}
}
