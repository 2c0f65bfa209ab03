package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/ccmadmin/ccm-admin/internal/db/gen"
	"github.com/ccmadmin/ccm-admin/internal/forms"
)

type RoleInput struct {
	Name        string
	Description string
}

func (in RoleInput) Snapshot() forms.Snapshot {
	return forms.Snapshot{FieldName: in.Name, FieldDescription: in.Description}
}

func RoleSnapshot(r gen.Role) forms.Snapshot {
	return RoleInput{Name: r.Name, Description: r.Description}.Snapshot()
}

func (s *Service) validateRole(ctx context.Context, in RoleInput, existingID int64) error {
	errs := forms.Errors{}
	if errs.Required(FieldName, in.Name) {
		errs.MaxLength(FieldName, in.Name, maxNameLength)
	}
	errs.MaxLength(FieldDescription, in.Description, maxDescriptionLength)
	if err := errs.Unique(ctx, FieldName, in.Name, func(ctx context.Context, name string) (bool, error) {
		r, err := s.store.GetRoleByName(ctx, name)
		return taken(err, r.ID, existingID)
	}); err != nil {
		return err
	}
	return errs.Err()
}

func (s *Service) GetRole(ctx context.Context, id int64) (gen.Role, error) {
	r, err := s.store.GetRole(ctx, id)
	return r, notFound(err, "get role")
}

func (s *Service) CreateRole(ctx context.Context, in RoleInput) (gen.Role, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := s.validateRole(ctx, in, 0); err != nil {
		return gen.Role{}, err
	}
	r, err := s.store.CreateRole(ctx, gen.CreateRoleParams{Name: in.Name, Description: in.Description})
	if err != nil {
		return gen.Role{}, saveError(err, FieldName, "create role")
	}
	return r, nil
}

func (s *Service) UpdateRole(ctx context.Context, id int64, in RoleInput) (gen.Role, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if _, err := s.GetRole(ctx, id); err != nil {
		return gen.Role{}, err
	}
	if err := s.validateRole(ctx, in, id); err != nil {
		return gen.Role{}, err
	}
	r, err := s.store.UpdateRole(ctx, gen.UpdateRoleParams{ID: id, Name: in.Name, Description: in.Description})
	if err != nil {
		return gen.Role{}, saveError(err, FieldName, "update role")
	}
	return r, nil
}

func (s *Service) DeleteRole(ctx context.Context, id int64) (gen.Role, error) {
	r, err := s.GetRole(ctx, id)
	if err != nil {
		return gen.Role{}, err
	}
	if err := s.store.DeleteRole(ctx, id); err != nil {
		return gen.Role{}, fmt.Errorf("delete role: %w", err)
	}
	return r, nil
}

func (s *Service) RoleMembers(ctx context.Context, roleID int64) ([]gen.ListRoleMembersRow, error) {
	members, err := s.store.ListRoleMembers(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("list role members: %w", err)
	}
	return members, nil
}

// AddRoleMember assigns the role to the user or group named partyName.
func (s *Service) AddRoleMember(ctx context.Context, roleID int64, kind, partyName string) (int64, error) {
	if _, err := s.GetRole(ctx, roleID); err != nil {
		return 0, err
	}
	kind = strings.ToLower(strings.TrimSpace(kind))
	partyName = strings.TrimSpace(partyName)

	errs := forms.Errors{}
	if kind != PartyKindUser && kind != PartyKindGroup {
		errs.Add(FieldMemberKind, forms.MsgInvalidValue)
	}
	errs.Required(FieldMember, partyName)
	if err := errs.Err(); err != nil {
		return 0, err
	}

	var partyID int64
	switch kind {
	case PartyKindUser:
		u, err := s.store.GetUserByName(ctx, partyName)
		if err != nil {
			if isNoRows(err) {
				return 0, forms.FieldError(FieldMember, MsgUnknownUser)
			}
			return 0, fmt.Errorf("get user: %w", err)
		}
		partyID = u.ID
	default:
		g, err := s.store.GetGroupByName(ctx, partyName)
		if err != nil {
			if isNoRows(err) {
				return 0, forms.FieldError(FieldMember, MsgUnknownGroup)
			}
			return 0, fmt.Errorf("get group: %w", err)
		}
		partyID = g.ID
	}

	if err := s.store.AddRoleMember(ctx, gen.AddRoleMemberParams{RoleID: roleID, PartyKind: kind, PartyID: partyID}); err != nil {
		return 0, fmt.Errorf("add role member: %w", err)
	}
	return partyID, nil
}

func (s *Service) RemoveRoleMember(ctx context.Context, roleID int64, kind string, partyID int64) error {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind != PartyKindUser && kind != PartyKindGroup {
		return ErrNotFound
	}
	if err := s.store.RemoveRoleMember(ctx, gen.RemoveRoleMemberParams{RoleID: roleID, PartyKind: kind, PartyID: partyID}); err != nil {
		return fmt.Errorf("remove role member: %w", err)
	}
	return nil
}
