package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/ccmadmin/ccm-admin/internal/db/gen"
	"github.com/ccmadmin/ccm-admin/internal/forms"
)

type GroupInput struct {
	Name string
}

func (in GroupInput) Snapshot() forms.Snapshot {
	return forms.Snapshot{FieldName: in.Name}
}

func GroupSnapshot(g gen.Group) forms.Snapshot {
	return GroupInput{Name: g.Name}.Snapshot()
}

func (s *Service) validateGroup(ctx context.Context, in GroupInput, existingID int64) error {
	errs := forms.Errors{}
	if errs.Required(FieldName, in.Name) {
		errs.MaxLength(FieldName, in.Name, maxNameLength)
	}
	if err := errs.Unique(ctx, FieldName, in.Name, func(ctx context.Context, name string) (bool, error) {
		g, err := s.store.GetGroupByName(ctx, name)
		return taken(err, g.ID, existingID)
	}); err != nil {
		return err
	}
	return errs.Err()
}

func (s *Service) GetGroup(ctx context.Context, id int64) (gen.Group, error) {
	g, err := s.store.GetGroup(ctx, id)
	return g, notFound(err, "get group")
}

func (s *Service) CreateGroup(ctx context.Context, in GroupInput) (gen.Group, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validateGroup(ctx, in, 0); err != nil {
		return gen.Group{}, err
	}
	g, err := s.store.CreateGroup(ctx, in.Name)
	if err != nil {
		return gen.Group{}, saveError(err, FieldName, "create group")
	}
	return g, nil
}

func (s *Service) RenameGroup(ctx context.Context, id int64, in GroupInput) (gen.Group, error) {
	in.Name = strings.TrimSpace(in.Name)
	if _, err := s.GetGroup(ctx, id); err != nil {
		return gen.Group{}, err
	}
	if err := s.validateGroup(ctx, in, id); err != nil {
		return gen.Group{}, err
	}
	g, err := s.store.UpdateGroupName(ctx, gen.UpdateGroupNameParams{ID: id, Name: in.Name})
	if err != nil {
		return gen.Group{}, saveError(err, FieldName, "rename group")
	}
	return g, nil
}

// DeleteGroup removes a group, its memberships and its role assignments.
func (s *Service) DeleteGroup(ctx context.Context, id int64) (gen.Group, error) {
	var deleted gen.Group
	err := s.tx.WithinTx(ctx, func(q Store) error {
		g, err := q.GetGroup(ctx, id)
		if err != nil {
			return notFound(err, "get group")
		}
		if err := q.DeleteRoleMembershipsForParty(ctx, gen.DeleteRoleMembershipsForPartyParams{PartyKind: PartyKindGroup, PartyID: id}); err != nil {
			return fmt.Errorf("delete role memberships: %w", err)
		}
		if err := q.DeleteGroup(ctx, id); err != nil {
			return fmt.Errorf("delete group: %w", err)
		}
		deleted = g
		return nil
	})
	return deleted, err
}

func (s *Service) GroupMembers(ctx context.Context, groupID int64) ([]gen.User, error) {
	members, err := s.store.ListGroupMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}
	return members, nil
}

// AddGroupMember adds the user named userName. Adding an existing member is a no-op.
func (s *Service) AddGroupMember(ctx context.Context, groupID int64, userName string) (gen.User, error) {
	if _, err := s.GetGroup(ctx, groupID); err != nil {
		return gen.User{}, err
	}
	userName = strings.TrimSpace(userName)
	errs := forms.Errors{}
	if !errs.Required(FieldMember, userName) {
		return gen.User{}, errs.Err()
	}
	u, err := s.store.GetUserByName(ctx, userName)
	if err != nil {
		if isNoRows(err) {
			return gen.User{}, forms.FieldError(FieldMember, MsgUnknownUser)
		}
		return gen.User{}, fmt.Errorf("get user: %w", err)
	}
	if err := s.store.AddGroupMember(ctx, gen.AddGroupMemberParams{GroupID: groupID, UserID: u.ID}); err != nil {
		return gen.User{}, fmt.Errorf("add group member: %w", err)
	}
	return u, nil
}

func (s *Service) RemoveGroupMember(ctx context.Context, groupID, userID int64) error {
	if err := s.store.RemoveGroupMember(ctx, gen.RemoveGroupMemberParams{GroupID: groupID, UserID: userID}); err != nil {
		return fmt.Errorf("remove group member: %w", err)
	}
	return nil
}
