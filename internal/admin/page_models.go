package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/ccmadmin/ccm-admin/internal/db/gen"
	"github.com/ccmadmin/ccm-admin/internal/forms"
)

const (
	VersionDraft = "draft"
	VersionLive  = "live"
)

type PageModelInput struct {
	Name        string
	Title       string
	Description string
	Type        string
}

func (in PageModelInput) normalized() PageModelInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Type = strings.TrimSpace(in.Type)
	return in
}

func (in PageModelInput) Snapshot() forms.Snapshot {
	return forms.Snapshot{
		FieldName:        in.Name,
		FieldTitle:       in.Title,
		FieldDescription: in.Description,
		FieldType:        in.Type,
	}
}

func PageModelSnapshot(pm gen.PageModel) forms.Snapshot {
	return PageModelInput{Name: pm.Name, Title: pm.Title, Description: pm.Description, Type: pm.Type}.Snapshot()
}

func (s *Service) validatePageModel(ctx context.Context, applicationID int64, in PageModelInput, existingID int64) error {
	errs := forms.Errors{}
	if errs.Required(FieldName, in.Name) {
		errs.MaxLength(FieldName, in.Name, maxNameLength)
	}
	errs.MaxLength(FieldTitle, in.Title, maxNameLength)
	errs.MaxLength(FieldDescription, in.Description, maxDescriptionLength)
	errs.MaxLength(FieldType, in.Type, maxNameLength)
	if err := errs.Unique(ctx, FieldName, in.Name, func(ctx context.Context, name string) (bool, error) {
		pm, err := s.store.GetDraftPageModelByName(ctx, gen.GetDraftPageModelByNameParams{ApplicationID: applicationID, Name: name})
		return taken(err, pm.ID, existingID)
	}); err != nil {
		return err
	}
	return errs.Err()
}

// GetDraftPageModel loads an editable page model; live copies are not editable.
func (s *Service) GetDraftPageModel(ctx context.Context, id int64) (gen.PageModel, error) {
	pm, err := s.store.GetPageModel(ctx, id)
	if err != nil {
		return gen.PageModel{}, notFound(err, "get page model")
	}
	if pm.Version != VersionDraft {
		return gen.PageModel{}, ErrNotFound
	}
	return pm, nil
}

func (s *Service) CreatePageModel(ctx context.Context, applicationID int64, in PageModelInput) (gen.PageModel, error) {
	in = in.normalized()
	if _, err := s.GetApplication(ctx, applicationID); err != nil {
		return gen.PageModel{}, err
	}
	if err := s.validatePageModel(ctx, applicationID, in, 0); err != nil {
		return gen.PageModel{}, err
	}
	pm, err := s.store.CreatePageModel(ctx, gen.CreatePageModelParams{
		Uuid:          s.newUUID(),
		ModelUuid:     s.newUUID(),
		ApplicationID: applicationID,
		Name:          in.Name,
		Title:         in.Title,
		Description:   in.Description,
		Type:          in.Type,
	})
	if err != nil {
		return gen.PageModel{}, saveError(err, FieldName, "create page model")
	}
	return pm, nil
}

func (s *Service) UpdatePageModel(ctx context.Context, id int64, in PageModelInput) (gen.PageModel, error) {
	in = in.normalized()
	current, err := s.GetDraftPageModel(ctx, id)
	if err != nil {
		return gen.PageModel{}, err
	}
	if err := s.validatePageModel(ctx, current.ApplicationID, in, id); err != nil {
		return gen.PageModel{}, err
	}
	pm, err := s.store.UpdatePageModel(ctx, gen.UpdatePageModelParams{
		ID:          id,
		Name:        in.Name,
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
	})
	if err != nil {
		return gen.PageModel{}, saveError(err, FieldName, "update page model")
	}
	return pm, nil
}

// DeletePageModel removes the draft and its published copy.
func (s *Service) DeletePageModel(ctx context.Context, id int64) (gen.PageModel, error) {
	pm, err := s.GetDraftPageModel(ctx, id)
	if err != nil {
		return gen.PageModel{}, err
	}
	if err := s.store.DeletePageModelsByModelUUID(ctx, pm.ModelUuid); err != nil {
		return gen.PageModel{}, fmt.Errorf("delete page model: %w", err)
	}
	return pm, nil
}

// PublishPageModel copies the draft to its live version, replacing an older live copy.
func (s *Service) PublishPageModel(ctx context.Context, id int64) (gen.PageModel, error) {
	draft, err := s.GetDraftPageModel(ctx, id)
	if err != nil {
		return gen.PageModel{}, err
	}
	live, err := s.store.PublishPageModel(ctx, gen.PublishPageModelParams{LiveUuid: s.newUUID(), DraftID: draft.ID})
	if err != nil {
		return gen.PageModel{}, notFound(err, "publish page model")
	}
	return live, nil
}
