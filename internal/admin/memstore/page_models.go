package memstore

import (
	"context"
	"slices"
	"strings"

	"github.com/ccmadmin/ccm-admin/internal/db/gen"
)

func (s *state) pageModelConflict(id, applicationID int64, name, version string) error {
	for _, pm := range s.pageModels {
		if pm.ID != id && pm.ApplicationID == applicationID && pm.Version == version && strings.EqualFold(pm.Name, name) {
			return uniqueViolation("page_models_app_name_version_key")
		}
	}
	return nil
}

func (s *state) draftsMatching(applicationID int64, pattern string) []gen.PageModel {
	var out []gen.PageModel
	for _, pm := range s.pageModels {
		if pm.ApplicationID == applicationID && pm.Version == "draft" && matchLike(pattern, pm.Name) {
			out = append(out, pm)
		}
	}
	slices.SortFunc(out, byLowerName(func(pm gen.PageModel) string { return pm.Name }, func(pm gen.PageModel) int64 { return pm.ID }))
	return out
}

func (s *state) published(modelUUID string) bool {
	_, ok := find(s.pageModels, func(pm gen.PageModel) bool { return pm.ModelUuid == modelUUID && pm.Version == "live" })
	return ok
}

func (m *Store) CountPageModelsByNamePrefix(ctx context.Context, arg gen.CountPageModelsByNamePrefixParams) (int64, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()
	return int64(len(s.draftsMatching(arg.ApplicationID, arg.Pattern))), nil
}

func (m *Store) ListPageModelsPageByNamePrefix(ctx context.Context, arg gen.ListPageModelsPageByNamePrefixParams) ([]gen.ListPageModelsPageByNamePrefixRow, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	page := window(s.draftsMatching(arg.ApplicationID, arg.Pattern), arg.PageOffset, arg.PageLimit)
	out := make([]gen.ListPageModelsPageByNamePrefixRow, 0, len(page))
	for _, pm := range page {
		out = append(out, gen.ListPageModelsPageByNamePrefixRow{
			ID:            pm.ID,
			Uuid:          pm.Uuid,
			ModelUuid:     pm.ModelUuid,
			ApplicationID: pm.ApplicationID,
			Name:          pm.Name,
			Title:         pm.Title,
			Description:   pm.Description,
			Type:          pm.Type,
			Version:       pm.Version,
			LastModified:  pm.LastModified,
			Published:     s.published(pm.ModelUuid),
		})
	}
	return out, nil
}

func (m *Store) GetPageModel(ctx context.Context, id int64) (gen.PageModel, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.PageModel{}, err
	}
	defer unlock()
	return get(s.pageModels, func(pm gen.PageModel) bool { return pm.ID == id })
}

func (m *Store) GetDraftPageModelByName(ctx context.Context, arg gen.GetDraftPageModelByNameParams) (gen.PageModel, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.PageModel{}, err
	}
	defer unlock()
	return get(s.pageModels, func(pm gen.PageModel) bool {
		return pm.ApplicationID == arg.ApplicationID && pm.Version == "draft" && strings.EqualFold(pm.Name, arg.Name)
	})
}

func (m *Store) CreatePageModel(ctx context.Context, arg gen.CreatePageModelParams) (gen.PageModel, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.PageModel{}, err
	}
	defer unlock()
	if err := s.pageModelConflict(0, arg.ApplicationID, arg.Name, "draft"); err != nil {
		return gen.PageModel{}, err
	}
	pm := gen.PageModel{
		ID:            s.nextID(),
		Uuid:          arg.Uuid,
		ModelUuid:     arg.ModelUuid,
		ApplicationID: arg.ApplicationID,
		Name:          arg.Name,
		Title:         arg.Title,
		Description:   arg.Description,
		Type:          arg.Type,
		Version:       "draft",
		LastModified:  now(),
	}
	s.pageModels = append(s.pageModels, pm)
	return pm, nil
}

func (m *Store) UpdatePageModel(ctx context.Context, arg gen.UpdatePageModelParams) (gen.PageModel, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.PageModel{}, err
	}
	defer unlock()
	i, ok := find(s.pageModels, func(pm gen.PageModel) bool { return pm.ID == arg.ID })
	if !ok {
		return gen.PageModel{}, errNoRows()
	}
	pm := &s.pageModels[i]
	if err := s.pageModelConflict(pm.ID, pm.ApplicationID, arg.Name, pm.Version); err != nil {
		return gen.PageModel{}, err
	}
	pm.Name = arg.Name
	pm.Title = arg.Title
	pm.Description = arg.Description
	pm.Type = arg.Type
	pm.LastModified = now()
	return *pm, nil
}

func (m *Store) DeletePageModelsByModelUUID(ctx context.Context, modelUuid string) error {
	s, unlock, err := m.lock()
	if err != nil {
		return err
	}
	defer unlock()
	s.pageModels = slices.DeleteFunc(s.pageModels, func(pm gen.PageModel) bool { return pm.ModelUuid == modelUuid })
	return nil
}

func (m *Store) PublishPageModel(ctx context.Context, arg gen.PublishPageModelParams) (gen.PageModel, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.PageModel{}, err
	}
	defer unlock()
	draft, err := get(s.pageModels, func(pm gen.PageModel) bool { return pm.ID == arg.DraftID && pm.Version == "draft" })
	if err != nil {
		return gen.PageModel{}, err
	}
	live := draft
	live.Version = "live"
	live.LastModified = now()
	if i, ok := find(s.pageModels, func(pm gen.PageModel) bool { return pm.ModelUuid == draft.ModelUuid && pm.Version == "live" }); ok {
		live.ID = s.pageModels[i].ID
		live.Uuid = s.pageModels[i].Uuid
		s.pageModels[i] = live
		return live, nil
	}
	live.ID = s.nextID()
	live.Uuid = arg.LiveUuid
	s.pageModels = append(s.pageModels, live)
	return live, nil
}
