package memstore

import (
	"context"
	"slices"

	"github.com/ccmadmin/ccm-admin/internal/db/gen"
)

func (s *state) appConflict(id int64, primaryURL string) error {
	for _, app := range s.apps {
		if app.ID != id && app.PrimaryUrl == primaryURL {
			return uniqueViolation("ccm_applications_primary_url_key")
		}
	}
	return nil
}

func (m *Store) CountApplications(ctx context.Context) (int64, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()
	return int64(len(s.apps)), nil
}

func (m *Store) ListApplicationsByType(ctx context.Context, applicationType string) ([]gen.CcmApplication, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	var out []gen.CcmApplication
	for _, app := range s.apps {
		if app.ApplicationType == applicationType {
			out = append(out, app)
		}
	}
	return out, nil
}

func (m *Store) GetApplication(ctx context.Context, id int64) (gen.CcmApplication, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.CcmApplication{}, err
	}
	defer unlock()
	return get(s.apps, func(app gen.CcmApplication) bool { return app.ID == id })
}

func (m *Store) GetApplicationByPrimaryURL(ctx context.Context, primaryUrl string) (gen.CcmApplication, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.CcmApplication{}, err
	}
	defer unlock()
	return get(s.apps, func(app gen.CcmApplication) bool { return app.PrimaryUrl == primaryUrl })
}

func (m *Store) CreateApplication(ctx context.Context, arg gen.CreateApplicationParams) (gen.CcmApplication, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.CcmApplication{}, err
	}
	defer unlock()
	if err := s.appConflict(0, arg.PrimaryUrl); err != nil {
		return gen.CcmApplication{}, err
	}
	app := gen.CcmApplication{
		ID:              s.nextID(),
		Uuid:            arg.Uuid,
		ApplicationType: arg.ApplicationType,
		PrimaryUrl:      arg.PrimaryUrl,
		Title:           arg.Title,
		SiteID:          arg.SiteID,
		CreatedAt:       now(),
	}
	s.apps = append(s.apps, app)
	return app, nil
}

func (m *Store) UpdateApplication(ctx context.Context, arg gen.UpdateApplicationParams) (gen.CcmApplication, error) {
	s, unlock, err := m.lock()
	if err != nil {
		return gen.CcmApplication{}, err
	}
	defer unlock()
	if err := s.appConflict(arg.ID, arg.PrimaryUrl); err != nil {
		return gen.CcmApplication{}, err
	}
	i, ok := find(s.apps, func(app gen.CcmApplication) bool { return app.ID == arg.ID })
	if !ok {
		return gen.CcmApplication{}, errNoRows()
	}
	s.apps[i].PrimaryUrl = arg.PrimaryUrl
	s.apps[i].Title = arg.Title
	s.apps[i].SiteID = arg.SiteID
	return s.apps[i], nil
}

func (m *Store) DeleteApplication(ctx context.Context, id int64) error {
	s, unlock, err := m.lock()
	if err != nil {
		return err
	}
	defer unlock()
	s.apps = slices.DeleteFunc(s.apps, func(app gen.CcmApplication) bool { return app.ID == id })
	s.pageModels = slices.DeleteFunc(s.pageModels, func(pm gen.PageModel) bool { return pm.ApplicationID == id })
	return nil
}
