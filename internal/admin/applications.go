package admin

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ccmadmin/ccm-admin/internal/db/gen"
	"github.com/ccmadmin/ccm-admin/internal/forms"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	MsgUnknownType     = "applications.error.unknown_type"
	MsgSingletonExists = "applications.error.singleton_exists"
	MsgUnknownSite     = "applications.error.unknown_site"
)

type ApplicationInput struct {
	Type       string
	PrimaryURL string
	Title      string
	SiteID     int64
}

func (in ApplicationInput) normalized() ApplicationInput {
	in.Type = strings.TrimSpace(in.Type)
	in.PrimaryURL = NormalizePrimaryURL(in.PrimaryURL)
	in.Title = strings.TrimSpace(in.Title)
	if in.SiteID < 0 {
		in.SiteID = 0
	}
	return in
}

func (in ApplicationInput) Snapshot() forms.Snapshot {
	site := ""
	if in.SiteID > 0 {
		site = strconv.FormatInt(in.SiteID, 10)
	}
	return forms.Snapshot{
		FieldApplicationType: in.Type,
		FieldPrimaryURL:      in.PrimaryURL,
		FieldTitle:           in.Title,
		FieldSite:            site,
	}
}

func ApplicationSnapshot(app gen.CcmApplication) forms.Snapshot {
	in := ApplicationInput{Type: app.ApplicationType, PrimaryURL: app.PrimaryUrl, Title: app.Title}
	if app.SiteID.Valid {
		in.SiteID = app.SiteID.Int64
	}
	return in.Snapshot()
}

// NormalizePrimaryURL trims the URL and wraps it in slashes: "info" becomes "/info/".
func NormalizePrimaryURL(raw string) string {
	raw = strings.Trim(strings.TrimSpace(raw), "/")
	if raw == "" {
		return ""
	}
	return "/" + raw + "/"
}

func siteRef(id int64) pgtype.Int8 {
	if id <= 0 {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: id, Valid: true}
}

func (s *Service) validateApplication(ctx context.Context, in ApplicationInput, existingID int64) error {
	errs := forms.Errors{}
	if errs.Required(FieldPrimaryURL, in.PrimaryURL) {
		errs.MaxLength(FieldPrimaryURL, in.PrimaryURL, maxNameLength)
	}
	errs.MaxLength(FieldTitle, in.Title, maxNameLength)

	if existingID == 0 && errs.Required(FieldApplicationType, in.Type) {
		appType, ok := s.registry.Lookup(in.Type)
		switch {
		case !ok:
			errs.Add(FieldApplicationType, MsgUnknownType)
		case appType.Singleton:
			existing, err := s.store.ListApplicationsByType(ctx, appType.Name)
			if err != nil {
				return fmt.Errorf("list applications: %w", err)
			}
			if len(existing) > 0 {
				errs.Add(FieldApplicationType, MsgSingletonExists)
			}
		}
	}

	if in.SiteID > 0 {
		if _, err := s.store.GetSite(ctx, in.SiteID); err != nil {
			if !isNoRows(err) {
				return fmt.Errorf("get site: %w", err)
			}
			errs.Add(FieldSite, MsgUnknownSite)
		}
	}

	if err := errs.Unique(ctx, FieldPrimaryURL, in.PrimaryURL, func(ctx context.Context, url string) (bool, error) {
		app, err := s.store.GetApplicationByPrimaryURL(ctx, url)
		return taken(err, app.ID, existingID)
	}); err != nil {
		return err
	}
	return errs.Err()
}

func (s *Service) GetApplication(ctx context.Context, id int64) (gen.CcmApplication, error) {
	app, err := s.store.GetApplication(ctx, id)
	return app, notFound(err, "get application")
}

func (s *Service) CreateApplication(ctx context.Context, in ApplicationInput) (gen.CcmApplication, error) {
	in = in.normalized()
	if err := s.validateApplication(ctx, in, 0); err != nil {
		return gen.CcmApplication{}, err
	}
	app, err := s.store.CreateApplication(ctx, gen.CreateApplicationParams{
		Uuid:            s.newUUID(),
		ApplicationType: in.Type,
		PrimaryUrl:      in.PrimaryURL,
		Title:           in.Title,
		SiteID:          siteRef(in.SiteID),
	})
	if err != nil {
		return gen.CcmApplication{}, saveError(err, FieldPrimaryURL, "create application")
	}
	return app, nil
}

// UpdateApplication edits an instance. The application type is fixed at creation.
func (s *Service) UpdateApplication(ctx context.Context, id int64, in ApplicationInput) (gen.CcmApplication, error) {
	in = in.normalized()
	current, err := s.GetApplication(ctx, id)
	if err != nil {
		return gen.CcmApplication{}, err
	}
	in.Type = current.ApplicationType
	if err := s.validateApplication(ctx, in, id); err != nil {
		return gen.CcmApplication{}, err
	}
	app, err := s.store.UpdateApplication(ctx, gen.UpdateApplicationParams{
		ID:         id,
		PrimaryUrl: in.PrimaryURL,
		Title:      in.Title,
		SiteID:     siteRef(in.SiteID),
	})
	if err != nil {
		return gen.CcmApplication{}, saveError(err, FieldPrimaryURL, "update application")
	}
	return app, nil
}

// DeleteApplication removes an instance; its page models go with it.
func (s *Service) DeleteApplication(ctx context.Context, id int64) (gen.CcmApplication, error) {
	app, err := s.GetApplication(ctx, id)
	if err != nil {
		return gen.CcmApplication{}, err
	}
	if err := s.store.DeleteApplication(ctx, id); err != nil {
		return gen.CcmApplication{}, fmt.Errorf("delete application: %w", err)
	}
	return app, nil
}
