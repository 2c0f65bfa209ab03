package viewmodels

type SiteRow struct {
	ID               int64
	Domain           string
	DefaultSite      bool
	Theme            string
	ApplicationCount int64
	CanDelete        bool
}

type SitesViewData struct {
	Layout     LayoutData
	Rows       []SiteRow
	Pager      PagerData
	Alert      *Alert
	Dialog     *FormState
	DialogMode string
	Delete     *DeleteViewData
}
