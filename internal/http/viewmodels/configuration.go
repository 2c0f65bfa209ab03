package viewmodels

type ConfigurationRow struct {
	Name        string
	Value       string
	Kind        string
	Description string
}

type ConfigurationViewData struct {
	Layout   LayoutData
	Rows     []ConfigurationRow
	Pager    PagerData
	Alert    *Alert
	Dialog   *FormState
	EditName string
	EditKind string
}
