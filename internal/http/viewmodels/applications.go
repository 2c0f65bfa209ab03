package viewmodels

type TreeRow struct {
	ID          string
	Kind        string
	Title       string
	TypeName    string
	Depth       int
	PrimaryURL  string
	InstanceID  int64
	HasChildren bool
}

type ApplicationsViewData struct {
	Layout     LayoutData
	Tree       []TreeRow
	Alert      *Alert
	Dialog     *FormState
	DialogMode string
	Types      []Option
	Sites      []Option
	Delete     *DeleteViewData
}

type PageModelRow struct {
	ID           int64
	Name         string
	Title        string
	Type         string
	Published    bool
	LastModified string
}

type PageModelsViewData struct {
	Layout          LayoutData
	ApplicationID   int64
	ApplicationName string
	Rows            []PageModelRow
	Pager           PagerData
	Alert           *Alert
	Dialog          *FormState
	DialogMode      string
	Delete          *DeleteViewData
}
