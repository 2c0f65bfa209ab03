package viewmodels

type UserRow struct {
	ID        int64
	Name      string
	FullName  string
	Email     string
	Role      string
	Banned    bool
	LastLogin string
	IsSelf    bool
	CanDelete bool
}

type UsersViewData struct {
	Layout     LayoutData
	Rows       []UserRow
	Pager      PagerData
	Alert      *Alert
	Dialog     *FormState
	DialogMode string
	Roles      []Option
	Delete     *DeleteViewData
}
