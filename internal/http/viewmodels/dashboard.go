package viewmodels

type DashboardViewData struct {
	Layout LayoutData
	Cards  []DashboardCard
}

type DashboardCard struct {
	LabelKey string
	Count    int64
	Href     string
}
