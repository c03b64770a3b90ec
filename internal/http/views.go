package http

import (
	"net/url"

	"chitieu/internal/chart"
	"chitieu/internal/core"
	"chitieu/internal/screen"
)

type (
	navItem struct {
		Title  string
		Href   string
		Active bool
	}

	tab struct {
		Label  string
		Href   string
		Active bool
	}

	// pageView carries the drawer state shared by every page.
	pageView struct {
		Title          string
		Route          screen.Route
		MenuOpen       bool
		MenuToggleHref string
		Nav            []navItem
	}

	categoryRow struct {
		ID      string
		Name    string
		Color   string
		Icon    string
		Percent int
		Amount  string
	}

	formView struct {
		Categories []core.Category
		CategoryID string
		Amount     string
		Date       string
		Note       string
		Error      string
		Flash      string
	}

	dashboardView struct {
		pageView
		Kind        core.Kind
		KindLabel   string
		Period      core.Period
		CustomRange bool
		Date        string
		From        string
		To          string
		KindTabs    []tab
		PeriodTabs  []tab
		DateLabel   string
		RangeLabel  string
		TotalAll    string
		Donut       chart.Donut
		Rows        []categoryRow
		Form        formView
		ReturnTo    string
		Error       string
	}

	kindTotals struct {
		Label      string
		Total      string
		Categories []categoryRow
	}

	accountView struct {
		pageView
		Balance    string
		RangeLabel string
		Kinds      []kindTotals
	}
)

// newPageView resolves the drawer for route. The toggle link keeps the
// current query and flips menu=open.
func newPageView(route screen.Route, q url.Values) pageView {
	drawer := screen.NewDrawer(route, q.Get("menu") == "open")

	toggled := url.Values{}
	for k, vs := range q {
		toggled[k] = vs
	}
	toggled.Del("saved")
	next := screen.NewDrawer(route, drawer.Open())
	next.ToggleMenu()
	if next.Open() {
		toggled.Set("menu", "open")
	} else {
		toggled.Del("menu")
	}
	href := route.Path()
	if enc := toggled.Encode(); enc != "" {
		href += "?" + enc
	}

	pv := pageView{
		Title:          drawer.CurrentRoute().Title(),
		Route:          drawer.CurrentRoute(),
		MenuOpen:       drawer.Open(),
		MenuToggleHref: href,
	}
	for _, r := range screen.Routes() {
		pv.Nav = append(pv.Nav, navItem{Title: r.Title(), Href: r.Path(), Active: r == drawer.CurrentRoute()})
	}
	return pv
}

func kindTabs(st screen.State) []tab {
	tabs := make([]tab, 0, 2)
	for _, k := range core.Kinds() {
		tabs = append(tabs, tab{
			Label:  k.Label(),
			Href:   stateHref("/", st.WithKind(k), nil),
			Active: k == st.Kind,
		})
	}
	return tabs
}

func periodTabs(st screen.State) []tab {
	tabs := make([]tab, 0, len(core.Periods()))
	for _, p := range core.Periods() {
		next := st.WithPeriod(p)
		if p == core.PeriodRange && st.Period != core.PeriodRange {
			r, _ := st.Range()
			next = st.WithRange(r)
		}
		tabs = append(tabs, tab{
			Label:  p.Label(),
			Href:   stateHref("/", next, nil),
			Active: p == st.Period,
		})
	}
	return tabs
}

// categoryRows pairs each category with its rounded share.
func categoryRows(items []core.Category) []categoryRow {
	segs := chart.ComputeSegments(items)
	rows := make([]categoryRow, 0, len(segs))
	for _, s := range segs {
		rows = append(rows, categoryRow{
			ID:      s.ID,
			Name:    s.Name,
			Color:   s.Color,
			Icon:    s.DisplayIcon(),
			Percent: s.Percent(),
			Amount:  s.Amount.String(),
		})
	}
	return rows
}
