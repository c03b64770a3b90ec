package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"chitieu/internal/chart"
	"chitieu/internal/core"
	applog "chitieu/internal/log"
	"chitieu/internal/screen"
)

const savedFlash = "Đã lưu giao dịch"

// handleDashboard renders the overview: totals, tabs, donut and category list.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, "GET, HEAD")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	q := r.URL.Query()
	today := s.today()
	st, err := parseState(q, today)
	if err != nil {
		// Fall back to the initial screen and say why.
		view, verr := s.dashboard(ctx, screen.NewState(today), q, formView{})
		if verr != nil {
			s.renderDashboardError(w, r, verr)
			return
		}
		view.Error = userMessage(err)
		s.render(w, r, statusFor(err), "dashboard.html", view)
		return
	}

	form := formView{Date: st.Date.ISO()}
	if q.Get("saved") == "1" {
		form.Flash = savedFlash
	}
	view, err := s.dashboard(ctx, st, q, form)
	if err != nil {
		s.renderDashboardError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "dashboard.html", view)
}

func (s *Server) renderDashboardError(w http.ResponseWriter, r *http.Request, err error) {
	applog.FromContext(r.Context()).ErrorContext(r.Context(), "Dashboard failed",
		applog.FieldError, err,
		applog.FieldOperation, applog.OpSummary)
	http.Error(w, userMessage(err), statusFor(err))
}

// dashboard assembles the view for st. form carries values to re-show after
// a rejected submission.
func (s *Server) dashboard(ctx context.Context, st screen.State, q url.Values, form formView) (dashboardView, error) {
	sum, err := s.deps.Summaries.Summary(ctx, st)
	if err != nil {
		return dashboardView{}, err
	}
	donut, err := chart.NewDonut(s.deps.Geometry, sum.Items, sum.TotalThisPeriod.String())
	if err != nil {
		return dashboardView{}, err
	}
	cats, err := s.deps.Categories.ListCategories(ctx, st.Kind)
	if err != nil {
		return dashboardView{}, err
	}
	form.Categories = cats
	if form.Date == "" {
		form.Date = s.today().ISO()
	}

	applog.FromContext(ctx).DebugContext(ctx, "Donut laid out",
		applog.FieldComponent, applog.ComponentChart,
		applog.FieldOperation, applog.OpLayout,
		applog.FieldArcs, len(donut.Arcs))

	view := dashboardView{
		pageView:    newPageView(screen.RouteMain, q),
		Kind:        st.Kind,
		KindLabel:   st.Kind.Label(),
		Period:      st.Period,
		CustomRange: st.Period == core.PeriodRange,
		Date:        st.Date.ISO(),
		KindTabs:    kindTabs(st),
		PeriodTabs:  periodTabs(st),
		DateLabel:   st.DateLabel(s.today()),
		RangeLabel:  sum.RangeLabel,
		TotalAll:    sum.TotalAll.String(),
		Donut:       donut,
		Rows:        categoryRows(sum.Items),
		Form:        form,
		ReturnTo:    stateHref("/", st, nil),
	}
	if view.CustomRange {
		view.From = st.Custom.From.ISO()
		view.To = st.Custom.To.ISO()
	}
	return view, nil
}

// handleAccount renders the drawer's account screen: balance and this
// month's totals per kind.
func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, "GET, HEAD")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	base := screen.NewState(s.today()).WithPeriod(core.PeriodMonth)
	view := accountView{pageView: newPageView(screen.RouteTaiKhoan, r.URL.Query())}
	for _, k := range core.Kinds() {
		sum, err := s.deps.Summaries.Summary(ctx, base.WithKind(k))
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			s.renderDashboardError(w, r, err)
			return
		}
		view.Balance = sum.TotalAll.String()
		view.RangeLabel = sum.RangeLabel
		view.Kinds = append(view.Kinds, kindTotals{
			Label:      k.Label(),
			Total:      sum.TotalThisPeriod.String(),
			Categories: categoryRows(sum.Items),
		})
	}
	s.render(w, r, http.StatusOK, "account.html", view)
}
