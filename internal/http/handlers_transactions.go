package http

import (
	"context"
	"net/http"
	"net/url"

	"chitieu/internal/core"
	applog "chitieu/internal/log"
	"chitieu/internal/screen"
)

type recordedJSON struct {
	Ref string `json:"ref"`
}

// handleCreateTransaction records the FAB form. Browsers are redirected back
// to the screen they came from; JSON clients get 201 with the store ref.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, 16<<10)
	if err := r.ParseForm(); err != nil {
		applog.FromContext(r.Context()).WarnContext(r.Context(), "Parse form error", applog.FieldError, err)
		http.Error(w, "Yêu cầu không hợp lệ", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	today := s.today()
	form := readTransactionForm(r.PostForm)
	returnTo := safeReturn(r.PostForm.Get("return"))

	tx, err := form.Transaction(today)
	var ref string
	if err == nil {
		ref, err = s.deps.Transactions.Record(ctx, tx)
	}
	if err != nil {
		s.rejectTransaction(ctx, w, r, form, returnTo, err)
		return
	}

	s.events.LogTransactionRecorded(ctx, string(tx.Kind), tx.CategoryID, tx.Amount.Minor, ref)

	if wantsJSON(r) {
		writeJSON(w, http.StatusCreated, recordedJSON{Ref: ref})
		return
	}
	http.Redirect(w, r, withSaved(returnTo), http.StatusSeeOther)
}

// rejectTransaction re-renders the dashboard the form came from with the
// submitted values and the error next to the form.
func (s *Server) rejectTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request, form transactionForm, returnTo string, err error) {
	status := statusFor(err)
	if status >= 500 {
		s.events.LogError(ctx, "Recording transaction failed", err, applog.OpRecord,
			applog.NewFields().WithTransaction(form.Kind, form.CategoryID, 0))
	}
	if wantsJSON(r) {
		writeJSONError(w, r, err)
		return
	}

	today := s.today()
	q := url.Values{}
	if u, perr := url.Parse(returnTo); perr == nil {
		q = u.Query()
	}
	st, perr := parseState(q, today)
	if perr != nil {
		st = screen.NewState(today)
	}
	if kind, kerr := core.ParseKind(form.Kind); kerr == nil {
		st = st.WithKind(kind)
	}

	view, verr := s.dashboard(ctx, st, q, formView{
		CategoryID: form.CategoryID,
		Amount:     form.Amount,
		Date:       form.Date,
		Note:       form.Note,
		Error:      userMessage(err),
	})
	if verr != nil {
		s.renderDashboardError(w, r, verr)
		return
	}
	s.render(w, r, status, "dashboard.html", view)
}

func withSaved(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return "/?saved=1"
	}
	q := u.Query()
	q.Set("saved", "1")
	u.RawQuery = q.Encode()
	return u.String()
}
