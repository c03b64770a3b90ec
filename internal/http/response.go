package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"chitieu/internal/chart"
	"chitieu/internal/core"
	applog "chitieu/internal/log"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, chart.ErrInvalidGeometry),
		errors.Is(err, core.ErrInvalidKind),
		errors.Is(err, core.ErrInvalidPeriod),
		errors.Is(err, core.ErrEmptyRange),
		errors.Is(err, errBadQuery):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyCategory),
		errors.Is(err, core.ErrUnknownCategory),
		errors.Is(err, core.ErrNoteTooLong),
		errors.Is(err, errInvalidDate):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// userMessage is the Vietnamese text shown next to the form.
func userMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		return "Số tiền không hợp lệ"
	case errors.Is(err, core.ErrEmptyCategory), errors.Is(err, core.ErrUnknownCategory):
		return "Danh mục không hợp lệ"
	case errors.Is(err, core.ErrNoteTooLong):
		return "Ghi chú quá dài (tối đa 200 ký tự)"
	case errors.Is(err, errInvalidDate):
		return "Ngày không hợp lệ"
	case errors.Is(err, core.ErrEmptyRange):
		return "Ngày kết thúc phải sau ngày bắt đầu"
	}
	if statusFor(err) == http.StatusBadRequest {
		return "Lựa chọn không hợp lệ"
	}
	return "Đã xảy ra lỗi, vui lòng thử lại"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

// writeJSONError logs server-side failures and writes {"error": ...}.
func writeJSONError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= 500 {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed", applog.FieldError, err)
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func wantsJSON(r *http.Request) bool {
	return r.Header.Get("Accept") == "application/json" || r.Header.Get("Content-Type") == "application/json"
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
