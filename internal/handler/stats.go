package handler

import (
	"net/http"

	"github.com/Dan9191/expense-tracker/internal/analytics"
	"github.com/Dan9191/expense-tracker/internal/middleware"
)

// Summary returns all-time totals
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	summary, err := h.svc.Summary(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Analytics returns the period report for ?period=&startDate=&endDate=
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	report, err := h.svc.Analytics(r.Context(), userID, analytics.Query{
		Period:    q.Get("period"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
