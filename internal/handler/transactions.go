package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Dan9191/expense-tracker/internal/middleware"
	"github.com/Dan9191/expense-tracker/internal/models"
	"github.com/Dan9191/expense-tracker/internal/service"
	"github.com/gorilla/mux"
)

func (h *Handler) listTransactions(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := middleware.UserIDFromContext(r.Context())
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		q := r.URL.Query()
		txs, err := h.svc.ListTransactions(r.Context(), userID, kind, service.ListFilter{
			StartDate:       q.Get("startDate"),
			EndDate:         q.Get("endDate"),
			Category:        q.Get("category"),
			TransactionType: q.Get("transactionType"),
		})
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, txs)
	}
}

func (h *Handler) createTransaction(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := middleware.UserIDFromContext(r.Context())
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		var in service.TransactionInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		tx, err := h.svc.CreateTransaction(r.Context(), userID, kind, in)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, tx)
	}
}

func (h *Handler) deleteTransaction(kind models.Kind, done string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := middleware.UserIDFromContext(r.Context())
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
			return
		}

		if err := h.svc.DeleteTransaction(r.Context(), userID, kind, id); err != nil {
			h.writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, done)
	}
}
