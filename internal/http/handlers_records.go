package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"bizdash/internal/core"
	"bizdash/internal/services"
)

// amountField accepts both a JSON string and a bare number, since clients
// send whichever their form state held.
type amountField string

func (a *amountField) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*a = amountField(v)
		return nil
	}
	*a = amountField(b)
	return nil
}

func (s *Server) handleClients(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		clients, err := s.records.ListClients(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Failed to list clients", "error", err)
			clients = nil
		}
		if clients == nil {
			clients = []core.Client{}
		}
		writeJSON(w, http.StatusOK, clients)

	case http.MethodPost:
		var in services.NewClient
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		client, err := s.records.CreateClient(r.Context(), in)
		if err != nil {
			s.writeCreateError(w, r, err, "client")
			return
		}
		writeJSON(w, http.StatusCreated, client)

	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		projects, err := s.records.ListProjects(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Failed to list projects", "error", err)
			projects = nil
		}
		if projects == nil {
			projects = []core.Project{}
		}
		writeJSON(w, http.StatusOK, projects)

	case http.MethodPost:
		var in services.NewProject
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		project, err := s.records.CreateProject(r.Context(), in)
		if err != nil {
			s.writeCreateError(w, r, err, "project")
			return
		}
		writeJSON(w, http.StatusCreated, project)

	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleIncomeTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		txns, err := s.records.ListIncomeTransactions(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Failed to list income transactions", "error", err)
			txns = nil
		}
		if txns == nil {
			txns = []core.IncomeTransaction{}
		}
		writeJSON(w, http.StatusOK, txns)

	case http.MethodPost:
		var req struct {
			ClientID    string      `json:"clientId"`
			Amount      amountField `json:"amount"`
			Date        string      `json:"date"`
			Description string      `json:"description"`
			ProjectID   string      `json:"projectId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		txn, err := s.records.CreateIncomeTransaction(r.Context(), services.NewIncomeTransaction{
			ClientID:    req.ClientID,
			Amount:      string(req.Amount),
			Date:        req.Date,
			Description: req.Description,
			ProjectID:   req.ProjectID,
		})
		if err != nil {
			s.writeCreateError(w, r, err, "income transaction")
			return
		}
		writeJSON(w, http.StatusCreated, txn)

	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		expenses, err := s.records.ListExpenses(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Failed to list expenses", "error", err)
			expenses = nil
		}
		if expenses == nil {
			expenses = []core.Expense{}
		}
		writeJSON(w, http.StatusOK, expenses)

	case http.MethodPost:
		var req struct {
			Category    string      `json:"category"`
			Amount      amountField `json:"amount"`
			ProjectID   string      `json:"projectId"`
			Date        string      `json:"date"`
			Description string      `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		expense, err := s.records.CreateExpense(r.Context(), services.NewExpense{
			Category:    req.Category,
			Amount:      string(req.Amount),
			ProjectID:   req.ProjectID,
			Date:        req.Date,
			Description: req.Description,
		})
		if err != nil {
			s.writeCreateError(w, r, err, "expense")
			return
		}
		writeJSON(w, http.StatusCreated, expense)

	default:
		methodNotAllowed(w, "GET, POST")
	}
}

// writeCreateError maps write-path failures: validation problems are the
// caller's fault, everything else is a store failure.
func (s *Server) writeCreateError(w http.ResponseWriter, r *http.Request, err error, entity string) {
	if core.IsValidation(err) || errors.Is(err, core.ErrInvalidAmount) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.ErrorContext(r.Context(), "Failed to create "+entity, "error", err)
	writeError(w, http.StatusInternalServerError, "Failed to create "+entity)
}
