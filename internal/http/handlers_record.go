package http

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"ledger/internal/core"
)

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "method", r.Method, "url", r.URL.Path)
		resp.Write(w)
		return
	}

	amountStr := r.Form.Get("amount")
	category := r.Form.Get("category")
	note := r.Form.Get("note")
	date := r.Form.Get("date")

	in, err := core.ValidateInput(amountStr, category, sanitizeInput(note), date)
	if err != nil {
		validationError(err).Write(w)
		return
	}

	rec, err := s.writer.Append(r.Context(), in)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to save record",
			"error", err,
			"category", in.Category,
			"amount_cents", in.Amount.Cents,
			"component", "record_writer",
			"operation", "append")
		InternalServerError("Error saving record").Write(w)
		return
	}

	// A new record can shift every cached window+category view.
	s.overviewCache.Purge()

	slog.InfoContext(r.Context(), "Record created",
		"record_id", rec.ID,
		"category", rec.Category,
		"amount_cents", rec.Amount.Cents,
		"date", rec.Date,
		"component", "record_handler",
		"operation", "create")

	successMsg := fmt.Sprintf("Recorded #%d: %s %s",
		rec.ID,
		template.HTMLEscapeString(rec.Category),
		formatAmount(rec.Amount.Cents))

	NewHTMXResponse().
		TriggerRecordCreated(rec.ID).
		TriggerFormReset().
		TriggerDashboardRefresh().
		TriggerSuccessNotification(successMsg).
		BodyHTML(`<div class="success">` + successMsg + `</div>`).
		Write(w)
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodPost, http.MethodPut); resp != nil {
		resp.Write(w)
		return
	}

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		slog.ErrorContext(r.Context(), "Parse body error", "error", err, "method", r.Method, "url", r.URL.Path)
		BadRequestError("Invalid request format").Write(w)
		return
	}

	id, ok := parseRecordID(parser.Get("id"))
	if !ok {
		BadRequestError("Missing record id").Write(w)
		return
	}

	in, err := core.ValidateInput(parser.Get("amount"), parser.Get("category"), parser.Get("note"), parser.Get("date"))
	if err != nil {
		validationError(err).Write(w)
		return
	}

	rec, err := s.updater.Update(r.Context(), id, in)
	if err != nil {
		if errors.Is(err, core.ErrRecordNotFound) {
			NotFoundError("Record not found").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Failed to update record",
			"error", err,
			"record_id", id,
			"component", "record_updater",
			"operation", "update")
		InternalServerError("Error updating record").Write(w)
		return
	}

	s.overviewCache.Purge()

	slog.InfoContext(r.Context(), "Record updated",
		"record_id", rec.ID,
		"category", rec.Category,
		"amount_cents", rec.Amount.Cents,
		"component", "record_handler",
		"operation", "update")

	NewHTMXResponse().
		TriggerRecordUpdated(rec.ID).
		TriggerDashboardRefresh().
		TriggerSuccessNotification(fmt.Sprintf("Record #%d updated", rec.ID)).
		Write(w)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	if resp := RequireDeleteOrPOST(r); resp != nil {
		resp.Write(w)
		return
	}

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		slog.ErrorContext(r.Context(), "Parse body error", "error", err, "method", r.Method, "url", r.URL.Path)
		BadRequestError("Invalid request format").Write(w)
		return
	}

	id, ok := parseRecordID(parser.Get("id"))
	if !ok {
		BadRequestError("Missing record id").Write(w)
		return
	}

	if err := s.deleter.Delete(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrRecordNotFound) {
			NotFoundError("Record not found").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Failed to delete record",
			"error", err,
			"record_id", id,
			"component", "record_deleter",
			"operation", "delete")
		InternalServerError("Error deleting record").Write(w)
		return
	}

	s.overviewCache.Purge()

	slog.InfoContext(r.Context(), "Record deleted",
		"record_id", id,
		"component", "record_handler",
		"operation", "delete")

	NewHTMXResponse().
		TriggerRecordDeleted(id).
		TriggerDashboardRefresh().
		TriggerSuccessNotification(fmt.Sprintf("Record #%d deleted", id)).
		Write(w)
}

// validationError maps the core validation sentinels to user-facing 422s.
func validationError(err error) *HTMXResponseBuilder {
	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		return UnprocessableEntityError("Invalid amount")
	case errors.Is(err, core.ErrMissingCategory):
		return UnprocessableEntityError("Missing category")
	default:
		return UnprocessableEntityError("Invalid data: " + err.Error())
	}
}
