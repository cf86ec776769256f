package http

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"ledger/internal/core"
	applog "ledger/internal/log"
)

// getOverview returns the dashboard overview for a selection, cached per
// window+category key. The snapshot read carries a small timeout to avoid
// hanging partials on a slow backend.
func (s *Server) getOverview(ctx context.Context, sel SelectionParams) (core.Overview, error) {
	key := sel.CacheKey()

	if data, found := s.overviewCache.Get(key); found {
		slog.DebugContext(ctx, "Overview cache hit", "window", sel.Window, "category", sel.Category)
		return data, nil
	}

	cctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()
	records, err := s.lister.List(cctx)
	if err != nil {
		return core.Overview{}, fmt.Errorf("list records (window=%s, category=%s): %w", sel.Window, sel.Category, err)
	}

	ov := core.BuildOverview(records, sel.Window, sel.Category, time.Now().UTC())

	s.overviewCache.Set(key, ov)
	slog.DebugContext(ctx, "Overview cached",
		"window", sel.Window,
		"category", sel.Category,
		"total_cents", ov.Total.Cents,
		"categories", len(ov.ByCategory))
	return ov, nil
}

// handleDashboard renders the dashboard overview partial for a window and
// optional category selection.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	sel := ParseSelectionParams(r.URL.Query())

	ov, err := s.getOverview(r.Context(), sel)
	if err != nil {
		s.structuredLog.LogError(r.Context(), "Dashboard overview error", err, applog.ComponentHTTP, applog.OpRender,
			applog.LogFields{applog.FieldWindow: sel.Window.String(), applog.FieldCategory: sel.Category})
		_, _ = w.Write([]byte(`<section id="dashboard" class="dashboard"><div class="placeholder">Error loading overview</div></section>`))
		return
	}
	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="dashboard" class="dashboard"><div class="placeholder">Total: ` + formatAmount(ov.Total.Cents) + `</div></section>`))
		return
	}

	// Scale progress bars against the largest category.
	var maxCents int64
	var maxName string
	for _, c := range ov.ByCategory {
		if c.Amount.Cents > maxCents {
			maxCents = c.Amount.Cents
			maxName = c.Name
		}
	}

	type row struct {
		Name, Amount, Share string
		Width               int
	}
	type item struct {
		ID   int64
		Date string
		Note string
		Amt  string
		Cat  string
	}
	data := struct {
		Window   string
		Category string
		Total    string
		MaxName  string
		Max      string
		Rows     []row
		Items    []item
	}{
		Window:   ov.Window.String(),
		Category: ov.Category,
		Total:    formatAmount(ov.Total.Cents),
		MaxName:  maxName,
		Max:      formatAmount(maxCents),
	}
	for _, c := range ov.ByCategory {
		width := 0
		if maxCents > 0 && c.Amount.Cents > 0 {
			width = int((c.Amount.Cents*100 + maxCents/2) / maxCents)
			if width > 0 && width < 2 {
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		data.Rows = append(data.Rows, row{
			Name:   c.Name,
			Amount: formatAmount(c.Amount.Cents),
			Share:  formatShare(ov.Shares[c.Name]),
			Width:  width,
		})
	}
	for _, rec := range ov.Records {
		data.Items = append(data.Items, item{
			ID:   rec.ID,
			Date: rec.Date,
			Note: template.HTMLEscapeString(rec.Note),
			Amt:  formatAmount(rec.Amount.Cents),
			Cat:  rec.Category,
		})
	}

	if err := s.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "dashboard.html", "window", sel.Window)
		_, _ = w.Write([]byte(`<section id="dashboard" class="dashboard"><div class="placeholder">Error rendering overview</div></section>`))
		return
	}
}

// handleCategoryOptions renders the known categories as <option> elements for
// the dashboard filter select.
func (s *Server) handleCategoryOptions(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	cats, err := s.categories.Categories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to get categories", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<option value="">Error loading categories</option>`))
		return
	}

	_, _ = w.Write([]byte(`<option value="all">All categories</option>`))
	for _, cat := range cats {
		escaped := template.HTMLEscapeString(cat)
		_, _ = w.Write([]byte(fmt.Sprintf(`<option value="%s">%s</option>`, escaped, escaped)))
	}
}
