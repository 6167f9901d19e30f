package handler

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"smoothies/internal/model"
	"smoothies/internal/mw"
	"smoothies/internal/service"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.gohtml"))

type fruitChoice struct {
	Name     string
	Selected bool
}

type pageData struct {
	Fruits        []fruitChoice
	MaxSelections int
	Name          string
	Items         []service.ItemResult
	Ingredients   string
	CanSubmit     bool
	BlockedReason string
	Banner        *model.Banner
	State         model.PageState
	Fatal         string
}

// PageHandler renders the order form and re-runs the nutrition lookups for
// the session's current selection on every request.
func PageHandler(catalogs service.CatalogLoader, enricher *service.Enricher, orders *service.OrderService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := mw.SessionFrom(r.Context())
		if !ok {
			http.Error(w, "session missing", http.StatusInternalServerError)
			return
		}

		catalog, err := catalogs.Load(r.Context())
		if err != nil {
			logger.Error("fruit options load failed", zap.Error(err))
			renderPage(w, http.StatusServiceUnavailable, pageData{
				MaxSelections: model.MaxSelections,
				Banner:        sess.TakeBanner(),
				Fatal:         "Fruit options are unavailable right now. Please try again later.",
			}, logger)
			return
		}

		snap := sess.Snapshot()
		data := pageData{
			MaxSelections: model.MaxSelections,
			Name:          snap.Name,
			Banner:        sess.TakeBanner(),
			State:         snap.State,
			Fruits:        fruitChoices(catalog, snap.Selection),
		}

		if !snap.Selection.Empty() {
			data.Items = enricher.Enrich(r.Context(), catalog, snap.Selection)
			data.Ingredients = snap.Selection.Ingredients()
		}

		// The name travels with the submit post, so only an empty selection
		// disables the button.
		data.CanSubmit = !snap.Selection.Empty()
		if err := orders.CheckPreconditions(snap.Selection, snap.Name); err != nil {
			data.BlockedReason = err.Error()
		}

		renderPage(w, http.StatusOK, data, logger)
	}
}

// SelectionHandler stores the posted name and fruit choices in the session.
func SelectionHandler(catalogs service.CatalogLoader, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := mw.SessionFrom(r.Context())
		if !ok {
			http.Error(w, "session missing", http.StatusInternalServerError)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		catalog, err := catalogs.Load(r.Context())
		if err != nil {
			logger.Error("fruit options load failed", zap.Error(err))
			http.Error(w, "fruit options are unavailable", http.StatusServiceUnavailable)
			return
		}

		sess.SetName(r.PostForm.Get("name_on_order"))

		if err := sess.Select(catalog, r.PostForm["fruit"]); err != nil {
			switch {
			case errors.Is(err, service.ErrTooManySelections):
				sess.SetBanner(model.BannerError, fmt.Sprintf("You can choose up to %d ingredients.", model.MaxSelections))
			default:
				sess.SetBanner(model.BannerError, err.Error())
			}
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// SubmitOrderHandler writes the session's order. Each POST is one insert.
// A posted name_on_order replaces the session's name first; the selection
// is the one last applied through SelectionHandler.
func SubmitOrderHandler(orders *service.OrderService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := mw.SessionFrom(r.Context())
		if !ok {
			http.Error(w, "session missing", http.StatusInternalServerError)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		if names, ok := r.PostForm["name_on_order"]; ok && len(names) > 0 {
			sess.SetName(names[0])
		}

		sel, name, err := sess.BeginSubmit()
		if err != nil {
			sess.SetBanner(model.BannerWarning, err.Error())
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		order, err := orders.Submit(r.Context(), sel, name)
		switch {
		case err == nil:
			sess.EndSubmit(model.BannerSuccess, order.Confirmation())
		case service.IsPrecondition(err):
			sess.EndSubmit(model.BannerError, err.Error())
		default:
			logger.Error("order submission failed", zap.Error(err))
			sess.EndSubmit(model.BannerError, fmt.Sprintf("Order submission failed: %v", err))
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func fruitChoices(catalog *model.Catalog, sel model.Selection) []fruitChoice {
	chosen := make(map[string]bool, sel.Len())
	for _, name := range sel.Names() {
		chosen[name] = true
	}
	names := catalog.Names()
	out := make([]fruitChoice, 0, len(names))
	for _, name := range names {
		out = append(out, fruitChoice{Name: name, Selected: chosen[name]})
	}
	return out
}

func renderPage(w http.ResponseWriter, status int, data pageData, logger *zap.Logger) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.ExecuteTemplate(w, "index.gohtml", data); err != nil {
		logger.Error("page render failed", zap.Error(err))
	}
}
