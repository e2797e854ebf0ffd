package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"coffeecatalog/internal/catalog"
	"coffeecatalog/internal/templates"
)

// Handler maps HTTP requests onto catalog actions
type Handler struct {
	catalog *catalog.Catalog
	logger  zerolog.Logger
}

func NewHandler(c *catalog.Catalog, logger zerolog.Logger) *Handler {
	return &Handler{catalog: c, logger: logger}
}

// render writes the main window. The page is rendered into a buffer before
// any header is written.
func (h *Handler) render(w http.ResponseWriter, status int, data *templates.PageData) {
	data.Labels = h.catalog.Labels()

	var buf bytes.Buffer
	if err := templates.RenderMain(&buf, data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to render page")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Debug().Err(err).Msg("Failed to write page")
	}
}

// mainPage runs the refresh action and prepares the window around it
func (h *Handler) mainPage(r *http.Request) *templates.PageData {
	view := h.catalog.Refresh(r.Context())
	selected, _ := strconv.ParseInt(r.URL.Query().Get("selected"), 10, 64)
	return &templates.PageData{
		Rows:     view.Rows,
		Notice:   view.Notice,
		Selected: selected,
	}
}

// Main window, also the Refresh action
func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, h.mainPage(r))
}

// Open the dialog in create mode
func (h *Handler) HandleCoffeeNew(w http.ResponseWriter, r *http.Request) {
	data := h.mainPage(r)
	data.Form = h.catalog.Add()
	h.render(w, http.StatusOK, data)
}

// Open the dialog for the selected row
func (h *Handler) HandleCoffeeEdit(w http.ResponseWriter, r *http.Request) {
	selection := r.URL.Query().Get("id")
	form, notice := h.catalog.EditSelected(r.Context(), selection)

	data := h.mainPage(r)
	if notice != nil {
		// a failed list already carries its own notice
		if data.Notice == nil {
			data.Notice = notice
		}
		h.render(w, http.StatusOK, data)
		return
	}

	data.Form = form
	data.Selected = form.ID
	h.render(w, http.StatusOK, data)
}

// Save a new record
func (h *Handler) HandleCoffeeCreate(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, catalog.ModeCreate, 0)
}

// Save an existing record
func (h *Handler) HandleCoffeeUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid coffee id", http.StatusBadRequest)
		return
	}
	h.save(w, r, catalog.ModeEdit, id)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, mode catalog.Mode, id int64) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	form := &catalog.Form{
		Mode:             mode,
		ID:               id,
		State:            catalog.FormOpen,
		SortName:         r.FormValue("sort_name"),
		RoastLevel:       r.FormValue("roast_level"),
		IsGround:         r.FormValue("is_ground") == "1",
		TasteDescription: r.FormValue("taste_description"),
		Price:            r.FormValue("price"),
		PackageVolume:    r.FormValue("package_volume"),
	}

	if h.catalog.Save(r.Context(), form) {
		// the main window refreshes on load
		http.Redirect(w, r, fmt.Sprintf("/?selected=%d", form.ID), http.StatusSeeOther)
		return
	}

	status := http.StatusUnprocessableEntity
	if form.Notice != nil {
		status = http.StatusInternalServerError
	}

	data := h.mainPage(r)
	data.Form = form
	h.render(w, status, data)
}

// Catch-all for unmatched routes
func (h *Handler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	http.NotFound(w, r)
}
