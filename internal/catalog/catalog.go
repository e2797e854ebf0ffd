// Package catalog implements the catalog UI behavior independent of any
// front-end: the main list view and the create/edit form, driven through
// the named actions Refresh, Add, Edit, EditSelected, Save and Cancel.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"coffeecatalog/internal/database"
	"coffeecatalog/internal/models"
)

// Notice is a blocking message the user has to acknowledge.
type Notice struct {
	Title   string
	Message string
}

// Row is one rendered line of the main table.
type Row struct {
	ID               int64
	SortName         string
	RoastLevel       string
	Ground           string
	TasteDescription string
	Price            string
	PackageVolume    string
}

// MainView is what the main window shows after a refresh.
type MainView struct {
	Rows   []Row
	Notice *Notice
}

// Config holds catalog options.
type Config struct {
	Labels Labels
	// DatabasePath is shown when the database file is missing.
	DatabasePath string
	Logger       zerolog.Logger
}

// Catalog brokers every interaction between the UI and the store. Actions
// are serialized: the store sees one operation at a time.
type Catalog struct {
	mu     sync.Mutex
	store  database.Store
	labels Labels
	dbPath string
	logger zerolog.Logger
}

// New returns a catalog over store. Labels default to Russian.
func New(store database.Store, cfg Config) *Catalog {
	if cfg.Labels.Locale == "" {
		cfg.Labels = LabelsFor("")
	}
	return &Catalog{
		store:  store,
		labels: cfg.Labels,
		dbPath: cfg.DatabasePath,
		logger: cfg.Logger,
	}
}

// Labels returns the strings the front-end should render.
func (c *Catalog) Labels() Labels {
	return c.labels
}

// Refresh reloads the whole list. On failure the view is empty and carries
// a notice.
func (c *Catalog) Refresh(ctx context.Context) *MainView {
	c.mu.Lock()
	defer c.mu.Unlock()

	coffees, err := c.store.ListCoffee(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list coffee")
		return &MainView{Notice: c.storageNotice(err)}
	}

	rows := make([]Row, len(coffees))
	for i, coffee := range coffees {
		rows[i] = c.row(coffee)
	}
	return &MainView{Rows: rows}
}

func (c *Catalog) row(coffee *models.Coffee) Row {
	return Row{
		ID:               coffee.ID,
		SortName:         coffee.SortName,
		RoastLevel:       coffee.RoastLevel,
		Ground:           c.labels.GroundLabel(coffee.IsGround),
		TasteDescription: coffee.TasteDescription,
		Price:            FormatPrice(coffee.Price),
		PackageVolume:    strconv.Itoa(coffee.PackageVolume),
	}
}

// Add opens an empty form in create mode.
func (c *Catalog) Add() *Form {
	return newCreateForm()
}

// EditSelected opens the form for the row the user picked. selection is the
// raw id taken from the table.
func (c *Catalog) EditSelected(ctx context.Context, selection string) (*Form, *Notice) {
	selection = strings.TrimSpace(selection)
	if selection == "" {
		return nil, &Notice{Title: c.labels.ErrorTitle, Message: c.labels.SelectRecord}
	}
	id, err := strconv.ParseInt(selection, 10, 64)
	if err != nil {
		return nil, &Notice{Title: c.labels.ErrorTitle, Message: c.labels.BadSelection}
	}
	return c.Edit(ctx, id)
}

// Edit opens the form pre-populated with record id. A vanished record aborts
// the edit with a notice.
func (c *Catalog) Edit(ctx context.Context, id int64) (*Form, *Notice) {
	c.mu.Lock()
	defer c.mu.Unlock()

	coffee, err := c.store.GetCoffee(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		c.logger.Warn().Int64("id", id).Msg("Coffee to edit not found")
		return nil, &Notice{Title: c.labels.ErrorTitle, Message: c.labels.RecordNotFound}
	}
	if err != nil {
		c.logger.Error().Err(err).Int64("id", id).Msg("Failed to load coffee")
		return nil, c.storageNotice(err)
	}

	return newEditForm(coffee), nil
}

// Save validates the form and writes it. It reports whether the form was
// accepted; otherwise the form stays open with Message or Notice set.
func (c *Catalog) Save(ctx context.Context, f *Form) bool {
	if f.State != FormOpen {
		return f.State == FormAccepted
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	f.Message, f.Invalid, f.Notice = "", nil, nil

	f.State = FormValidating
	in, err := f.input()
	if err != nil {
		var verr *models.ValidationError
		errors.As(err, &verr)
		f.Invalid = verr.Fields
		if verr.HasText() {
			f.Message = c.labels.FillTextFields
		} else {
			f.Message = c.labels.BadNumbers
		}
		f.State = FormOpen
		c.logger.Debug().Strs("fields", verr.Fields).Msg("Rejected coffee form")
		return false
	}

	f.State = FormSubmitting
	switch f.Mode {
	case ModeEdit:
		err = c.store.UpdateCoffee(ctx, f.ID, in)
	default:
		f.ID, err = c.store.CreateCoffee(ctx, in)
	}
	if err != nil {
		c.logger.Error().Err(err).Int64("id", f.ID).Msg("Failed to save coffee")
		f.Notice = c.storageNotice(err)
		f.State = FormOpen
		return false
	}

	c.logger.Info().Int64("id", f.ID).Str("sort_name", in.SortName).Msg("Saved coffee")
	f.State = FormAccepted
	return true
}

// Cancel closes an open form without saving.
func (c *Catalog) Cancel(f *Form) {
	if f.State == FormOpen {
		f.State = FormRejected
	}
}

func (c *Catalog) storageNotice(err error) *Notice {
	if errors.Is(err, database.ErrDatabaseNotFound) {
		return &Notice{
			Title:   c.labels.ErrorTitle,
			Message: fmt.Sprintf(c.labels.DatabaseNotFound, c.dbPath),
		}
	}
	return &Notice{Title: c.labels.StorageErrorTitle, Message: err.Error()}
}
