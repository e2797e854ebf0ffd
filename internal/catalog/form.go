package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"coffeecatalog/internal/models"
)

// Mode tells whether a form creates a record or edits an existing one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// FormState follows Closed -> Open -> Validating -> Submitting -> Accepted,
// falling back to Open on invalid input or a storage failure. Cancel moves
// an open form to Rejected.
type FormState int

const (
	FormClosed FormState = iota
	FormOpen
	FormValidating
	FormSubmitting
	FormAccepted
	FormRejected
)

func (s FormState) String() string {
	switch s {
	case FormClosed:
		return "closed"
	case FormOpen:
		return "open"
	case FormValidating:
		return "validating"
	case FormSubmitting:
		return "submitting"
	case FormAccepted:
		return "accepted"
	case FormRejected:
		return "rejected"
	}
	return fmt.Sprintf("FormState(%d)", int(s))
}

// Form is the unsaved state of the edit dialog. Price and PackageVolume are
// kept as typed so a bad number can be shown back to the user.
type Form struct {
	Mode  Mode
	ID    int64
	State FormState

	SortName         string
	RoastLevel       string
	IsGround         bool
	TasteDescription string
	Price            string
	PackageVolume    string

	// Message is the inline validation message.
	Message string
	// Invalid lists the fields named in Message.
	Invalid []string
	// Notice is set when the last submit failed in storage.
	Notice *Notice
}

func newCreateForm() *Form {
	return &Form{
		Mode:          ModeCreate,
		State:         FormOpen,
		Price:         "0",
		PackageVolume: "0",
	}
}

func newEditForm(c *models.Coffee) *Form {
	return &Form{
		Mode:             ModeEdit,
		ID:               c.ID,
		State:            FormOpen,
		SortName:         c.SortName,
		RoastLevel:       c.RoastLevel,
		IsGround:         c.IsGround,
		TasteDescription: c.TasteDescription,
		Price:            FormatPrice(c.Price),
		PackageVolume:    strconv.Itoa(c.PackageVolume),
	}
}

// IsInvalid reports whether field was rejected by the last validation.
func (f *Form) IsInvalid(field string) bool {
	for _, name := range f.Invalid {
		if name == field {
			return true
		}
	}
	return false
}

// input trims the text fields in place and converts the form to a record.
// Unparseable numbers are reported like negative ones.
func (f *Form) input() (*models.CoffeeInput, error) {
	in := &models.CoffeeInput{
		SortName:         f.SortName,
		RoastLevel:       f.RoastLevel,
		IsGround:         f.IsGround,
		TasteDescription: f.TasteDescription,
	}
	in.Normalize()
	f.SortName, f.RoastLevel, f.TasteDescription = in.SortName, in.RoastLevel, in.TasteDescription
	f.Price = strings.TrimSpace(f.Price)
	f.PackageVolume = strings.TrimSpace(f.PackageVolume)

	var bad []string
	price, err := parsePrice(f.Price)
	if err != nil {
		bad = append(bad, models.FieldPrice)
	}
	in.Price = price

	volume, err := strconv.Atoi(f.PackageVolume)
	if err != nil {
		bad = append(bad, models.FieldPackageVolume)
	}
	in.PackageVolume = volume

	verr, _ := in.Validate().(*models.ValidationError)
	if verr == nil && len(bad) == 0 {
		return in, nil
	}
	if verr == nil {
		verr = &models.ValidationError{}
	}
	for _, field := range bad {
		if !verr.Has(field) {
			verr.Fields = append(verr.Fields, field)
		}
	}
	return nil, verr
}

// parsePrice accepts both decimal separators.
func parsePrice(s string) (float64, error) {
	p, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, fmt.Errorf("price %q is not a finite number", s)
	}
	return p, nil
}

// FormatPrice renders a price with as few digits as needed.
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
