package models

import (
	"fmt"
	"math"
	"strings"
)

// Coffee is one row of the catalog.
type Coffee struct {
	ID               int64   `json:"id"`
	SortName         string  `json:"sort_name"`
	RoastLevel       string  `json:"roast_level"`
	IsGround         bool    `json:"is_ground"`
	TasteDescription string  `json:"taste_description"`
	Price            float64 `json:"price"`
	PackageVolume    int     `json:"package_volume"`
}

// Input returns the editable attributes of the record.
func (c *Coffee) Input() *CoffeeInput {
	return &CoffeeInput{
		SortName:         c.SortName,
		RoastLevel:       c.RoastLevel,
		IsGround:         c.IsGround,
		TasteDescription: c.TasteDescription,
		Price:            c.Price,
		PackageVolume:    c.PackageVolume,
	}
}

// CoffeeInput carries the fields written by insert and update.
type CoffeeInput struct {
	SortName         string  `json:"sort_name"`
	RoastLevel       string  `json:"roast_level"`
	IsGround         bool    `json:"is_ground"`
	TasteDescription string  `json:"taste_description"`
	Price            float64 `json:"price"`
	PackageVolume    int     `json:"package_volume"`
}

// Normalize trims surrounding whitespace from the text fields.
func (in *CoffeeInput) Normalize() {
	in.SortName = strings.TrimSpace(in.SortName)
	in.RoastLevel = strings.TrimSpace(in.RoastLevel)
	in.TasteDescription = strings.TrimSpace(in.TasteDescription)
}

// Validate reports every field that may not be persisted as is.
// Text fields are checked after trimming, so Normalize first.
func (in *CoffeeInput) Validate() error {
	var fields []string
	if strings.TrimSpace(in.SortName) == "" {
		fields = append(fields, FieldSortName)
	}
	if strings.TrimSpace(in.RoastLevel) == "" {
		fields = append(fields, FieldRoastLevel)
	}
	if strings.TrimSpace(in.TasteDescription) == "" {
		fields = append(fields, FieldTasteDescription)
	}
	if in.Price < 0 || math.IsNaN(in.Price) || math.IsInf(in.Price, 0) {
		fields = append(fields, FieldPrice)
	}
	if in.PackageVolume < 0 {
		fields = append(fields, FieldPackageVolume)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Field names as they appear in the coffee table and the edit form.
const (
	FieldSortName         = "sort_name"
	FieldRoastLevel       = "roast_level"
	FieldIsGround         = "is_ground"
	FieldTasteDescription = "taste_description"
	FieldPrice            = "price"
	FieldPackageVolume    = "package_volume"
)

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid fields: %s", strings.Join(e.Fields, ", "))
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// HasText reports whether one of the required text fields is blank.
func (e *ValidationError) HasText() bool {
	return e.Has(FieldSortName) || e.Has(FieldRoastLevel) || e.Has(FieldTasteDescription)
}
