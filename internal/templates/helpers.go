package templates

import (
	"fmt"

	"coffeecatalog/internal/catalog"
)

func formTitle(labels catalog.Labels, f *catalog.Form) string {
	if isEdit(f) {
		return labels.EditTitle
	}
	return labels.NewTitle
}

func formAction(f *catalog.Form) string {
	if isEdit(f) {
		return fmt.Sprintf("/coffee/%d", f.ID)
	}
	return "/coffee"
}

func isEdit(f *catalog.Form) bool {
	return f != nil && f.Mode == catalog.ModeEdit
}
