package templates

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"sync"

	"coffeecatalog/internal/catalog"
)

//go:embed *.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the stylesheet tree served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var (
	templates     *template.Template
	templatesOnce sync.Once
	templatesErr  error
)

// loadTemplates parses the embedded templates once, on first use
func loadTemplates() error {
	templatesOnce.Do(func() {
		templates, templatesErr = template.New("").Funcs(template.FuncMap{
			"formTitle":  formTitle,
			"formAction": formAction,
			"isEdit":     isEdit,
		}).ParseFS(templateFS, "*.tmpl")
	})
	return templatesErr
}

// PageData is everything the main window template needs
type PageData struct {
	Labels catalog.Labels
	Rows   []catalog.Row
	// Notice is the blocking message shown over the window
	Notice *catalog.Notice
	// Form is non-nil while the edit dialog is open
	Form *catalog.Form
	// Selected is the highlighted row id
	Selected int64
}

// RenderMain renders the main window, with the dialog open when data.Form is set
func RenderMain(w io.Writer, data *PageData) error {
	if err := loadTemplates(); err != nil {
		return err
	}
	return templates.ExecuteTemplate(w, "layout", data)
}
