package assets

import (
	_ "embed"
	"fmt"
	"io"

	"github.com/at-ishikawa/mizodict/internal/view"
)

const pageTemplateName = "page.html.go.tmpl"

//go:embed templates/page.html.go.tmpl
var fallbackPageTemplate string

//go:embed templates/manifest.webmanifest
var manifest []byte

// WritePage renders the dictionary page. User text is escaped by html/template.
func WritePage(output io.Writer, templatePath string, page view.Page) error {
	tmpl, err := parseHTMLTemplateWithFallback(templatePath, pageTemplateName, fallbackPageTemplate)
	if err != nil {
		return fmt.Errorf("parseHTMLTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, page); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

// Manifest is the web app manifest that makes the page installable.
func Manifest() []byte {
	return manifest
}
