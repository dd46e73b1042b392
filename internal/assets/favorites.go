package assets

import (
	_ "embed"
	"fmt"
	"io"
	"time"

	"github.com/at-ishikawa/mizodict/internal/view"
)

const favoritesTemplateName = "favorites.md.go.tmpl"

//go:embed templates/favorites.md.go.tmpl
var fallbackFavoritesTemplate string

// FavoritesTemplate is the data of the favorites Markdown export.
type FavoritesTemplate struct {
	Title     string
	Date      time.Time
	Favorites []view.Entry
}

func WriteFavorites(output io.Writer, templatePath string, templateData FavoritesTemplate) error {
	tmpl, err := parseTemplateWithFallback(templatePath, favoritesTemplateName, fallbackFavoritesTemplate)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
