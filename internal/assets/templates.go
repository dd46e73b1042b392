package assets

import (
	"fmt"
	htmltemplate "html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

var funcMap = map[string]any{
	"join":  strings.Join,
	"upper": strings.ToUpper,
}

// templateFile returns the name and contents of templatePath when it can be read.
// An unset or unreadable path means the embedded template is used.
func templateFile(templatePath string) (string, string, bool) {
	if templatePath == "" {
		return "", "", false
	}
	contents, err := os.ReadFile(templatePath)
	if err != nil {
		slog.Default().Warn("failed to read a templatePath",
			slog.String("templatePath", templatePath),
			slog.Any("error", err),
		)
		return "", "", false
	}
	return filepath.Base(templatePath), string(contents), true
}

func parseTemplateWithFallback(templatePath, fallbackName, fallbackTemplate string) (*template.Template, error) {
	if name, contents, ok := templateFile(templatePath); ok {
		tmpl, err := template.New(name).Funcs(funcMap).Parse(contents)
		if err == nil {
			return tmpl, nil
		}
		slog.Default().Warn("failed to parse a templatePath",
			slog.String("templatePath", templatePath),
			slog.Any("error", err),
		)
	}

	tmpl, err := template.New(fallbackName).Funcs(funcMap).Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}

func parseHTMLTemplateWithFallback(templatePath, fallbackName, fallbackTemplate string) (*htmltemplate.Template, error) {
	if name, contents, ok := templateFile(templatePath); ok {
		tmpl, err := htmltemplate.New(name).Funcs(funcMap).Parse(contents)
		if err == nil {
			return tmpl, nil
		}
		slog.Default().Warn("failed to parse a templatePath",
			slog.String("templatePath", templatePath),
			slog.Any("error", err),
		)
	}

	tmpl, err := htmltemplate.New(fallbackName).Funcs(funcMap).Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}
