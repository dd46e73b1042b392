package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type customValidation struct {
	tag     string
	fn      validator.Func
	message string
}

var customValidations = []customValidation{
	{
		tag:     "file",
		fn:      isFileReadable,
		message: "{0} must be an existing and readable file",
	},
	{
		tag:     "dictsource",
		fn:      isDictionarySource,
		message: "{0} must be an http(s) URL or a path to a .json file",
	},
}

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	for _, custom := range customValidations {
		if err := validate.RegisterValidation(custom.tag, custom.fn); err != nil {
			return nil, nil, fmt.Errorf("failed to register %s validation: %w", custom.tag, err)
		}
		if err := validate.RegisterTranslation(custom.tag, trans, func(ut ut.Translator) error {
			return ut.Add(custom.tag, custom.message, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(fe.Tag(), strings.TrimPrefix(fe.Namespace(), "Config."))
			return t
		}); err != nil {
			return nil, nil, fmt.Errorf("failed to register %s translation: %w", custom.tag, err)
		}
	}

	return validate, trans, nil
}

func isFileReadable(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if path == "" {
		return false
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	// Owner read permission
	return info.Mode().Perm()&0o400 != 0
}

// isDictionarySource only checks the shape of the source. A missing file is reported when the
// dictionary is loaded, so the app can still start and show the failure.
func isDictionarySource(fl validator.FieldLevel) bool {
	source := fl.Field().String()
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		u, err := url.Parse(source)
		return err == nil && u.Host != ""
	}
	return strings.EqualFold(filepath.Ext(source), ".json")
}
