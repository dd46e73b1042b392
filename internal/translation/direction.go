package translation

import (
	"fmt"
	"strings"
)

// Language codes understood by the translation providers.
const (
	LanguageEnglish = "en"
	LanguageMizo    = "lus"
)

// Direction selects which way an online search translates. It implements pflag.Value.
type Direction string

const (
	EnglishToMizo Direction = "english-to-mizo"
	MizoToEnglish Direction = "mizo-to-english"
)

var directionAliases = map[string]Direction{
	"english-to-mizo": EnglishToMizo,
	"en-to-mizo":      EnglishToMizo,
	"mizo-to-english": MizoToEnglish,
	"mizo-to-en":      MizoToEnglish,
}

// ParseDirection accepts the canonical names and the short forms used by batch requests.
func ParseDirection(value string) (Direction, error) {
	direction, ok := directionAliases[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return "", fmt.Errorf("unknown direction %q, must be one of %s or %s", value, EnglishToMizo, MizoToEnglish)
	}
	return direction, nil
}

func (d *Direction) Set(value string) error {
	direction, err := ParseDirection(value)
	if err != nil {
		return err
	}
	*d = direction
	return nil
}

func (d Direction) String() string {
	return string(d)
}

func (d Direction) Type() string {
	return "direction"
}

// Languages returns the provider language codes for d.
func (d Direction) Languages() (source, target string) {
	if d == EnglishToMizo {
		return LanguageEnglish, LanguageMizo
	}
	return LanguageMizo, LanguageEnglish
}

// Path is the translation service endpoint serving d.
func (d Direction) Path() string {
	if d == EnglishToMizo {
		return "/translate-english"
	}
	return "/translate-mizo"
}
