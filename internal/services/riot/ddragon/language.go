package ddragon

import (
	"strings"

	apperrors "github.com/louisbranch/riftscout/internal/platform/errors"
	"golang.org/x/text/language"
)

// DefaultLanguage is used when no language is requested.
const DefaultLanguage = "en_US"

// Languages lists the locales Data Dragon publishes.
var Languages = []string{
	"en_US", "cs_CZ", "de_DE", "el_GR", "en_AU", "en_GB", "en_PH", "en_SG",
	"es_AR", "es_ES", "es_MX", "fr_FR", "hu_HU", "id_ID", "it_IT", "ja_JP",
	"ko_KR", "ms_MY", "pl_PL", "pt_BR", "ro_RO", "ru_RU", "th_TH", "tr_TR",
	"vi_VN", "zh_CN", "zh_MY", "zh_TW",
}

var matcher = newMatcher()

func newMatcher() language.Matcher {
	tags := make([]language.Tag, len(Languages))
	for i, name := range Languages {
		tags[i] = language.MustParse(strings.ReplaceAll(name, "_", "-"))
	}
	return language.NewMatcher(tags)
}

// NormalizeLanguage maps a BCP 47 or Data Dragon style locale ("ko-kr",
// "en_US", "fr") to the closest Data Dragon locale. Empty input yields
// fallback. A language Data Dragon does not publish is rejected rather than
// matched to the default locale.
func NormalizeLanguage(requested, fallback string) (string, error) {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		requested = fallback
	}
	if requested == "" {
		return DefaultLanguage, nil
	}

	tag, err := language.Parse(strings.ReplaceAll(requested, "_", "-"))
	if err != nil {
		return "", apperrors.WithMetadata(apperrors.CodeUnsupportedLanguage,
			"parse language "+requested, map[string]string{"Language": requested})
	}
	_, index, confidence := matcher.Match(tag)
	if confidence < language.High {
		return "", apperrors.WithMetadata(apperrors.CodeUnsupportedLanguage,
			"no data dragon locale for "+requested, map[string]string{"Language": requested})
	}
	return Languages[index], nil
}
