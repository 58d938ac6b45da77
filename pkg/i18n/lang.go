package i18n

import (
	"golang.org/x/text/language"
)

// maxAcceptLanguageLength bounds the header parsed per request.
const maxAcceptLanguageLength = 4096

func newMatcher(langs []string) language.Matcher {
	tags := make([]language.Tag, 0, len(langs))
	for _, l := range langs {
		tags = append(tags, language.Make(l))
	}
	return language.NewMatcher(tags)
}

// matchLanguage returns the entry of supported closest to lang.
func matchLanguage(m language.Matcher, supported []string, lang string) (string, bool) {
	if lang == "" || len(supported) == 0 {
		return "", false
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return "", false
	}
	_, idx, conf := m.Match(tag)
	if conf == language.No {
		return "", false
	}
	return supported[idx], true
}

// ParseAcceptLanguage picks the supported language that best fits an
// Accept-Language header, honouring q-values. Regional variants match their
// base language and vice versa. Returns defaultLang when nothing fits.
func ParseAcceptLanguage(header string, supported []string, defaultLang string) string {
	if header == "" || len(supported) == 0 {
		return defaultLang
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return defaultLang
	}

	_, idx, conf := newMatcher(supported).Match(tags...)
	if conf == language.No {
		return defaultLang
	}
	return supported[idx]
}
