// Package i18n translates user-facing messages.
//
// Translations are nested maps keyed by language code, usually loaded from
// YAML files embedded in the binary:
//
//	//go:embed locales/*.yaml
//	var locales embed.FS
//
//	tr, err := i18n.NewTranslator(ctx,
//	    i18n.NewFSAdapter(i18n.NewYAMLParser(), locales, "locales"),
//	    i18n.WithDefaultLanguage("pt-BR"),
//	)
//
// Keys are dotted paths and messages use "%{name}" placeholders:
//
//	tr.T("en", "field.file_size", "max_mb", "5")
//
// Language tags are matched with golang.org/x/text/language, so "pt",
// "pt-br" and "pt-PT" all resolve to a loaded "pt-BR" when nothing closer
// exists. Middleware stores the request language in the context for Tc.
package i18n
