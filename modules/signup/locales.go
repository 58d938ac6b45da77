package signup

import (
	"context"
	"embed"

	"github.com/casadosaber/signup/pkg/i18n"
)

// Locales holds the form translations, one YAML file per language.
//
//go:embed locales/*.yaml
var Locales embed.FS

// NewTranslator loads the embedded translations.
func NewTranslator(ctx context.Context, opts ...i18n.Option) (*i18n.Translator, error) {
	return i18n.NewTranslator(ctx, i18n.NewFSAdapter(i18n.NewYAMLParser(), Locales, "locales"), opts...)
}
