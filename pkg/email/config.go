package email

// Config holds e-mail delivery settings. Without Postmark tokens the
// application falls back to DevSender, writing messages to DevDir.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"voluntarios@casadosaber.org.br"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"contato@casadosaber.org.br"`
	DevDir               string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
}

// PostmarkEnabled reports whether both Postmark tokens are set.
func (c Config) PostmarkEnabled() bool {
	return c.PostmarkServerToken != "" && c.PostmarkAccountToken != ""
}
