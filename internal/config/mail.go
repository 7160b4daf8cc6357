package config

// MailConfig содержит настройки SMTP для отправки писем.
type MailConfig struct {
	Host     string `yaml:"host" env:"BOOKSTORE_SMTP_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"BOOKSTORE_SMTP_PORT" env-default:"25"`
	Username string `yaml:"username" env:"BOOKSTORE_SMTP_USERNAME" env-default:""`
	Password string `yaml:"password" env:"BOOKSTORE_SMTP_PASSWORD" env-default:""`
	From     string `yaml:"from" env:"BOOKSTORE_SMTP_FROM" env-default:"bookstore@localhost"`
}
