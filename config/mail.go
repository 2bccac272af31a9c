package config

import "strconv"

var SMTPHost string
var SMTPPort int
var SMTPUsername string
var SMTPPassword string
var MailFrom string

func init() {
	SMTPHost = getEnv("SMTP_HOST", "localhost")
	SMTPUsername = getEnv("SMTP_USERNAME", "")
	SMTPPassword = getEnv("SMTP_PASSWORD", "")
	MailFrom = getEnv("MAIL_FROM", "noreply@yamdb.local")

	port, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		port = 587
	}
	SMTPPort = port
}
