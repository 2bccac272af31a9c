package config

import (
	"strconv"
	"time"
)

// ConfirmationSecret keys the code derivation; ConfirmationWindow is the
// coarse validity window. Codes roll over when the window does, and the
// previous window is still accepted at exchange time.
var ConfirmationSecret []byte
var ConfirmationWindow time.Duration

func init() {
	ConfirmationSecret = []byte(getEnv("CONFIRMATION_SECRET", "insecure-dev-confirmation-secret"))

	minutes, err := strconv.Atoi(getEnv("CONFIRMATION_WINDOW_MINUTES", "15"))
	if err != nil || minutes <= 0 {
		minutes = 15
	}
	ConfirmationWindow = time.Duration(minutes) * time.Minute
}
