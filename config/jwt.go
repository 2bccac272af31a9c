package config

import "time"

var JWTSecret []byte
var JWTExpiration time.Duration

func init() {
	JWTSecret = []byte(getEnv("JWT_SECRET", "insecure-dev-secret-change-me"))
	JWTExpiration = 24 * time.Hour
}
