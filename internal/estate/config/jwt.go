package config

import "time"

// JWTConfig содержит настройки для токенов сессий.
type JWTConfig struct {
	SecretKey  string `yaml:"secret_key" env:"ESTATE_JWT_SECRET_KEY" env-default:"super-secret-key-change-me-in-production"`
	SessionTTL string `yaml:"session_ttl" env:"ESTATE_JWT_SESSION_TTL" env-default:"30m"`
	BCryptCost int    `yaml:"bcrypt_cost" env:"ESTATE_JWT_BCRYPT_COST" env-default:"10"`
}

// GetSessionTTL возвращает продолжительность времени жизни сессии.
func (c *JWTConfig) GetSessionTTL() time.Duration {
	duration, err := time.ParseDuration(c.SessionTTL)
	if err != nil {
		return 30 * time.Minute
	}
	return duration
}
