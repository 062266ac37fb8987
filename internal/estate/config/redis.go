package config

// RedisConfig представляет конфигурацию для Redis.
type RedisConfig struct {
	Host     string `yaml:"host" env:"ESTATE_REDIS_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"ESTATE_REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"ESTATE_REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"ESTATE_REDIS_DB" env-default:"0"`
	PoolSize int    `yaml:"pool_size" env:"ESTATE_REDIS_POOL_SIZE" env-default:"10"`
}

// GetHost возвращает хост Redis.
func (c *RedisConfig) GetHost() string {
	return c.Host
}

// GetPort возвращает порт Redis.
func (c *RedisConfig) GetPort() int {
	return c.Port
}

// GetPassword возвращает пароль Redis.
func (c *RedisConfig) GetPassword() string {
	return c.Password
}

// GetDB возвращает номер базы данных Redis.
func (c *RedisConfig) GetDB() int {
	return c.DB
}

// GetPoolSize возвращает размер пула соединений Redis.
func (c *RedisConfig) GetPoolSize() int {
	return c.PoolSize
}
