package config

import "time"

// TasksConfig содержит настройки фоновых задач сервиса.
type TasksConfig struct {
	SweepInterval  string `yaml:"sweep_interval" env:"ESTATE_TASKS_SWEEP_INTERVAL" env-default:"1h"`
	SweepRetention string `yaml:"sweep_retention" env:"ESTATE_TASKS_SWEEP_RETENTION" env-default:"24h"`
}

// GetSweepInterval возвращает период запуска очистки неиспользуемой недвижимости.
func (t *TasksConfig) GetSweepInterval() time.Duration {
	duration, err := time.ParseDuration(t.SweepInterval)
	if err != nil {
		return time.Hour
	}
	return duration
}

// GetSweepRetention возвращает срок, в течение которого недвижимость без
// контрактов считается ещё используемой.
func (t *TasksConfig) GetSweepRetention() time.Duration {
	duration, err := time.ParseDuration(t.SweepRetention)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}
