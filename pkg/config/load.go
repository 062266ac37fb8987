// Package config предоставляет функциональность для загрузки конфигурации из переменных окружения.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"realtydesk/pkg/logger"
)

const (
	msgLoadingConfiguration    = "loading configuration"
	msgConfigurationLoaded     = "configuration loaded successfully"
	msgFailedLoadConfiguration = "failed to load configuration"

	errFailedCreateLogger      = "failed to create logger"
	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// Load читает конфигурацию типа T из deploy/.env и переменных окружения.
// Если файл отсутствует, используются только переменные окружения.
func Load[T any](ctx context.Context, serviceName string) (*T, error) {
	log, err := logger.FromContext(ctx)
	if err != nil {
		log, err = logger.NewLogger(logger.Development, "")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errFailedCreateLogger, err)
		}
		ctx = logger.NewContext(ctx, log)
	}

	envPath := filepath.Join("deploy", ".env")

	log.Info(ctx, msgLoadingConfiguration,
		zap.String(attrService, serviceName),
		zap.String(attrPath, envPath))

	var cfg T

	if _, statErr := os.Stat(envPath); statErr == nil {
		err = cleanenv.ReadConfig(envPath, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Error(ctx, msgFailedLoadConfiguration,
			zap.String(attrService, serviceName),
			zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded,
		zap.String(attrService, serviceName))

	return &cfg, nil
}
