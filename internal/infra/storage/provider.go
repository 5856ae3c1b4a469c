package storage

import (
	"log/slog"
	"os"
	"path/filepath"

	"gahana/config"
	"gahana/internal/domain/constants"
	"gahana/internal/domain/service"
	"gahana/internal/errors"
)

const defaultStateDirName = ".gahana"

// New opens the store selected by the client configuration.
func New(cfg *config.Config, logger *slog.Logger) (service.KVStore, error) {
	clientCfg := cfg.Client
	if clientCfg == nil {
		clientCfg = &config.ClientConfig{}
	}

	switch clientCfg.Storage {
	case constants.StorageProviderMemory:
		logger.Debug("Using in-memory client storage")

		return NewMemoryStore(), nil

	case constants.StorageProviderRedis:
		if clientCfg.RedisURL == "" {
			return nil, errors.New("client.redisUrl is required for redis storage")
		}
		logger.Debug("Using redis client storage")

		return OpenRedisStore(clientCfg.RedisURL, clientCfg.KeyPrefix)

	case constants.StorageProviderFile, "":
		dir, err := stateDir(clientCfg.StateDir)
		if err != nil {
			return nil, err
		}
		logger.Debug("Using file client storage", slog.String("dir", dir))

		return OpenFileStore(dir, clientCfg.KeyPrefix)

	default:
		return nil, errors.Errorf("unknown client storage provider: %s", clientCfg.Storage)
	}
}

func stateDir(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve home directory")
	}

	return filepath.Join(home, defaultStateDirName), nil
}
