package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/ignite/pagecraft/internal/config"
	"github.com/ignite/pagecraft/internal/service/settings"
)

// Backends named in config.SettingsConfig.Backend.
const (
	BackendLocal    = "local"
	BackendRedis    = "redis"
	BackendDynamoDB = "dynamodb"
)

// New returns the settings store selected by cfg.Backend. The redis
// backend needs rdb; the dynamodb backend loads the default AWS config for
// cfg.AWSRegion.
func New(ctx context.Context, cfg config.SettingsConfig, rdb redis.UniversalClient) (settings.Store, error) {
	switch cfg.Backend {
	case "", BackendLocal:
		return NewLocalStore(cfg.LocalPath), nil
	case BackendRedis:
		if rdb == nil {
			return nil, fmt.Errorf("settings backend %q requires redis.url", cfg.Backend)
		}
		return NewRedisStore(rdb, cfg.Key), nil
	case BackendDynamoDB:
		clients, err := NewAWSClients(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		return NewDynamoStore(clients.DynamoDB, cfg.DynamoDBTable, cfg.Key), nil
	default:
		return nil, fmt.Errorf("unknown settings backend %q", cfg.Backend)
	}
}

// LocalStore keeps the record in a JSON file.
type LocalStore struct {
	mu   sync.Mutex
	path string
}

// NewLocalStore creates a file-backed store at path.
func NewLocalStore(path string) *LocalStore {
	return &LocalStore{path: path}
}

func (s *LocalStore) Load(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return data, nil
}

// Save writes to a temporary file in the same directory and renames it
// over the record.
func (s *LocalStore) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
