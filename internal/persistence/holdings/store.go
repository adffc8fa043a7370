// Package holdings persists the portfolio holdings list. Backends share one
// contract: Load returns the full list (empty when nothing was saved yet)
// and Save replaces it atomically.
package holdings

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"folio-api/internal/config"
	"folio-api/pkg/portfolio"
)

// Store is the holdings persistence contract.
type Store interface {
	Load(ctx context.Context) ([]portfolio.Holding, error)
	Save(ctx context.Context, holdings []portfolio.Holding) error
}

// New builds the store selected by configuration. conn may be nil unless the
// postgres backend is selected.
func New(cfg config.StoreConf, conn sqlx.SqlConn) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Type)) {
	case "", "file":
		return NewFileStore(cfg.Path, cfg.Format), nil
	case "memory":
		return NewMemoryStore(), nil
	case "postgres":
		if conn == nil {
			return nil, fmt.Errorf("holdings: postgres store requires a database connection")
		}
		return NewPostgresStore(conn), nil
	default:
		return nil, fmt.Errorf("holdings: unknown store type %q", cfg.Type)
	}
}

// MemoryStore keeps holdings in process memory. Used in tests and as the
// standby when no durable backend is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	holdings []portfolio.Holding
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(context.Context) ([]portfolio.Holding, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]portfolio.Holding, len(m.holdings))
	copy(out, m.holdings)
	return out, nil
}

func (m *MemoryStore) Save(_ context.Context, holdings []portfolio.Holding) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.holdings = make([]portfolio.Holding, len(holdings))
	copy(m.holdings, holdings)
	return nil
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*FileStore)(nil)
	_ Store = (*PostgresStore)(nil)
)
