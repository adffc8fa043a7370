package holdings

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeromicro/go-zero/core/logx"

	"folio-api/pkg/portfolio"
)

// FileStore snapshots the holdings list to a single file. Writes go through
// a temp file plus rename so a crash never leaves a half-written snapshot.
type FileStore struct {
	mu     sync.Mutex
	path   string
	format string
}

// NewFileStore builds a file-backed store. format is json or msgpack; an
// unrecognised value falls back to json.
func NewFileStore(path, format string) *FileStore {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "msgpack" {
		format = "json"
	}
	return &FileStore{path: path, format: format}
}

// Load reads the snapshot. A missing file means an empty portfolio. A
// corrupt snapshot is logged and treated as empty rather than blocking
// startup.
func (f *FileStore) Load(ctx context.Context) ([]portfolio.Holding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("holdings: read %s: %w", f.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var list []portfolio.Holding
	if err := f.decode(data, &list); err != nil {
		logx.WithContext(ctx).Errorf("holdings: corrupt snapshot %s, starting empty: %v", f.path, err)
		return nil, nil
	}
	return list, nil
}

func (f *FileStore) Save(_ context.Context, holdings []portfolio.Holding) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.encode(holdings)
	if err != nil {
		return fmt.Errorf("holdings: encode snapshot: %w", err)
	}

	dir := filepath.Dir(f.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("holdings: create %s: %w", dir, err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".holdings-*")
	if err != nil {
		return fmt.Errorf("holdings: create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("holdings: write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("holdings: close snapshot: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("holdings: chmod snapshot: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("holdings: replace %s: %w", f.path, err)
	}
	return nil
}

func (f *FileStore) encode(list []portfolio.Holding) ([]byte, error) {
	if f.format == "msgpack" {
		return msgpack.Marshal(list)
	}
	return json.MarshalIndent(list, "", "  ")
}

func (f *FileStore) decode(data []byte, list *[]portfolio.Holding) error {
	if f.format == "msgpack" {
		return msgpack.Unmarshal(data, list)
	}
	return json.Unmarshal(data, list)
}
