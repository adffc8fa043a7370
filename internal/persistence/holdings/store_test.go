package holdings

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"folio-api/internal/config"
	"folio-api/pkg/portfolio"
)

func sampleHoldings() []portfolio.Holding {
	now := time.Date(2025, 8, 29, 20, 0, 0, 0, time.UTC)
	return []portfolio.Holding{
		{
			ID:          "id-1",
			Symbol:      "AAPL",
			Name:        "Apple Inc.",
			Shares:      10,
			TotalCost:   1800,
			Price:       195.5,
			PriceChange: 1.3,
			LastUpdated: now,
		},
		{
			ID:          "id-2",
			Symbol:      "KO",
			Name:        "The Coca-Cola Company",
			Shares:      25,
			TotalCost:   1500,
			Price:       71.95,
			LastUpdated: now,
		},
	}
}

func TestMemoryStoreRoundtrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	initial, err := store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, initial)

	want := sampleHoldings()
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)

	// The store must hold its own copy.
	got[0].Shares = 999
	again, err := store.Load(ctx)
	require.NoError(t, err)
	require.InDelta(t, 10, again[0].Shares, 1e-9)
}

func TestFileStoreRoundtrip(t *testing.T) {
	for _, format := range []string{"json", "msgpack"} {
		t.Run(format, func(t *testing.T) {
			ctx := context.Background()
			path := filepath.Join(t.TempDir(), "holdings.snapshot")
			store := NewFileStore(path, format)

			initial, err := store.Load(ctx)
			require.NoError(t, err)
			require.Empty(t, initial)

			want := sampleHoldings()
			require.NoError(t, store.Save(ctx, want))

			info, err := os.Stat(path)
			require.NoError(t, err)
			require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

			got, err := store.Load(ctx)
			require.NoError(t, err)
			require.Len(t, got, 2)
			require.Equal(t, want[0].ID, got[0].ID)
			require.Equal(t, want[0].Symbol, got[0].Symbol)
			require.InDelta(t, want[0].TotalCost, got[0].TotalCost, 1e-9)
			require.True(t, want[0].LastUpdated.Equal(got[0].LastUpdated))
			require.Equal(t, want[1].Symbol, got[1].Symbol)
		})
	}
}

func TestFileStoreSaveReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "holdings.json")
	store := NewFileStore(path, "json")

	require.NoError(t, store.Save(ctx, sampleHoldings()))
	require.NoError(t, store.Save(ctx, sampleHoldings()[:1]))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "AAPL", got[0].Symbol)
}

func TestFileStoreCorruptSnapshotStartsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "holdings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewFileStore(path, "json")
	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestFileStoreCreatesParentDir(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "deep", "holdings.json")
	store := NewFileStore(path, "json")

	require.NoError(t, store.Save(ctx, sampleHoldings()))
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestFileStoreUnknownFormatFallsBackToJSON(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "holdings.dat")
	store := NewFileStore(path, "xml")

	require.NoError(t, store.Save(ctx, sampleHoldings()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"symbol": "AAPL"`)
}

func TestNewSelectsBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holdings.json")

	fileStore, err := New(config.StoreConf{Type: "file", Path: path, Format: "json"}, nil)
	require.NoError(t, err)
	require.IsType(t, &FileStore{}, fileStore)

	memStore, err := New(config.StoreConf{Type: "memory"}, nil)
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, memStore)

	_, err = New(config.StoreConf{Type: "postgres"}, nil)
	require.Error(t, err)

	_, err = New(config.StoreConf{Type: "s3"}, nil)
	require.Error(t, err)
}
