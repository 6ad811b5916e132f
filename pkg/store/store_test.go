package store

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/boltzmann/pkg/hpmath"
	"github.com/ja7ad/boltzmann/pkg/partition"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "sweeps.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sweptManager(t *testing.T) *partition.Manager[hpmath.BigFloat] {
	t.Helper()
	proto := hpmath.NewBigFloat(256)
	parse := func(s string) hpmath.BigFloat {
		v, err := proto.Parse(s)
		require.NoError(t, err)
		return v
	}
	m := partition.NewManager(proto, partition.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, m.Initialize(partition.Static(partition.Record[hpmath.BigFloat]{
		Output:   "out.csv",
		Energies: []hpmath.BigFloat{parse("0"), parse("0.01")},
		TMin:     parse("100"),
		TMax:     parse("300"),
		Step:     parse("50"),
	})))
	require.NoError(t, m.Sweep(context.Background(), nil))
	return m
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestSaveAndRead(t *testing.T) {
	ctx := context.Background()
	s := openTempStore(t)
	m := sweptManager(t)

	id, err := Save(ctx, s, m, 20)
	require.NoError(t, err)
	assert.Positive(t, id)

	sw, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "out.csv", sw.Output)
	assert.Equal(t, 2, sw.States)
	assert.Equal(t, 4, sw.Samples)
	assert.Equal(t, "100", sw.TMin)
	assert.Equal(t, "50", sw.Step)
	assert.Equal(t, []string{"0", "0.01"}, sw.Energies)
	assert.False(t, sw.CreatedAt.IsZero())

	rows, err := s.Samples(ctx, id)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	_, table := m.Table(20)
	i := 0
	for want := range table {
		got := rows[i]
		assert.Equal(t, i, got.Index)
		assert.Equal(t, want[0], got.T)
		assert.Equal(t, want[2], got.Z)
		assert.Equal(t, want[3:], got.P)
		i++
	}
}

func TestList_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := openTempStore(t)
	m := sweptManager(t)

	first, err := Save(ctx, s, m, 10)
	require.NoError(t, err)
	second, err := Save(ctx, s, m, 10)
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second, list[0].ID)
	assert.Equal(t, first, list[1].ID)
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sweeps.db")
	s, err := Open(path)
	require.NoError(t, err)
	id, err := Save(ctx, s, sweptManager(t), 10)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	rows, err := s.Samples(ctx, id)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestNotFound(t *testing.T) {
	s := openTempStore(t)
	_, err := s.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Samples(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSave_Uninitialized(t *testing.T) {
	s := openTempStore(t)
	m := partition.NewManager(hpmath.NewBigFloat(64))
	_, err := Save(context.Background(), s, m, 10)
	assert.ErrorIs(t, err, partition.ErrNotInitialized)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Save(ctx, s, sweptManager(t), 10)
	assert.ErrorIs(t, err, context.Canceled)
}
