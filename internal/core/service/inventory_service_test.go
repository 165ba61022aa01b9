package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rl1809/stockkeeper/internal/core/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// Mock SnapshotRepository
type mockSnapshotRepo struct {
	data    map[string]int
	loadErr error
	saveErr error
	saves   int
}

func newMockSnapshotRepo(data map[string]int) *mockSnapshotRepo {
	return &mockSnapshotRepo{data: data}
}

func (m *mockSnapshotRepo) Load(ctx context.Context) (map[string]int, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make(map[string]int, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out, nil
}

func (m *mockSnapshotRepo) Save(ctx context.Context, stock map[string]int) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.data = stock
	return nil
}

func newObservedService() (*InventoryService, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return NewInventoryService(zap.New(core)), logs
}

func TestAdd_CreatesAndAccumulates(t *testing.T) {
	svc := NewInventoryService(nil)

	require.NoError(t, svc.Add("apple", 10, nil))
	require.NoError(t, svc.Add("apple", 5, nil))

	qty, err := svc.Quantity("apple")
	require.NoError(t, err)
	assert.Equal(t, 15, qty)
}

func TestAdd_InvalidArguments(t *testing.T) {
	svc := NewInventoryService(nil)

	tests := []struct {
		name string
		item string
		qty  int
	}{
		{"empty item", "", 1},
		{"zero qty", "apple", 0},
		{"negative qty", "apple", -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Add(tt.item, tt.qty, nil)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}
	assert.Equal(t, 0, svc.Len())
}

func TestAdd_JournalAndLog(t *testing.T) {
	svc, logs := newObservedService()
	svc.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	journal := domain.NewJournal()

	require.NoError(t, svc.Add("apple", 10, journal))

	assert.Equal(t, []string{"2024-01-02 03:04:05.000000: Added 10 of apple"}, journal.Entries())

	entries := logs.FilterMessage("added stock").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "apple", fields["item"])
	assert.EqualValues(t, 10, fields["qty"])
	assert.EqualValues(t, 0, fields["previous"])
}

func TestRemove_Decrements(t *testing.T) {
	svc, logs := newObservedService()
	require.NoError(t, svc.Add("apple", 10, nil))

	require.NoError(t, svc.Remove("apple", 3))

	qty, _ := svc.Quantity("apple")
	assert.Equal(t, 7, qty)
	assert.Equal(t, 1, logs.FilterMessage("decreased stock").Len())
}

func TestRemove_DeletesWhenExhausted(t *testing.T) {
	for _, remove := range []int{5, 6, 100} {
		svc, logs := newObservedService()
		require.NoError(t, svc.Add("pear", 5, nil))

		require.NoError(t, svc.Remove("pear", remove))

		qty, err := svc.Quantity("pear")
		require.NoError(t, err)
		assert.Equal(t, 0, qty)
		assert.NotContains(t, svc.Snapshot(), "pear")
		assert.Equal(t, 1, logs.FilterMessage("removed item").Len())
	}
}

func TestRemove_NotFound(t *testing.T) {
	svc := NewInventoryService(nil)

	err := svc.Remove("ghost", 1)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRemove_InvalidArgumentsBeforeLookup(t *testing.T) {
	svc := NewInventoryService(nil)

	assert.ErrorIs(t, svc.Remove("", 1), domain.ErrInvalidArgument)
	assert.ErrorIs(t, svc.Remove("ghost", 0), domain.ErrInvalidArgument)
}

func TestQuantity(t *testing.T) {
	svc := NewInventoryService(nil)

	qty, err := svc.Quantity("missing")
	require.NoError(t, err)
	assert.Equal(t, 0, qty)

	_, err = svc.Quantity("")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestLowStock(t *testing.T) {
	svc := NewInventoryService(nil)
	require.NoError(t, svc.Add("apple", 7, nil))
	require.NoError(t, svc.Add("banana", 2, nil))
	require.NoError(t, svc.Add("cherry", 5, nil))
	require.NoError(t, svc.Add("date", 4, nil))

	assert.Equal(t, []string{"banana", "date"}, svc.LowStock(5))
	assert.Equal(t, []string{}, svc.LowStock(1))
	assert.Equal(t, []string{"apple", "banana", "cherry", "date"}, svc.LowStock(100))
}

func TestReport_SortedByItem(t *testing.T) {
	svc := NewInventoryService(nil)
	require.NoError(t, svc.Add("pear", 1, nil))
	require.NoError(t, svc.Add("apple", 3, nil))
	require.NoError(t, svc.Add("Zucchini", 2, nil))

	assert.Equal(t, []domain.StockLevel{
		{Item: "Zucchini", Quantity: 2},
		{Item: "apple", Quantity: 3},
		{Item: "pear", Quantity: 1},
	}, svc.Report())
}

func TestExampleSequence(t *testing.T) {
	svc := NewInventoryService(nil)

	require.NoError(t, svc.Add("apple", 10, nil))
	require.NoError(t, svc.Add("banana", 2, nil))
	require.NoError(t, svc.Remove("apple", 3))

	qty, err := svc.Quantity("apple")
	require.NoError(t, err)
	assert.Equal(t, 7, qty)
	assert.Equal(t, []string{"banana"}, svc.LowStock(5))
}

func TestLoad_ReplacesContents(t *testing.T) {
	svc := NewInventoryService(nil)
	require.NoError(t, svc.Add("old", 1, nil))

	repo := newMockSnapshotRepo(map[string]int{"apple": 4, "kiwi": 9})
	require.NoError(t, svc.Load(context.Background(), repo))

	assert.Equal(t, map[string]int{"apple": 4, "kiwi": 9}, svc.Snapshot())

	// store must not alias the repository's map
	repo.data["apple"] = 100
	qty, _ := svc.Quantity("apple")
	assert.Equal(t, 4, qty)
}

func TestLoad_FailureKeepsContents(t *testing.T) {
	svc, logs := newObservedService()
	require.NoError(t, svc.Add("apple", 3, nil))

	repo := newMockSnapshotRepo(nil)
	repo.loadErr = domain.ErrFormat

	err := svc.Load(context.Background(), repo)
	assert.ErrorIs(t, err, domain.ErrFormat)
	assert.Equal(t, map[string]int{"apple": 3}, svc.Snapshot())
	assert.Equal(t, 1, logs.FilterMessage("failed to load inventory").Len())
}

func TestSave(t *testing.T) {
	svc := NewInventoryService(nil)
	require.NoError(t, svc.Add("apple", 3, nil))
	repo := newMockSnapshotRepo(nil)

	require.NoError(t, svc.Save(context.Background(), repo))
	assert.Equal(t, map[string]int{"apple": 3}, repo.data)
	assert.Equal(t, 1, repo.saves)
}

func TestSave_PropagatesAndLogsError(t *testing.T) {
	svc, logs := newObservedService()
	repo := newMockSnapshotRepo(nil)
	diskFull := errors.New("no space left on device")
	repo.saveErr = diskFull

	err := svc.Save(context.Background(), repo)
	assert.ErrorIs(t, err, diskFull)
	assert.Equal(t, 1, logs.FilterMessage("failed to save inventory").Len())
}

func TestRunDemo(t *testing.T) {
	svc := NewInventoryService(nil)
	repo := newMockSnapshotRepo(nil)
	var out bytes.Buffer

	RunDemo(context.Background(), svc, repo, &out, 5, nil)

	assert.Equal(t, "Apple stock: 7\nLow items: [banana]\nItems Report\napple -> 7\nbanana -> 2\n", out.String())
	assert.Equal(t, map[string]int{"apple": 7, "banana": 2}, repo.data)
}

func TestRunDemo_LogsErrors(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	logger := zap.New(core)
	svc := NewInventoryService(nil)
	repo := newMockSnapshotRepo(nil)
	repo.saveErr = errors.New("read-only file system")
	var out bytes.Buffer

	RunDemo(context.Background(), svc, repo, &out, 5, logger)

	assert.Equal(t, 1, logs.FilterMessage("error during example run").Len())
	assert.NotContains(t, out.String(), "Items Report")
}
