// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package progress_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yuedu/internal/library/progress"
	"github.com/taibuivan/yuedu/internal/platform/apperr"
)

// # Test Doubles

type progressKey struct {
	userID string
	bookID int64
}

// memoryRepository keeps rows in maps and counts writes.
type memoryRepository struct {
	mu     sync.Mutex
	rows   map[progressKey]progress.ReadingProgress
	totals map[string]int64
	writes int
	err    error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		rows:   make(map[progressKey]progress.ReadingProgress),
		totals: make(map[string]int64),
	}
}

func (repository *memoryRepository) Find(_ context.Context, userID string, bookID int64) (progress.ReadingProgress, bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if repository.err != nil {
		return progress.ReadingProgress{}, false, repository.err
	}
	row, found := repository.rows[progressKey{userID, bookID}]
	return row, found, nil
}

func (repository *memoryRepository) Insert(_ context.Context, row progress.ReadingProgress) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	key := progressKey{row.UserID, row.BookID}
	if _, exists := repository.rows[key]; !exists {
		repository.rows[key] = row
		repository.writes++
	}
	return nil
}

func (repository *memoryRepository) Save(_ context.Context, row progress.ReadingProgress) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.rows[progressKey{row.UserID, row.BookID}] = row
	repository.writes++
	return nil
}

func (repository *memoryRepository) AddReadingTime(_ context.Context, userID string, seconds int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.totals[userID] += seconds
	return nil
}

func (repository *memoryRepository) Stats(_ context.Context, userID string) (progress.ReaderStats, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return progress.ReaderStats{TotalReadingTime: repository.totals[userID]}, nil
}

// accessRules maps book IDs to the error CheckAccess returns.
type accessRules map[int64]error

func (rules accessRules) CheckAccess(_ context.Context, _ string, bookID int64) error {
	return rules[bookID]
}

// clock is a settable time source.
type clock struct{ current time.Time }

func (c *clock) now() time.Time { return c.current }
func (c *clock) advance(duration time.Duration) { c.current = c.current.Add(duration) }

func newFixture() (*progress.Service, *memoryRepository, *clock) {
	repository := newMemoryRepository()
	c := &clock{current: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)}
	access := accessRules{
		404: apperr.NotFound("Book"),
		403: apperr.Forbidden("You cannot read this book"),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return progress.NewService(repository, access, logger, progress.WithClock(c.now)), repository, c
}

func heartbeat(bookID, position int64, device string) progress.HeartbeatRequest {
	return progress.HeartbeatRequest{BookID: bookID, Position: position, DeviceID: device}
}

// # Protocol Scenarios

/*
TestHeartbeat_Scenarios replays first contact, a same-device tick, a foreign
device and a long gap in order against one row.
*/
func TestHeartbeat_Scenarios(t *testing.T) {
	service, repository, c := newFixture()
	ctx := context.Background()

	// A: first contact
	result, err := service.Heartbeat(ctx, "u1", heartbeat(1, 100, "A"))
	require.NoError(t, err)
	assert.Equal(t, progress.HeartbeatResult{Synced: true, Position: 100, ReadingTime: 0}, result)

	// B: same device 10s later
	c.advance(10 * time.Second)
	result, err = service.Heartbeat(ctx, "u1", heartbeat(1, 150, "A"))
	require.NoError(t, err)
	assert.Equal(t, progress.HeartbeatResult{Synced: true, Position: 150, ReadingTime: 10}, result)

	// C: another device reports; nothing changes
	writes := repository.writes
	stored := repository.rows[progressKey{"u1", 1}]
	c.advance(5 * time.Second)
	result, err = service.Heartbeat(ctx, "u1", heartbeat(1, 500, "B"))
	require.NoError(t, err)
	assert.Equal(t, progress.HeartbeatResult{Synced: false, Position: 150, ReadingTime: 10}, result)
	assert.Equal(t, writes, repository.writes)
	assert.Equal(t, stored, repository.rows[progressKey{"u1", 1}])

	// D: owner returns after a 40s gap since its last heartbeat
	c.advance(35 * time.Second)
	result, err = service.Heartbeat(ctx, "u1", heartbeat(1, 600, "A"))
	require.NoError(t, err)
	assert.Equal(t, progress.HeartbeatResult{Synced: true, Position: 600, ReadingTime: 10}, result)

	stats, err := service.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.TotalReadingTime)
}

/*
TestHeartbeat_ElapsedWindow pins the accrual boundaries.
*/
func TestHeartbeat_ElapsedWindow(t *testing.T) {
	tests := []struct {
		name    string
		gap     time.Duration
		accrued int64
	}{
		{"same_instant", 0, 0},
		{"sub_second", 900 * time.Millisecond, 0},
		{"one_second", time.Second, 1},
		{"truncates_fraction", 12*time.Second + 700*time.Millisecond, 12},
		{"just_inside", 29*time.Second + 999*time.Millisecond, 29},
		{"exactly_window", 30 * time.Second, 0},
		{"beyond_window", 45 * time.Second, 0},
		{"clock_went_back", -5 * time.Second, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, c := newFixture()
			ctx := context.Background()

			_, err := service.Heartbeat(ctx, "u1", heartbeat(1, 0, "A"))
			require.NoError(t, err)

			c.advance(tt.gap)
			result, err := service.Heartbeat(ctx, "u1", heartbeat(1, 10, "A"))
			require.NoError(t, err)
			assert.True(t, result.Synced)
			assert.Equal(t, tt.accrued, result.ReadingTime)
		})
	}
}

/*
TestHeartbeat_NotIdempotent shows that replaying a heartbeat accrues again.
*/
func TestHeartbeat_NotIdempotent(t *testing.T) {
	service, _, c := newFixture()
	ctx := context.Background()

	_, err := service.Heartbeat(ctx, "u1", heartbeat(1, 100, "A"))
	require.NoError(t, err)

	c.advance(5 * time.Second)
	first, err := service.Heartbeat(ctx, "u1", heartbeat(1, 120, "A"))
	require.NoError(t, err)

	c.advance(5 * time.Second)
	second, err := service.Heartbeat(ctx, "u1", heartbeat(1, 120, "A"))
	require.NoError(t, err)

	assert.Equal(t, int64(5), first.ReadingTime)
	assert.Equal(t, int64(10), second.ReadingTime)
}

/*
TestHeartbeat_ClaimsUnownedRow covers rows created by upload or a first view.
*/
func TestHeartbeat_ClaimsUnownedRow(t *testing.T) {
	service, repository, c := newFixture()
	ctx := context.Background()

	ensured, err := service.Ensure(ctx, "u1", 1)
	require.NoError(t, err)
	assert.False(t, ensured.Claimed())
	assert.Nil(t, ensured.LastReadAt)

	c.advance(10 * time.Second)
	result, err := service.Heartbeat(ctx, "u1", heartbeat(1, 300, "A"))
	require.NoError(t, err)
	assert.Equal(t, progress.HeartbeatResult{Synced: true, Position: 300, ReadingTime: 0}, result)

	row := repository.rows[progressKey{"u1", 1}]
	require.NotNil(t, row.LastDeviceID)
	assert.Equal(t, "A", *row.LastDeviceID)

	// From now on other devices are turned away
	result, err = service.Heartbeat(ctx, "u1", heartbeat(1, 900, "B"))
	require.NoError(t, err)
	assert.False(t, result.Synced)
	assert.Equal(t, int64(300), result.Position)
}

/*
TestHeartbeat_ReadingTimeNeverDecreases walks a random-looking sequence.
*/
func TestHeartbeat_ReadingTimeNeverDecreases(t *testing.T) {
	service, _, c := newFixture()
	ctx := context.Background()

	gaps := []time.Duration{3, 40, 0, 29, 31, 7, -2, 15}
	devices := []string{"A", "A", "B", "A", "A", "B", "A", "A"}

	var last int64
	for i, gap := range gaps {
		c.advance(gap * time.Second)
		result, err := service.Heartbeat(ctx, "u1", heartbeat(1, int64(i*10), devices[i]))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.ReadingTime, last)
		last = result.ReadingTime
	}
}

/*
TestHeartbeat_SeparateUsersAndBooks keeps rows independent.
*/
func TestHeartbeat_SeparateUsersAndBooks(t *testing.T) {
	service, _, _ := newFixture()
	ctx := context.Background()

	_, err := service.Heartbeat(ctx, "u1", heartbeat(1, 100, "A"))
	require.NoError(t, err)

	// Same device id, other user: fresh row
	result, err := service.Heartbeat(ctx, "u2", heartbeat(1, 50, "B"))
	require.NoError(t, err)
	assert.True(t, result.Synced)

	// Same user, other book: fresh row
	result, err = service.Heartbeat(ctx, "u1", heartbeat(2, 7, "B"))
	require.NoError(t, err)
	assert.True(t, result.Synced)
	assert.Equal(t, int64(7), result.Position)
}

// # Validation & Access

func TestHeartbeat_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		request progress.HeartbeatRequest
		code    string
	}{
		{"negative_position", heartbeat(1, -1, "A"), apperr.CodeValidation},
		{"empty_device", heartbeat(1, 0, ""), apperr.CodeValidation},
		{"zero_book", heartbeat(0, 0, "A"), apperr.CodeValidation},
		{"missing_book", heartbeat(404, 0, "A"), apperr.CodeNotFound},
		{"private_book", heartbeat(403, 0, "A"), apperr.CodeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repository, _ := newFixture()

			_, err := service.Heartbeat(context.Background(), "u1", tt.request)
			assert.True(t, apperr.HasCode(err, tt.code), "got %v", err)
			assert.Zero(t, repository.writes)
		})
	}
}

func TestHeartbeat_StorageFailure(t *testing.T) {
	service, repository, _ := newFixture()
	repository.err = errors.New("connection reset")

	_, err := service.Heartbeat(context.Background(), "u1", heartbeat(1, 0, "A"))
	assert.True(t, apperr.HasCode(err, apperr.CodeInternal))
}

// # Ownership Transfer

/*
TestClaim_TransfersOwnership lets a second device take over after jumping to
the stored position.
*/
func TestClaim_TransfersOwnership(t *testing.T) {
	service, _, c := newFixture()
	ctx := context.Background()

	_, err := service.Heartbeat(ctx, "u1", heartbeat(1, 100, "A"))
	require.NoError(t, err)
	c.advance(10 * time.Second)
	_, err = service.Heartbeat(ctx, "u1", heartbeat(1, 150, "A"))
	require.NoError(t, err)

	c.advance(5 * time.Second)
	claimed, err := service.Claim(ctx, "u1", progress.ClaimRequest{BookID: 1, DeviceID: "B"})
	require.NoError(t, err)
	assert.Equal(t, progress.HeartbeatResult{Synced: true, Position: 150, ReadingTime: 10}, claimed)

	// The new owner accrues from the claim instant
	c.advance(4 * time.Second)
	result, err := service.Heartbeat(ctx, "u1", heartbeat(1, 180, "B"))
	require.NoError(t, err)
	assert.Equal(t, progress.HeartbeatResult{Synced: true, Position: 180, ReadingTime: 14}, result)

	// The old owner is now the foreign device
	result, err = service.Heartbeat(ctx, "u1", heartbeat(1, 999, "A"))
	require.NoError(t, err)
	assert.False(t, result.Synced)
	assert.Equal(t, int64(180), result.Position)
}

func TestClaim_CreatesMissingRow(t *testing.T) {
	service, repository, _ := newFixture()

	result, err := service.Claim(context.Background(), "u1", progress.ClaimRequest{BookID: 1, DeviceID: "A"})
	require.NoError(t, err)
	assert.Equal(t, progress.HeartbeatResult{Synced: true}, result)
	assert.True(t, repository.rows[progressKey{"u1", 1}].OwnedBy("A"))
}

func TestClaim_Rejects(t *testing.T) {
	service, _, _ := newFixture()

	_, err := service.Claim(context.Background(), "u1", progress.ClaimRequest{BookID: 1})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.Claim(context.Background(), "u1", progress.ClaimRequest{BookID: 403, DeviceID: "A"})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
}

// # View Path

func TestEnsure_KeepsExistingRow(t *testing.T) {
	service, repository, _ := newFixture()
	ctx := context.Background()

	_, err := service.Heartbeat(ctx, "u1", heartbeat(1, 420, "A"))
	require.NoError(t, err)
	writes := repository.writes

	row, err := service.Ensure(ctx, "u1", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(420), row.Position)
	assert.True(t, row.OwnedBy("A"))
	assert.Equal(t, writes, repository.writes)
}
