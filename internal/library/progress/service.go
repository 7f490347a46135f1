// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package progress

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/yuedu/internal/platform/constants"
	"github.com/taibuivan/yuedu/internal/platform/dberr"
	"github.com/taibuivan/yuedu/internal/platform/validate"
)

const (
	FieldBookID   = "book_id"
	FieldPosition = "position"
	FieldDeviceID = "device_id"

	// maxDeviceIDLength bounds the opaque identifier a client sends.
	maxDeviceIDLength = 128
)

// # Service Layer

// Service runs the heartbeat protocol.
//
// It keeps no state between calls: every heartbeat is a read followed by a
// write against the repository. Two heartbeats racing for the same row may
// both accrue time; no lock is taken.
type Service struct {
	repository ProgressRepository
	books      BookAccess
	logger     *slog.Logger
	now        func() time.Time
}

// Option customises a [Service].
type Option func(*Service)

// WithClock replaces the wall clock used for last_read_at and elapsed time.
func WithClock(now func() time.Time) Option {
	return func(service *Service) {
		service.now = now
	}
}

// NewService constructs a new progress [Service].
func NewService(repository ProgressRepository, books BookAccess, logger *slog.Logger, options ...Option) *Service {
	service := &Service{
		repository: repository,
		books:      books,
		logger:     logger,
		now:        time.Now,
	}
	for _, option := range options {
		option(service)
	}
	return service
}

// # Heartbeat Protocol

/*
Heartbeat records the position reported by one device.

Description:
  - No row yet: the device becomes the owner at the reported position.
  - Row without an owner (created by an upload or a first view): the device
    claims it at the reported position; no time accrues. An empty device
    never counts as a foreign device.
  - Row owned by another device: nothing is written and the stored values are
    returned with Synced=false.
  - Row owned by this device: the position is overwritten, the gap since the
    last heartbeat is added when it is shorter than the heartbeat window, and
    last_read_at moves to now.

Repeating an identical heartbeat accrues time again.

Parameters:
  - context: context.Context
  - userID: string (Verified caller)
  - request: HeartbeatRequest

Returns:
  - HeartbeatResult
  - error: VALIDATION_ERROR, or NOT_FOUND / FORBIDDEN from [BookAccess]
*/
func (service *Service) Heartbeat(context context.Context, userID string, request HeartbeatRequest) (HeartbeatResult, error) {

	// Business attribute validation
	validator := &validate.Validator{}
	validator.Positive(FieldBookID, request.BookID)
	validator.NonNegative(FieldPosition, request.Position)
	validator.Required(FieldDeviceID, request.DeviceID)
	validator.MaxLen(FieldDeviceID, request.DeviceID, maxDeviceIDLength)
	if err := validator.Err(); err != nil {
		return HeartbeatResult{}, err
	}

	if err := service.books.CheckAccess(context, userID, request.BookID); err != nil {
		return HeartbeatResult{}, err
	}

	current, found, err := service.repository.Find(context, userID, request.BookID)
	if err != nil {
		return HeartbeatResult{}, dberr.Wrap(err, "Reading progress")
	}

	now := service.now()
	deviceID := request.DeviceID

	// 1. First heartbeat for this book: the device takes ownership
	if !found {
		created := ReadingProgress{
			UserID:       userID,
			BookID:       request.BookID,
			Position:     request.Position,
			LastReadAt:   &now,
			LastDeviceID: &deviceID,
		}
		if err := service.repository.Insert(context, created); err != nil {
			return HeartbeatResult{}, dberr.Wrap(err, "Reading progress")
		}

		service.logger.Info("heartbeat_tracking_started",
			slog.String("user_id", userID),
			slog.Int64("book_id", request.BookID),
			slog.String("device_id", deviceID),
		)
		return resultOf(created, true), nil
	}

	// 2. Someone else holds the book
	if current.Claimed() && !current.OwnedBy(deviceID) {
		service.logger.Debug("heartbeat_rejected_foreign_device",
			slog.String("user_id", userID),
			slog.Int64("book_id", request.BookID),
			slog.String("device_id", deviceID),
		)
		return resultOf(current, false), nil
	}

	// 3. Unclaimed rows are taken over without accruing time
	var increment int64
	if current.OwnedBy(deviceID) {
		increment = accruedSeconds(current.LastReadAt, now)
	}

	current.Position = request.Position
	current.ReadingTime += increment
	current.LastReadAt = &now
	current.LastDeviceID = &deviceID

	if err := service.repository.Save(context, current); err != nil {
		return HeartbeatResult{}, dberr.Wrap(err, "Reading progress")
	}

	if increment > 0 {
		if err := service.repository.AddReadingTime(context, userID, increment); err != nil {
			return HeartbeatResult{}, dberr.Wrap(err, "Reader stats")
		}
	}

	service.logger.Debug("heartbeat_synced",
		slog.String("user_id", userID),
		slog.Int64("book_id", request.BookID),
		slog.Int64("position", current.Position),
		slog.Int64("accrued_seconds", increment),
	)

	return resultOf(current, true), nil
}

/*
Claim hands ownership of a book's progress to a device.

Description: The stored position is kept (the device is expected to have
jumped to it after a Synced=false heartbeat). No time accrues; the next
heartbeat from the new owner starts counting from now.

Parameters:
  - context: context.Context
  - userID: string
  - request: ClaimRequest

Returns:
  - HeartbeatResult: Always Synced=true
  - error: VALIDATION_ERROR, NOT_FOUND, FORBIDDEN
*/
func (service *Service) Claim(context context.Context, userID string, request ClaimRequest) (HeartbeatResult, error) {
	validator := &validate.Validator{}
	validator.Positive(FieldBookID, request.BookID)
	validator.Required(FieldDeviceID, request.DeviceID)
	validator.MaxLen(FieldDeviceID, request.DeviceID, maxDeviceIDLength)
	if err := validator.Err(); err != nil {
		return HeartbeatResult{}, err
	}

	if err := service.books.CheckAccess(context, userID, request.BookID); err != nil {
		return HeartbeatResult{}, err
	}

	current, found, err := service.repository.Find(context, userID, request.BookID)
	if err != nil {
		return HeartbeatResult{}, dberr.Wrap(err, "Reading progress")
	}

	now := service.now()
	deviceID := request.DeviceID
	previous := ""
	if current.Claimed() {
		previous = *current.LastDeviceID
	}

	current.UserID = userID
	current.BookID = request.BookID
	current.LastReadAt = &now
	current.LastDeviceID = &deviceID

	if found {
		err = service.repository.Save(context, current)
	} else {
		err = service.repository.Insert(context, current)
	}
	if err != nil {
		return HeartbeatResult{}, dberr.Wrap(err, "Reading progress")
	}

	service.logger.Info("progress_claimed",
		slog.String("user_id", userID),
		slog.Int64("book_id", request.BookID),
		slog.String("device_id", deviceID),
		slog.String("previous_device_id", previous),
	)

	return resultOf(current, true), nil
}

/*
Ensure returns the caller's progress row, creating an unclaimed one at
position 0 when none exists.

The caller is responsible for the access check.

Parameters:
  - context: context.Context
  - userID: string
  - bookID: int64

Returns:
  - ReadingProgress
  - error: Storage failures
*/
func (service *Service) Ensure(context context.Context, userID string, bookID int64) (ReadingProgress, error) {
	current, found, err := service.repository.Find(context, userID, bookID)
	if err != nil {
		return ReadingProgress{}, dberr.Wrap(err, "Reading progress")
	}
	if found {
		return current, nil
	}

	created := ReadingProgress{UserID: userID, BookID: bookID}
	if err := service.repository.Insert(context, created); err != nil {
		return ReadingProgress{}, dberr.Wrap(err, "Reading progress")
	}
	return created, nil
}

// Stats returns the caller's lifetime reading counters.
func (service *Service) Stats(context context.Context, userID string) (ReaderStats, error) {
	stats, err := service.repository.Stats(context, userID)
	if err != nil {
		return ReaderStats{}, dberr.Wrap(err, "Reader stats")
	}
	return stats, nil
}

// accruedSeconds is the whole-second gap between two heartbeats when it falls
// strictly inside (0, HeartbeatWindow), and zero otherwise.
func accruedSeconds(lastReadAt *time.Time, now time.Time) int64 {
	if lastReadAt == nil {
		return 0
	}

	elapsed := int64(now.Sub(*lastReadAt) / time.Second)
	if elapsed > 0 && elapsed < int64(constants.HeartbeatWindow/time.Second) {
		return elapsed
	}
	return 0
}
