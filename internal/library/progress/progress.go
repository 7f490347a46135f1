// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package progress reconciles reading positions reported by a user's devices.

Every open reader sends a heartbeat with its current character offset. One
device at a time owns a (user, book) row: its heartbeats move the stored
position and accrue reading time, while heartbeats from any other device are
answered with the stored values so that device can jump to them.

# Time accounting

Only gaps shorter than [constants.HeartbeatWindow] between two heartbeats of
the owning device count as reading time. Longer gaps are treated as the
reader having walked away.
*/
package progress

import "time"

// # Domain Models

// ReadingProgress is one user's state for one book.
type ReadingProgress struct {
	UserID       string     `json:"-"`
	BookID       int64      `json:"book_id"`
	Position     int64      `json:"position"`
	ReadingTime  int64      `json:"reading_time"` // Seconds, never decreases
	LastReadAt   *time.Time `json:"last_read_at"`
	LastDeviceID *string    `json:"-"`
}

// Claimed reports whether a device currently owns the row.
func (p ReadingProgress) Claimed() bool {
	return p.LastDeviceID != nil && *p.LastDeviceID != ""
}

// OwnedBy reports whether deviceID is the owning device.
func (p ReadingProgress) OwnedBy(deviceID string) bool {
	return p.Claimed() && *p.LastDeviceID == deviceID
}

// HeartbeatRequest is the periodic report sent by an open reader.
type HeartbeatRequest struct {
	BookID   int64  `json:"book_id"`
	Position int64  `json:"position"`
	DeviceID string `json:"device_id"`
}

// ClaimRequest asks for ownership of a book's progress for one device.
type ClaimRequest struct {
	BookID   int64  `json:"book_id"`
	DeviceID string `json:"device_id"`
}

// HeartbeatResult tells the device whether it is in control.
//
// When Synced is false the device should move to Position.
type HeartbeatResult struct {
	Synced      bool  `json:"synced"`
	Position    int64 `json:"position"`
	ReadingTime int64 `json:"reading_time"`
}

// ReaderStats holds a user's lifetime counters.
type ReaderStats struct {
	TotalReadingTime int64 `json:"total_reading_time"`
}

// resultOf renders a stored row as a heartbeat answer.
func resultOf(p ReadingProgress, synced bool) HeartbeatResult {
	return HeartbeatResult{Synced: synced, Position: p.Position, ReadingTime: p.ReadingTime}
}
