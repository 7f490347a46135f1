// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package settings

import "context"

// SettingsRepository persists one preference row per user.
type SettingsRepository interface {

	/*
		Find returns the stored preferences.

		Returns:
		  - ReadingSettings
		  - bool: Whether a row exists
		  - error: Storage failures
	*/
	Find(context context.Context, userID string) (ReadingSettings, bool, error)

	// Upsert writes the complete preference set.
	Upsert(context context.Context, userID string, settings ReadingSettings) error
}
