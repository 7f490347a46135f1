// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package settings

import (
	"context"
	"log/slog"

	"github.com/taibuivan/yuedu/internal/platform/dberr"
	"github.com/taibuivan/yuedu/internal/platform/validate"
)

// Accepted ranges for each preference.
const (
	minFontSize, maxFontSize                 = 10, 48
	minLineHeight, maxLineHeight             = 1.0, 3.0
	minLetterSpacing, maxLetterSpacing       = 0.0, 0.5
	minParagraphSpacing, maxParagraphSpacing = 0.0, 3.0
	minReadingWidth, maxReadingWidth         = 320, 2000
	minTextIndent, maxTextIndent             = 0.0, 4.0
)

// Service reads and updates reading preferences.
type Service struct {
	repository SettingsRepository
	logger     *slog.Logger
}

// NewService constructs a new settings [Service].
func NewService(repository SettingsRepository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

/*
Get returns the caller's preferences, storing the defaults on first use.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - ReadingSettings
  - error: Storage failures
*/
func (service *Service) Get(context context.Context, userID string) (ReadingSettings, error) {
	settings, found, err := service.repository.Find(context, userID)
	if err != nil {
		return ReadingSettings{}, dberr.Wrap(err, "Reading settings")
	}
	if found {
		return settings, nil
	}

	settings = Defaults()
	if err := service.repository.Upsert(context, userID, settings); err != nil {
		return ReadingSettings{}, dberr.Wrap(err, "Reading settings")
	}
	return settings, nil
}

/*
Update applies a partial change.

Description: Only provided fields are validated and changed. An empty patch
returns the current preferences without writing.

Parameters:
  - context: context.Context
  - userID: string
  - patch: Patch

Returns:
  - ReadingSettings: The preferences after the change
  - error: VALIDATION_ERROR or storage failures
*/
func (service *Service) Update(context context.Context, userID string, patch Patch) (ReadingSettings, error) {
	if err := validatePatch(patch); err != nil {
		return ReadingSettings{}, err
	}

	current, err := service.Get(context, userID)
	if err != nil {
		return ReadingSettings{}, err
	}
	if patch.Empty() {
		return current, nil
	}

	updated := patch.Apply(current)
	if err := service.repository.Upsert(context, userID, updated); err != nil {
		return ReadingSettings{}, dberr.Wrap(err, "Reading settings")
	}

	service.logger.Info("reading_settings_updated", slog.String("user_id", userID))
	return updated, nil
}

// validatePatch checks only the fields present in the patch.
func validatePatch(patch Patch) error {
	validator := &validate.Validator{}

	if patch.FontSize != nil {
		validator.Range("font_size", *patch.FontSize, minFontSize, maxFontSize)
	}
	if patch.BackgroundColor != nil {
		validator.HexColor("background_color", *patch.BackgroundColor)
	}
	if patch.TextColor != nil {
		validator.HexColor("text_color", *patch.TextColor)
	}
	if patch.LineHeight != nil {
		validator.FloatRange("line_height", *patch.LineHeight, minLineHeight, maxLineHeight)
	}
	if patch.LetterSpacing != nil {
		validator.FloatRange("letter_spacing", *patch.LetterSpacing, minLetterSpacing, maxLetterSpacing)
	}
	if patch.ParagraphSpacing != nil {
		validator.FloatRange("paragraph_spacing", *patch.ParagraphSpacing, minParagraphSpacing, maxParagraphSpacing)
	}
	if patch.ReadingWidth != nil {
		validator.Range("reading_width", *patch.ReadingWidth, minReadingWidth, maxReadingWidth)
	}
	if patch.TextIndent != nil {
		validator.FloatRange("text_indent", *patch.TextIndent, minTextIndent, maxTextIndent)
	}

	return validator.Err()
}
