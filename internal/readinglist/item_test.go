// Copyright (c) 2026 BoiBritto. All rights reserved.

package readinglist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SillyCatto/boibritto-sub001/internal/platform/apperr"
)

func datePtr(value string) *time.Time {
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}
	return &parsed
}

func TestValidateProgress(t *testing.T) {
	testCases := []struct {
		name        string
		status      Status
		startedAt   *time.Time
		completedAt *time.Time
		wantMessage string // empty means valid
	}{
		{
			name:   "interested needs no dates",
			status: StatusInterested,
		},
		{
			name:      "interested may carry a start date",
			status:    StatusInterested,
			startedAt: datePtr("2026-01-10"),
		},
		{
			name:      "reading with start date",
			status:    StatusReading,
			startedAt: datePtr("2026-01-10"),
		},
		{
			name:        "reading without start date",
			status:      StatusReading,
			wantMessage: "startedAt is required when status is reading or completed",
		},
		{
			name:        "completed with both dates",
			status:      StatusCompleted,
			startedAt:   datePtr("2026-01-10"),
			completedAt: datePtr("2026-02-01"),
		},
		{
			name:        "completed finished same day",
			status:      StatusCompleted,
			startedAt:   datePtr("2026-01-10"),
			completedAt: datePtr("2026-01-10"),
		},
		{
			name:        "completed without start date",
			status:      StatusCompleted,
			completedAt: datePtr("2026-02-01"),
			wantMessage: "startedAt is required when status is reading or completed",
		},
		{
			name:        "completed without completion date",
			status:      StatusCompleted,
			startedAt:   datePtr("2026-01-10"),
			wantMessage: "completedAt is required when status is completed",
		},
		{
			name:        "completion before start",
			status:      StatusCompleted,
			startedAt:   datePtr("2026-02-01"),
			completedAt: datePtr("2026-01-10"),
			wantMessage: "completedAt cannot be earlier than startedAt",
		},
		{
			name:        "inverted dates rejected even for reading",
			status:      StatusReading,
			startedAt:   datePtr("2026-02-01"),
			completedAt: datePtr("2026-01-10"),
			wantMessage: "completedAt cannot be earlier than startedAt",
		},
		{
			name:        "unknown status",
			status:      Status("paused"),
			wantMessage: "Status must be one of: interested, reading, completed",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			err := ValidateProgress(testCase.status, testCase.startedAt, testCase.completedAt)

			if testCase.wantMessage == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "VALIDATION_FAILED", appError.Code)
			assert.Equal(t, testCase.wantMessage, appError.Message)
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, value := range StatusValues() {
		assert.True(t, Status(value).Valid(), value)
	}
	assert.False(t, Status("dropped").Valid())
	assert.False(t, Status("").Valid())
}
