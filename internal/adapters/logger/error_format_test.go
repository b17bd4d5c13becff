package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pkgr/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
	}{
		{
			name:         "standard error",
			err:          errors.New("simple error"),
			wantMessages: []string{"simple error"},
		},
		{
			name: "zerr wrapped chain",
			err: zerr.Wrap(
				zerr.Wrap(errors.New("root cause"), "middle layer"),
				"outer layer",
			),
			wantMessages: []string{"outer layer", "middle layer", "root cause"},
		},
		{
			name:         "metadata stays on its level",
			err:          zerr.With(zerr.With(zerr.New("base error"), "key1", "value1"), "key2", 42),
			wantMessages: []string{"base error"},
		},
		{
			name:         "nil error",
			err:          nil,
			wantMessages: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntries(tt.err)

			var got []string
			for _, e := range entries {
				got = append(got, e.Message)
			}
			assert.Equal(t, tt.wantMessages, got)
		})
	}
}

func TestCollectErrorEntries_Metadata(t *testing.T) {
	inner := zerr.With(zerr.New("inner"), "inner_key", "inner_val")
	outer := zerr.With(zerr.Wrap(inner, "outer"), "outer_key", "outer_val")

	entries := logger.CollectErrorEntries(outer)

	assert.Len(t, entries, 2)
	assert.Equal(t, "outer_val", entries[0].Metadata["outer_key"])
	assert.Equal(t, "inner_val", entries[1].Metadata["inner_key"])
	assert.NotContains(t, entries[0].Metadata, "inner_key")
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "single entry",
			entries: []logger.ErrorEntry{{Message: "single error"}},
			want:    "Error: single error",
		},
		{
			name:    "three entries",
			entries: []logger.ErrorEntry{{Message: "first"}, {Message: "second"}, {Message: "third"}},
			want:    "Error: first\n\n  Caused by:\n    → second\n    → third",
		},
		{
			name: "metadata on main error sorted",
			entries: []logger.ErrorEntry{{
				Message:  "ambiguous solution",
				Metadata: map[string]any{"path": "/src", "count": 2},
			}},
			want: "Error: ambiguous solution\n       count: 2\n       path: /src",
		},
		{
			name: "metadata on cause",
			entries: []logger.ErrorEntry{
				{Message: "main"},
				{Message: "cause", Metadata: map[string]any{"source": "local"}},
			},
			want: "Error: main\n\n  Caused by:\n    → cause\n      source: local",
		},
		{
			name: "multiline cause",
			entries: []logger.ErrorEntry{
				{Message: "main"},
				{Message: "cause line1\ncause line2"},
			},
			want: "Error: main\n\n  Caused by:\n    → cause line1\n      cause line2",
		},
		{
			name:    "empty",
			entries: []logger.ErrorEntry{},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntries(tt.entries))
		})
	}
}
