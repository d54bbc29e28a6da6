package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{
			name:  "plain email untouched",
			email: "Subject: Hello\n\nHi John, ...",
			want:  "Subject: Hello\n\nHi John, ...",
		},
		{
			name:  "error with fallback template",
			email: "⚠️ Error: timeout talking to provider.\n\nHere's a basic email template instead:\n\n  Subject: Intro\n\nDear team,  ",
			want:  "Subject: Intro\n\nDear team,",
		},
		{
			name:  "authentication error with fallback template",
			email: "⚠️ Authentication Error: invalid key. Here's a basic email template instead: Subject: X",
			want:  "Subject: X",
		},
		{
			name:  "error without marker kept verbatim",
			email: "⚠️ Error: nothing to fall back to",
			want:  "⚠️ Error: nothing to fall back to",
		},
		{
			name:  "marker without error prefix kept verbatim",
			email: "Here's a basic email template instead: Subject: X",
			want:  "Here's a basic email template instead: Subject: X",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanEmail(tt.email))
		})
	}
}

func TestProviderState(t *testing.T) {
	assert.Equal(t, StatusSuccess, ProviderStatus{Status: "success"}.State())
	assert.Equal(t, StatusError, ProviderStatus{Status: "error"}.State())
	assert.Equal(t, StatusUnknown, ProviderStatus{Status: "not_tested"}.State())
	assert.Equal(t, StatusUnknown, ProviderStatus{}.State())

	var zero APIStatus
	assert.False(t, zero.AnyUsable())
	assert.Empty(t, zero.Usable())
	assert.Equal(t, StatusUnknown, zero.Provider(ProviderGroq).State())
}
