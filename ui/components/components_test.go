package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rorical/coldmail/internal/api"
	"github.com/Rorical/coldmail/internal/models"
)

func TestBadgeStates(t *testing.T) {
	tests := []struct {
		name   string
		status api.ProviderStatus
		want   []string
	}{
		{"connected", api.ProviderStatus{Status: "success"}, []string{"DeepSeek: Connected"}},
		{"failed with reason", api.ProviderStatus{Status: "error", Message: "bad key"}, []string{"DeepSeek: Failed", "(bad key)"}},
		{"failed default reason", api.ProviderStatus{Status: "error"}, []string{"Connection failed"}},
		{"unknown", api.ProviderStatus{Status: "unknown"}, []string{"DeepSeek: Not Configured"}},
		{"not tested", api.ProviderStatus{Status: "not_tested"}, []string{"DeepSeek: Not Configured"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Badge(api.ProviderDeepSeek, tt.status)
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
		})
	}
}

func TestRenderStatusAlwaysOffersVerify(t *testing.T) {
	out := RenderStatus(api.APIStatus{}, "Ready", 200)
	assert.Contains(t, out, "Verify API Keys")
	assert.Contains(t, out, "Groq: Not Configured")
}

func TestRenderMessages(t *testing.T) {
	out := RenderMessages([]models.Message{
		{Content: "hello", Type: models.User},
		{Content: "Got it.", Type: models.Bot},
		{Type: models.Typing},
	}, "...", 80)

	assert.Contains(t, out, "You: hello")
	assert.Contains(t, out, "Got it.")
	assert.Contains(t, out, "Typing ...")
}

func TestRenderKeyPanelControls(t *testing.T) {
	panel := models.KeyPanel{
		Open:   true,
		Phase:  models.PhaseVerifiedOK,
		Result: []models.ResultLine{{Kind: models.ResultFailure, Text: "❌ Groq API: bad key"}},

		LastVerifyOK: true,
	}
	out := RenderKeyPanel(panel, []Field{{Label: "DeepSeek API key", View: "****", Focused: true}}, "|", 100)

	assert.Contains(t, out, "DeepSeek API key")
	assert.Contains(t, out, "❌ Groq API: bad key")
	assert.Contains(t, out, "ctrl+s Save Keys")
	assert.False(t, strings.Contains(out, "Verifying"))
}

func TestRenderHelpShowsCopyLabel(t *testing.T) {
	assert.NotContains(t, RenderHelp("Copied!", false), "Copied!")
	assert.Contains(t, RenderHelp("Copied!", true), "ctrl+y Copied!")
}
