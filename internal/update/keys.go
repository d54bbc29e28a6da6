package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/coldmail/internal/api"
	"github.com/Rorical/coldmail/internal/eventbus"
	"github.com/Rorical/coldmail/internal/models"
)

const (
	msgNeedKey         = "Please enter at least one API key to verify."
	msgVerifying       = "Verifying API keys..."
	msgSaving          = "Saving API keys..."
	msgVerifyConnError = "Error connecting to the server. Please try again."
	msgSaveConnError   = "❌ Error connecting to the server. Please try again."
	msgSaved           = "✅ API keys saved successfully! The application will now use these keys."
	msgOverallOK       = "✅ At least one API is working. You can use the application."
	msgOverallFail     = "⚠️ All APIs failed to connect. The application will use a basic template generator."
)

// OpenKeyPanel shows the key panel with an empty result area.
func OpenKeyPanel(appModel *models.AppModel) {
	appModel.KeyPanel.Open = true
	appModel.KeyPanel.Result = nil
}

func CloseKeyPanel(appModel *models.AppModel) {
	appModel.KeyPanel.Open = false
}

// SubmitVerify validates the form and dispatches a verification.
// Blank keys on both providers never reach the network.
func SubmitVerify(appModel *models.AppModel, keys api.Keys, eb *eventbus.EventBus) bool {
	panel := &appModel.KeyPanel
	if !panel.VerifyEnabled() {
		return false
	}
	if keys.Empty() {
		panel.Result = []models.ResultLine{{Kind: models.ResultWarning, Text: msgNeedKey}}
		return false
	}

	prev := *panel
	panel.Phase = models.PhaseVerifying
	panel.Loading = msgVerifying
	panel.Result = nil
	if !send(appModel, eb, eventbus.VerifyKeysEvent{Keys: keys}) {
		*panel = prev
		return false
	}
	return true
}

// SubmitSave dispatches a key save. Only reachable after a verification
// that found a usable provider.
func SubmitSave(appModel *models.AppModel, keys api.Keys, eb *eventbus.EventBus) bool {
	panel := &appModel.KeyPanel
	if !panel.SaveEnabled() {
		return false
	}

	prev := *panel
	panel.Phase = models.PhaseSaving
	panel.Loading = msgSaving
	panel.Result = nil
	if !send(appModel, eb, eventbus.SaveKeysEvent{Keys: keys}) {
		*panel = prev
		return false
	}
	return true
}

func applyVerifyResult(appModel *models.AppModel, event eventbus.VerifyResultEvent) {
	panel := &appModel.KeyPanel
	panel.Loading = ""

	if event.Err != nil {
		panel.Phase = models.PhaseVerifiedFail
		panel.LastVerifyOK = false
		panel.Result = []models.ResultLine{{Kind: models.ResultFailure, Text: msgVerifyConnError}}
		return
	}

	status := event.Result.APIStatus()
	appModel.APIStatus = status

	var lines []models.ResultLine
	if event.Keys.DeepSeekAPIKey != "" {
		lines = append(lines, providerLine(api.ProviderDeepSeek, status.DeepSeek))
	}
	if event.Keys.GroqAPIKey != "" {
		lines = append(lines, providerLine(api.ProviderGroq, status.Groq))
	}
	if event.Result.Overall.OK() {
		lines = append(lines, models.ResultLine{Kind: models.ResultSuccess, Text: msgOverallOK})
	} else {
		lines = append(lines, models.ResultLine{Kind: models.ResultWarning, Text: msgOverallFail})
	}
	panel.Result = lines

	panel.LastVerifyOK = status.AnyUsable()
	if panel.LastVerifyOK {
		panel.Phase = models.PhaseVerifiedOK
	} else {
		panel.Phase = models.PhaseVerifiedFail
	}
}

func providerLine(provider string, status api.ProviderStatus) models.ResultLine {
	name := api.ProviderName(provider)
	if status.OK() {
		return models.ResultLine{Kind: models.ResultSuccess, Text: "✅ " + name + " API: Connection successful"}
	}
	return models.ResultLine{Kind: models.ResultFailure, Text: "❌ " + name + " API: " + status.Message}
}

func applySaveResult(appModel *models.AppModel, event eventbus.SaveResultEvent) tea.Cmd {
	panel := &appModel.KeyPanel
	panel.Loading = ""

	switch {
	case event.Err != nil:
		panel.Phase = models.PhaseIdle
		panel.Result = []models.ResultLine{{Kind: models.ResultFailure, Text: msgSaveConnError}}
		return nil
	case !event.Result.OK():
		panel.Phase = models.PhaseIdle
		panel.Result = []models.ResultLine{{Kind: models.ResultFailure, Text: "❌ Failed to save API keys: " + event.Result.Message}}
		return nil
	}

	panel.Phase = models.PhaseSaved
	panel.Result = []models.ResultLine{{Kind: models.ResultSuccess, Text: msgSaved}}
	appModel.APIStatus = event.Result.Verification.Status
	appModel.Reloading = true
	return reloadCmd()
}
