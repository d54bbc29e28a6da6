package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/coldmail/internal/eventbus"
	"github.com/Rorical/coldmail/internal/models"
)

const (
	// CopyFeedbackDuration is how long the copy control reads "Copied!"
	CopyFeedbackDuration = 2 * time.Second
	// ReloadDelay separates a successful key save from the session reset
	ReloadDelay = 2 * time.Second

	CopyLabel   = "Copy"
	CopiedLabel = "Copied!"
)

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// StartupMsg kicks off the session: health probe plus greeting
type StartupMsg struct{}

// ReloadMsg resets the session after keys were saved
type ReloadMsg struct{}

// CopyRestoreMsg puts the copy control label back, unless a later copy
// has restarted the feedback
type CopyRestoreMsg struct {
	Seq int
}

func StartupCmd() tea.Msg {
	return StartupMsg{}
}

func copyRestoreCmd(seq int) tea.Cmd {
	return tea.Tick(CopyFeedbackDuration, func(time.Time) tea.Msg {
		return CopyRestoreMsg{Seq: seq}
	})
}

func reloadCmd() tea.Cmd {
	return tea.Tick(ReloadDelay, func(time.Time) tea.Msg {
		return ReloadMsg{}
	})
}

// HandleUpdateWithEventBus routes every non-keyboard message that changes
// widget state. Keyboard routing lives in the app model because it owns the
// text inputs.
func HandleUpdateWithEventBus(appModel *models.AppModel, msg tea.Msg, eb *eventbus.EventBus) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		HandleWindowSizeMsg(appModel, msg)
	case StartupMsg:
		Startup(appModel, eb)
	case ReloadMsg:
		Reload(appModel, eb)
	case CopyRestoreMsg:
		if msg.Seq == appModel.CopySeq {
			appModel.CopyLabel = CopyLabel
		}
	case CoreEventMsg:
		return HandleCoreEvent(appModel, msg)
	}
	return nil
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
}

// NewAppModel returns the state of a fresh session.
func NewAppModel() models.AppModel {
	return models.AppModel{
		Messages:  make([]models.Message, 0),
		Status:    "Ready",
		CopyLabel: CopyLabel,
	}
}
