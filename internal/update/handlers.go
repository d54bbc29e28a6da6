package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/coldmail/internal/api"
	"github.com/Rorical/coldmail/internal/eventbus"
	"github.com/Rorical/coldmail/internal/models"
)

const (
	Greeting = "Hi there! I'm your AI Cold Email Generator. I'll help you create a personalized cold outreach email. Let me ask you a few questions to get started."

	msgAllAPIsDown   = "⚠️ API Connection Warning: All APIs failed to connect. The application will use a basic template generator."
	msgProbeFailed   = "⚠️ Warning: Could not check API status. The application will use a basic template if the APIs are unavailable."
	msgRequestFailed = "Sorry, there was an error processing your request. Please try again."
)

// Startup begins a session. The health probe and the scripted greeting are
// independent; the session-start request follows the greeting directly.
func Startup(appModel *models.AppModel, eb *eventbus.EventBus) {
	send(appModel, eb, eventbus.CheckStatusEvent{Session: appModel.Session})
	appendBot(appModel, Greeting)
	send(appModel, eb, eventbus.SendMessageEvent{Message: "", Session: appModel.Session})
}

// Reload drops all session state and runs the startup sequence again under
// a new session generation, so completions of the old session are ignored.
func Reload(appModel *models.AppModel, eb *eventbus.EventBus) {
	prev := *appModel
	*appModel = NewAppModel()
	appModel.Width, appModel.Height = prev.Width, prev.Height
	appModel.Session = prev.Session + 1
	appModel.CopySeq = prev.CopySeq
	Startup(appModel, eb)
}

// HandleUserInput appends the user's message and forwards it to the server.
// It reports whether anything was sent; blank input is ignored.
func HandleUserInput(appModel *models.AppModel, input string, eb *eventbus.EventBus) bool {
	message := strings.TrimSpace(input)
	if message == "" {
		return false
	}

	appModel.Messages = append(appModel.Messages, models.Message{Content: message, Type: models.User})
	showTyping(appModel)
	if !send(appModel, eb, eventbus.SendMessageEvent{Message: message, Session: appModel.Session}) {
		hideTyping(appModel)
	}
	return true
}

// HandleCoreEvent applies a request completion to the widget state.
// Completions that belong to an earlier session are dropped.
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StatusCheckedEvent:
		if event.Session == appModel.Session {
			applyStatusCheck(appModel, event)
		}
	case eventbus.ChatReplyEvent:
		if event.Session == appModel.Session {
			applyChatReply(appModel, event)
		}
	case eventbus.VerifyResultEvent:
		applyVerifyResult(appModel, event)
	case eventbus.SaveResultEvent:
		return applySaveResult(appModel, event)
	case eventbus.CopyResultEvent:
		if event.Err == nil && event.Session == appModel.Session {
			appModel.CopySeq++
			appModel.CopyLabel = CopiedLabel
			return copyRestoreCmd(appModel.CopySeq)
		}
	case eventbus.DownloadResultEvent:
		if event.Err == nil && event.Session == appModel.Session {
			appModel.Status = "Saved " + event.Path
		}
	}
	return nil
}

func applyStatusCheck(appModel *models.AppModel, event eventbus.StatusCheckedEvent) {
	if event.Err != nil {
		appendBot(appModel, msgProbeFailed)
		return
	}

	appModel.APIStatus = event.Result.APIs
	if event.Result.Degraded() {
		appendBot(appModel, msgAllAPIsDown)
		return
	}
	if working := event.Result.APIs.Usable(); len(working) > 0 {
		appendBot(appModel, ConnectedMessage(working))
	}
}

// ConnectedMessage summarises which providers answered the probe.
func ConnectedMessage(working []string) string {
	suffix := ""
	if len(working) > 1 {
		suffix = "s"
	}
	return fmt.Sprintf("✅ Connected to %s API%s.", strings.Join(working, " and "), suffix)
}

func applyChatReply(appModel *models.AppModel, event eventbus.ChatReplyEvent) {
	hideTyping(appModel)

	if event.Err != nil {
		appendBot(appModel, msgRequestFailed)
		return
	}

	appendBot(appModel, event.Reply.Message)
	if event.Reply.HasEmail() {
		appModel.Email = api.CleanEmail(event.Reply.Email)
		appModel.EmailVisible = true
		appModel.ScrollToEmail = true
	}
}

// RequestCopy asks core to copy the email shown in the panel.
func RequestCopy(appModel *models.AppModel, eb *eventbus.EventBus) {
	if !appModel.EmailVisible {
		return
	}
	send(appModel, eb, eventbus.CopyEmailEvent{Text: appModel.Email, Session: appModel.Session})
}

// RequestDownload asks core to fetch the email and write it to disk.
func RequestDownload(appModel *models.AppModel, eb *eventbus.EventBus) {
	send(appModel, eb, eventbus.DownloadEmailEvent{Session: appModel.Session})
}

func appendBot(appModel *models.AppModel, content string) {
	appModel.Messages = append(appModel.Messages, models.Message{Content: content, Type: models.Bot})
}

func showTyping(appModel *models.AppModel) {
	appModel.Messages = append(appModel.Messages, models.Message{Type: models.Typing})
}

// hideTyping removes every typing indicator from the log
func hideTyping(appModel *models.AppModel) {
	kept := appModel.Messages[:0]
	for _, msg := range appModel.Messages {
		if msg.Type != models.Typing {
			kept = append(kept, msg)
		}
	}
	appModel.Messages = kept
}

func send(appModel *models.AppModel, eb *eventbus.EventBus, event eventbus.UIEvent) bool {
	if err := eb.SendToCore(event); err != nil {
		appModel.Status = "Error sending request: " + err.Error()
		return false
	}
	return true
}
