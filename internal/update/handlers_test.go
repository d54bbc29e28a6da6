package update

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/coldmail/internal/api"
	"github.com/Rorical/coldmail/internal/eventbus"
	"github.com/Rorical/coldmail/internal/models"
)

func drain(eb *eventbus.EventBus) []eventbus.UIEvent {
	var events []eventbus.UIEvent
	for {
		select {
		case ev := <-eb.UIToCore():
			events = append(events, ev)
		default:
			return events
		}
	}
}

func countType(messages []models.Message, typ models.MessageType) int {
	n := 0
	for _, m := range messages {
		if m.Type == typ {
			n++
		}
	}
	return n
}

func TestHandleUserInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantSent bool
	}{
		{"plain", "SaaS founders", true},
		{"padded", "   CTOs at fintechs \t", true},
		{"empty", "", false},
		{"whitespace only", " \t\n ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eb := eventbus.NewEventBus()
			defer eb.Close()
			m := NewAppModel()

			sent := HandleUserInput(&m, tt.input, eb)
			events := drain(eb)

			assert.Equal(t, tt.wantSent, sent)
			if !tt.wantSent {
				assert.Empty(t, m.Messages)
				assert.Empty(t, events)
				return
			}
			require.Len(t, events, 1)
			assert.Equal(t, eventbus.SendMessageEvent{Message: m.Messages[0].Content}, events[0])
			assert.Equal(t, 1, countType(m.Messages, models.User))
			assert.Equal(t, 1, countType(m.Messages, models.Typing))
		})
	}
}

func TestStartupSendsProbeAndSessionStart(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	m := NewAppModel()

	Startup(&m, eb)

	assert.Equal(t, []eventbus.UIEvent{
		eventbus.CheckStatusEvent{},
		eventbus.SendMessageEvent{Message: ""},
	}, drain(eb))
	require.Len(t, m.Messages, 1)
	assert.Equal(t, Greeting, m.Messages[0].Content)
}

func TestStartupMessagesIndependentOfCompletionOrder(t *testing.T) {
	probe := CoreEventMsg{Event: eventbus.StatusCheckedEvent{Result: api.CheckResult{
		Status: api.StatusSuccess,
		APIs:   api.APIStatus{Groq: api.ProviderStatus{Status: api.StatusSuccess}},
	}}}
	reply := CoreEventMsg{Event: eventbus.ChatReplyEvent{Reply: api.ChatReply{Message: "Who is your target audience?"}}}

	orders := [][]CoreEventMsg{{probe, reply}, {reply, probe}}
	for _, order := range orders {
		eb := eventbus.NewEventBus()
		m := NewAppModel()
		Startup(&m, eb)
		for _, msg := range order {
			HandleCoreEvent(&m, msg)
		}
		eb.Close()

		var contents []string
		for _, msg := range m.Messages {
			contents = append(contents, msg.Content)
		}
		assert.Contains(t, contents, Greeting)
		assert.Contains(t, contents, "✅ Connected to Groq API.")
		assert.Contains(t, contents, "Who is your target audience?")
	}
}

func TestStatusCheckMessages(t *testing.T) {
	ok := api.ProviderStatus{Status: api.StatusSuccess}
	bad := api.ProviderStatus{Status: api.StatusError, Message: "Not configured"}

	tests := []struct {
		name  string
		event eventbus.StatusCheckedEvent
		want  []string
	}{
		{
			name:  "both connected",
			event: eventbus.StatusCheckedEvent{Result: api.CheckResult{Status: "success", APIs: api.APIStatus{DeepSeek: ok, Groq: ok}}},
			want:  []string{"✅ Connected to DeepSeek and Groq APIs."},
		},
		{
			name:  "degraded",
			event: eventbus.StatusCheckedEvent{Result: api.CheckResult{Status: "error", APIs: api.APIStatus{DeepSeek: bad, Groq: bad}}},
			want:  []string{msgAllAPIsDown},
		},
		{
			name:  "probe failed",
			event: eventbus.StatusCheckedEvent{Err: errors.New("connection refused")},
			want:  []string{msgProbeFailed},
		},
		{
			name:  "healthy but nothing usable",
			event: eventbus.StatusCheckedEvent{Result: api.CheckResult{Status: "success"}},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewAppModel()
			HandleCoreEvent(&m, CoreEventMsg{Event: tt.event})

			var got []string
			for _, msg := range m.Messages {
				got = append(got, msg.Content)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusCheckReplacesStatusWholesale(t *testing.T) {
	m := NewAppModel()
	first := api.APIStatus{DeepSeek: api.ProviderStatus{Status: api.StatusSuccess}}
	second := api.APIStatus{Groq: api.ProviderStatus{Status: api.StatusError, Message: "bad key"}}

	HandleCoreEvent(&m, CoreEventMsg{Event: eventbus.StatusCheckedEvent{Result: api.CheckResult{Status: "success", APIs: first}}})
	HandleCoreEvent(&m, CoreEventMsg{Event: eventbus.StatusCheckedEvent{Result: api.CheckResult{Status: "error", APIs: second}}})

	assert.Equal(t, second, m.APIStatus)
	assert.Equal(t, api.StatusUnknown, m.APIStatus.DeepSeek.State())
}

func TestChatReplyWithEmail(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	m := NewAppModel()
	HandleUserInput(&m, "John at Acme", eb)

	HandleCoreEvent(&m, CoreEventMsg{Event: eventbus.ChatReplyEvent{
		Reply: api.ChatReply{Message: "Got it.", Email: "Hi John, ..."},
	}})

	assert.Equal(t, 0, countType(m.Messages, models.Typing))
	assert.Equal(t, 1, countType(m.Messages, models.Bot))
	assert.Equal(t, "Got it.", m.Messages[len(m.Messages)-1].Content)
	assert.True(t, m.EmailVisible)
	assert.True(t, m.ScrollToEmail)
	assert.Equal(t, "Hi John, ...", m.Email)
}

func TestChatReplyCleansFallbackEmail(t *testing.T) {
	m := NewAppModel()
	HandleCoreEvent(&m, CoreEventMsg{Event: eventbus.ChatReplyEvent{Reply: api.ChatReply{
		Message: "Here is your email",
		Email:   "⚠️ Error: provider down. Here's a basic email template instead:\n\nSubject: Hello\n",
	}}})

	assert.Equal(t, "Subject: Hello", m.Email)
}

func TestChatReplyWithoutEmailKeepsPanel(t *testing.T) {
	for _, visible := range []bool{false, true} {
		m := NewAppModel()
		m.EmailVisible = visible
		m.Email = "previous"

		HandleCoreEvent(&m, CoreEventMsg{Event: eventbus.ChatReplyEvent{Reply: api.ChatReply{Message: "Next question"}}})

		assert.Equal(t, visible, m.EmailVisible)
		assert.Equal(t, "previous", m.Email)
		assert.False(t, m.ScrollToEmail)
	}
}

func TestChatReplyTransportFailure(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	m := NewAppModel()
	HandleUserInput(&m, "hello", eb)

	HandleCoreEvent(&m, CoreEventMsg{Event: eventbus.ChatReplyEvent{Err: errors.New("EOF")}})

	assert.Equal(t, 0, countType(m.Messages, models.Typing))
	assert.Equal(t, msgRequestFailed, m.Messages[len(m.Messages)-1].Content)
	assert.False(t, m.EmailVisible)
}

func TestCopyLabelRestores(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	m := NewAppModel()

	RequestCopy(&m, eb)
	assert.Empty(t, drain(eb), "nothing to copy before an email arrives")

	m.Email, m.EmailVisible = "Hi John", true
	RequestCopy(&m, eb)
	assert.Equal(t, []eventbus.UIEvent{eventbus.CopyEmailEvent{Text: "Hi John"}}, drain(eb))

	cmd := HandleCoreEvent(&m, CoreEventMsg{Event: eventbus.CopyResultEvent{}})
	require.NotNil(t, cmd)
	assert.Equal(t, CopiedLabel, m.CopyLabel)

	HandleUpdateWithEventBus(&m, CopyRestoreMsg{Seq: m.CopySeq}, eb)
	assert.Equal(t, CopyLabel, m.CopyLabel)
}

func TestOverlappingCopiesKeepNewestFeedback(t *testing.T) {
	m := NewAppModel()

	HandleCoreEvent(&m, CoreEventMsg{Event: eventbus.CopyResultEvent{}})
	first := m.CopySeq
	HandleCoreEvent(&m, CoreEventMsg{Event: eventbus.CopyResultEvent{}})
	second := m.CopySeq
	require.NotEqual(t, first, second)

	// The first copy's timer fires while the second copy's feedback runs.
	HandleUpdateWithEventBus(&m, CopyRestoreMsg{Seq: first}, nil)
	assert.Equal(t, CopiedLabel, m.CopyLabel)

	HandleUpdateWithEventBus(&m, CopyRestoreMsg{Seq: second}, nil)
	assert.Equal(t, CopyLabel, m.CopyLabel)
}

func TestCopyFailureLeavesLabel(t *testing.T) {
	m := NewAppModel()
	cmd := HandleCoreEvent(&m, CoreEventMsg{Event: eventbus.CopyResultEvent{Err: errors.New("no clipboard")}})
	assert.Nil(t, cmd)
	assert.Equal(t, CopyLabel, m.CopyLabel)

	// A restore landing after a failed copy still leaves the original label.
	m.CopyLabel = CopiedLabel
	HandleUpdateWithEventBus(&m, CopyRestoreMsg{}, nil)
	assert.Equal(t, CopyLabel, m.CopyLabel)
}

func TestDownloadResult(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	m := NewAppModel()

	RequestDownload(&m, eb)
	assert.Equal(t, []eventbus.UIEvent{eventbus.DownloadEmailEvent{}}, drain(eb))

	HandleCoreEvent(&m, CoreEventMsg{Event: eventbus.DownloadResultEvent{Err: errors.New("404")}})
	assert.Equal(t, "Ready", m.Status)

	HandleCoreEvent(&m, CoreEventMsg{Event: eventbus.DownloadResultEvent{Path: "out/cold_email.txt"}})
	assert.Equal(t, "Saved out/cold_email.txt", m.Status)
}

func TestReloadResetsSession(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	m := NewAppModel()
	m.Width, m.Height = 100, 40
	m.Email, m.EmailVisible = "Hi", true
	m.Messages = append(m.Messages, models.Message{Content: "old", Type: models.User})
	m.APIStatus = api.APIStatus{Groq: api.ProviderStatus{Status: api.StatusSuccess}}
	m.KeyPanel.Open = true

	HandleUpdateWithEventBus(&m, ReloadMsg{}, eb)

	assert.Equal(t, 100, m.Width)
	assert.Equal(t, 40, m.Height)
	assert.False(t, m.EmailVisible)
	assert.Empty(t, m.Email)
	assert.False(t, m.KeyPanel.Open)
	assert.Equal(t, api.APIStatus{}, m.APIStatus)
	require.Len(t, m.Messages, 1)
	assert.Equal(t, Greeting, m.Messages[0].Content)
	assert.Len(t, drain(eb), 2)
}

func TestReloadDropsLateCompletions(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	m := NewAppModel()
	HandleUserInput(&m, "John", eb)
	drain(eb)

	HandleUpdateWithEventBus(&m, ReloadMsg{}, eb)
	assert.Equal(t, 1, m.Session)
	assert.Equal(t, []eventbus.UIEvent{
		eventbus.CheckStatusEvent{Session: 1},
		eventbus.SendMessageEvent{Message: "", Session: 1},
	}, drain(eb))

	// Replies to the old conversation arrive after the reset.
	HandleCoreEvent(&m, CoreEventMsg{Event: eventbus.ChatReplyEvent{Request: "John", Reply: api.ChatReply{Message: "Old question", Email: "Old email"}}})
	HandleCoreEvent(&m, CoreEventMsg{Event: eventbus.StatusCheckedEvent{Err: errors.New("timeout")}})
	HandleCoreEvent(&m, CoreEventMsg{Event: eventbus.DownloadResultEvent{Path: "old.txt"}})
	HandleCoreEvent(&m, CoreEventMsg{Event: eventbus.CopyResultEvent{}})

	require.Len(t, m.Messages, 1)
	assert.Equal(t, Greeting, m.Messages[0].Content)
	assert.False(t, m.EmailVisible)
	assert.Equal(t, "Ready", m.Status)
	assert.Equal(t, CopyLabel, m.CopyLabel)

	HandleCoreEvent(&m, CoreEventMsg{Event: eventbus.ChatReplyEvent{Reply: api.ChatReply{Message: "What is your name?"}, Session: 1}})
	require.Len(t, m.Messages, 2)
	assert.Equal(t, "What is your name?", m.Messages[1].Content)
}

func TestSendFailureSurfacesInStatus(t *testing.T) {
	eb := eventbus.NewEventBus()
	eb.Close()
	m := NewAppModel()

	HandleUserInput(&m, "hello", eb)

	assert.Equal(t, 0, countType(m.Messages, models.Typing))
	assert.Contains(t, m.Status, "Error sending request")
}
