package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/coldmail/internal/api"
	"github.com/Rorical/coldmail/internal/config"
	"github.com/Rorical/coldmail/internal/dispatcher"
	"github.com/Rorical/coldmail/internal/eventbus"
	"github.com/Rorical/coldmail/internal/models"
	"github.com/Rorical/coldmail/internal/update"
	"github.com/Rorical/coldmail/ui/components"
)

// Key panel fields, in tab order
const (
	fieldDeepSeekKey = iota
	fieldDeepSeekBase
	fieldGroqKey
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"DeepSeek API key",
	"DeepSeek base URL",
	"Groq API key",
}

// AppModel is the Bubble Tea model. Widget state lives in appModel and is
// only touched from Update; the bubbles components here are the terminal
// stand-ins for the page's input elements.
type AppModel struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher
	keys       update.KeyMap

	input    textinput.Model
	fields   [fieldCount]textinput.Model
	focus    int
	viewport viewport.Model
	spinner  spinner.Model

	defaultBase string
	shownCount  int
}

func NewAppModel(cfg *config.Config, disp *dispatcher.EventDispatcher) *AppModel {
	m := &AppModel{
		appModel:    update.NewAppModel(),
		dispatcher:  disp,
		keys:        update.DefaultKeyMap(),
		viewport:    viewport.New(0, 0),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		defaultBase: cfg.GetDeepSeekAPIBase(),
	}

	m.input = textinput.New()
	m.input.Placeholder = "Type your answer and press Enter"
	m.input.Prompt = "> "
	m.input.Focus()

	for i := range m.fields {
		ti := textinput.New()
		ti.Prompt = ""
		if i != fieldDeepSeekBase {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '*'
		}
		m.fields[i] = ti
	}
	m.fields[fieldDeepSeekBase].Placeholder = "https://api.deepseek.com/v1 (optional)"
	m.resetFields()

	return m
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		update.StartupCmd,
		m.dispatcher.ListenForCoreEvents(),
		m.spinner.Tick,
		textinput.Blink,
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	eventBus := m.dispatcher.GetEventBus()
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg, eventBus))
	case update.CoreEventMsg:
		// Handle core events and continue listening
		cmds = append(cmds,
			update.HandleCoreEvent(&m.appModel, msg),
			m.dispatcher.ListenForCoreEvents(),
		)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	case update.ReloadMsg:
		m.resetInputs()
		cmds = append(cmds, update.HandleUpdateWithEventBus(&m.appModel, msg, eventBus))
	case tea.WindowSizeMsg:
		update.HandleWindowSizeMsg(&m.appModel, msg)
		m.input.Width = max(msg.Width-10, 10)
		for i := range m.fields {
			m.fields[i].Width = max(msg.Width-30, 10)
		}
	default:
		cmds = append(cmds, update.HandleUpdateWithEventBus(&m.appModel, msg, eventBus))
		cmds = append(cmds, m.updateFocused(msg))
	}

	m.refresh()
	return m, tea.Batch(cmds...)
}

func (m *AppModel) handleKey(msg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		return tea.Quit
	}
	if m.appModel.KeyPanel.Open {
		return m.handlePanelKey(msg, eb)
	}

	switch {
	case key.Matches(msg, m.keys.Send):
		if update.HandleUserInput(&m.appModel, m.input.Value(), eb) {
			m.input.Reset()
		}
		return nil
	case key.Matches(msg, m.keys.OpenKeys):
		update.OpenKeyPanel(&m.appModel)
		m.input.Blur()
		return m.focusField(m.focus)
	case key.Matches(msg, m.keys.Copy):
		update.RequestCopy(&m.appModel, eb)
		return nil
	case key.Matches(msg, m.keys.Download):
		if m.appModel.EmailVisible {
			update.RequestDownload(&m.appModel, eb)
		}
		return nil
	case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *AppModel) handlePanelKey(msg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Close):
		update.CloseKeyPanel(&m.appModel)
		m.fields[m.focus].Blur()
		return m.input.Focus()
	case key.Matches(msg, m.keys.NextField):
		return m.focusField((m.focus + 1) % fieldCount)
	case key.Matches(msg, m.keys.PrevField):
		return m.focusField((m.focus + fieldCount - 1) % fieldCount)
	case key.Matches(msg, m.keys.Verify):
		update.SubmitVerify(&m.appModel, m.formKeys(), eb)
		return nil
	case key.Matches(msg, m.keys.Save):
		update.SubmitSave(&m.appModel, m.formKeys(), eb)
		return nil
	}

	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return cmd
}

// updateFocused forwards non-key messages such as cursor blinks.
func (m *AppModel) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.appModel.KeyPanel.Open {
		m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return cmd
}

func (m *AppModel) focusField(i int) tea.Cmd {
	m.fields[m.focus].Blur()
	m.focus = i
	return m.fields[m.focus].Focus()
}

func (m *AppModel) formKeys() api.Keys {
	return api.Keys{
		DeepSeekAPIKey:  strings.TrimSpace(m.fields[fieldDeepSeekKey].Value()),
		DeepSeekAPIBase: strings.TrimSpace(m.fields[fieldDeepSeekBase].Value()),
		GroqAPIKey:      strings.TrimSpace(m.fields[fieldGroqKey].Value()),
	}
}

func (m *AppModel) resetFields() {
	for i := range m.fields {
		m.fields[i].Reset()
		m.fields[i].Blur()
	}
	m.fields[fieldDeepSeekBase].SetValue(m.defaultBase)
	m.focus = fieldDeepSeekKey
}

func (m *AppModel) resetInputs() {
	m.resetFields()
	m.input.Reset()
	m.input.Focus()
	m.shownCount = 0
}

// refresh lays the log out above the footer and keeps the newest entry,
// or a freshly shown email, in view.
func (m *AppModel) refresh() {
	width, height := m.appModel.Width, m.appModel.Height
	if width == 0 {
		return
	}

	m.viewport.Width = width
	m.viewport.Height = max(height-lipgloss.Height(m.renderFooter()), 3)

	content := components.RenderMessages(m.appModel.Messages, m.spinner.View(), width)
	if m.appModel.EmailVisible {
		content += components.RenderEmail(m.appModel.Email, width)
	}
	m.viewport.SetContent(content)

	if len(m.appModel.Messages) != m.shownCount || m.appModel.ScrollToEmail {
		m.viewport.GotoBottom()
		m.shownCount = len(m.appModel.Messages)
		m.appModel.ScrollToEmail = false
	}
}

func (m *AppModel) renderFooter() string {
	width := m.appModel.Width
	var b strings.Builder

	if m.appModel.KeyPanel.Open {
		fields := make([]components.Field, fieldCount)
		for i := range m.fields {
			fields[i] = components.Field{
				Label:   fieldLabels[i],
				View:    m.fields[i].View(),
				Focused: i == m.focus,
			}
		}
		b.WriteString(components.RenderKeyPanel(m.appModel.KeyPanel, fields, m.spinner.View(), width))
	} else {
		b.WriteString(components.RenderInput(m.input.View(), width))
	}
	b.WriteString("\n")
	b.WriteString(components.RenderHelp(m.appModel.CopyLabel, m.appModel.EmailVisible))
	b.WriteString("\n")

	status := m.appModel.Status
	if m.appModel.Reloading {
		status = "Reloading session..."
	}
	b.WriteString(components.RenderStatus(m.appModel.APIStatus, status, width))

	return b.String()
}

func (m *AppModel) View() string {
	if m.appModel.Width == 0 {
		return "Starting..."
	}
	return m.viewport.View() + "\n" + m.renderFooter()
}
