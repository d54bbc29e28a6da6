package app

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/Rorical/coldmail/internal/api"
	"github.com/Rorical/coldmail/internal/config"
	"github.com/Rorical/coldmail/internal/core"
	"github.com/Rorical/coldmail/internal/dispatcher"
	"github.com/Rorical/coldmail/internal/eventbus"
	"github.com/Rorical/coldmail/internal/logging"
)

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	log        zerolog.Logger
	logCloser  io.Closer
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.Service
	model      *AppModel
}

func NewApplication(cfg *config.Config) (*Application, error) {
	logPath, err := config.GetLogPath()
	if err != nil {
		return nil, err
	}
	logger, closer, err := logging.Open(logPath, cfg.GetLogLevel())
	if err != nil {
		return nil, err
	}

	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(e eventbus.EventBusError) {
		logger.Warn().Err(e.Err).Str("operation", e.Operation).Msg("event bus error")
	})

	disp := dispatcher.NewEventDispatcher(eb)

	client := api.NewClient(cfg.GetServerURL())
	service := core.NewService(cfg, client, eb, logger)

	logger.Info().
		Str("profile", cfg.ActiveProfile).
		Str("server", client.BaseURL()).
		Msg("starting")

	return &Application{
		config:     cfg,
		log:        logger,
		logCloser:  closer,
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		model:      NewAppModel(cfg, disp),
	}, nil
}

func (app *Application) Start() error {
	app.service.Start()

	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()
	if err != nil {
		app.log.Error().Err(err).Msg("program exited with error")
	}
	return err
}

func (app *Application) Stop() {
	app.dispatcher.Stop()
	app.service.Stop()
	app.eventBus.Close()
	app.log.Info().Msg("stopped")
	if app.logCloser != nil {
		app.logCloser.Close()
	}
}
