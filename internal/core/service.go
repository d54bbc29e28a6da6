package core

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"

	"github.com/Rorical/coldmail/internal/api"
	"github.com/Rorical/coldmail/internal/config"
	"github.com/Rorical/coldmail/internal/eventbus"
)

// ClipboardWriter puts text on the system clipboard
type ClipboardWriter func(text string) error

// SessionSaver records the server session so later runs can resume it
type SessionSaver func(serverURL string, cookies []*http.Cookie) error

// Service performs the I/O behind UI events. It owns no widget state:
// every event runs as its own request and reports back on the bus, so
// several requests can be in flight and complete in any order.
type Service struct {
	client      *api.Client
	eventBus    *eventbus.EventBus
	downloadDir string
	clipboard   ClipboardWriter
	saveSession SessionSaver
	log         zerolog.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup

	// session is the newest conversation generation seen. Only eventLoop
	// touches it.
	session int
	// sessionMu serializes writes of the session file
	sessionMu sync.Mutex
}

func NewService(cfg *config.Config, client *api.Client, eb *eventbus.EventBus, logger zerolog.Logger) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		client:      client,
		eventBus:    eb,
		downloadDir: cfg.GetDownloadDir(),
		clipboard:   clipboard.WriteAll,
		saveSession: config.SaveSession,
		log:         logger.With().Str("component", "core").Str("server", client.BaseURL()).Logger(),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// SetClipboardWriter replaces the system clipboard, e.g. in headless runs.
func (s *Service) SetClipboardWriter(w ClipboardWriter) {
	s.clipboard = w
}

// SetSessionSaver replaces where session cookies are recorded. nil disables it.
func (s *Service) SetSessionSaver(save SessionSaver) {
	s.saveSession = save
}

// Start runs the core logic in a goroutine
func (s *Service) Start() {
	s.wg.Add(1)
	go s.eventLoop()
}

// Stop cancels in-flight requests and waits for them to finish.
func (s *Service) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Service) eventLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-s.eventBus.UIToCore():
			if !ok {
				return
			}
			s.handleUIEvent(event)
		}
	}
}

func (s *Service) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.CheckStatusEvent:
		s.spawn(func() { s.checkStatus(e.Session) })
	case eventbus.SendMessageEvent:
		if e.Session > s.session {
			s.session = e.Session
			s.client.ResetSession()
			s.log.Info().Int("session", e.Session).Msg("starting new conversation")
		}
		s.spawn(func() { s.sendMessage(e.Message, e.Session) })
	case eventbus.VerifyKeysEvent:
		s.spawn(func() { s.verifyKeys(e.Keys) })
	case eventbus.SaveKeysEvent:
		s.spawn(func() { s.saveKeys(e.Keys) })
	case eventbus.CopyEmailEvent:
		s.spawn(func() { s.copyEmail(e.Text, e.Session) })
	case eventbus.DownloadEmailEvent:
		s.spawn(func() { s.downloadEmail(e.Session) })
	default:
		s.log.Warn().Str("event", fmt.Sprintf("%T", event)).Msg("unhandled UI event")
	}
}

func (s *Service) spawn(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
}

func (s *Service) checkStatus(session int) {
	res, err := s.client.CheckAPI(s.ctx)
	if err != nil {
		s.log.Error().Err(err).Str("endpoint", "/check-api").Msg("status probe failed")
	} else {
		s.log.Info().Str("status", res.Status).
			Str("deepseek", res.APIs.DeepSeek.State()).
			Str("groq", res.APIs.Groq.State()).
			Msg("status probe")
	}
	s.pushToUI(eventbus.StatusCheckedEvent{Result: res, Err: err, Session: session})
}

func (s *Service) sendMessage(message string, session int) {
	reply, err := s.client.Chat(s.ctx, message)
	if err != nil {
		s.log.Error().Err(err).Str("endpoint", "/chat").Msg("chat request failed")
	} else {
		s.log.Debug().Bool("session_start", message == "").Bool("email", reply.HasEmail()).Msg("chat reply")
		s.persistSession()
	}
	s.pushToUI(eventbus.ChatReplyEvent{Request: message, Reply: reply, Err: err, Session: session})
}

func (s *Service) persistSession() {
	if s.saveSession == nil {
		return
	}
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	if err := s.saveSession(s.client.BaseURL(), s.client.Cookies()); err != nil {
		s.log.Warn().Err(err).Msg("failed to save session")
	}
}

func (s *Service) verifyKeys(keys api.Keys) {
	res, err := s.client.VerifyKeys(s.ctx, keys)
	if err != nil {
		s.log.Error().Err(err).Str("endpoint", "/verify-api").Msg("key verification failed")
	} else {
		s.log.Info().Str("overall", res.Overall.Status).Msg("key verification")
	}
	s.pushToUI(eventbus.VerifyResultEvent{Keys: keys, Result: res, Err: err})
}

func (s *Service) saveKeys(keys api.Keys) {
	res, err := s.client.UpdateKeys(s.ctx, keys)
	switch {
	case err != nil:
		s.log.Error().Err(err).Str("endpoint", "/update-api-keys").Msg("key save failed")
	case !res.OK():
		s.log.Warn().Str("message", res.Message).Msg("server rejected keys")
	default:
		s.log.Info().Msg("keys saved")
	}
	s.pushToUI(eventbus.SaveResultEvent{Result: res, Err: err})
}

func (s *Service) copyEmail(text string, session int) {
	err := s.clipboard(text)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to copy text")
	}
	s.pushToUI(eventbus.CopyResultEvent{Err: err, Session: session})
}

func (s *Service) downloadEmail(session int) {
	path, err := DownloadEmail(s.ctx, s.client, s.downloadDir)
	if err != nil {
		s.log.Error().Err(err).Str("endpoint", "/download").Msg("error downloading email")
	} else {
		s.log.Info().Str("path", path).Msg("email downloaded")
	}
	s.pushToUI(eventbus.DownloadResultEvent{Path: path, Err: err, Session: session})
}

// DownloadEmail fetches the current email and writes it as
// cold_email.txt in dir, returning the written path.
func DownloadEmail(ctx context.Context, client *api.Client, dir string) (string, error) {
	res, err := client.Download(ctx)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}
	path := filepath.Join(dir, api.DownloadFileName)
	if err := os.WriteFile(path, []byte(res.Email), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func (s *Service) pushToUI(event eventbus.CoreEvent) {
	if s.ctx.Err() != nil {
		return
	}
	if err := s.eventBus.SendToUI(event); err != nil {
		s.log.Error().Err(err).Str("event", fmt.Sprintf("%T", event)).Msg("error sending state to UI")
	}
}
