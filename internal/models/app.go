package models

import "github.com/Rorical/coldmail/internal/api"

// KeyPhase tracks the verify/save flow of the key panel
type KeyPhase int

const (
	PhaseIdle KeyPhase = iota
	PhaseVerifying
	PhaseVerifiedOK
	PhaseVerifiedFail
	PhaseSaving
	PhaseSaved
)

func (p KeyPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseVerifying:
		return "verifying"
	case PhaseVerifiedOK:
		return "verified"
	case PhaseVerifiedFail:
		return "verification failed"
	case PhaseSaving:
		return "saving"
	case PhaseSaved:
		return "saved"
	}
	return "unknown"
}

// ResultKind selects how a key panel line is styled
type ResultKind int

const (
	ResultInfo ResultKind = iota
	ResultSuccess
	ResultWarning
	ResultFailure
)

type ResultLine struct {
	Kind ResultKind
	Text string
}

// KeyPanel is the API key verification overlay
type KeyPanel struct {
	Open    bool
	Phase   KeyPhase
	Loading string       // Spinner caption while a request is in flight
	Result  []ResultLine // Replaced wholesale on every verify or save outcome

	// Whether the most recent verification response had a usable provider
	LastVerifyOK bool
}

// VerifyEnabled reports whether the verify control accepts input.
func (p KeyPanel) VerifyEnabled() bool {
	return p.Phase != PhaseVerifying && p.Phase != PhaseSaving && p.Phase != PhaseSaved
}

// SaveEnabled reports whether the save control accepts input.
func (p KeyPanel) SaveEnabled() bool {
	return p.VerifyEnabled() && p.LastVerifyOK
}

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Messages      []Message     // Conversation log, append-only within a session
	Status        string        // Status bar text
	APIStatus     api.APIStatus // Replaced wholesale on each probe or verification
	Email         string        // Most recent generated email
	EmailVisible  bool
	ScrollToEmail bool // Set when the email panel must be brought into view
	CopyLabel     string
	CopySeq       int // Bumped per successful copy; only the newest restore applies
	KeyPanel      KeyPanel
	Reloading     bool
	Session       int // Generation of the conversation, bumped on every reload
	Width         int
	Height        int
}
