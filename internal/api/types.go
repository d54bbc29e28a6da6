package api

import "encoding/json"

// Provider status values reported by the generator server
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusUnknown = "unknown"
)

// Known providers, in display order
const (
	ProviderDeepSeek = "deepseek"
	ProviderGroq     = "groq"
)

// DownloadFileName is the name of the file written by a download
const DownloadFileName = "cold_email.txt"

// ProviderStatus is the per-provider result of a health probe or verification
type ProviderStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// State collapses the wire status to success, error or unknown.
// The server sends "not_tested" for providers whose key was left blank.
func (p ProviderStatus) State() string {
	switch p.Status {
	case StatusSuccess, StatusError:
		return p.Status
	default:
		return StatusUnknown
	}
}

func (p ProviderStatus) OK() bool {
	return p.Status == StatusSuccess
}

// APIStatus is an immutable snapshot of both providers' health.
// The zero value reports both providers as unknown.
type APIStatus struct {
	DeepSeek ProviderStatus `json:"deepseek"`
	Groq     ProviderStatus `json:"groq"`
}

// AnyUsable reports whether at least one provider is reachable.
func (s APIStatus) AnyUsable() bool {
	return s.DeepSeek.OK() || s.Groq.OK()
}

// Usable returns the display names of reachable providers.
func (s APIStatus) Usable() []string {
	var names []string
	if s.DeepSeek.OK() {
		names = append(names, ProviderName(ProviderDeepSeek))
	}
	if s.Groq.OK() {
		names = append(names, ProviderName(ProviderGroq))
	}
	return names
}

// Provider returns the status for a provider key.
func (s APIStatus) Provider(name string) ProviderStatus {
	switch name {
	case ProviderDeepSeek:
		return s.DeepSeek
	case ProviderGroq:
		return s.Groq
	}
	return ProviderStatus{Status: StatusUnknown}
}

// ProviderName maps a provider key to its display name.
func ProviderName(key string) string {
	switch key {
	case ProviderDeepSeek:
		return "DeepSeek"
	case ProviderGroq:
		return "Groq"
	}
	return key
}

// Keys is the body of /verify-api and /update-api-keys
type Keys struct {
	DeepSeekAPIKey  string `json:"deepseek_api_key"`
	DeepSeekAPIBase string `json:"deepseek_api_base"`
	GroqAPIKey      string `json:"groq_api_key"`
}

// Empty reports whether neither provider key was supplied.
func (k Keys) Empty() bool {
	return k.DeepSeekAPIKey == "" && k.GroqAPIKey == ""
}

// CheckResult is the response of GET /check-api
type CheckResult struct {
	Status  string    `json:"status"`
	Message string    `json:"message,omitempty"`
	APIs    APIStatus `json:"apis"`
}

// Degraded reports whether the server considers every provider unusable.
func (r CheckResult) Degraded() bool {
	return r.Status == StatusError
}

// VerifyResult is the response of POST /verify-api
type VerifyResult struct {
	DeepSeek ProviderStatus `json:"deepseek"`
	Groq     ProviderStatus `json:"groq"`
	Overall  ProviderStatus `json:"overall"`
}

// APIStatus returns the provider part of the verification.
func (r VerifyResult) APIStatus() APIStatus {
	return APIStatus{DeepSeek: r.DeepSeek, Groq: r.Groq}
}

// Verification is the embedded verification of an /update-api-keys
// response. The server sends either {apis:{...}} or the flat
// {deepseek,groq,overall} shape; both decode here.
type Verification struct {
	Status  APIStatus
	Overall ProviderStatus
}

func (v *Verification) UnmarshalJSON(data []byte) error {
	var raw struct {
		APIs     *APIStatus     `json:"apis"`
		DeepSeek ProviderStatus `json:"deepseek"`
		Groq     ProviderStatus `json:"groq"`
		Overall  ProviderStatus `json:"overall"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.APIs != nil {
		v.Status = *raw.APIs
	} else {
		v.Status = APIStatus{DeepSeek: raw.DeepSeek, Groq: raw.Groq}
	}
	v.Overall = raw.Overall
	return nil
}

// UpdateResult is the response of POST /update-api-keys
type UpdateResult struct {
	Status       string       `json:"status"`
	Message      string       `json:"message,omitempty"`
	Verification Verification `json:"verification"`
}

func (r UpdateResult) OK() bool {
	return r.Status == StatusSuccess
}

// ChatRequest is the body of POST /chat. An empty message starts a session.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatReply is the response of POST /chat
type ChatReply struct {
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
}

// HasEmail reports whether the reply carries a generated email.
func (r ChatReply) HasEmail() bool {
	return r.Email != ""
}

// DownloadResult is the response of GET /download
type DownloadResult struct {
	Email string `json:"email"`
}
