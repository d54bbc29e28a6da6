package config

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
)

// sessions maps a server URL to the cookies of its last conversation
type sessions map[string]map[string]string

func getSessionPath() (string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(configPath), "session.json"), nil
}

// LoadSession returns the cookies saved for serverURL. A missing session
// file is not an error.
func LoadSession(serverURL string) ([]*http.Cookie, error) {
	all, err := loadSessions()
	if err != nil {
		return nil, err
	}

	var cookies []*http.Cookie
	for name, value := range all[serverURL] {
		cookies = append(cookies, &http.Cookie{Name: name, Value: value})
	}
	return cookies, nil
}

// SaveSession records the cookies for serverURL, replacing what was saved
// before. Other servers' sessions are kept.
func SaveSession(serverURL string, cookies []*http.Cookie) error {
	all, err := loadSessions()
	if err != nil {
		return err
	}

	jar := make(map[string]string, len(cookies))
	for _, c := range cookies {
		jar[c.Name] = c.Value
	}
	if len(jar) == 0 {
		delete(all, serverURL)
	} else {
		all[serverURL] = jar
	}

	path, err := getSessionPath()
	if err != nil {
		return err
	}
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func loadSessions() (sessions, error) {
	path, err := getSessionPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return sessions{}, nil
	}
	if err != nil {
		return nil, err
	}

	var all sessions
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	if all == nil {
		all = sessions{}
	}
	return all, nil
}
