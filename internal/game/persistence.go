package game

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveDir is where sessions are written. Overridden from config at startup.
var SaveDir = ".saves"

// Save writes the session to SaveDir/<name> as yaml files, one per
// collection, so a partial read of a save stays possible by hand.
func (s *Session) Save(name string) error {
	dir := filepath.Join(SaveDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	files := map[string]any{
		"stats.yaml":     s.Stats,
		"inventory.yaml": s.Inventory,
		"journal.yaml":   s.Journal,
		"dialogue.yaml":  s.Dialogue,
	}
	for file, v := range files {
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, file), data, 0644); err != nil {
			return err
		}
	}
	return nil
}

// LoadSession reads a session back from SaveDir/<name>. The readiness
// latch is re-derived from the loaded state rather than persisted.
func LoadSession(name string) (*Session, error) {
	dir := filepath.Join(SaveDir, name)

	s := &Session{}

	statsData, err := os.ReadFile(filepath.Join(dir, "stats.yaml"))
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(statsData, &s.Stats); err != nil {
		return nil, err
	}

	invData, err := os.ReadFile(filepath.Join(dir, "inventory.yaml"))
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(invData, &s.Inventory); err != nil {
		return nil, err
	}

	journalData, err := os.ReadFile(filepath.Join(dir, "journal.yaml"))
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(journalData, &s.Journal); err != nil {
		return nil, err
	}

	dialogueData, err := os.ReadFile(filepath.Join(dir, "dialogue.yaml"))
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(dialogueData, &s.Dialogue); err != nil {
		return nil, err
	}

	return s, nil
}

// ListSessions returns the names of saved sessions, identified by the
// presence of a stats.yaml marker.
func ListSessions() ([]string, error) {
	if _, err := os.Stat(SaveDir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(SaveDir)
	if err != nil {
		return nil, err
	}

	var sessions []string
	for _, entry := range entries {
		if entry.IsDir() {
			marker := filepath.Join(SaveDir, entry.Name(), "stats.yaml")
			if _, err := os.Stat(marker); err == nil {
				sessions = append(sessions, entry.Name())
			}
		}
	}
	return sessions, nil
}
