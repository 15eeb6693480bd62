package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// FileStore persists the ledger as three JSON files under a state
// directory. Everything is held in memory behind a mutex and flushed on
// every write, so reads never touch disk and a crash loses at most the
// write in flight.
type FileStore struct {
	mu  sync.Mutex
	dir string

	contacts     map[string]Contact
	applications map[string]Application
	log          []Entry
}

const (
	contactsFile     = "contacted_recruiters.json"
	applicationsFile = "applied_jobs.json"
	actionLogFile    = "action_log.json"
)

// NewFileStore creates or reloads a file-backed ledger in dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}
	fs := &FileStore{
		dir:          dir,
		contacts:     make(map[string]Contact),
		applications: make(map[string]Application),
	}
	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FileStore) IsContacted(_ context.Context, profileURL string) (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	_, ok := fs.contacts[profileURL]
	return ok, nil
}

func (fs *FileStore) RecordContact(_ context.Context, c Contact) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.contacts[c.URL]; ok {
		//repeat insert for the same URL is a no-op
		return nil
	}
	fs.contacts[c.URL] = c
	return fs.writeJSON(contactsFile, fs.contactSlice())
}

func (fs *FileStore) IsApplied(_ context.Context, jobURL string) (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	_, ok := fs.applications[jobURL]
	return ok, nil
}

func (fs *FileStore) RecordApplication(_ context.Context, a Application) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.applications[a.URL]; ok {
		return nil
	}
	if a.Status == "" {
		a.Status = StatusPending
	}
	fs.applications[a.URL] = a
	return fs.writeJSON(applicationsFile, fs.applicationSlice())
}

func (fs *FileStore) LogAction(_ context.Context, e Entry) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.log = append(fs.log, e)
	return fs.writeJSON(actionLogFile, fs.log)
}

func (fs *FileStore) DailySummary(_ context.Context, date time.Time) (Summary, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	s := Summary{Date: date.Local().Format("2006-01-02")}
	for _, c := range fs.contacts {
		if sameLocalDay(c.ContactedAt, date) {
			s.RecruitersContacted++
		}
	}
	for _, a := range fs.applications {
		if sameLocalDay(a.AppliedAt, date) {
			s.JobsApplied++
		}
	}
	for _, e := range fs.log {
		if sameLocalDay(e.Timestamp, date) {
			s.RecentActions = append(s.RecentActions, e)
		}
	}
	//newest first
	sort.Slice(s.RecentActions, func(i, j int) bool {
		return s.RecentActions[i].Timestamp.After(s.RecentActions[j].Timestamp)
	})
	if len(s.RecentActions) > recentActionsLimit {
		s.RecentActions = s.RecentActions[:recentActionsLimit]
	}
	return s, nil
}

func (fs *FileStore) Close() error { return nil }

func (fs *FileStore) contactSlice() []Contact {
	out := make([]Contact, 0, len(fs.contacts))
	for _, c := range fs.contacts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ContactedAt.Before(out[j].ContactedAt) })
	return out
}

func (fs *FileStore) applicationSlice() []Application {
	out := make([]Application, 0, len(fs.applications))
	for _, a := range fs.applications {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppliedAt.Before(out[j].AppliedAt) })
	return out
}

// writeJSON writes to a temp file then renames, so a crash mid-write
// never leaves a truncated ledger behind.
func (fs *FileStore) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	path := filepath.Join(fs.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

func (fs *FileStore) load() error {
	var contacts []Contact
	if err := fs.readJSON(contactsFile, &contacts); err != nil {
		return err
	}
	for _, c := range contacts {
		fs.contacts[c.URL] = c
	}

	var applications []Application
	if err := fs.readJSON(applicationsFile, &applications); err != nil {
		return err
	}
	for _, a := range applications {
		fs.applications[a.URL] = a
	}

	return fs.readJSON(actionLogFile, &fs.log)
}

func (fs *FileStore) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(fs.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}
