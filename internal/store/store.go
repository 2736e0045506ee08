// Package store owns the persisted summary document: loading it from
// disk, repairing a damaged file, and writing it back with a best-effort
// backup of the previous contents.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pftrack-dev/pftrack/internal/category"
	"github.com/pftrack-dev/pftrack/internal/model"
)

const (
	// SummarySuffix is appended to the program name to derive the data file.
	SummarySuffix = "_summary.json"
	// BackupSuffix is appended to the data file path during a save.
	BackupSuffix = ".backup"
)

// LoadStatus classifies the outcome of a Load.
type LoadStatus string

const (
	// LoadOK means the file existed and was valid as-is.
	LoadOK LoadStatus = "ok"
	// LoadCreated means no file existed and the default was written.
	LoadCreated LoadStatus = "created"
	// LoadReplaced means the file was unparseable and was replaced
	// with the default.
	LoadReplaced LoadStatus = "replaced"
	// LoadRepaired means the file parsed but needed structural repairs,
	// which were persisted.
	LoadRepaired LoadStatus = "repaired"
	// LoadReadError means the file could not be read; the returned
	// document is the in-memory default and was NOT persisted.
	LoadReadError LoadStatus = "read-error"
)

// LoadResult is the structured signal accompanying every Load. User
// notification is left entirely to the presentation layer.
type LoadResult struct {
	Status  LoadStatus
	Repairs []string // one description per repair, LoadRepaired only
	Err     error    // underlying cause, LoadReadError only
}

// Notices returns the informational messages a presentation layer should
// surface for this result. Empty for LoadOK.
func (r LoadResult) Notices() []string {
	switch r.Status {
	case LoadCreated:
		return []string{"Summary file created."}
	case LoadReplaced:
		return []string{"Corrupted summary file replaced with a new blank file."}
	case LoadRepaired:
		return append([]string{"Summary file repaired:"}, r.Repairs...)
	case LoadReadError:
		return []string{fmt.Sprintf("Unable to read summary file: %v", r.Err)}
	}
	return nil
}

// SaveError reports a failed write. The backup file named in Backup is
// the surviving safety copy; callers must treat the save as not having
// happened.
type SaveError struct {
	Path   string
	Backup string
	Err    error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("could not save summary %s (backup preserved as %s): %v",
		e.Path, filepath.Base(e.Backup), e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// Store reads and writes the summary document at a fixed path.
type Store struct {
	path string
	reg  category.Registry
	log  *slog.Logger
}

// New creates a Store for the given path. A nil logger discards the
// best-effort backup diagnostics.
func New(path string, reg category.Registry, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{path: path, reg: reg, log: logger}
}

// DefaultPath derives the summary file path from the program name,
// co-located with the executable. Falls back to the working directory
// when the executable path cannot be resolved.
func DefaultPath() string {
	name := "pftrack"
	if exe, err := os.Executable(); err == nil {
		base := filepath.Base(exe)
		name = strings.TrimSuffix(base, filepath.Ext(base))
		return filepath.Join(filepath.Dir(exe), name+SummarySuffix)
	}
	return name + SummarySuffix
}

// Path returns the summary file path.
func (s *Store) Path() string { return s.path }

// BackupPath returns the backup file path used during saves.
func (s *Store) BackupPath() string { return s.path + BackupSuffix }

// Load reads the summary document, creating or repairing the file as
// needed. It always returns a usable document; the LoadResult says how
// it was obtained.
func (s *Store) Load() (model.Document, LoadResult) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		doc := model.NewDocument(s.reg)
		if werr := s.write(doc); werr != nil {
			return doc, LoadResult{Status: LoadReadError, Err: werr}
		}
		return doc, LoadResult{Status: LoadCreated}
	}
	if err != nil {
		return model.NewDocument(s.reg), LoadResult{
			Status: LoadReadError,
			Err:    fmt.Errorf("reading summary file: %w", err),
		}
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		// Unparseable: replace wholesale.
		if rerr := os.Remove(s.path); rerr != nil {
			s.log.Warn("removing corrupted summary file failed", "path", s.path, "error", rerr)
		}
		doc := model.NewDocument(s.reg)
		if werr := s.write(doc); werr != nil {
			return doc, LoadResult{Status: LoadReadError, Err: werr}
		}
		return doc, LoadResult{Status: LoadReplaced}
	}

	doc, repairs := s.repair(sections)
	if len(repairs) == 0 {
		return doc, LoadResult{Status: LoadOK}
	}
	if werr := s.write(doc); werr != nil {
		return doc, LoadResult{Status: LoadReadError, Err: werr}
	}
	return doc, LoadResult{Status: LoadRepaired, Repairs: repairs}
}

// Save writes the document to the summary path. The previous file, if
// any, is copied to the backup path first and deleted again after a
// successful write. Backup copy and delete failures never block the
// save; a write failure is returned as a *SaveError.
func (s *Store) Save(doc model.Document) error {
	backup := s.BackupPath()
	if _, err := os.Stat(s.path); err == nil {
		if cerr := copyFile(s.path, backup); cerr != nil {
			s.log.Warn("backup copy failed", "path", backup, "error", cerr)
		}
	}

	if err := s.write(doc); err != nil {
		return &SaveError{Path: s.path, Backup: backup, Err: err}
	}

	if err := os.Remove(backup); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.Warn("backup delete failed", "path", backup, "error", err)
	}
	return nil
}

func (s *Store) write(doc model.Document) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing summary file: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
