package store

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pftrack-dev/pftrack/internal/category"
	"github.com/pftrack-dev/pftrack/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pftrack_summary.json")
	return New(path, category.Default(), nil)
}

func TestLoad_CreatesDefault(t *testing.T) {
	s := newTestStore(t)

	doc, res := s.Load()
	assert.Equal(t, LoadCreated, res.Status)
	for _, name := range category.Default().Names(category.KindIncome) {
		assert.Zero(t, doc.Income[name])
	}
	for _, name := range category.Default().Names(category.KindExpense) {
		assert.Zero(t, doc.Expenses[name])
	}

	// The default was persisted.
	_, err := os.Stat(s.Path())
	require.NoError(t, err)

	// Second load finds a valid file.
	_, res = s.Load()
	assert.Equal(t, LoadOK, res.Status)
}

func TestLoad_RoundTripIdempotent(t *testing.T) {
	s := newTestStore(t)

	doc, _ := s.Load()
	doc.Income["Salary"] = 1234.56
	doc.Expenses["Food"] = 78.90
	require.NoError(t, s.Save(doc))

	for range 2 {
		got, res := s.Load()
		require.Equal(t, LoadOK, res.Status)
		require.NoError(t, s.Save(got))
	}

	got, _ := s.Load()
	assert.Equal(t, doc.Income, got.Income)
	assert.Equal(t, doc.Expenses, got.Expenses)
}

func TestLoad_CorruptedReplaced(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o644))

	doc, res := s.Load()
	assert.Equal(t, LoadReplaced, res.Status)
	assert.Zero(t, doc.Income["Salary"])

	// The replacement was persisted and is valid.
	_, res = s.Load()
	assert.Equal(t, LoadOK, res.Status)
}

func TestLoad_NonObjectReplaced(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`[1, 2, 3]`), 0o644))

	_, res := s.Load()
	assert.Equal(t, LoadReplaced, res.Status)
}

func TestLoad_Repairs(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantRepairs int
		check       func(t *testing.T, doc model.Document)
	}{
		{
			name:        "missing expenses section",
			content:     `{"income": {"Salary": 10, "Gift": 0, "Investment": 0, "Other": 0}}`,
			wantRepairs: 1,
			check: func(t *testing.T, doc model.Document) {
				assert.InDelta(t, 10.0, doc.Income["Salary"], 1e-9)
				assert.Zero(t, doc.Expenses["Food"])
			},
		},
		{
			name:        "section wrong type",
			content:     `{"income": [], "expenses": {}}`,
			wantRepairs: 8, // replaced income + 7 missing expense keys
			check: func(t *testing.T, doc model.Document) {
				assert.Zero(t, doc.Income["Salary"])
			},
		},
		{
			name:        "missing key",
			content:     `{"income": {"Gift": 5, "Investment": 0, "Other": 0}, "expenses": {"Food": 1, "Housing": 0, "Transportation": 0, "Entertainment": 0, "Health": 0, "Education": 0, "Other": 0}}`,
			wantRepairs: 1,
			check: func(t *testing.T, doc model.Document) {
				assert.Zero(t, doc.Income["Salary"])
				assert.InDelta(t, 5.0, doc.Income["Gift"], 1e-9)
			},
		},
		{
			name:        "non-numeric value reset",
			content:     `{"income": {"Salary": {"nested": true}, "Gift": 0, "Investment": 0, "Other": 0}, "expenses": {"Food": null, "Housing": 0, "Transportation": 0, "Entertainment": 0, "Health": 0, "Education": 0, "Other": 0}}`,
			wantRepairs: 2,
			check: func(t *testing.T, doc model.Document) {
				assert.Zero(t, doc.Income["Salary"])
				assert.Zero(t, doc.Expenses["Food"])
			},
		},
		{
			name:        "numeric string coerced without repair",
			content:     `{"income": {"Salary": "42.5", "Gift": 0, "Investment": 0, "Other": 0}, "expenses": {"Food": 0, "Housing": 0, "Transportation": 0, "Entertainment": 0, "Health": 0, "Education": 0, "Other": 0}}`,
			wantRepairs: 0,
			check: func(t *testing.T, doc model.Document) {
				assert.InDelta(t, 42.5, doc.Income["Salary"], 1e-9)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			require.NoError(t, os.WriteFile(s.Path(), []byte(tt.content), 0o644))

			doc, res := s.Load()
			tt.check(t, doc)

			// Every registry category is present and finite afterwards.
			for _, name := range category.Default().Names(category.KindIncome) {
				v, ok := doc.Income[name]
				require.True(t, ok, "income %q missing", name)
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
			}
			for _, name := range category.Default().Names(category.KindExpense) {
				v, ok := doc.Expenses[name]
				require.True(t, ok, "expense %q missing", name)
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
			}

			// Repaired shape was persisted: reload is clean.
			got, res2 := s.Load()
			assert.Equal(t, LoadOK, res2.Status)
			assert.Equal(t, doc.Income, got.Income)
			assert.Equal(t, doc.Expenses, got.Expenses)

			if res.Status == LoadRepaired {
				assert.Len(t, res.Repairs, tt.wantRepairs)
			}
		})
	}
}

func TestLoad_RepairSignal(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"income": {}, "expenses": {}}`), 0o644))

	_, res := s.Load()
	require.Equal(t, LoadRepaired, res.Status)
	assert.Len(t, res.Repairs, 11)
	assert.Contains(t, res.Repairs[0], "Salary")
}

func TestLoad_ExtrasKept(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(
		`{"income": {"Salary": 1, "Gift": 0, "Investment": 0, "Other": 0, "Tips": 7.5},
		  "expenses": {"Food": 0, "Housing": 0, "Transportation": 0, "Entertainment": 0, "Health": 0, "Education": 0, "Other": 0, "Pets": "oops"}}`), 0o644))

	doc, res := s.Load()
	assert.InDelta(t, 7.5, doc.Income["Tips"], 1e-9)
	assert.Zero(t, doc.Expenses["Pets"])
	require.Equal(t, LoadRepaired, res.Status)
	require.Len(t, res.Repairs, 1)
	assert.Contains(t, res.Repairs[0], "Pets")
}

func TestLoad_ReadError(t *testing.T) {
	// A directory at the summary path is readable via stat but not as a file.
	dir := t.TempDir()
	s := New(dir, category.Default(), nil)

	doc, res := s.Load()
	require.Equal(t, LoadReadError, res.Status)
	require.Error(t, res.Err)

	// The fallback default is usable but was not persisted anywhere.
	assert.Zero(t, doc.Income["Salary"])
	assert.Len(t, doc.Expenses, 7)
}

func TestSave_DeletesBackup(t *testing.T) {
	s := newTestStore(t)
	doc, _ := s.Load()
	doc.Income["Salary"] = 100
	require.NoError(t, s.Save(doc))

	doc.Income["Salary"] = 200
	require.NoError(t, s.Save(doc))

	_, err := os.Stat(s.BackupPath())
	assert.True(t, os.IsNotExist(err), "backup must be removed after a successful save")
}

func TestSave_FailureKeepsFileAndBackup(t *testing.T) {
	s := newTestStore(t)
	doc, _ := s.Load()
	doc.Income["Salary"] = 100
	require.NoError(t, s.Save(doc))

	// NaN cannot be marshaled, so the write fails before the file is
	// touched; the attempted mutation must not be visible afterwards.
	bad := doc.Clone()
	bad.Income["Salary"] = math.NaN()
	err := s.Save(bad)
	require.Error(t, err)

	var serr *SaveError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, s.BackupPath(), serr.Backup)
	assert.Contains(t, err.Error(), BackupSuffix)

	// Primary file still holds the last good document.
	got, res := s.Load()
	require.Equal(t, LoadOK, res.Status)
	assert.InDelta(t, 100.0, got.Income["Salary"], 1e-9)

	// The backup survives a failed save as the safety copy.
	data, rerr := os.ReadFile(s.BackupPath())
	require.NoError(t, rerr)
	var backup model.Document
	require.NoError(t, json.Unmarshal(data, &backup))
	assert.InDelta(t, 100.0, backup.Income["Salary"], 1e-9)
}

func TestSave_BackupFailureLogged(t *testing.T) {
	// Pointing the store at a directory makes both the backup copy and
	// the write fail; the copy failure goes to the diagnostic log only.
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	s := New(t.TempDir(), category.Default(), logger)

	err := s.Save(model.NewDocument(category.Default()))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "backup copy failed")
}

func TestSave_PrettyPrinted(t *testing.T) {
	s := newTestStore(t)
	doc, _ := s.Load()
	doc.Income["Salary"] = 12.5
	require.NoError(t, s.Save(doc))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "    \"Salary\": 12.5")
	assert.Contains(t, string(data), "\"income\"")
	assert.Contains(t, string(data), "\"expenses\"")
}

func TestNotices(t *testing.T) {
	assert.Empty(t, LoadResult{Status: LoadOK}.Notices())
	assert.Len(t, LoadResult{Status: LoadCreated}.Notices(), 1)

	got := LoadResult{Status: LoadRepaired, Repairs: []string{"a", "b"}}.Notices()
	assert.Len(t, got, 3)
}
