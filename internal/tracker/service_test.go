package tracker

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pftrack-dev/pftrack/internal/activitylog"
	"github.com/pftrack-dev/pftrack/internal/category"
	"github.com/pftrack-dev/pftrack/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()
	st := store.New(filepath.Join(dir, "pftrack_summary.json"), category.Default(), nil)
	return NewService(st, category.Default(), filepath.Join(dir, "pftrack_activity.csv"), nil)
}

func TestSubmit_Accumulates(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Submit(category.KindIncome, "Salary", "100")
	require.NoError(t, err)
	assert.InDelta(t, 100.0, res.NewTotal, 1e-9)
	assert.Equal(t, store.LoadCreated, res.Load.Status)

	res, err = svc.Submit(category.KindIncome, "Salary", "100")
	require.NoError(t, err)
	assert.InDelta(t, 200.0, res.NewTotal, 1e-9)

	report, _ := svc.Summary()
	require.NotNil(t, report)
	assert.InDelta(t, 200.0, report.Income["Salary"], 1e-9)
	for _, name := range category.Default().Names(category.KindIncome) {
		if name != "Salary" {
			assert.Zero(t, report.Income[name], "category %q must be untouched", name)
		}
	}
}

func TestSubmit_ExpenseSide(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Submit(category.KindExpense, "Food", "12.50")
	require.NoError(t, err)

	report, _ := svc.Summary()
	require.NotNil(t, report)
	assert.InDelta(t, 12.5, report.TotalExpenses, 1e-9)
	assert.Zero(t, report.TotalIncome)
	assert.InDelta(t, -12.5, report.NetBalance, 1e-9)
}

func TestSubmit_InvalidInput(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Submit(category.KindIncome, "Salary", "abc")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	// No store interaction happened.
	report, res := svc.Summary()
	assert.Nil(t, report)
	assert.Equal(t, store.LoadCreated, res.Status)
}

func TestSubmit_UnknownCategory(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Submit(category.KindIncome, "Food", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown income category")

	report, _ := svc.Summary()
	assert.Nil(t, report)
}

func TestSubmit_ReadErrorAborts(t *testing.T) {
	// A directory at the summary path makes every load a read error.
	dir := t.TempDir()
	st := store.New(dir, category.Default(), nil)
	svc := NewService(st, category.Default(), "", nil)

	_, err := svc.Submit(category.KindIncome, "Salary", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot record income")
}

func TestSubmit_WritesActivityLog(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Submit(category.KindExpense, "Housing", "900")
	require.NoError(t, err)

	entries, err := activitylog.Read(svc.activityPath)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "expense", entries[0].Kind)
	assert.Equal(t, "Housing", entries[0].Category)
	assert.InDelta(t, 900.0, entries[0].Amount, 1e-9)
}

func TestSubmit_ActivityLogFailureIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	st := store.New(filepath.Join(dir, "pftrack_summary.json"), category.Default(), nil)
	// Activity path inside a missing directory cannot be created.
	svc := NewService(st, category.Default(), filepath.Join(dir, "missing", "activity.csv"), nil)

	_, err := svc.Submit(category.KindIncome, "Gift", "25")
	require.NoError(t, err)
}

func TestSummary_EmptyState(t *testing.T) {
	svc := newTestService(t)

	report, res := svc.Summary()
	assert.Nil(t, report)
	assert.Equal(t, store.LoadCreated, res.Status)

	// Any single nonzero total flips it to a full report.
	_, err := svc.Submit(category.KindIncome, "Investment", "0.01")
	require.NoError(t, err)

	report, _ = svc.Summary()
	require.NotNil(t, report)
	assert.InDelta(t, report.TotalIncome-report.TotalExpenses, report.NetBalance, 1e-9)
}

func TestFlush(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Submit(category.KindIncome, "Salary", "50")
	require.NoError(t, err)
	require.NoError(t, svc.Flush())

	report, res := svc.Summary()
	assert.Equal(t, store.LoadOK, res.Status)
	require.NotNil(t, report)
	assert.InDelta(t, 50.0, report.TotalIncome, 1e-9)
}
