// Package tracker provides the submit and summary operations on top of
// the summary store.
package tracker

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pftrack-dev/pftrack/internal/activitylog"
	"github.com/pftrack-dev/pftrack/internal/category"
	"github.com/pftrack-dev/pftrack/internal/model"
	"github.com/pftrack-dev/pftrack/internal/store"
)

// Service ties the store and registry together for the user-facing
// operations. Every operation re-reads the document from storage; there
// is no long-lived in-memory copy.
type Service struct {
	store        *store.Store
	reg          category.Registry
	activityPath string // "" disables the activity log
	log          *slog.Logger
}

// NewService creates a tracker Service. activityPath may be empty to
// disable submission logging; a nil logger discards diagnostics.
func NewService(st *store.Store, reg category.Registry, activityPath string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: st, reg: reg, activityPath: activityPath, log: logger}
}

// Registry returns the category registry in use.
func (s *Service) Registry() category.Registry { return s.reg }

// SubmitResult reports a successful submission.
type SubmitResult struct {
	Amount   float64
	NewTotal float64
	Load     store.LoadResult // signals from the load preceding the write
}

// Submit validates text as an amount and adds it to one category's
// running total. On any error no mutation is persisted and the caller
// must leave its state as if the submission had not happened.
func (s *Service) Submit(kind category.Kind, name, text string) (SubmitResult, error) {
	amount, err := ParseAmount(text)
	if err != nil {
		return SubmitResult{}, err
	}
	if !s.reg.Contains(kind, name) {
		return SubmitResult{}, fmt.Errorf("unknown %s category %q", kind.Label(), name)
	}

	doc, res := s.store.Load()
	if res.Status == store.LoadReadError {
		// Persisting on top of the unreadable file's in-memory fallback
		// would overwrite whatever is actually on disk.
		return SubmitResult{Load: res}, fmt.Errorf("cannot record %s: %w", kind.Label(), res.Err)
	}

	section := doc.Section(kind)
	newTotal := decimal.NewFromFloat(section[name]).
		Add(decimal.NewFromFloat(amount)).
		InexactFloat64()
	section[name] = newTotal

	if err := s.store.Save(doc); err != nil {
		return SubmitResult{Load: res}, err
	}

	s.recordActivity(kind, name, amount)
	return SubmitResult{Amount: amount, NewTotal: newTotal, Load: res}, nil
}

// Summary loads the document and derives the report. A nil report means
// no data has been recorded yet.
func (s *Service) Summary() (*model.Report, store.LoadResult) {
	doc, res := s.store.Load()

	totalIncome := doc.Total(category.KindIncome)
	totalExpenses := doc.Total(category.KindExpense)
	if totalIncome == 0 && totalExpenses == 0 {
		return nil, res
	}

	return &model.Report{
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		NetBalance:    totalIncome - totalExpenses,
		Income:        doc.Income,
		Expenses:      doc.Expenses,
	}, res
}

// Flush re-reads and re-writes the document, leaving the file in a
// known-good state on exit.
func (s *Service) Flush() error {
	doc, res := s.store.Load()
	if res.Status == store.LoadReadError {
		return res.Err
	}
	return s.store.Save(doc)
}

func (s *Service) recordActivity(kind category.Kind, name string, amount float64) {
	if s.activityPath == "" {
		return
	}
	err := activitylog.Append(s.activityPath, []activitylog.Entry{{
		Timestamp: time.Now(),
		Kind:      kind.Label(),
		Category:  name,
		Amount:    amount,
	}})
	if err != nil {
		s.log.Warn("activity log append failed", "path", s.activityPath, "error", err)
	}
}
