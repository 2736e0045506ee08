package model

import (
	"github.com/pftrack-dev/pftrack/internal/category"
)

// Document is the persisted summary: cumulative totals per category.
// Values are plain JSON numbers; the store guarantees every registry
// category is present after a load.
type Document struct {
	Income   map[string]float64 `json:"income"`
	Expenses map[string]float64 `json:"expenses"`
}

// NewDocument returns the all-zero default document for a registry.
func NewDocument(reg category.Registry) Document {
	doc := Document{
		Income:   make(map[string]float64),
		Expenses: make(map[string]float64),
	}
	for _, name := range reg.Names(category.KindIncome) {
		doc.Income[name] = 0.0
	}
	for _, name := range reg.Names(category.KindExpense) {
		doc.Expenses[name] = 0.0
	}
	return doc
}

// Section returns the totals map for a kind. The map is the document's
// own; mutations are visible through the Document.
func (d Document) Section(kind category.Kind) map[string]float64 {
	if kind == category.KindIncome {
		return d.Income
	}
	return d.Expenses
}

// Total sums all totals in one section.
func (d Document) Total(kind category.Kind) float64 {
	var sum float64
	for _, v := range d.Section(kind) {
		sum += v
	}
	return sum
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := Document{
		Income:   make(map[string]float64, len(d.Income)),
		Expenses: make(map[string]float64, len(d.Expenses)),
	}
	for k, v := range d.Income {
		out.Income[k] = v
	}
	for k, v := range d.Expenses {
		out.Expenses[k] = v
	}
	return out
}

// Report holds the derived summary figures.
type Report struct {
	TotalIncome   float64
	TotalExpenses float64
	NetBalance    float64
	Income        map[string]float64
	Expenses      map[string]float64
}
