package category

import "slices"

// Kind distinguishes the two sides of the summary.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expenses"
)

// Label returns the singular user-facing name for a kind.
func (k Kind) Label() string {
	if k == KindExpense {
		return "expense"
	}
	return string(k)
}

// Registry holds the fixed category lists. Order matters only for
// presentation (selection lists, report rows); storage is keyed by name.
type Registry struct {
	income   []string
	expenses []string
}

// New creates a Registry from explicit category lists. The slices are
// copied so the Registry cannot be mutated through the caller's backing
// arrays.
func New(income, expenses []string) Registry {
	return Registry{
		income:   slices.Clone(income),
		expenses: slices.Clone(expenses),
	}
}

// Default returns the built-in registry.
func Default() Registry {
	return New(
		[]string{"Salary", "Gift", "Investment", "Other"},
		[]string{"Food", "Housing", "Transportation", "Entertainment", "Health", "Education", "Other"},
	)
}

// Names returns the ordered category names for a kind.
func (r Registry) Names(kind Kind) []string {
	switch kind {
	case KindIncome:
		return slices.Clone(r.income)
	case KindExpense:
		return slices.Clone(r.expenses)
	}
	return nil
}

// Contains reports whether name is a registry category of the given kind.
func (r Registry) Contains(kind Kind, name string) bool {
	return slices.Contains(r.Names(kind), name)
}
