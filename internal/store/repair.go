package store

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/pftrack-dev/pftrack/internal/category"
	"github.com/pftrack-dev/pftrack/internal/model"
)

// repair rebuilds a Document from the raw top-level sections, restoring
// the required shape. Every registry category ends up present with a
// finite numeric value; non-registry keys are kept (reset to 0.0 only
// when their value is not numeric).
func (s *Store) repair(sections map[string]json.RawMessage) (model.Document, []string) {
	doc := model.Document{
		Income:   make(map[string]float64),
		Expenses: make(map[string]float64),
	}
	var repairs []string

	for _, kind := range []category.Kind{category.KindIncome, category.KindExpense} {
		section := string(kind)
		target := doc.Section(kind)

		var values map[string]json.RawMessage
		raw, ok := sections[section]
		if !ok || json.Unmarshal(raw, &values) != nil {
			for _, name := range s.reg.Names(kind) {
				target[name] = 0.0
			}
			repairs = append(repairs, fmt.Sprintf("Added or replaced section %q.", section))
			continue
		}

		for _, name := range s.reg.Names(kind) {
			raw, ok := values[name]
			delete(values, name)
			if !ok {
				target[name] = 0.0
				repairs = append(repairs, fmt.Sprintf("Added missing %q in %q.", name, section))
				continue
			}
			v, ok := asNumber(raw)
			if !ok {
				target[name] = 0.0
				repairs = append(repairs, fmt.Sprintf("Reset invalid value for %q in %q.", name, section))
				continue
			}
			target[name] = v
		}

		// Leftovers are tolerated extras.
		for _, name := range slices.Sorted(maps.Keys(values)) {
			v, ok := asNumber(values[name])
			if !ok {
				target[name] = 0.0
				repairs = append(repairs, fmt.Sprintf("Reset invalid value for %q in %q.", name, section))
				continue
			}
			target[name] = v
		}
	}

	return doc, repairs
}

// asNumber extracts a finite float from a raw JSON value. Numeric
// strings and booleans coerce; anything else is invalid.
func asNumber(raw json.RawMessage) (float64, bool) {
	var f float64
	if json.Unmarshal(raw, &f) == nil {
		return f, true
	}

	var str string
	if json.Unmarshal(raw, &str) == nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}

	var b bool
	if json.Unmarshal(raw, &b) == nil {
		if b {
			return 1.0, true
		}
		return 0.0, true
	}

	return 0, false
}
