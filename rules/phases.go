// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package rules

import (
	"fmt"
	"io"
)

// Phases is an operator-priority ordering loaded from the rule
// syntax this package parses, the supplemental configuration surface
// SPEC_FULL.md §4 adds on top of spec §4.4's closing note that
// "callers choose priorities to encode phase ordering". Each phase
// name (e.g. "decl", "splitlines") maps to the bind.Order its
// operator should run at; cmd/arc falls back to its own hard-coded
// defaults for any name a loaded file omits.
type Phases map[string]int

// LoadPhases parses a sequence of `"name" -> priority` rules from r
// and returns the resulting name-to-priority table. Each rule's From
// must be exactly one quoted phase name and its To a bare integer;
// anything else is a configuration error naming the offending rule's
// source location.
func LoadPhases(r io.Reader) (Phases, error) {
	parsed, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("rules: parsing phase config: %w", err)
	}
	out := make(Phases, len(parsed))
	for i := range parsed {
		rule := &parsed[i]
		name, priority, err := phaseRule(rule)
		if err != nil {
			return nil, fmt.Errorf("rules: %s: %w", rule.Location, err)
		}
		out[name] = priority
	}
	return out, nil
}

func phaseRule(r *Rule) (name string, priority int, err error) {
	if len(r.From) != 1 {
		return "", 0, fmt.Errorf("phase rule must have exactly one name, got %d", len(r.From))
	}
	s, ok := r.From[0].(String)
	if !ok {
		return "", 0, fmt.Errorf("phase name must be a quoted string, got %s", r.From[0].String())
	}
	n, ok := r.To.Value.(Int)
	if !ok || r.To.Name != "" {
		return "", 0, fmt.Errorf("phase priority must be a bare integer, got %s", r.To.String())
	}
	return string(s), int(n), nil
}
