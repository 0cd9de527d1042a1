// SPDX-License-Identifier: Apache-2.0

package ruleset

import (
	"maps"

	"golang.org/x/exp/slices"
)

// Applicability determines which fields of a record a rule applies to: all
// of them (global) or a set of fields referenced by header name.
type Applicability struct {
	global bool
	fields map[string]struct{}
}

func Global() Applicability {
	return Applicability{global: true}
}

// Fields returns an applicability for the given field names. Duplicates
// collapse.
func Fields(names ...string) Applicability {
	fields := make(map[string]struct{}, len(names))
	for _, name := range names {
		fields[name] = struct{}{}
	}
	return Applicability{fields: fields}
}

func (a Applicability) IsGlobal() bool {
	return a.global
}

// Applies returns true if the rule applies to the field with the given name.
func (a Applicability) Applies(fieldName string) bool {
	if a.global {
		return true
	}
	_, found := a.fields[fieldName]
	return found
}

// FieldNames returns the sorted field names of a fields applicability, nil
// for global ones.
func (a Applicability) FieldNames() []string {
	if a.global {
		return nil
	}
	names := make([]string, 0, len(a.fields))
	for name := range a.fields {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// missingFields returns the sorted field names not present in the headers.
func (a Applicability) missingFields(headers map[string]struct{}) []string {
	missing := []string{}
	for _, name := range a.FieldNames() {
		if _, found := headers[name]; !found {
			missing = append(missing, name)
		}
	}
	return missing
}

func (a Applicability) Equal(other Applicability) bool {
	if a.global || other.global {
		return a.global == other.global
	}
	return maps.Equal(a.fields, other.fields)
}

func (a Applicability) String() string {
	if a.global {
		return "global"
	}
	return "fields"
}
