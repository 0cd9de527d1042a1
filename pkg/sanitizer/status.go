// SPDX-License-Identifier: Apache-2.0

package sanitizer

import (
	"fmt"
	"sort"
	"strings"
)

// RulesStatus reports whether the rules can be built and whether they are
// applicable to the headers of each input file.
type RulesStatus struct {
	Valid  bool               `json:"valid"`
	Errors []string           `json:"errors,omitempty"`
	Files  []*FileRulesStatus `json:"files,omitempty"`
}

type FileRulesStatus struct {
	Path   string   `json:"path"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

type StatusErrors map[string][]string

func (se StatusErrors) Keys() []string {
	keys := make([]string, 0, len(se))
	for k := range se {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

const rulesErrorsKey = "rules"

func (s *RulesStatus) GetErrors() StatusErrors {
	if s == nil {
		return nil
	}

	errors := StatusErrors{}
	if len(s.Errors) > 0 {
		errors[rulesErrorsKey] = s.Errors
	}
	for _, f := range s.Files {
		if f != nil && len(f.Errors) > 0 {
			errors[f.Path] = f.Errors
		}
	}
	return errors
}

func (s *RulesStatus) PrettyPrint() string {
	if s == nil {
		return ""
	}

	var prettyPrint strings.Builder
	prettyPrint.WriteString("Rules status:\n")
	prettyPrint.WriteString(fmt.Sprintf(" - Valid: %t\n", s.Valid))
	if len(s.Errors) > 0 {
		prettyPrint.WriteString(fmt.Sprintf(" - Errors: %s\n", s.Errors))
	}
	for _, f := range s.Files {
		if f == nil {
			continue
		}
		prettyPrint.WriteString(f.PrettyPrint())
		prettyPrint.WriteByte('\n')
	}

	// trim the last newline character
	return prettyPrint.String()[:len(prettyPrint.String())-1]
}

func (fs *FileRulesStatus) PrettyPrint() string {
	if fs == nil {
		return ""
	}

	var prettyPrint strings.Builder
	prettyPrint.WriteString(fmt.Sprintf("File %s:\n", fs.Path))
	prettyPrint.WriteString(fmt.Sprintf(" - Valid: %t\n", fs.Valid))
	if len(fs.Errors) > 0 {
		prettyPrint.WriteString(fmt.Sprintf(" - Errors: %s\n", fs.Errors))
	}

	// trim the last newline character
	return prettyPrint.String()[:len(prettyPrint.String())-1]
}
