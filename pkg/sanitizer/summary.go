// SPDX-License-Identifier: Apache-2.0

package sanitizer

import (
	"fmt"
	"time"

	loglib "github.com/xataio/csvsanity/pkg/log"
)

// Summary describes a processed table.
type Summary struct {
	// Records is the number of data records read, malformed ones included.
	Records int `json:"records"`
	// FailedRecords is the number of records with at least one error.
	FailedRecords   int           `json:"failed_records"`
	TransformErrors int           `json:"transform_errors"`
	ParseErrors     int           `json:"parse_errors"`
	Duration        time.Duration `json:"duration"`
}

func (s *Summary) HasErrors() bool {
	return s.TransformErrors > 0 || s.ParseErrors > 0
}

func (s *Summary) logFields() loglib.Fields {
	return loglib.Fields{
		"records":          s.Records,
		"failed_records":   s.FailedRecords,
		"transform_errors": s.TransformErrors,
		"parse_errors":     s.ParseErrors,
		"duration":         s.Duration,
	}
}

func (s *Summary) String() string {
	return fmt.Sprintf("%d records processed in %s, %d with errors (%d transform errors, %d parse errors)",
		s.Records, s.Duration.Round(time.Millisecond), s.FailedRecords, s.TransformErrors, s.ParseErrors)
}
