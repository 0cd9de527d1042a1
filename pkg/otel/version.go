// SPDX-License-Identifier: Apache-2.0

package otel

import (
	"runtime/debug"
	"sync"
)

const unknownVersion = "unknown"

// buildVersion returns the module version of the binary when built from a
// tagged module, or the vcs revision it was built from, or "unknown".
var buildVersion = sync.OnceValue(func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return unknownVersion
	}

	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}

	return unknownVersion
})

// Version is reported as the service version of the instrumentation resource
// and by the csvsanity version flag.
func Version() string {
	return buildVersion()
}
