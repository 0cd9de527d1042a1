// SPDX-License-Identifier: Apache-2.0

package profiling

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// not parallel, the CPU profiler is process wide
func TestStart(t *testing.T) {
	dir := t.TempDir()
	cpuFile := filepath.Join(dir, "cpu.prof")
	memFile := filepath.Join(dir, "mem.prof")

	stop, err := Start(cpuFile, memFile)
	require.NoError(t, err)
	require.NoError(t, stop())

	for _, f := range []string{cpuFile, memFile} {
		info, err := os.Stat(f)
		require.NoError(t, err)
		require.NotZero(t, info.Size())
	}
}

func TestStartCPUProfile_InvalidPath(t *testing.T) {
	t.Parallel()

	_, err := StartCPUProfile(filepath.Join(t.TempDir(), "missing", "cpu.prof"))
	require.Error(t, err)
}
