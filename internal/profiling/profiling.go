// SPDX-License-Identifier: Apache-2.0

package profiling

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

const (
	defaultCPUProfile    = "cpu.prof"
	defaultMemoryProfile = "mem.prof"
)

// Start begins CPU profiling into cpuFileName. The returned stop function
// ends it and writes an allocation profile to memFileName. Empty names use
// cpu.prof and mem.prof.
func Start(cpuFileName, memFileName string) (stop func() error, err error) {
	stopCPUProfile, err := StartCPUProfile(cpuFileName)
	if err != nil {
		return nil, err
	}
	return func() error {
		return errors.Join(stopCPUProfile(), CreateMemoryProfile(memFileName))
	}, nil
}

func StartCPUProfile(fileName string) (func() error, error) {
	if fileName == "" {
		fileName = defaultCPUProfile
	}
	cpuFile, err := os.Create(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not create CPU profile file: %w", err)
	}

	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		cpuFile.Close()
		return nil, fmt.Errorf("could not start CPU profile: %w", err)
	}

	return func() error {
		pprof.StopCPUProfile()
		return cpuFile.Close()
	}, nil
}

func CreateMemoryProfile(fileName string) error {
	if fileName == "" {
		fileName = defaultMemoryProfile
	}
	memFile, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("could not create memory profile file: %w", err)
	}
	defer memFile.Close()

	runtime.GC() // get up-to-date statistics
	// Lookup("allocs") creates a profile similar to go test -memprofile.
	if err := pprof.Lookup("allocs").WriteTo(memFile, 0); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}

	return nil
}
