// SPDX-License-Identifier: Apache-2.0

package sanitizer

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/xataio/csvsanity/pkg/ruleset"
	"github.com/xataio/csvsanity/pkg/table"
)

type Config struct {
	Input  InputConfig
	Output OutputConfig
	Rules  ruleset.Config
}

type InputConfig struct {
	Path  string
	Table table.Options
}

type OutputConfig struct {
	Path       string
	ErrorsPath string
	Table      table.WriterOptions
	// Progress renders a progress bar over the input bytes on stderr.
	Progress bool
}

const (
	DefaultOutputPath = "output.csv"
	DefaultErrorsPath = "errors.csv"
)

var (
	errMissingInput  = errors.New("missing input path")
	errMissingOutput = errors.New("missing output path")
	errSamePaths     = errors.New("input, output and errors paths must be different")
)

func (c *Config) IsValid() error {
	if c.Input.Path == "" {
		return errMissingInput
	}
	if c.Output.Path == "" || c.Output.ErrorsPath == "" {
		return errMissingOutput
	}

	paths := map[string]struct{}{}
	for _, p := range []string{c.Input.Path, c.Output.Path, c.Output.ErrorsPath} {
		cleaned := filepath.Clean(p)
		if _, found := paths[cleaned]; found {
			return fmt.Errorf("%w: %s", errSamePaths, p)
		}
		paths[cleaned] = struct{}{}
	}

	if err := c.Input.Table.Validate(); err != nil {
		return err
	}
	return nil
}
