// SPDX-License-Identifier: Apache-2.0

package progress

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

type Bar interface {
	Add64(int64) error
	Close() error
}

type ProgressBar struct {
	*progressbar.ProgressBar
}

// NewBytesBar returns a progress bar over the given number of bytes. A
// negative total renders a spinner for inputs of unknown size.
func NewBytesBar(totalBytes int64, description string, out io.Writer) *ProgressBar {
	return &ProgressBar{
		ProgressBar: progressbar.NewOptions64(totalBytes,
			progressbar.OptionSetWriter(out),
			progressbar.OptionShowCount(),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionSetWidth(20),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowBytes(true),
			progressbar.OptionShowTotalBytes(true),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetDescription(description),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprint(out, "\n")
			}),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			})),
	}
}

// Reader advances the bar by the number of bytes read from the wrapped
// reader.
type Reader struct {
	r   io.Reader
	bar Bar
}

func NewReader(r io.Reader, bar Bar) *Reader {
	return &Reader{r: r, bar: bar}
}

func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		// rendering errors must not interrupt the read
		_ = r.bar.Add64(int64(n))
	}
	return n, err
}
