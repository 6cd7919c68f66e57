package fake

import (
	"bufio"
	"os"

	"github.com/pkg/errors"
)

// Main is the configuration for generating a synthetic dataset file.
type Main struct {
	Out  string `help:"File to write generated rows to."`
	Rows int    `help:"Number of rows to generate."`
	Seed int64  `help:"Random seed; the same seed reproduces the same file."`
}

// NewMain gets a new Main with the default configuration.
func NewMain() *Main {
	return &Main{
		Out:  "fake_mirdip.txt",
		Rows: 10000,
	}
}

// Run writes the generated rows.
func (m *Main) Run() error {
	f, err := os.Create(m.Out)
	if err != nil {
		return errors.Wrap(err, "creating output file")
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	g := NewRowGenerator(m.Seed)
	for i := 0; i < m.Rows; i++ {
		if _, err := w.WriteString(g.Record() + "\n"); err != nil {
			return errors.Wrap(err, "writing row")
		}
	}
	return errors.Wrap(w.Flush(), "flushing output")
}
