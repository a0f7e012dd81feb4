package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Bar renders one spinner per pipeline stage when stdout is a terminal and
// degrades to plain log lines otherwise (pipes, CI).
type Bar struct {
	out  *os.File
	tty  bool
	bar  *progressbar.ProgressBar
	stop chan struct{}
}

func New(out *os.File) *Bar {
	return &Bar{
		out: out,
		tty: isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()),
	}
}

func (b *Bar) StartStage(name string) {
	if !b.tty {
		fmt.Fprintf(b.out, "%s...\n", name)
		return
	}
	b.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(b.out),
		progressbar.OptionSetDescription(name),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	b.stop = make(chan struct{})
	go func(bar *progressbar.ProgressBar, stop chan struct{}) {
		tick := time.NewTicker(100 * time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case <-stop:
				return
			case <-tick.C:
				_ = bar.Add(1)
			}
		}
	}(b.bar, b.stop)
}

func (b *Bar) FinishStage(name string) {
	if !b.tty {
		return
	}
	if b.stop != nil {
		close(b.stop)
		b.stop = nil
	}
	if b.bar != nil {
		_ = b.bar.Finish()
		b.bar = nil
	}
	fmt.Fprintf(b.out, "%s done\n", name)
}

// Nop satisfies the reporter interface for tests and quiet mode.
type Nop struct{}

func (Nop) StartStage(string)  {}
func (Nop) FinishStage(string) {}
