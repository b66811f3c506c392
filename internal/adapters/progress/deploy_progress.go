package progress

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/liquis-finance/liq-deploy/internal/domain"
	"github.com/liquis-finance/liq-deploy/internal/usecase"
)

var (
	okColor    = color.New(color.FgGreen)
	skipColor  = color.New(color.FgWhite, color.Faint)
	failColor  = color.New(color.FgRed)
	infoColor  = color.New(color.FgCyan)
	countColor = color.New(color.FgWhite, color.Faint)
)

// DeployProgress prints one line per deploy and wiring step. In interactive
// mode a spinner runs while a transaction is pending.
type DeployProgress struct {
	out     io.Writer
	spinner *Spinner
}

// NewDeployProgress creates a progress reporter writing to out
func NewDeployProgress(out io.Writer, interactive bool) *DeployProgress {
	p := &DeployProgress{out: out}
	if interactive {
		p.spinner = NewSpinner(out)
	}
	return p
}

// OnProgress handles progress events
func (p *DeployProgress) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Spinner {
		if p.spinner != nil {
			p.spinner.Update(fmt.Sprintf("%s %s", counter(event), event.Message))
		}
		return
	}
	if p.spinner != nil {
		p.spinner.Stop()
	}

	switch event.Stage {
	case usecase.StageDeployCompleted:
		if step, ok := event.Metadata.(*usecase.DeployedStep); ok {
			p.line(okColor, "✓", event, fmt.Sprintf("%-22s %s", step.Name, step.Address.Hex()))
		}
	case usecase.StageDeploySkipped:
		if step, ok := event.Metadata.(*usecase.DeployedStep); ok {
			p.line(skipColor, "⊘", event, fmt.Sprintf("%-22s %s (reused)", step.Name, step.Address.Hex()))
		}
	case usecase.StageWiringCompleted:
		outcome, ok := event.Metadata.(*domain.WiringOutcome)
		if !ok {
			return
		}
		switch outcome.Status {
		case domain.WiringApplied:
			p.line(okColor, "✓", event, outcome.Step)
		case domain.WiringSkipped:
			p.line(skipColor, "⊘", event, fmt.Sprintf("%s (%s)", outcome.Step, outcome.Reason))
		case domain.WiringFailed:
			p.line(failColor, "✗", event, fmt.Sprintf("%s: %v", outcome.Step, outcome.Err))
		}
	}
}

func (p *DeployProgress) line(c *color.Color, icon string, event usecase.ProgressEvent, text string) {
	fmt.Fprintf(p.out, "%s %s %s\n", c.Sprint(icon), countColor.Sprint(counter(event)), text)
}

func counter(event usecase.ProgressEvent) string {
	if event.Total == 0 {
		return ""
	}
	width := len(fmt.Sprint(event.Total))
	return fmt.Sprintf("[%*d/%d]", width, event.Current, event.Total)
}

// Info prints an info message
func (p *DeployProgress) Info(message string) {
	p.print(infoColor, message)
}

// Error prints an error message
func (p *DeployProgress) Error(message string) {
	p.print(failColor, message)
}

func (p *DeployProgress) print(c *color.Color, message string) {
	if p.spinner == nil {
		c.Fprintln(p.out, message)
		return
	}
	p.spinner.Around(func() { c.Fprintln(p.out, message) })
}

var _ usecase.ProgressSink = (*DeployProgress)(nil)
