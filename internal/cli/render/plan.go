package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/liquis-finance/liq-deploy/internal/usecase"
	"gopkg.in/yaml.v3"
)

// Plan output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// PlanRenderer renders the deployment plan
type PlanRenderer struct {
	out io.Writer
}

// NewPlanRenderer creates a new plan renderer
func NewPlanRenderer(out io.Writer) *PlanRenderer {
	return &PlanRenderer{out: out}
}

// Render writes the plan in the given format
func (r *PlanRenderer) Render(plan *usecase.PlanDescription, format string) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		return r.renderText(plan)
	case FormatJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(plan); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (expected text, json or yaml)", format)
	}
}

func (r *PlanRenderer) renderText(plan *usecase.PlanDescription) error {
	headerColor.Fprintln(r.out, "Deployments")
	for _, step := range plan.Deploy {
		fmt.Fprintf(r.out, "  %d. %s %s\n", step.Order, nameColor.Sprint(step.Name), faintColor.Sprintf("(%s)", step.Artifact))
		for i, arg := range step.Args {
			fmt.Fprintf(r.out, "       [%d] %s\n", i, arg)
		}
	}

	fmt.Fprintln(r.out)
	headerColor.Fprintln(r.out, "Wiring")
	t := newTable(r.out)
	t.AppendHeader([]any{"#", "Step", "Call"})
	for _, step := range plan.Wiring {
		t.AppendRow([]any{step.Order, nameColor.Sprint(step.Name), fmt.Sprintf("%s.%s", step.Target, step.Method)})
	}
	t.Render()
	return nil
}
