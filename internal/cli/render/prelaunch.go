package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/liquis-finance/liq-deploy/internal/domain"
	"github.com/liquis-finance/liq-deploy/internal/domain/config"
	"github.com/liquis-finance/liq-deploy/internal/usecase"
	"github.com/samber/lo"
)

// PrelaunchRenderer renders the prelaunch deploy command
type PrelaunchRenderer struct {
	out io.Writer
}

// NewPrelaunchRenderer creates a new prelaunch renderer
func NewPrelaunchRenderer(out io.Writer) *PrelaunchRenderer {
	return &PrelaunchRenderer{out: out}
}

// RenderBanner prints the run's target before any transaction is sent
func (r *PrelaunchRenderer) RenderBanner(network *config.Network, deployer string, params usecase.PrelaunchParams) {
	headerColor.Fprintln(r.out, "🚀 Liquis prelaunch deployment")
	fmt.Fprintf(r.out, "   Network:       %s (chain %d)\n", nameColor.Sprint(network.Name), network.ChainID)
	fmt.Fprintf(r.out, "   Ledger:        %s\n", network.LedgerPath)
	fmt.Fprintf(r.out, "   Deployer:      %s\n", deployer)
	fmt.Fprintf(r.out, "   Confirmations: %d\n", params.Confirmations)
	if params.WireFrom != "" {
		fmt.Fprintf(r.out, "   Wiring from:   %s\n", params.WireFrom)
	} else if params.Resume {
		fmt.Fprintln(r.out, "   Resume:        reusing ledger addresses with code")
	}
	fmt.Fprintln(r.out)
}

// RenderResult prints the deployed addresses and the wiring summary
func (r *PrelaunchRenderer) RenderResult(result *usecase.PrelaunchResult) error {
	fmt.Fprintln(r.out)
	headerColor.Fprintln(r.out, "Contracts")

	t := newTable(r.out)
	t.AppendHeader([]any{"Name", "Artifact", "Address", ""})
	for _, step := range result.Deployed {
		status := "deployed"
		if step.Reused {
			status = "reused"
		}
		t.AppendRow([]any{nameColor.Sprint(step.Name), step.Artifact, step.Address.Hex(), faintColor.Sprint(status)})
	}
	t.Render()

	applied := lo.CountBy(result.Wiring, func(o *domain.WiringOutcome) bool { return o.Status == domain.WiringApplied })
	skipped := lo.CountBy(result.Wiring, func(o *domain.WiringOutcome) bool { return o.Status == domain.WiringSkipped })

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Prelaunch complete on %s: %d contracts, %d wiring steps applied, %d skipped",
		result.Network.Name, len(result.Deployed), applied, skipped)))
	fmt.Fprintf(r.out, "   Ledger written to %s\n", result.LedgerPath)
	return nil
}

// RenderFailure prints the error and the last step that succeeded
func (r *PrelaunchRenderer) RenderFailure(result *usecase.PrelaunchResult, err error) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, FormatError(failureHeadline(err)))

	if result == nil {
		return
	}
	if last := result.LastStep(); last != "" {
		fmt.Fprintf(r.out, "   Last successful step: %s\n", last)
	} else {
		fmt.Fprintln(r.out, "   No step completed")
	}
	if result.LedgerPath == "" || len(result.Deployed) == 0 {
		return
	}
	fmt.Fprintf(r.out, "   Ledger: %s\n", result.LedgerPath)

	var wiringErr *domain.WiringFailure
	if errors.As(err, &wiringErr) {
		fmt.Fprintln(r.out, faintColor.Sprintf("   Re-run with --wire-from %s to continue wiring", wiringErr.Step))
		return
	}
	fmt.Fprintln(r.out, faintColor.Sprint("   Re-run with --resume to reuse deployed contracts"))
}

func failureHeadline(err error) string {
	var persistErr *domain.PersistenceFailure
	if errors.As(err, &persistErr) {
		return fmt.Sprintf("ledger %s is behind the chain: %v", persistErr.Path, persistErr.Err)
	}
	return err.Error()
}
