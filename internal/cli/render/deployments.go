package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/liquis-finance/liq-deploy/internal/usecase"
)

// DeploymentsRenderer renders the ledger of a network
type DeploymentsRenderer struct {
	out io.Writer
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out}
}

// RenderDeployments prints one row per ledger slot
func (r *DeploymentsRenderer) RenderDeployments(result *usecase.ShowDeploymentsResult) error {
	headerColor.Fprintf(r.out, "Contracts on %s (chain %d)\n", result.Network.Name, result.Network.ChainID)
	fmt.Fprintln(r.out, faintColor.Sprintf("%s, version %d", result.LedgerPath, result.Version))
	fmt.Fprintln(r.out)

	deployed := 0
	t := newTable(r.out)
	t.AppendHeader([]any{"Name", "Artifact", "Address"})
	for _, entry := range result.Entries {
		address := faintColor.Sprint("not deployed")
		if entry.Deployed {
			address = entry.Address.Hex()
			deployed++
		}
		t.AppendRow([]any{nameColor.Sprint(entry.Name), entry.Artifact, address})
	}
	t.Render()

	if deployed == 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("No deployments recorded for %s", result.Network.Name)))
	}
	return nil
}

// RenderJSON prints the entries as a JSON object keyed by name
func (r *DeploymentsRenderer) RenderJSON(result *usecase.ShowDeploymentsResult) error {
	out := make(map[string]string, len(result.Entries))
	for _, entry := range result.Entries {
		if entry.Deployed {
			out[entry.Name] = entry.Address.Hex()
		}
	}
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
