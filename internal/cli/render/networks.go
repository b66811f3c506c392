package render

import (
	"fmt"
	"io"

	"github.com/liquis-finance/liq-deploy/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// RenderNetworksList renders the supported networks with their ledger state
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	fmt.Fprintln(r.out, "🌐 Supported Networks:")
	fmt.Fprintln(r.out)

	t := newTable(r.out)
	t.AppendHeader([]any{"Network", "Chain ID", "Confirmations", "RPC", "Ledger", "Deployed"})
	for _, network := range result.Networks {
		rpc := network.RPCURL
		if rpc == "" {
			rpc = faintColor.Sprint("unset")
		}
		deployed := fmt.Sprintf("%d/8", network.Deployed)
		if network.Error != nil {
			deployed = errorColor.Sprintf("error: %v", network.Error)
		}
		t.AppendRow([]any{nameColor.Sprint(network.Name), network.ChainID, network.Confirmations, rpc, network.LedgerPath, deployed})
	}
	t.Render()
	return nil
}
