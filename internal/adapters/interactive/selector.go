package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/liquis-finance/liq-deploy/internal/config"
	domainconfig "github.com/liquis-finance/liq-deploy/internal/domain/config"
	"github.com/liquis-finance/liq-deploy/internal/usecase"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *domainconfig.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *domainconfig.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectNetwork prompts for one of the given networks
func (s *SelectorAdapter) SelectNetwork(ctx context.Context, networks []string) (string, error) {
	if s.config.NonInteractive {
		return "", fmt.Errorf("no network specified (use --network; interactive selection is disabled)")
	}

	if len(networks) == 0 {
		return "", fmt.Errorf("no networks available for selection")
	}
	if len(networks) == 1 {
		return networks[0], nil
	}

	options := formatNetworkOptions(networks)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             "Select network",
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(networks),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}

	return networks[index], nil
}

// formatNetworkOptions renders "name (chain N)" entries
func formatNetworkOptions(networks []string) []string {
	options := make([]string, len(networks))
	for i, name := range networks {
		label := color.New(color.FgWhite, color.Bold).Sprint(name)
		if n, err := config.LookupNetwork(name); err == nil {
			options[i] = fmt.Sprintf("%s %s", label, color.New(color.FgBlue).Sprintf("(chain %d)", n.ChainID))
		} else {
			options[i] = label
		}
	}
	return options
}

// createFuzzySearchFunc creates a fuzzy search function for promptui.
// Matching runs against the plain item names, not the colored labels.
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

var _ usecase.NetworkSelector = (*SelectorAdapter)(nil)
