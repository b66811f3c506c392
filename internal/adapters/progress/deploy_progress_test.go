package progress

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/liquis-finance/liq-deploy/internal/domain"
	"github.com/liquis-finance/liq-deploy/internal/usecase"
	"github.com/stretchr/testify/assert"
)

func TestDeployProgress(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	ctx := context.Background()
	var buf bytes.Buffer
	p := NewDeployProgress(&buf, false)
	addr := common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

	p.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageDeployStarting, Current: 1, Total: 8, Message: "Deploying VoterProxy", Spinner: true})
	p.OnProgress(ctx, usecase.ProgressEvent{
		Stage: usecase.StageDeployCompleted, Current: 1, Total: 8,
		Metadata: &usecase.DeployedStep{Name: domain.VoterProxy, Address: addr},
	})
	p.OnProgress(ctx, usecase.ProgressEvent{
		Stage: usecase.StageDeploySkipped, Current: 2, Total: 8,
		Metadata: &usecase.DeployedStep{Name: domain.Liq, Address: addr, Reused: true},
	})
	p.OnProgress(ctx, usecase.ProgressEvent{
		Stage: usecase.StageWiringCompleted, Current: 3, Total: 12,
		Metadata: &domain.WiringOutcome{Step: "treasuryTransfer", Status: domain.WiringSkipped, Reason: "deployer holds no LIQ"},
	})
	p.OnProgress(ctx, usecase.ProgressEvent{
		Stage: usecase.StageWiringCompleted, Current: 10, Total: 12,
		Metadata: &domain.WiringOutcome{Step: "setFees", Status: domain.WiringFailed, Err: errors.New("reverted")},
	})
	p.Info("done")

	assert.Equal(t,
		"✓ [1/8] voterProxy             "+addr.Hex()+"\n"+
			"⊘ [2/8] liq                    "+addr.Hex()+" (reused)\n"+
			"⊘ [ 3/12] treasuryTransfer (deployer holds no LIQ)\n"+
			"✗ [10/12] setFees: reverted\n"+
			"done\n",
		buf.String())
}

func TestCounter(t *testing.T) {
	assert.Equal(t, "", counter(usecase.ProgressEvent{}))
	assert.Equal(t, "[ 7/12]", counter(usecase.ProgressEvent{Current: 7, Total: 12}))
}
