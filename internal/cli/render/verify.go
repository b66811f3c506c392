package render

import (
	"fmt"
	"io"

	"github.com/liquis-finance/liq-deploy/internal/usecase"
)

// VerifyRenderer handles rendering of verification results
type VerifyRenderer struct {
	out     io.Writer
	verbose bool
}

// NewVerifyRenderer creates a new verify renderer. Without verbose only
// failing checks are listed.
func NewVerifyRenderer(out io.Writer, verbose bool) *VerifyRenderer {
	return &VerifyRenderer{out: out, verbose: verbose}
}

// RenderResult renders the verification checks and a summary line
func (r *VerifyRenderer) RenderResult(result *usecase.VerifyResult) error {
	headerColor.Fprintf(r.out, "Verifying prelaunch contracts on %s (chain %d)\n\n", result.Network.Name, result.Network.ChainID)

	failed := result.Failed()
	if r.verbose || failed > 0 {
		t := newTable(r.out)
		t.AppendHeader([]any{"Contract", "Field", "Expected", "Actual", "Status"})
		for _, check := range result.Checks {
			if !r.verbose && check.OK {
				continue
			}
			status := okColor.Sprint(title("ok"))
			if !check.OK {
				status = errorColor.Sprint(title("mismatch"))
			}
			t.AppendRow([]any{string(check.Contract), check.Field, check.Expected, check.Actual, status})
		}
		t.Render()
		fmt.Fprintln(r.out)
	}

	if failed == 0 {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("All %d checks passed", len(result.Checks))))
	} else {
		fmt.Fprintln(r.out, FormatError(fmt.Sprintf("%d of %d checks failed", failed, len(result.Checks))))
	}
	return nil
}
