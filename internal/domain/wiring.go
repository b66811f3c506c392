package domain

// WiringStatus is the terminal state of one wiring step
type WiringStatus string

const (
	WiringApplied WiringStatus = "applied"
	WiringSkipped WiringStatus = "skipped"
	WiringFailed  WiringStatus = "failed"
)

// WiringOutcome records what happened to a single administrative step.
type WiringOutcome struct {
	Step    string       `json:"step"`
	Target  ContractName `json:"target"`
	Method  string       `json:"method"`
	Status  WiringStatus `json:"status"`
	Receipt *TxReceipt   `json:"receipt,omitempty"`
	Reason  string       `json:"reason,omitempty"`
	Err     error        `json:"-"`
}
