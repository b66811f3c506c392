package domain

import (
	"fmt"
	"math/big"
)

const (
	// MaxFees is the booster's ceiling on the sum of all incentives, in basis points
	MaxFees = 4000
	// FeeDenominator is the booster's basis point denominator
	FeeDenominator = 10000
)

// FeeSchedule is the booster incentive split passed to setFees.
type FeeSchedule struct {
	LockIncentive    uint64 `json:"lockIncentive"`
	StakerIncentive  uint64 `json:"stakerIncentive"`
	EarmarkIncentive uint64 `json:"earmarkIncentive"`
	PlatformFee      uint64 `json:"platformFee"`
}

// DefaultFeeSchedule is the schedule applied at prelaunch.
var DefaultFeeSchedule = FeeSchedule{
	LockIncentive:    2150,
	StakerIncentive:  300,
	EarmarkIncentive: 50,
	PlatformFee:      0,
}

// Total is the sum of all four fees.
func (f FeeSchedule) Total() uint64 {
	return f.LockIncentive + f.StakerIncentive + f.EarmarkIncentive + f.PlatformFee
}

// Validate checks the schedule against the booster ceiling.
func (f FeeSchedule) Validate() error {
	if total := f.Total(); total > MaxFees {
		return fmt.Errorf("%w: total %d exceeds max %d", ErrInvalidFeeSchedule, total, MaxFees)
	}
	return nil
}

// Args returns the setFees arguments as uint256 values.
func (f FeeSchedule) Args() []any {
	return []any{
		new(big.Int).SetUint64(f.LockIncentive),
		new(big.Int).SetUint64(f.StakerIncentive),
		new(big.Int).SetUint64(f.EarmarkIncentive),
		new(big.Int).SetUint64(f.PlatformFee),
	}
}
