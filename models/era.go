package models

import (
	"math/bits"

	"github.com/centrifuge/go-substrate-rpc-client/v2/types"
)

const (
	MinMortalPeriod     uint64 = 4
	MaxMortalPeriod     uint64 = 1 << 16
	DefaultMortalPeriod uint64 = 32
)

// CheckedMortality is a normalized validity window: a power of two period
// and the (quantized) phase of the anchor block within it.
type CheckedMortality struct {
	Immortal bool
	Period   uint64
	Phase    uint64
}

// ImmortalMortality never expires; it is anchored to the genesis hash.
func ImmortalMortality() CheckedMortality {
	return CheckedMortality{Immortal: true}
}

// NewMortal builds the window for a requested period starting at height.
// Periods are rounded up to a power of two and clamped to [4, 65536].
func NewMortal(period, height uint64) CheckedMortality {
	period = normalizePeriod(period)
	qf := quantizeFactor(period)
	phase := height % period / qf * qf

	return CheckedMortality{
		Period: period,
		Phase:  phase,
	}
}

func normalizePeriod(period uint64) uint64 {
	if period >= MaxMortalPeriod {
		return MaxMortalPeriod
	}
	if period <= MinMortalPeriod {
		return MinMortalPeriod
	}
	return 1 << bits.Len64(period-1)
}

func quantizeFactor(period uint64) uint64 {
	if qf := period >> 12; qf > 1 {
		return qf
	}
	return 1
}

// Era renders the window in its two byte wire form
func (m CheckedMortality) Era() types.ExtrinsicEra {
	if m.Immortal {
		return types.ExtrinsicEra{IsImmortalEra: true}
	}

	low := bits.TrailingZeros64(m.Period) - 1
	if low < 1 {
		low = 1
	}
	if low > 15 {
		low = 15
	}
	encoded := uint16(low) | uint16(m.Phase/quantizeFactor(m.Period))<<4

	return types.ExtrinsicEra{
		IsMortalEra: true,
		AsMortalEra: types.MortalEra{
			First:  byte(encoded),
			Second: byte(encoded >> 8),
		},
	}
}

// Birth is the first block the window covers, given the current height
func (m CheckedMortality) Birth(current uint64) uint64 {
	if m.Immortal {
		return 0
	}
	birth := (maxU64(current, m.Phase)-m.Phase)/m.Period*m.Period + m.Phase
	return birth
}

// Death is the first block after the window, given the current height
func (m CheckedMortality) Death(current uint64) uint64 {
	if m.Immortal {
		return ^uint64(0)
	}
	return m.Birth(current) + m.Period
}

// MortalityFromEra reverses Era
func MortalityFromEra(era types.ExtrinsicEra) CheckedMortality {
	if !era.IsMortalEra {
		return ImmortalMortality()
	}

	encoded := uint64(era.AsMortalEra.First) | uint64(era.AsMortalEra.Second)<<8
	period := uint64(2) << (encoded % 16)
	return CheckedMortality{
		Period: period,
		Phase:  (encoded >> 4) * quantizeFactor(period),
	}
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
