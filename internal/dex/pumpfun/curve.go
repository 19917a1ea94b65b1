// ==============================================
// File: internal/dex/pumpfun/curve.go
// ==============================================
package pumpfun

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/rovshanmuradov/solana-composer/internal/dex"
)

const (
	// BondingCurveDiscriminator is the 8-byte account tag every bonding curve
	// account starts with.
	BondingCurveDiscriminator uint64 = 6966180631402821399

	// TokenDecimals is the decimal precision of every pump.fun mint.
	TokenDecimals uint8 = 6

	// LamportsPerSOL is the smallest-unit scale of the quote currency.
	LamportsPerSOL uint64 = 1_000_000_000

	// bondingCurveDataLen covers discriminator, five u64 fields and the
	// completion flag.
	bondingCurveDataLen = 8 + 5*8 + 1
)

// BondingCurveState is the reserve snapshot decoded from a bonding curve
// account. It is rebuilt from the raw account bytes on every trade call and
// never cached: concurrent trades against the same curve are serialized by the
// ledger, not by this module.
type BondingCurveState struct {
	VirtualTokenReserves uint64
	VirtualSolReserves   uint64
	RealTokenReserves    uint64
	RealSolReserves      uint64
	TokenTotalSupply     uint64
	Complete             bool
}

// ParseBondingCurveState decodes the versioned binary layout of a bonding
// curve account. All integers are little-endian; a short buffer or a wrong
// leading discriminator fails with ErrMalformedAccount regardless of the
// remaining bytes.
func ParseBondingCurveState(data []byte) (*BondingCurveState, error) {
	if len(data) < bondingCurveDataLen {
		return nil, fmt.Errorf("%w: data length %d, need %d", dex.ErrMalformedAccount, len(data), bondingCurveDataLen)
	}
	if tag := binary.LittleEndian.Uint64(data[0:8]); tag != BondingCurveDiscriminator {
		return nil, fmt.Errorf("%w: discriminator %d", dex.ErrMalformedAccount, tag)
	}

	return &BondingCurveState{
		VirtualTokenReserves: binary.LittleEndian.Uint64(data[8:16]),
		VirtualSolReserves:   binary.LittleEndian.Uint64(data[16:24]),
		RealTokenReserves:    binary.LittleEndian.Uint64(data[24:32]),
		RealSolReserves:      binary.LittleEndian.Uint64(data[32:40]),
		TokenTotalSupply:     binary.LittleEndian.Uint64(data[40:48]),
		Complete:             data[48] != 0,
	}, nil
}

// Price returns the spot price in SOL per whole token. The value is advisory:
// it drives the bound computation only, final settlement arithmetic happens in
// the pump.fun program itself. Zero virtual reserves are a hard error, never a
// silent NaN or Inf.
func (s *BondingCurveState) Price() (float64, error) {
	if s.VirtualTokenReserves == 0 || s.VirtualSolReserves == 0 {
		return 0, fmt.Errorf("%w: virtual_token=%d virtual_sol=%d",
			dex.ErrInvalidPrice, s.VirtualTokenReserves, s.VirtualSolReserves)
	}
	price := (float64(s.VirtualSolReserves) / float64(LamportsPerSOL)) /
		(float64(s.VirtualTokenReserves) / math.Pow10(int(TokenDecimals)))
	return price, nil
}
