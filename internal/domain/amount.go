package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// CoinDecimals is the number of fractional digits carried by an Amount.
const CoinDecimals = 9

// CoinUnits is the number of base units in one whole coin.
const CoinUnits Amount = 1_000_000_000

// TokensPerCoin is the reward conversion rate: one pledged coin accrues this
// many reward tokens.
const TokensPerCoin = 1000

// unitsPerToken is the number of base units that accrue a single token.
const unitsPerToken = uint64(CoinUnits) / TokensPerCoin

// ErrInvalidAmountFormat is returned when a decimal amount cannot be parsed.
var ErrInvalidAmountFormat = errors.New("invalid amount format")

// Amount is an unsigned fixed-point currency value in base units.
type Amount uint64

// Tokens counts reward-token units.
type Tokens uint64

// Coins builds an Amount from a whole number of coins.
func Coins(n uint64) Amount {
	return Amount(n) * CoinUnits
}

// ParseAmount parses a non-negative decimal string such as "1.5" or "2".
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmountFormat
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" && (!hasFrac || frac == "") {
		return 0, ErrInvalidAmountFormat
	}
	if hasFrac && frac == "" {
		return 0, ErrInvalidAmountFormat
	}
	if len(frac) > CoinDecimals {
		return 0, fmt.Errorf("%w: more than %d decimal places", ErrInvalidAmountFormat, CoinDecimals)
	}
	var w uint64
	if whole != "" {
		if !isDigits(whole) {
			return 0, ErrInvalidAmountFormat
		}
		v, err := strconv.ParseUint(whole, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidAmountFormat, err)
		}
		w = v
	}
	var f uint64
	if frac != "" {
		if !isDigits(frac) {
			return 0, ErrInvalidAmountFormat
		}
		padded := frac + strings.Repeat("0", CoinDecimals-len(frac))
		v, err := strconv.ParseUint(padded, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidAmountFormat, err)
		}
		f = v
	}
	if w > (^uint64(0)-f)/uint64(CoinUnits) {
		return 0, fmt.Errorf("%w: out of range", ErrInvalidAmountFormat)
	}
	return Amount(w*uint64(CoinUnits) + f), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// String renders the amount as a decimal with trailing zeros trimmed.
func (a Amount) String() string {
	whole := uint64(a) / uint64(CoinUnits)
	frac := uint64(a) % uint64(CoinUnits)
	if frac == 0 {
		return strconv.FormatUint(whole, 10)
	}
	fs := fmt.Sprintf("%0*d", CoinDecimals, frac)
	return strconv.FormatUint(whole, 10) + "." + strings.TrimRight(fs, "0")
}

// MarshalText encodes the amount in its decimal form.
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes a decimal amount.
func (a *Amount) UnmarshalText(text []byte) error {
	v, err := ParseAmount(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// RewardTokens converts a pledged amount into reward tokens, rounding down.
func RewardTokens(a Amount) Tokens {
	return Tokens(uint64(a) / unitsPerToken)
}
