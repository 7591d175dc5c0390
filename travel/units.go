package travel

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// tokenDecimals is the fixed-point scale of the TRT token.
const tokenDecimals = 18

// epochGuard is the largest timestamp still treated as "unset". Contracts
// store 0 or a tiny bootstrap value in that range.
const epochGuard = 1000

var tokenUnit = new(big.Int).Exp(big.NewInt(10), big.NewInt(tokenDecimals), nil)

// ErrAmountPrecision is returned by ParseToken when the fractional part
// carries more than 18 digits.
var ErrAmountPrecision = errors.New("travel: amount exceeds 18 decimal places")

// FormatToken renders a fixed-point TRT amount as an exact decimal string.
// The result always carries at least one fractional digit, so whole amounts
// read "1.0" rather than "1". FormatToken and ParseToken round-trip.
func FormatToken(wei *big.Int) string {
	if wei == nil {
		return "0.0"
	}
	v := new(big.Int).Set(wei)
	neg := v.Sign() < 0
	if neg {
		v.Neg(v)
	}
	whole, frac := new(big.Int).QuoRem(v, tokenUnit, new(big.Int))
	digits := fmt.Sprintf("%018s", frac.String())
	digits = strings.TrimRight(digits, "0")
	if digits == "" {
		digits = "0"
	}
	s := whole.String() + "." + digits
	if neg {
		s = "-" + s
	}
	return s
}

// ParseToken converts a decimal TRT string into the fixed-point on-chain
// representation. A fractional part longer than 18 digits is rejected rather
// than silently truncated.
func ParseToken(amount string) (*big.Int, error) {
	s := strings.TrimSpace(amount)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > tokenDecimals {
		return nil, ErrAmountPrecision
	}
	frac += strings.Repeat("0", tokenDecimals-len(frac))
	w, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return nil, fmt.Errorf("travel: invalid amount %q", amount)
	}
	f, ok := new(big.Int).SetString(frac, 10)
	if !ok {
		return nil, fmt.Errorf("travel: invalid amount %q", amount)
	}
	v := new(big.Int).Mul(w, tokenUnit)
	v.Add(v, f)
	if neg {
		v.Neg(v)
	}
	return v, nil
}

// AverageRating converts the on-chain x10 spot rating to its real value.
func AverageRating(raw *big.Int) float64 {
	if raw == nil {
		return 0
	}
	return float64(raw.Uint64()) / 10
}

// ReviewRating converts the on-chain x2 review rating to its real value.
func ReviewRating(raw *big.Int) float64 {
	if raw == nil {
		return 0
	}
	return float64(raw.Uint64()) / 2
}

// FormatTimestamp renders a unix timestamp as local calendar time. Values at
// or below the guard are considered unset and render as "".
func FormatTimestamp(ts *big.Int) string {
	if ts == nil || !ts.IsInt64() || ts.Int64() <= epochGuard {
		return ""
	}
	return time.Unix(ts.Int64(), 0).Format("2006-01-02 15:04:05")
}

// FormatTxHash renders a bytes32 transaction hash, mapping the all-zero
// sentinel to "".
func FormatTxHash(h [32]byte) string {
	if h == ([32]byte{}) {
		return ""
	}
	return common.Hash(h).Hex()
}

// splitTags splits a comma-separated tag string, dropping empty entries.
func splitTags(s string) []string {
	out := []string{}
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
