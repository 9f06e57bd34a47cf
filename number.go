package jsonmap

import (
	"errors"
	"math"
	"math/big"
	"strconv"
)

// numberValue converts a number literal that already matched the grammar.
// Integer literals outside the safe-integer range become *big.Int built from
// the digits; everything else, including literals with a fraction or an
// exponent, becomes a float64.
func numberValue(literal string, integer bool) (any, error) {
	if integer {
		if i, err := strconv.ParseInt(literal, 10, 64); err == nil {
			if i < MinSafeInteger || i > MaxSafeInteger {
				return big.NewInt(i), nil
			}
			if i == 0 && literal[0] == '-' {
				return math.Copysign(0, -1), nil
			}
			return float64(i), nil
		}
		if n, ok := new(big.Int).SetString(literal, 10); ok {
			return n, nil
		}
	}

	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f, nil
		}
		return nil, err
	}
	return f, nil
}

// IsBigInt reports whether a parsed value is an arbitrary-precision integer
func IsBigInt(value any) bool {
	_, ok := value.(*big.Int)
	return ok
}
