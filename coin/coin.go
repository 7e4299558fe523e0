package coin

import (
	"encoding/json"
	"regexp"
	"strconv"

	"github.com/iov-one/custody/errors"
)

// IsCC reports whether s is a valid ticker: three or four upper case
// letters.
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

// Amounts are bounded so that the sum of two valid amounts never overflows
// int64.
const (
	MaxInt int64 = 999999999999999999
	MinInt       = -MaxInt
)

// Coin is an amount of a single token in its smallest indivisible unit.
type Coin struct {
	Ticker string `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Whole  int64  `protobuf:"varint,2,opt,name=whole,proto3" json:"whole,omitempty"`
}

func NewCoin(whole int64, ticker string) Coin {
	return Coin{Ticker: ticker, Whole: whole}
}

func NewCoinp(whole int64, ticker string) *Coin {
	return &Coin{Ticker: ticker, Whole: whole}
}

// ID returns the ticker, coins are grouped by it.
func (c Coin) ID() string {
	return c.Ticker
}

func inRange(whole int64) error {
	if whole < MinInt || whole > MaxInt {
		return errors.Wrapf(errors.ErrOverflow, "%d out of range", whole)
	}
	return nil
}

// Multiply returns the coin scaled by times. It fails with ErrOverflow when
// the result does not fit the accepted range.
func (c Coin) Multiply(times int64) (Coin, error) {
	if times == 0 || c.Whole == 0 {
		return Coin{Ticker: c.Ticker}, nil
	}
	whole := c.Whole * times
	if whole/times != c.Whole {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%d times %d", c.Whole, times)
	}
	if err := inRange(whole); err != nil {
		return Coin{}, err
	}
	return Coin{Ticker: c.Ticker, Whole: whole}, nil
}

// Add sums two coins of the same ticker. A zero coin without a ticker is
// neutral, so it can be used as an accumulator.
func (c Coin) Add(o Coin) (Coin, error) {
	switch {
	case c.Ticker == "" && c.IsZero():
		return o, nil
	case o.Ticker == "" && o.IsZero():
		return c, nil
	case c.Ticker != o.Ticker:
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "adding %s to %s", o.Ticker, c.Ticker)
	}
	sum := Coin{Ticker: c.Ticker, Whole: c.Whole + o.Whole}
	if err := inRange(sum.Whole); err != nil {
		return Coin{}, err
	}
	return sum, nil
}

// Negative returns the coin with the opposite amount.
func (c Coin) Negative() Coin {
	return Coin{Ticker: c.Ticker, Whole: -c.Whole}
}

func (c Coin) Subtract(o Coin) (Coin, error) {
	return c.Add(o.Negative())
}

// Compare orders two coins by amount only, the tickers are not checked.
func (c Coin) Compare(o Coin) int {
	switch {
	case c.Whole < o.Whole:
		return -1
	case c.Whole > o.Whole:
		return 1
	}
	return 0
}

func (c Coin) Equals(o Coin) bool {
	return c == o
}

// IsEmpty is true for a nil or zero coin.
func IsEmpty(c *Coin) bool {
	return c == nil || c.IsZero()
}

func (c Coin) IsZero() bool        { return c.Whole == 0 }
func (c Coin) IsPositive() bool    { return c.Whole > 0 }
func (c Coin) IsNonNegative() bool { return c.Whole >= 0 }

// IsGTE is true when o has the same ticker and c holds at least as much.
func (c Coin) IsGTE(o Coin) bool {
	return c.Ticker == o.Ticker && c.Whole >= o.Whole
}

// Clone returns an independent copy, nil for nil.
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	cpy := *c
	return &cpy
}

// Validate checks the ticker and the range. Negative amounts are valid,
// callers requiring a positive amount check it themselves.
func (c Coin) Validate() error {
	var err error
	if !IsCC(c.Ticker) {
		err = errors.Append(err, errors.Wrapf(errors.ErrCurrency, "invalid currency: %s", c.Ticker))
	}
	return errors.Append(err, inRange(c.Whole))
}

// String returns the "<whole> <ticker>" form accepted by ParseHumanFormat.
func (c Coin) String() string {
	s := strconv.FormatInt(c.Whole, 10)
	if c.Ticker == "" {
		return s
	}
	return s + " " + c.Ticker
}

var humanFormat = regexp.MustCompile(`^(-?)\s*(\d+)\s*([A-Z]{3,4})$`)

// ParseHumanFormat reads a coin written as "<whole> <ticker>", for example
// "1000 XLM" or "-4 USDC".
func ParseHumanFormat(s string) (Coin, error) {
	m := humanFormat.FindStringSubmatch(s)
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInvalidInput, "invalid coin format %q", s)
	}
	whole, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrInvalidInput, "invalid whole value: %s", err)
	}
	if m[1] == "-" {
		whole = -whole
	}
	return Coin{Ticker: m[3], Whole: whole}, nil
}

// UnmarshalJSON accepts the human readable string as well as an object
// with whole and ticker fields.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	// plain avoids calling this method again
	type plain Coin
	var p plain
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	*c = Coin(p)
	return nil
}

// Set implements flag.Value.
func (c *Coin) Set(raw string) error {
	parsed, err := ParseHumanFormat(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
