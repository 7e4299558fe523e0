package coin

import (
	"sort"

	"github.com/iov-one/custody/errors"
)

// Coins is a set of holdings. Operations expect and keep the normalized
// form: sorted by ticker, one coin per ticker and no zero amounts.
type Coins []*Coin

// CombineCoins returns the normalized sum of all given coins.
func CombineCoins(cs ...Coin) (Coins, error) {
	var (
		sum = Coins{}
		err error
	)
	for _, c := range cs {
		if sum, err = sum.Add(c); err != nil {
			return nil, err
		}
	}
	if err := sum.Validate(); err != nil {
		return nil, err
	}
	return sum, nil
}

// Clone returns a deep copy.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	cpy := make(Coins, len(cs))
	for i, c := range cs {
		cpy[i] = c.Clone()
	}
	return cpy
}

// find returns the position of ticker in the set and whether it is
// present. When absent, the position is where it would be inserted.
func (cs Coins) find(ticker string) (int, bool) {
	at := sort.Search(len(cs), func(i int) bool {
		return cs[i].Ticker >= ticker
	})
	return at, at < len(cs) && cs[at].Ticker == ticker
}

// Add returns a copy of the set with c added. A ticker whose amount drops
// to zero is removed.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}
	out := cs.Clone()
	at, found := out.find(c.Ticker)
	if !found {
		out = append(out, nil)
		copy(out[at+1:], out[at:])
		out[at] = &c
		return out, nil
	}
	sum, err := out[at].Add(c)
	if err != nil {
		return nil, err
	}
	if sum.IsZero() {
		return append(out[:at], out[at+1:]...), nil
	}
	out[at] = &sum
	return out, nil
}

// Subtract returns a copy of the set with c taken out. The result may hold
// negative amounts.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	return cs.Add(c.Negative())
}

// Combine returns the sum of both sets.
func (cs Coins) Combine(o Coins) (Coins, error) {
	out := cs
	for _, c := range o {
		var err error
		if out, err = out.Add(*c); err != nil {
			return nil, err
		}
	}
	return out.Clone(), nil
}

// Contains reports whether the set holds at least c.
func (cs Coins) Contains(c Coin) bool {
	return cs.Balance(c.Ticker).IsGTE(c)
}

// Balance returns the amount held of ticker, a zero coin when there is
// none.
func (cs Coins) Balance(ticker string) Coin {
	if at, found := cs.find(ticker); found {
		return *cs[at]
	}
	return Coin{Ticker: ticker}
}

func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// IsNonNegative is true when no amount in the set is below zero.
func (cs Coins) IsNonNegative() bool {
	for _, c := range cs {
		if !c.IsNonNegative() {
			return false
		}
	}
	return true
}

func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Validate checks every coin and the normalized form.
func (cs Coins) Validate() error {
	var err error
	for i, c := range cs {
		err = errors.Append(err, errors.Wrap(c.Validate(), "coin"))
		if c.IsZero() {
			err = errors.Append(err, errors.Wrapf(errors.ErrInvalidState, "zero %s", c.Ticker))
		}
		if i > 0 && cs[i-1].Ticker >= c.Ticker {
			err = errors.Append(err, errors.Wrap(errors.ErrInvalidState, "not sorted"))
		}
	}
	return err
}

// NormalizeCoins merges, sorts and drops zero coins. An already normalized
// set is returned as is, an empty result is nil.
func NormalizeCoins(cs Coins) (Coins, error) {
	if len(cs) == 0 {
		return nil, nil
	}
	if cs.normalized() {
		return cs, nil
	}
	var (
		out = Coins{}
		err error
	)
	for _, c := range cs {
		if c == nil {
			continue
		}
		if out, err = out.Add(*c); err != nil {
			return nil, errors.Wrap(err, "cannot sum coins")
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func (cs Coins) normalized() bool {
	for i, c := range cs {
		if IsEmpty(c) {
			return false
		}
		if i > 0 && cs[i-1].Ticker >= c.Ticker {
			return false
		}
	}
	return true
}
