package coin

import (
	"testing"

	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineCoins(t *testing.T) {
	cs, err := CombineCoins(NewCoin(5, "XLM"), NewCoin(1, "EUR"), NewCoin(2, "XLM"))
	require.NoError(t, err)
	want := Coins{NewCoinp(1, "EUR"), NewCoinp(7, "XLM")}
	assert.True(t, want.Equals(cs), "got %v", cs)
	assert.NoError(t, cs.Validate())
}

func TestCoinsAddSubtract(t *testing.T) {
	var wallet Coins

	wallet, err := wallet.Add(NewCoin(100, "XLM"))
	require.NoError(t, err)
	wallet, err = wallet.Add(NewCoin(50, "USDC"))
	require.NoError(t, err)
	assert.Equal(t, "USDC", wallet[0].Ticker)

	// Add must not modify the original collection.
	before := wallet.Clone()
	after, err := wallet.Add(NewCoin(1, "XLM"))
	require.NoError(t, err)
	assert.True(t, before.Equals(wallet))
	assert.Equal(t, int64(101), after.Balance("XLM").Whole)

	assert.True(t, wallet.Contains(NewCoin(100, "XLM")))
	assert.False(t, wallet.Contains(NewCoin(101, "XLM")))
	assert.False(t, wallet.Contains(NewCoin(1, "EUR")))

	wallet, err = wallet.Subtract(NewCoin(100, "XLM"))
	require.NoError(t, err)
	assert.Len(t, wallet, 1)
	assert.Equal(t, NewCoin(0, "XLM"), wallet.Balance("XLM"))

	wallet, err = wallet.Subtract(NewCoin(60, "USDC"))
	require.NoError(t, err)
	assert.False(t, wallet.IsNonNegative())

	same, err := wallet.Add(NewCoin(0, "USDC"))
	require.NoError(t, err)
	assert.True(t, same.Equals(wallet))
}

func TestCoinsCombine(t *testing.T) {
	a := Coins{NewCoinp(1, "EUR")}
	b := Coins{NewCoinp(2, "EUR"), NewCoinp(3, "XLM")}
	got, err := a.Combine(b)
	require.NoError(t, err)
	assert.True(t, Coins{NewCoinp(3, "EUR"), NewCoinp(3, "XLM")}.Equals(got))
	// Inputs are untouched.
	assert.Equal(t, int64(1), a[0].Whole)
}

func TestCoinsValidate(t *testing.T) {
	assert.NoError(t, Coins{}.Validate())
	assert.True(t, errors.ErrInvalidState.Is(Coins{NewCoinp(0, "XLM")}.Validate()))
	assert.True(t, errors.ErrInvalidState.Is(Coins{NewCoinp(1, "XLM"), NewCoinp(1, "EUR")}.Validate()))
	assert.True(t, errors.ErrCurrency.Is(Coins{NewCoinp(1, "xx")}.Validate()))
}

func TestNormalizeCoins(t *testing.T) {
	cases := map[string]struct {
		in   Coins
		want Coins
	}{
		"empty": {
			in:   nil,
			want: nil,
		},
		"already normalized": {
			in:   Coins{NewCoinp(1, "EUR"), NewCoinp(2, "XLM")},
			want: Coins{NewCoinp(1, "EUR"), NewCoinp(2, "XLM")},
		},
		"unordered": {
			in:   Coins{NewCoinp(2, "XLM"), NewCoinp(1, "EUR")},
			want: Coins{NewCoinp(1, "EUR"), NewCoinp(2, "XLM")},
		},
		"duplicates and zeros": {
			in:   Coins{NewCoinp(2, "XLM"), NewCoinp(0, "EUR"), NewCoinp(3, "XLM")},
			want: Coins{NewCoinp(5, "XLM")},
		},
		"sums to zero": {
			in:   Coins{NewCoinp(2, "XLM"), NewCoinp(-2, "XLM")},
			want: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := NormalizeCoins(tc.in)
			require.NoError(t, err)
			assert.True(t, tc.want.Equals(got), "got %v", got)
		})
	}
}
