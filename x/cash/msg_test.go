package cash

import (
	"testing"

	"github.com/iov-one/custody/coin"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMsgValidate(t *testing.T) {
	src := custodytest.NewCondition().Address()
	dst := custodytest.NewCondition().Address()

	cases := map[string]struct {
		msg     SendMsg
		wantErr *errors.Error
	}{
		"valid": {
			msg: SendMsg{Source: src, Destination: dst, Amount: coin.NewCoinp(1, "IOV"), Memo: "rent"},
		},
		"no amount": {
			msg:     SendMsg{Source: src, Destination: dst},
			wantErr: errors.ErrInvalidAmount,
		},
		"negative": {
			msg:     SendMsg{Source: src, Destination: dst, Amount: coin.NewCoinp(-1, "IOV")},
			wantErr: errors.ErrInvalidAmount,
		},
		"bad ticker": {
			msg:     SendMsg{Source: src, Destination: dst, Amount: coin.NewCoinp(1, "iov")},
			wantErr: errors.ErrCurrency,
		},
		"missing destination": {
			msg:     SendMsg{Source: src, Amount: coin.NewCoinp(1, "IOV")},
			wantErr: errors.ErrInvalidInput,
		},
		"long memo": {
			msg:     SendMsg{Source: src, Destination: dst, Amount: coin.NewCoinp(1, "IOV"), Memo: string(make([]byte, 129))},
			wantErr: errors.ErrInvalidState,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "got %v", err)
		})
	}
}

func TestSendMsgSerialization(t *testing.T) {
	msg := &SendMsg{
		Source:      custodytest.NewCondition().Address(),
		Destination: custodytest.NewCondition().Address(),
		Amount:      coin.NewCoinp(12, "IOV"),
		Memo:        "dinner",
		Ref:         []byte{1, 2},
	}
	bz, err := msg.Marshal()
	require.NoError(t, err)

	var got SendMsg
	require.NoError(t, got.Unmarshal(bz))
	assert.Equal(t, msg, &got)
}
