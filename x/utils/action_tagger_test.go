package utils_test

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/common"
)

func stringTag(key, value string) common.KVPair {
	return common.KVPair{
		Key:   []byte(key),
		Value: []byte(value),
	}
}

func TestActionTagger(t *testing.T) {
	cases := map[string]struct {
		handler custody.Handler
		tx      custody.Tx
		err     *errors.Error
		tags    []common.KVPair
	}{
		"simple call": {
			handler: &custodytest.Handler{},
			tx:      &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "escrow/create"}},
			tags:    []common.KVPair{stringTag(utils.ActionKey, "escrow/create")},
		},
		"passes through error": {
			handler: &custodytest.Handler{DeliverErr: errors.ErrHuman},
			tx:      &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "escrow/create"}},
			err:     errors.ErrHuman,
		},
		"undecodable message is rejected": {
			handler: &custodytest.Handler{},
			tx:      &custodytest.Tx{Err: errors.ErrInvalidMsg},
			err:     errors.ErrInvalidMsg,
		},
		"tags are additive": {
			handler: &custodytest.Handler{
				DeliverResult: custody.DeliverResult{Tags: []common.KVPair{stringTag(utils.ActionKey, "random")}},
			},
			tx:   &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "savings/distribute"}},
			tags: []common.KVPair{stringTag(utils.ActionKey, "random"), stringTag(utils.ActionKey, "savings/distribute")},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			stack := custodytest.Decorate(tc.handler, utils.NewActionTagger())
			res, err := stack.Deliver(context.Background(), store.MemStore(), tc.tx)
			if tc.err != nil {
				if !tc.err.Is(err) {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.tags, res.Tags)
		})
	}
}
