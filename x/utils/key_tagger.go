package utils

import (
	"bytes"
	"fmt"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/store"
	"github.com/tendermint/tendermint/libs/common"
)

// KeyTagger tags a delivered transaction with every key it wrote. A key
// "esc:<id>" becomes the tag "esc=<HEX id>" with the value "s" for a set
// or "d" for a delete, so a client can follow every transaction that
// touched one escrow or one pool.
type KeyTagger struct{}

var _ custody.Decorator = KeyTagger{}

func NewKeyTagger() KeyTagger {
	return KeyTagger{}
}

func (KeyTagger) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (KeyTagger) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	recorder := store.NewRecordingStore(db)
	res, err := next.Deliver(ctx, recorder, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, changesToTags(recorder.KVPairs())...)
	return res, nil
}

var (
	recordSet    = []byte("s")
	recordDelete = []byte("d")
)

// changesToTags maps a change set to tags sorted by key. A nil value
// marks a delete.
func changesToTags(changes map[string][]byte) common.KVPairs {
	if len(changes) == 0 {
		return nil
	}
	tags := make(common.KVPairs, 0, len(changes))
	for key, value := range changes {
		op := recordSet
		if value == nil {
			op = recordDelete
		}
		tags = append(tags, common.KVPair{Key: tagKey([]byte(key)), Value: op})
	}
	tags.Sort()
	return tags
}

// tagKey hex encodes the id part of a "<bucket>:<id>" key. Keys without a
// bucket are hex encoded whole.
func tagKey(key []byte) []byte {
	i := bytes.IndexByte(key, ':')
	if i < 0 {
		return []byte(fmt.Sprintf("%X", key))
	}
	return []byte(fmt.Sprintf("%s=%X", key[:i], key[i+1:]))
}
