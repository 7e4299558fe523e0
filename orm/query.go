package orm

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// ConsumeIterator reads all remaining entries and releases the iterator.
// Only use it when the result is known to be small.
func ConsumeIterator(it custody.Iterator) ([]custody.Model, error) {
	defer it.Release()

	var all []custody.Model
	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return all, nil
		}
		if err != nil {
			return nil, err
		}
		all = append(all, custody.Model{Key: key, Value: value})
	}
}

func queryPrefix(db custody.ReadOnlyKVStore, prefix []byte) ([]custody.Model, error) {
	it, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(it)
}

// prefixRange returns the [start, end) range holding every key that starts
// with prefix. The end is open when no key can follow the prefix.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return prefix, end[:i+1]
		}
	}
	// all bytes were 0xFF
	return prefix, nil
}

// RegisterQuery exposes the raw key value store under "/", so a client can
// read any record or sequence by its full database key.
func RegisterQuery(qr custody.QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

var _ custody.QueryHandler = rawQuery{}

func (rawQuery) Query(ctx custody.Context, db custody.ReadOnlyKVStore, mod string, data []byte) ([]custody.Model, error) {
	switch mod {
	case custody.KeyQueryMod:
		value, err := db.Get(data)
		if err != nil || value == nil {
			return nil, err
		}
		return []custody.Model{{Key: data, Value: value}}, nil
	case custody.PrefixQueryMod:
		return queryPrefix(db, data)
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown query mod: %q", mod)
	}
}
