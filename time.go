package custody

import (
	"encoding/json"
	"time"

	"github.com/iov-one/custody/errors"
)

// UnixTime is a point in time with seconds precision. Deadlines and payout
// times are stored as UnixTime and compared against the block time
// truncated to seconds.
type UnixTime int64

// AsUnixTime drops the sub second part of t.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0)
}

func (t UnixTime) IsZero() bool {
	return t == 0
}

// Add behaves like time.Time.Add, truncated to whole seconds.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

// Validate rejects moments before the epoch.
func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrInvalidState, "negative value")
	}
	return nil
}

func (t UnixTime) String() string {
	return t.Time().UTC().String()
}

// UnmarshalJSON takes seconds since the epoch, or an RFC 3339 string
// which reads better in a genesis file.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var (
		secs  int64
		rfc   time.Time
		value UnixTime
	)
	switch {
	case json.Unmarshal(raw, &secs) == nil:
		value = UnixTime(secs)
	case json.Unmarshal(raw, &rfc) == nil:
		value = AsUnixTime(rfc)
	default:
		return errors.Wrap(errors.ErrInvalidInput, "invalid time format")
	}
	if value < 0 {
		return errors.Wrap(errors.ErrInvalidInput, "time before epoch")
	}
	*t = value
	return nil
}
