package utils

import (
	"time"

	"github.com/iov-one/custody"
)

// Logging writes one line per transaction with its path and duration.
// Failures are logged as errors, successful checks at debug level and
// successful deliveries at info level.
type Logging struct{}

var _ custody.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var log string
	if res != nil {
		log = res.Log
	}
	logTx(ctx, tx, start, log, err, true)
	return res, err
}

func (Logging) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var log string
	if res != nil {
		log = res.Log
	}
	logTx(ctx, tx, start, log, err, false)
	return res, err
}

func logTx(ctx custody.Context, tx custody.Tx, start time.Time, msg string, err error, check bool) {
	logger := custody.GetLogger(ctx).With(
		"path", txPath(tx),
		"duration", time.Since(start)/time.Microsecond,
	)
	// An empty message is still logged for the fields.
	switch {
	case err != nil:
		logger.With("err", err).Error(msg)
	case check:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}

// txPath never fails, an undecodable message is reported as missing.
func txPath(tx custody.Tx) string {
	if tx == nil {
		return "(missing)"
	}
	return custody.GetPath(tx)
}
