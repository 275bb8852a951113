package remittance

import (
	"encoding/json"
	"math"
	"time"

	"github.com/iov-one/remittance/errors"
)

// UnixTime represents a point in time as POSIX time. Ledger deadlines use
// seconds precision, which is plenty for an escrow and avoids carrying
// nanoseconds through serialization.
type UnixTime int64

// Time returns a time.Time structure that represents the same moment in time.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0)
}

// IsZero returns true if this time represents a zero value.
func (t UnixTime) IsZero() bool {
	return t == 0
}

// Add modifies this UNIX time by given duration. This is compatible with the
// time.Time.Add method. The result is clamped to the valid range, because a
// deadline must never silently wrap around.
func (t UnixTime) Add(d time.Duration) UnixTime {
	n := t + UnixTime(d/time.Second)
	if d > 0 && n < t {
		return math.MaxInt64
	}
	if d < 0 && n > t {
		return 0
	}
	return n
}

// AsUnixTime converts given Time structure into its UNIX time representation.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// UnmarshalJSON supports unmarshaling both as time.Time and from a number.
// Usually a number is used as a representation of this time in JSON but it is
// convenient to use a string format in configurations (ie genesis file).
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var unix int64
	if err := json.Unmarshal(raw, &unix); err == nil {
		if unix < 0 {
			return errors.Wrap(errors.ErrInput, "time before epoch")
		}
		*t = UnixTime(unix)
		return nil
	}

	var stdtime time.Time
	if err := json.Unmarshal(raw, &stdtime); err == nil {
		unix := UnixTime(stdtime.Unix())
		if unix < 0 {
			return errors.Wrap(errors.ErrInput, "time before epoch")
		}
		*t = unix
		return nil
	}

	return errors.Wrap(errors.ErrInput, "invalid time format")
}

// Validate returns an error if this time value is invalid.
func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrState, "negative value")
	}
	return nil
}

// String returns the usual string representation of this time as the
// time.Time structure would.
func (t UnixTime) String() string {
	return t.Time().String()
}

// UnixDuration represents a time duration with seconds precision. It is the
// wire type for deadline offsets.
type UnixDuration int32

// AsUnixDuration converts given Duration into UnixDuration. Precision below
// one second is dropped.
func AsUnixDuration(d time.Duration) UnixDuration {
	return UnixDuration(d / time.Second)
}

// Duration returns the time.Duration representation.
func (d UnixDuration) Duration() time.Duration {
	return time.Duration(d) * time.Second
}

func (d *UnixDuration) UnmarshalJSON(raw []byte) error {
	var sec int32
	if err := json.Unmarshal(raw, &sec); err == nil {
		*d = UnixDuration(sec)
		return nil
	}

	var human string
	if err := json.Unmarshal(raw, &human); err != nil {
		return errors.Wrap(errors.ErrInput, "invalid duration format")
	}
	dur, err := time.ParseDuration(human)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "parse duration: %s", err)
	}
	*d = AsUnixDuration(dur)
	return nil
}

func (d UnixDuration) String() string {
	return d.Duration().String()
}
