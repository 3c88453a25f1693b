package meater

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperrors "meater/internal/errors"
)

// maxExcerpt bounds the payload text kept on a DecodeError.
const maxExcerpt = 256

// ErrEmptyDeviceList is returned when the account reports no devices.
var ErrEmptyDeviceList = errors.New("empty device list")

// DecodeError describes a payload that could not be turned into a Snapshot.
type DecodeError struct {
	Excerpt string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode devices payload: %v (payload: %q)", e.Err, e.Excerpt)
}

// Unwrap exposes both the decode kind and the underlying cause.
func (e *DecodeError) Unwrap() []error {
	return []error{apperrors.ErrDecodeFailed, e.Err}
}

// CookState is an active cook on a probe.
type CookState struct {
	ID          string
	Name        string
	State       string
	TargetTempC float64
	PeakTempC   float64
	ElapsedS    int32
	// RemainingS is -1 while the cloud is still estimating.
	RemainingS int32
}

// Snapshot is one decoded reading for a single probe.
type Snapshot struct {
	DeviceID      string
	InternalTempC float64
	AmbientTempC  float64
	// Cook is nil when no cook is active.
	Cook      *CookState
	UpdatedAt time.Time
}

// Decode parses a GET /devices body and returns the first device as a Snapshot.
func Decode(body []byte) (Snapshot, error) {
	var resp devicesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Snapshot{}, newDecodeError(body, err)
	}
	if resp.Data == nil {
		return Snapshot{}, newDecodeError(body, errors.New("missing field data"))
	}
	if resp.Data.Devices == nil {
		return Snapshot{}, newDecodeError(body, errors.New("missing field data.devices"))
	}
	if len(*resp.Data.Devices) == 0 {
		return Snapshot{}, newDecodeError(body, ErrEmptyDeviceList)
	}

	snap, err := snapshotFrom((*resp.Data.Devices)[0])
	if err != nil {
		return Snapshot{}, newDecodeError(body, err)
	}
	return snap, nil
}

func snapshotFrom(d device) (Snapshot, error) {
	if d.Temperature == nil {
		return Snapshot{}, errors.New("missing field temperature")
	}
	if d.Temperature.Internal == nil {
		return Snapshot{}, errors.New("missing field temperature.internal")
	}
	if d.Temperature.Ambient == nil {
		return Snapshot{}, errors.New("missing field temperature.ambient")
	}

	snap := Snapshot{
		DeviceID:      d.ID,
		InternalTempC: *d.Temperature.Internal,
		AmbientTempC:  *d.Temperature.Ambient,
	}
	if d.UpdatedAt != nil {
		snap.UpdatedAt = time.Unix(*d.UpdatedAt, 0).UTC()
	}

	if d.Cook != nil {
		c, err := cookFrom(*d.Cook)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Cook = &c
	}
	return snap, nil
}

func cookFrom(c cook) (CookState, error) {
	if c.Temperature == nil || c.Temperature.Target == nil {
		return CookState{}, errors.New("missing field cook.temperature.target")
	}
	if c.Time == nil || c.Time.Elapsed == nil || c.Time.Remaining == nil {
		return CookState{}, errors.New("missing field cook.time")
	}
	return CookState{
		ID:          c.ID,
		Name:        c.Name,
		State:       c.State,
		TargetTempC: *c.Temperature.Target,
		PeakTempC:   c.Temperature.Peak,
		ElapsedS:    *c.Time.Elapsed,
		RemainingS:  *c.Time.Remaining,
	}, nil
}

func newDecodeError(body []byte, err error) *DecodeError {
	excerpt := body
	if len(excerpt) > maxExcerpt {
		excerpt = excerpt[:maxExcerpt]
	}
	return &DecodeError{Excerpt: string(excerpt), Err: err}
}
