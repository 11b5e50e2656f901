// Package keying wraps xylo04/goHamlib to key (and unkey) a transmitter
// through Hamlib's rig abstraction when the service starts and stops,
// replacing the original's direct cgo bindings against libhamlib
// (`original_source` grounds the intent - rig model, device path, PTT on
// start/stop - but its PTT code talks to hamlib's C API directly rather
// than through this pure-Go binding).
package keying

import (
	"fmt"

	hamlib "github.com/xylo04/goHamlib"

	"github.com/UoC-Radio/jmpxrds-go/internal/errs"
)

// Keyer keys a single rig's PTT for the lifetime of a broadcast.
type Keyer struct {
	rig *hamlib.Rig
}

// Open opens the rig identified by model at the given serial/network
// device path. Call Key/Unkey around the broadcast, and Close on
// shutdown.
func Open(device string, model int) (*Keyer, error) {
	rig := hamlib.RigInit(model)
	if rig == nil {
		return nil, fmt.Errorf("%w: unknown hamlib rig model %d", errs.ErrTransport, model)
	}

	if err := rig.SetConf("rig_pathname", device); err != nil {
		return nil, fmt.Errorf("%w: set rig path %s: %v", errs.ErrTransport, device, err)
	}

	if err := rig.Open(); err != nil {
		return nil, fmt.Errorf("%w: open rig: %v", errs.ErrTransport, err)
	}

	return &Keyer{rig: rig}, nil
}

// Key asserts PTT.
func (k *Keyer) Key() error {
	if err := k.rig.SetPtt(hamlib.RIG_VFO_CURR, hamlib.RIG_PTT_ON); err != nil {
		return fmt.Errorf("%w: key ptt: %v", errs.ErrTransport, err)
	}
	return nil
}

// Unkey releases PTT.
func (k *Keyer) Unkey() error {
	if err := k.rig.SetPtt(hamlib.RIG_VFO_CURR, hamlib.RIG_PTT_OFF); err != nil {
		return fmt.Errorf("%w: unkey ptt: %v", errs.ErrTransport, err)
	}
	return nil
}

// Close releases the rig, unkeying first if still keyed.
func (k *Keyer) Close() error {
	_ = k.Unkey()
	if err := k.rig.Close(); err != nil {
		return fmt.Errorf("%w: close rig: %v", errs.ErrTransport, err)
	}
	return nil
}
