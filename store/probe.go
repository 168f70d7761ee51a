package store

import (
	"strings"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/liseur-glitch/gedbridge/errors"
)

// CheckExclusive verifies none of the guarded executables are running.
// The consuming desktop application keeps its tables open for the whole
// session, so writing while it runs corrupts indexes. Returns
// ErrStoreLocked naming the offending process; the caller must abort
// before touching any row.
func CheckExclusive(guarded []string) error {
	if len(guarded) == 0 {
		return nil
	}

	procs, err := process.Processes()
	if err != nil {
		return errors.Wrap(err, "list processes")
	}

	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		for _, g := range guarded {
			if strings.EqualFold(name, g) {
				return errors.Wrapf(errors.ErrStoreLocked,
					"process %s (pid %d) has the store open", name, p.Pid)
			}
		}
	}

	return nil
}
