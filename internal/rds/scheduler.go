package rds

import "fmt"

// Scheduler decides which RDS group to send next, budgeting group
// transmissions per second and per minute so PS/DI, ECC/LIC, PTYN and RT
// content all get their documented repetition rates (table 4 of the
// standard) without starving the minute-interval clock-time group.
type Scheduler struct {
	st *State

	groupsPerSecCounter int
	groupsPerMinCounter int
	ptynCounter         int

	// movingWindow carries the differential biphase coder's state across
	// groups, matching the original's static moving_window.
	movingWindow uint8
}

// NewScheduler returns a scheduler reading its group content from st.
func NewScheduler(st *State) *Scheduler {
	return &Scheduler{st: st}
}

// Next returns the next group to transmit, advancing the scheduler's
// internal counters.
func (s *Scheduler) Next() (Group, error) {
	g, err := s.next()
	if err != nil {
		return Group{}, err
	}

	s.groupsPerSecCounter++
	s.groupsPerMinCounter++
	// groupsPerSecCounter is only 0 here right after next() restarted the
	// per-second window, so the 10A budget restarts with it.
	if s.groupsPerSecCounter == 0 {
		s.ptynCounter = 0
	}

	return g, nil
}

// next picks and generates the group for the current slot, recursing (as
// the original does) when nothing is eligible in the current per-second
// slot after the counter resets.
func (s *Scheduler) next() (Group, error) {
	if s.groupsPerMinCounter >= GroupsPerMin {
		g, err := generateGroup(s.st, groupType4, VersionA, &s.movingWindow)
		if err == nil {
			s.groupsPerMinCounter = 0
		}
		return g, wrap(err)
	}

	switch {
	case s.groupsPerSecCounter < 4:
		if s.st.PSSet {
			if s.st.AFSet {
				return wrapGroup(generateGroup(s.st, groupType0, VersionA, &s.movingWindow))
			}
			return wrapGroup(generateGroup(s.st, groupType0, VersionB, &s.movingWindow))
		}
		return wrapGroup(generateGroup(s.st, groupType15, VersionB, &s.movingWindow))

	case s.groupsPerSecCounter < 5 && (s.st.ECCSet || s.st.LICSet):
		return wrapGroup(generateGroup(s.st, groupType1, VersionA, &s.movingWindow))

	case s.groupsPerSecCounter < 7 && s.st.PTYNSet && s.ptynCounter < 2:
		s.ptynCounter++
		return wrapGroup(generateGroup(s.st, groupType10, VersionA, &s.movingWindow))

	case s.groupsPerSecCounter < GroupsPerSec && s.st.RTSet:
		return wrapGroup(generateGroup(s.st, groupType2, VersionA, &s.movingWindow))

	default:
		s.groupsPerSecCounter = -1
		g, err := s.Next()
		return g, err
	}
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("rds: group generation failed: %w", err)
}

func wrapGroup(g Group, err error) (Group, error) {
	return g, wrap(err)
}
