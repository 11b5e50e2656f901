package rds

import (
	"fmt"
	"math"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/UoC-Radio/jmpxrds-go/internal/logging"
)

var groupLogger = logging.New(logging.RDS, logging.DefaultOptions())

const ctLogPattern = "%Y-%m-%d %H:%M %Z"

// groupType0 etc. name the RDS group codes this encoder knows how to
// generate; group 3-15 codes this encoder doesn't implement are simply
// never dispatched by the scheduler.
const (
	groupType0  = 0
	groupType1  = 1
	groupType2  = 2
	groupType4  = 4
	groupType10 = 10
	groupType15 = 15
)

// generateGroup fills in the common header fields (PI, group type, version,
// TP/PTY) shared by every group, dispatches to the type-specific builder,
// and finally renders the biphase waveform. movingWindow is the differential
// biphase coder's carry-in/out state, threaded through by the caller so it
// stays continuous across groups.
func generateGroup(st *State, code uint8, version Version, movingWindow *uint8) (Group, error) {
	var g Group

	for i := range g.Blocks {
		g.Blocks[i].OffsetWord = offsetWords[i]
	}

	g.Blocks[0].Infoword = st.PI

	tp := uint16(0)
	if st.TP {
		tp = 1
	}
	g.Blocks[1].Infoword = uint16(code&0xF)<<12 | uint16(version&1)<<11 |
		tp<<10 | uint16(st.PTY&0x1F)<<5

	if version == VersionB {
		g.Blocks[2].Infoword = st.PI
		g.Blocks[2].OffsetWord = offsetWords[offsetWordCAlt]
	}

	var err error
	switch code {
	case groupType0:
		err = buildGroup0(st, &g, version)
	case groupType1:
		err = buildGroup1(st, &g, version)
	case groupType2:
		err = buildGroup2(st, &g, version)
	case groupType4:
		err = buildGroup4(st, &g, version)
	case groupType10:
		err = buildGroup10(st, &g, version)
	case groupType15:
		err = buildGroup15(st, &g, version)
	default:
		return Group{}, fmt.Errorf("rds: unsupported group type %d", code)
	}
	if err != nil {
		return Group{}, err
	}

	g.generateSamples(movingWindow)

	return g, nil
}

// diBlock2Tail packs the five low bits group 0 and 15 both put at the end of
// block 2: the two-bit PS/cycle index, one DI bit (selected by that same index, in
// reverse order), the MS flag and the TA flag.
func diBlock2Tail(st *State) uint16 {
	diBit := (uint16(st.DI) >> uint(3-st.PSIdx)) & 1
	ms := uint16(0)
	if st.MS&1 != 0 {
		ms = 1
	}
	ta := uint16(0)
	if st.TA {
		ta = 1
	}
	return uint16(st.PSIdx) | diBit<<2 | ms<<3 | ta<<4
}

// buildGroup0 implements group 0A/0B: basic tuning and switching
// information (PS name, AF pair on version A, TA/MS/DI).
func buildGroup0(st *State, g *Group, version Version) error {
	g.Blocks[1].Infoword |= diBlock2Tail(st)

	if version == VersionA {
		g.Blocks[2].Infoword = uint16(st.AFData[0])<<8 | uint16(st.AFData[1])
	}

	g.Blocks[3].Infoword = uint16(st.PS[2*st.PSIdx])<<8 | uint16(st.PS[2*st.PSIdx+1])
	if st.PSIdx >= 3 {
		st.PSIdx = 0
	} else {
		st.PSIdx++
	}

	return nil
}

// buildGroup1 implements group 1A: ECC and LIC, alternating which one is
// sent on successive calls via the variant code in block 3.
func buildGroup1(st *State, g *Group, version Version) error {
	if version != VersionA {
		return fmt.Errorf("rds: group 1B is not supported")
	}

	var vcode, payload uint16
	if st.group1Variant == 0 {
		vcode = 0
		payload = uint16(st.ECC)
	} else {
		vcode = 3
		payload = st.LIC & 0xFFF
	}
	st.group1Variant = 1 - st.group1Variant

	g.Blocks[2].Infoword = payload | vcode<<12

	return nil
}

// buildGroup2 implements group 2A: RadioText, always sent in the
// longer version-A layout (mixing A/B mid-message would desync a
// receiver's RT buffer, so only A is ever used here).
func buildGroup2(st *State, g *Group, version Version) error {
	flush := uint16(0)
	if st.RTFlush {
		flush = 1
	}
	g.Blocks[1].Infoword |= uint16(st.RTIdx&0xF) | flush<<4

	if version != VersionA {
		return fmt.Errorf("rds: group 2B is not supported")
	}

	base := 4 * st.RTIdx
	g.Blocks[2].Infoword = uint16(st.RT[base])<<8 | uint16(st.RT[base+1])
	g.Blocks[3].Infoword = uint16(st.RT[base+2])<<8 | uint16(st.RT[base+3])

	st.RTIdx++
	if st.RTIdx >= st.RTSegments {
		st.RTIdx = 0
	}

	return nil
}

// buildGroup4 implements group 4A: clock time and Modified Julian Date,
// computed from the current UTC and local time per Annex G.
func buildGroup4(st *State, g *Group, version Version) error {
	if version != VersionA {
		return fmt.Errorf("rds: group 4B is not supported")
	}

	return buildGroup4At(g, time.Now())
}

func buildGroup4At(g *Group, now time.Time) error {
	if ts, err := strftime.Format(ctLogPattern, now); err == nil {
		groupLogger.Debug("sending CT group", "time", ts)
	}

	utc := now.UTC()
	local := now.Local()

	min := utc.Minute()
	hour := utc.Hour()
	day := utc.Day()
	month := int(utc.Month())
	year := utc.Year() - 1900
	tzOffset := float64(local.Hour() - hour)

	leapDay := 0
	if month <= 2 {
		leapDay = 1
	}

	mjd := 14956 + day + int(float64(year-leapDay)*365.25) +
		int(float64(month+1+leapDay*12)*30.6001)

	g.Blocks[1].Infoword |= uint16(mjd>>15) & 0x3
	g.Blocks[2].Infoword = uint16((mjd<<1)&0xFFFE) | uint16(hour>>4)&0x1

	sign := uint16(1)
	if tzOffset > 0 {
		sign = 0
	}
	g.Blocks[3].Infoword = uint16(hour&0xF)<<12 |
		uint16(min&0x3F)<<6 |
		sign<<5 |
		uint16(int(math.Abs(2*tzOffset)))&0x1F

	return nil
}

// buildGroup10 implements group 10A: Programme Type Name, a two-segment
// label that alternates between its two halves on successive calls.
func buildGroup10(st *State, g *Group, version Version) error {
	if version != VersionA {
		return fmt.Errorf("rds: group 10B is not supported")
	}

	flush := uint16(0)
	if st.PTYNFlush {
		flush = 1
	}
	g.Blocks[1].Infoword |= uint16(st.PTYNIdx) | flush<<4

	base := 4 * st.PTYNIdx
	g.Blocks[2].Infoword = uint16(st.PTYN[base])<<8 | uint16(st.PTYN[base+1])
	g.Blocks[3].Infoword = uint16(st.PTYN[base+2])<<8 | uint16(st.PTYN[base+3])

	if st.PTYNIdx == 1 {
		st.PTYNIdx = 0
	} else {
		st.PTYNIdx = 1
	}

	return nil
}

// buildGroup15 implements group 15B: fast basic tuning and switching
// information, sent instead of 0A/0B when no PS name has been configured.
func buildGroup15(st *State, g *Group, version Version) error {
	g.Blocks[1].Infoword |= diBlock2Tail(st)

	if version != VersionB {
		return fmt.Errorf("rds: group 15A is not supported")
	}

	g.Blocks[3].Infoword = g.Blocks[1].Infoword

	if st.PSIdx >= 3 {
		st.PSIdx = 0
	} else {
		st.PSIdx++
	}

	return nil
}
