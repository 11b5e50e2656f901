// Command rds_tool reads and adjusts the running fmmod service's RDS
// encoder state: PI, PTY, ECC/LIC, PS, RadioText and PTYN, mirroring the
// original's rds_tool.c.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/UoC-Radio/jmpxrds-go/internal/ctlplane"
	"github.com/UoC-Radio/jmpxrds-go/internal/rds"
)

func main() {
	var (
		dump    = pflag.BoolP("dump", "g", false, "print current RDS encoder state")
		enable  = pflag.BoolP("enable", "e", false, "enable RDS transmission")
		disable = pflag.BoolP("disable", "d", false, "disable RDS transmission")
		rt      = pflag.String("rt", "", "set RadioText message")
		ps      = pflag.String("ps", "", "set Programme Service name")
		pi      = pflag.StringP("pi", "p", "", "set Programme Identification (hex)")
		pty     = pflag.Int("pty", -1, "set Programme Type (0-31)")
		ptyn    = pflag.String("ptyn", "", "set Programme Type Name")
		ecc     = pflag.String("ecc", "", "set Extended Country Code (hex)")
		lic     = pflag.String("lic", "", "set Language Identification Code (hex)")
	)
	pflag.Parse()

	h, err := ctlplane.AttachRDSEnc()
	if err != nil {
		fmt.Fprintln(os.Stderr, "rds_tool:", err)
		os.Exit(1)
	}
	defer h.Detach()

	st := ctlplane.ToState(h.Read())

	if *dump {
		printState(st)
		return
	}

	changed := false

	if *enable {
		st.Enabled = true
		changed = true
	}
	if *disable {
		st.Enabled = false
		changed = true
	}
	if *pi != "" {
		v, err := strconv.ParseUint(*pi, 16, 16)
		if err != nil {
			fail("rds_tool: -p must be a 16-bit hex value")
		}
		st.SetPI(uint16(v))
		changed = true
	}
	if *ecc != "" {
		v, err := strconv.ParseUint(*ecc, 16, 8)
		if err != nil {
			fail("rds_tool: -ecc must be an 8-bit hex value")
		}
		st.SetECC(uint8(v))
		changed = true
	}
	if *lic != "" {
		v, err := strconv.ParseUint(*lic, 16, 16)
		if err != nil {
			fail("rds_tool: -lic must be a 16-bit hex value")
		}
		st.SetLIC(uint16(v))
		changed = true
	}
	if *pty >= 0 {
		if err := st.SetPTY(uint8(*pty)); err != nil {
			fail(fmt.Sprintf("rds_tool: %v", err))
		}
		changed = true
	}
	if *ps != "" {
		if err := st.SetPS(*ps); err != nil {
			fail(fmt.Sprintf("rds_tool: %v", err))
		}
		changed = true
	}
	if *ptyn != "" {
		if err := st.SetPTYN(*ptyn); err != nil {
			fail(fmt.Sprintf("rds_tool: %v", err))
		}
		changed = true
	}
	if *rt != "" {
		if err := st.SetRT(*rt, true); err != nil {
			fail(fmt.Sprintf("rds_tool: %v", err))
		}
		changed = true
	}

	if !changed {
		printState(st)
		return
	}

	h.Write(ctlplane.FromState(st))
}

func fail(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

func printState(st *rds.State) {
	fmt.Printf("enabled=%v pi=0x%04X ecc=0x%02X lic=0x%03X pty=%d ta=%v tp=%v ms=%d di=0x%X\n",
		st.Enabled, st.PI, st.ECC, st.LIC, st.PTY, st.TA, st.TP, st.MS, st.DI)
	fmt.Printf("ps=%q ptyn=%q rt=%q\n", trimmed(st.PS[:]), trimmed(st.PTYN[:]), trimmed(st.RT[:]))
}

func trimmed(b []byte) string {
	n := len(b)
	for n > 0 && b[n-1] == 0 {
		n--
	}
	return string(b[:n])
}
