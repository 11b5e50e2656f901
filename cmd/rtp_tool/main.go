// Command rtp_tool adds or removes an RTP receiver address on a running
// fmmod service, by writing the address into the RTP control region and
// sending SIGUSR1 (add) or SIGUSR2 (remove) to the service PID recorded
// there, mirroring the original's rtp_tool.c.
package main

import (
	"encoding/binary"
	"fmt"
	"net"
	"os"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/UoC-Radio/jmpxrds-go/internal/ctlplane"
)

func main() {
	var (
		dump  = pflag.BoolP("dump", "g", false, "print current RTP egress state")
		addIP = pflag.StringP("add", "a", "", "add an RTP receiver (IPv4)")
		remIP = pflag.StringP("remove", "r", "", "remove an RTP receiver (IPv4)")
	)
	pflag.Parse()

	h, err := ctlplane.AttachRTPCtl()
	if err != nil {
		fmt.Fprintln(os.Stderr, "rtp_tool:", err)
		os.Exit(1)
	}
	defer h.Detach()

	d := h.Read()

	if *dump {
		printState(d)
		return
	}

	switch {
	case *addIP != "":
		addr, err := ipv4ToUint32(*addIP)
		if err != nil {
			fail(err.Error())
		}
		d.PendingAdd = addr
		h.Write(d)
		signalService(d.PID, syscall.SIGUSR1)
	case *remIP != "":
		addr, err := ipv4ToUint32(*remIP)
		if err != nil {
			fail(err.Error())
		}
		d.PendingRemove = addr
		h.Write(d)
		signalService(d.PID, syscall.SIGUSR2)
	default:
		printState(d)
	}
}

func ipv4ToUint32(s string) (uint32, error) {
	ip := net.ParseIP(s)
	if ip == nil {
		return 0, fmt.Errorf("rtp_tool: %q is not a valid IPv4 address", s)
	}
	v4 := ip.To4()
	if v4 == nil {
		return 0, fmt.Errorf("rtp_tool: %q is not a valid IPv4 address", s)
	}
	return binary.BigEndian.Uint32(v4), nil
}

func signalService(pid int32, sig syscall.Signal) {
	if pid <= 0 {
		fail("rtp_tool: no service PID recorded in the RTP control region")
	}
	if err := syscall.Kill(int(pid), sig); err != nil {
		fail(fmt.Sprintf("rtp_tool: signal pid %d: %v", pid, err))
	}
}

func fail(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

func printState(d ctlplane.RTPCtlData) {
	fmt.Printf("pid=%d rtp_tx_kbytes_per_sec=%d rtcp_tx_kbytes_per_sec=%d num_receivers=%d\n",
		d.PID, d.RTPTxKBytesPerSec, d.RTCPTxKBytesPerSec, d.NumReceivers)
	for i := int32(0); i < d.NumReceivers && i < int32(len(d.Receivers)); i++ {
		fmt.Printf("  receiver[%d]=%s\n", i, uint32ToIPv4(d.Receivers[i]))
	}
}

func uint32ToIPv4(v uint32) net.IP {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return net.IP(b)
}
