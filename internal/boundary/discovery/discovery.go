// Package discovery advertises the running service over mDNS/DNS-SD as
// `_jmpxrds._tcp`, with the process PID and shared-memory control-plane
// region names in its TXT record so a tool on the same network segment
// can find and attach to a running instance without configuration.
package discovery

import (
	"context"
	"fmt"
	"os"

	"github.com/brutella/dnssd"

	"github.com/UoC-Radio/jmpxrds-go/internal/ctlplane"
	"github.com/UoC-Radio/jmpxrds-go/internal/errs"
)

const serviceType = "_jmpxrds._tcp"

// Advertiser owns one running mDNS responder goroutine advertising this
// instance.
type Advertiser struct {
	responder dnssd.Responder
	handle    dnssd.ServiceHandle
	cancel    context.CancelFunc
	done      chan struct{}
}

// Start advertises name on port, publishing the PID and the three
// well-known control-plane shared-memory region names as TXT records.
func Start(name string, port int) (*Advertiser, error) {
	cfg := dnssd.Config{
		Name: name,
		Type: serviceType,
		Port: port,
		Text: map[string]string{
			"pid":    fmt.Sprintf("%d", os.Getpid()),
			"mpxshm": ctlplane.MPXCtlSHMName,
			"rdsshm": ctlplane.RDSEncSHMName,
			"rtpshm": ctlplane.RTPSrvSHMName,
		},
	}

	svc, err := dnssd.NewService(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: build dnssd service: %v", errs.ErrTransport, err)
	}

	responder, err := dnssd.NewResponder()
	if err != nil {
		return nil, fmt.Errorf("%w: new dnssd responder: %v", errs.ErrTransport, err)
	}

	handle, err := responder.Add(svc)
	if err != nil {
		return nil, fmt.Errorf("%w: register dnssd service: %v", errs.ErrTransport, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = responder.Respond(ctx)
	}()

	return &Advertiser{responder: responder, handle: handle, cancel: cancel, done: done}, nil
}

// Stop withdraws the advertisement and stops the responder goroutine.
func (a *Advertiser) Stop() {
	a.responder.Remove(a.handle)
	a.cancel()
	<-a.done
}
