// Package ctlplane implements the control I/O channels that let external
// tools inspect and adjust a running signal path without restarting it: one
// POSIX shared-memory region per subsystem (MPX orchestrator, RDS encoder,
// RTP egress), each holding a small fixed-layout struct that both the
// service and its tools map read/write.
package ctlplane

import (
	"fmt"
	"strings"

	"golang.org/x/sys/unix"
)

// shmPath maps a POSIX shm name (leading slash, no further slashes) to the
// tmpfs path the Linux glibc shm_open/shm_unlink wrappers actually use —
// x/sys/unix has no shm_open syscall wrapper since shm_open isn't a kernel
// syscall on Linux, just open() under /dev/shm, so we do what glibc does.
func shmPath(name string) string {
	return "/dev/shm/" + strings.TrimPrefix(name, "/")
}

// Names of the three shared-memory regions, one per subsystem, mirroring
// FMMOD_CTL_SHM_NAME/RDS_ENC_SHM_NAME/RTP_SRV_SHM_NAME.
const (
	MPXCtlSHMName = "/jmpxrds-mpx-ctl"
	RDSEncSHMName = "/jmpxrds-rds-enc"
	RTPSrvSHMName = "/jmpxrds-rtp-srv"
)

// region is a POSIX shared-memory mapping of a fixed size, created by the
// owning service (Create) or opened by a read/write tool (Attach).
type region struct {
	name string
	size int
	mem  []byte
}

// create opens name as a brand-new shared-memory segment sized to size,
// mirroring utils_shm_init: O_CREAT|O_EXCL so a second service instance
// fails loudly instead of silently sharing state with the first.
func create(name string, size int) (*region, error) {
	path := shmPath(name)

	fd, err := unix.Open(path, unix.O_CREAT|unix.O_EXCL|unix.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("ctlplane: open %s: %w", path, err)
	}

	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		unix.Close(fd)
		unix.Unlink(path)
		return nil, fmt.Errorf("ctlplane: ftruncate %s: %w", path, err)
	}

	mem, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		unix.Unlink(path)
		return nil, fmt.Errorf("ctlplane: mmap %s: %w", path, err)
	}
	unix.Close(fd)

	for i := range mem {
		mem[i] = 0
	}

	return &region{name: name, size: size, mem: mem}, nil
}

// attach opens an existing shared-memory segment for read/write, mirroring
// utils_shm_attach; used by control tools that connect to an already
// running service.
func attach(name string, size int) (*region, error) {
	path := shmPath(name)

	fd, err := unix.Open(path, unix.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("ctlplane: open %s: %w", path, err)
	}

	mem, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	unix.Close(fd)
	if err != nil {
		return nil, fmt.Errorf("ctlplane: mmap %s: %w", path, err)
	}

	return &region{name: name, size: size, mem: mem}, nil
}

// detach unmaps the region without removing the underlying shm object,
// mirroring utils_shm_destroy(shmem, 0) as used by control tools that don't
// own the segment's lifetime.
func (r *region) detach() error {
	return unix.Munmap(r.mem)
}

// destroy unmaps the region and removes the shm object, mirroring
// utils_shm_destroy(shmem, 1); only the owning service should call this.
func (r *region) destroy() error {
	if err := unix.Munmap(r.mem); err != nil {
		return err
	}
	return unix.Unlink(shmPath(r.name))
}
