// Package transmit implements the serial protocol adapter of spec.md
// §6: framing encoded phases with the 0xFE/0xFD control bytes and
// writing them to a single, exclusively-owned serial port.
//
// Grounded on the teacher's src/serial_port.go (same github.com/pkg/term
// dependency, same open/write/close shape), generalized into a type
// with scoped acquisition and guaranteed release on every exit path,
// per spec.md §5 and §7.
package transmit

import (
	"context"
	"io"
	"sync"

	"github.com/pkg/term"

	"github.com/doismellburning/phasefield/internal/solvererr"
)

// supportedBauds mirrors serial_port_open's accepted speed list.
var supportedBauds = map[int]bool{
	1200: true, 2400: true, 4800: true, 9600: true,
	19200: true, 38400: true, 57600: true, 115200: true,
}

// device is the subset of *term.Term that Port needs. Factoring it out
// lets tests exercise Port's framing, idempotent Close and short-write
// handling against a plain in-memory fake instead of real hardware.
type device interface {
	io.ReadWriteCloser
	SetSpeed(baud int) error
}

// Port is a scoped, single-owner handle to a serial device. Writes are
// synchronous and ordered (spec.md §5); Close is idempotent and safe
// to call from a defer on every exit path, including after a panic.
type Port struct {
	mu   sync.Mutex
	fd   device
	name string
}

// Open opens devicename (e.g. "/dev/ttyUSB0", "COM5") at baud bps. A
// baud of 0 leaves the port's current speed alone, matching
// serial_port_open's "Leave it alone" case; an unrecognized non-zero
// baud is an IoError rather than silently falling back to 4800 as the
// C original did, since silently picking a different speed than the
// caller configured is a worse failure mode than an explicit error.
func Open(devicename string, baud int) (*Port, error) {
	if baud != 0 && !supportedBauds[baud] {
		return nil, solvererr.New(solvererr.IoError, "unsupported baud rate")
	}

	fd, err := term.Open(devicename, term.RawMode)
	if err != nil {
		return nil, solvererr.Wrap(solvererr.IoError, "opening serial port "+devicename, err)
	}

	if baud != 0 {
		if err := fd.SetSpeed(baud); err != nil {
			_ = fd.Close()
			return nil, solvererr.Wrap(solvererr.IoError, "setting baud rate", err)
		}
	}

	return &Port{fd: fd, name: devicename}, nil
}

// Send performs one synchronous, ordered write of frame to the port.
func (p *Port) Send(frame []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fd == nil {
		return solvererr.New(solvererr.IoError, "port is closed")
	}

	n, err := p.fd.Write(frame)
	if err != nil {
		return solvererr.Wrap(solvererr.IoError, "writing to serial port", err)
	}
	if n != len(frame) {
		return solvererr.New(solvererr.IoError, "short write to serial port")
	}
	return nil
}

// Drain reads and discards echoed bytes until ctx is done; this is the
// optional debug mode spec.md §6 mentions ("a debug mode may read and
// print echoed bytes but it is not part of the protocol"), grounded on
// serial_port_get1's read-one-byte-at-a-time primitive. onByte, if
// non-nil, is called with each byte read.
func (p *Port) Drain(ctx context.Context, onByte func(byte)) error {
	one := make([]byte, 1)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		p.mu.Lock()
		if p.fd == nil {
			p.mu.Unlock()
			return solvererr.New(solvererr.IoError, "port is closed")
		}
		n, err := p.fd.Read(one)
		p.mu.Unlock()

		if err != nil {
			return solvererr.Wrap(solvererr.IoError, "reading from serial port", err)
		}
		if n == 1 && onByte != nil {
			onByte(one[0])
		}
	}
}

// Close releases the underlying device. It is safe to call more than
// once.
func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fd == nil {
		return nil
	}
	err := p.fd.Close()
	p.fd = nil
	return err
}
