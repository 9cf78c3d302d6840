package transmit

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDevice is an in-memory stand-in for *term.Term, letting Port's
// framing, idempotent Close and short-write handling be exercised
// without real or pseudo-terminal hardware.
type fakeDevice struct {
	written    bytes.Buffer
	readSeq    []byte
	readPos    int
	closed     bool
	writeErr   error
	writeShort bool
	closeErr   error
	speeds     []int
}

func (f *fakeDevice) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	if f.writeShort && len(p) > 0 {
		f.written.Write(p[:len(p)-1])
		return len(p) - 1, nil
	}
	return f.written.Write(p)
}

// Read returns one buffered byte at a time, then (0, nil) once
// exhausted — mimicking a serial device with nothing currently to
// read, rather than erroring, so Drain's caller-driven cancellation is
// what ends the loop.
func (f *fakeDevice) Read(p []byte) (int, error) {
	if f.readPos >= len(f.readSeq) {
		return 0, nil
	}
	n := copy(p, f.readSeq[f.readPos:f.readPos+1])
	f.readPos += n
	return n, nil
}

func (f *fakeDevice) Close() error {
	f.closed = true
	return f.closeErr
}

func (f *fakeDevice) SetSpeed(baud int) error {
	f.speeds = append(f.speeds, baud)
	return nil
}

func TestOpenRejectsUnsupportedBaud(t *testing.T) {
	_, err := Open("/dev/ttyUSB0", 1234)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported baud rate")
}

func TestSendWritesFrameInOrder(t *testing.T) {
	fake := &fakeDevice{}
	p := &Port{fd: fake, name: "fake0"}

	require.NoError(t, p.Send([]byte{0xFE, 0x01, 0x02, 0xFD}))
	assert.Equal(t, []byte{0xFE, 0x01, 0x02, 0xFD}, fake.written.Bytes())
}

func TestSendReportsShortWrite(t *testing.T) {
	fake := &fakeDevice{writeShort: true}
	p := &Port{fd: fake, name: "fake0"}

	err := p.Send([]byte{0xFE, 0x01, 0xFD})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "short write")
}

func TestSendWrapsWriteError(t *testing.T) {
	fake := &fakeDevice{writeErr: errors.New("boom")}
	p := &Port{fd: fake, name: "fake0"}

	err := p.Send([]byte{0xFE, 0xFD})
	require.Error(t, err)
	assert.ErrorIs(t, err, fake.writeErr)
}

func TestSendOnClosedPortErrors(t *testing.T) {
	p := &Port{fd: nil}
	err := p.Send([]byte{0xFE, 0xFD})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closed")
}

func TestCloseIsIdempotent(t *testing.T) {
	fake := &fakeDevice{}
	p := &Port{fd: fake, name: "fake0"}

	require.NoError(t, p.Close())
	assert.True(t, fake.closed)
	require.NoError(t, p.Close())

	err := p.Send([]byte{0xFE, 0xFD})
	assert.Error(t, err)
}

func TestDrainCallsOnByteUntilCanceled(t *testing.T) {
	fake := &fakeDevice{readSeq: []byte{0xAA, 0xBB, 0xCC}}
	p := &Port{fd: fake, name: "fake0"}

	var got []byte
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := p.Drain(ctx, func(b byte) { got = append(got, b) })
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC}, got)
}

func TestSendPhasesFramesEncodedPayload(t *testing.T) {
	fake := &fakeDevice{}
	p := &Port{fd: fake, name: "fake0"}

	require.NoError(t, SendPhases(p, []float64{0, 0, 0, 0}, 32))
	frame := fake.written.Bytes()
	require.True(t, len(frame) >= 2)
	assert.Equal(t, byte(0xFE), frame[0])
	assert.Equal(t, byte(0xFD), frame[len(frame)-1])
}
