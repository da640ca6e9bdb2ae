package channel

import (
	"encoding/binary"
	"io"

	"github.com/vocdoni/miniram-zk/ring"
	"github.com/vocdoni/miniram-zk/zkerrors"
)

// wireConn frames u64/R32/R128 values and R128 bulk vectors over a
// single io.ReadWriter, retrying short reads/writes until satisfied.
// Any I/O error is wrapped as zkerrors.IOFailure, matching spec §5's
// "I/O errors are fatal".
type wireConn struct {
	rw io.ReadWriter
}

func newWireConn(rw io.ReadWriter) *wireConn {
	return &wireConn{rw: rw}
}

func (w *wireConn) Close() error {
	if c, ok := w.rw.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (w *wireConn) writeU64(v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return w.writeFull(buf[:])
}

func (w *wireConn) readU64() (uint64, error) {
	var buf [8]byte
	if err := w.readFull(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func (w *wireConn) writeR32(v ring.R32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	return w.writeFull(buf[:])
}

func (w *wireConn) readR32() (ring.R32, error) {
	var buf [4]byte
	if err := w.readFull(buf[:]); err != nil {
		return 0, err
	}
	return ring.R32(binary.LittleEndian.Uint32(buf[:])), nil
}

func (w *wireConn) writeR128(v ring.R128) error {
	b := v.Bytes()
	return w.writeFull(b[:])
}

func (w *wireConn) readR128() (ring.R128, error) {
	var buf [16]byte
	if err := w.readFull(buf[:]); err != nil {
		return ring.R128{}, err
	}
	return ring.R128FromBytes(buf), nil
}

// writeR128Bulk writes len(xs) values padded up to a whole number of
// bulkChunk-sized blocks (zero-filling the remainder), mirroring
// readR128Bulk's "always read (n/bulkChunk)+1 blocks" framing.
func (w *wireConn) writeR128Bulk(xs []ring.R128) error {
	blocks := len(xs)/bulkChunk + 1
	padded := blocks * bulkChunk
	for i := 0; i < padded; i++ {
		var v ring.R128
		if i < len(xs) {
			v = xs[i]
		}
		if err := w.writeR128(v); err != nil {
			return err
		}
	}
	return nil
}

// readR128Bulk reads enough bulkChunk-sized blocks to cover n values and
// truncates to n, mirroring recv_64_u64's "read in chunks, then truncate".
func (w *wireConn) readR128Bulk(n int) ([]ring.R128, error) {
	blocks := n/bulkChunk + 1
	out := make([]ring.R128, 0, blocks*bulkChunk)
	for i := 0; i < blocks; i++ {
		for j := 0; j < bulkChunk; j++ {
			v, err := w.readR128()
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	return out[:n], nil
}

func (w *wireConn) writeFull(buf []byte) error {
	written := 0
	for written < len(buf) {
		n, err := w.rw.Write(buf[written:])
		if err != nil {
			return zkerrors.Wrap(zkerrors.IOFailure, "channel: short write", err)
		}
		written += n
	}
	return nil
}

func (w *wireConn) readFull(buf []byte) error {
	if _, err := io.ReadFull(w.rw, buf); err != nil {
		return zkerrors.Wrap(zkerrors.IOFailure, "channel: short read", err)
	}
	return nil
}
