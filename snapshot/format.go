package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"

	"github.com/hupe1980/kmeans"
)

const (
	// Version is the snapshot format version written by Encode.
	Version uint16 = 1

	headerSize = 56

	// maxPayload bounds allocations driven by header fields.
	maxPayload = 1 << 34
)

var magic = [4]byte{'K', 'M', 'N', 'S'}

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

var (
	// ErrCorrupt is returned when a snapshot fails structural or checksum validation.
	ErrCorrupt = errors.New("snapshot: corrupt")
	// ErrUnsupportedVersion is returned for snapshots written by a newer format.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
)

type header struct {
	version     uint16
	compression Compression
	n           uint64
	k           uint32
	dim         uint32
	iterations  uint32
	goal        float64
	rawSize     uint64
	storedSize  uint64
	checksum    uint32
}

func (h *header) marshal() []byte {
	b := make([]byte, headerSize)
	copy(b[0:4], magic[:])
	binary.LittleEndian.PutUint16(b[4:], h.version)
	b[6] = byte(h.compression)
	binary.LittleEndian.PutUint64(b[8:], h.n)
	binary.LittleEndian.PutUint32(b[16:], h.k)
	binary.LittleEndian.PutUint32(b[20:], h.dim)
	binary.LittleEndian.PutUint32(b[24:], h.iterations)
	binary.LittleEndian.PutUint64(b[28:], math.Float64bits(h.goal))
	binary.LittleEndian.PutUint64(b[36:], h.rawSize)
	binary.LittleEndian.PutUint64(b[44:], h.storedSize)
	binary.LittleEndian.PutUint32(b[52:], h.checksum)
	return b
}

func (h *header) unmarshal(b []byte) error {
	if [4]byte(b[0:4]) != magic {
		return fmt.Errorf("%w: bad magic %q", ErrCorrupt, b[0:4])
	}
	h.version = binary.LittleEndian.Uint16(b[4:])
	if h.version != Version {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.version)
	}
	h.compression = Compression(b[6])
	h.n = binary.LittleEndian.Uint64(b[8:])
	h.k = binary.LittleEndian.Uint32(b[16:])
	h.dim = binary.LittleEndian.Uint32(b[20:])
	h.iterations = binary.LittleEndian.Uint32(b[24:])
	h.goal = math.Float64frombits(binary.LittleEndian.Uint64(b[28:]))
	h.rawSize = binary.LittleEndian.Uint64(b[36:])
	h.storedSize = binary.LittleEndian.Uint64(b[44:])
	h.checksum = binary.LittleEndian.Uint32(b[52:])

	if h.k == 0 || h.dim == 0 || h.n < uint64(h.k) || h.n > math.MaxUint32 {
		return fmt.Errorf("%w: invalid shape n=%d k=%d dim=%d", ErrCorrupt, h.n, h.k, h.dim)
	}
	want := uint64(h.k)*uint64(h.dim)*8 + h.n*4
	if h.rawSize != want || h.rawSize > maxPayload || h.storedSize > maxPayload {
		return fmt.Errorf("%w: payload size %d, expected %d", ErrCorrupt, h.rawSize, want)
	}
	return nil
}

// Encode writes res to w using the given payload compression.
//
// Results that Decode could not restore, such as centroids that overflowed
// to ±Inf, are rejected with kmeans.ErrInvalidInput before anything is
// written.
func Encode(w io.Writer, res *kmeans.Result, c Compression) error {
	if _, err := kmeans.NewResult(res.Centroids(), res.Assignments(), res.Goal(), res.Iterations()); err != nil {
		return err
	}

	k, dim, n := res.K(), res.Dim(), res.Len()

	raw := make([]byte, k*dim*8+n*4)
	off := 0
	for _, centroid := range res.Centroids() {
		for _, v := range centroid {
			binary.LittleEndian.PutUint64(raw[off:], math.Float64bits(v))
			off += 8
		}
	}
	for _, a := range res.Assignments() {
		binary.LittleEndian.PutUint32(raw[off:], uint32(a))
		off += 4
	}

	stored, used, err := compress(raw, c)
	if err != nil {
		return err
	}

	h := header{
		version:     Version,
		compression: used,
		n:           uint64(n),
		k:           uint32(k),
		dim:         uint32(dim),
		iterations:  uint32(res.Iterations()),
		goal:        res.Goal(),
		rawSize:     uint64(len(raw)),
		storedSize:  uint64(len(stored)),
		checksum:    crcOf(stored),
	}

	if _, err := w.Write(h.marshal()); err != nil {
		return err
	}
	_, err = w.Write(stored)
	return err
}

// Decode reads a snapshot written by Encode.
func Decode(r io.Reader) (*kmeans.Result, error) {
	hb := make([]byte, headerSize)
	if _, err := io.ReadFull(r, hb); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrCorrupt, err)
	}

	var h header
	if err := h.unmarshal(hb); err != nil {
		return nil, err
	}

	stored := make([]byte, h.storedSize)
	if _, err := io.ReadFull(r, stored); err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrCorrupt, err)
	}
	if crcOf(stored) != h.checksum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}

	raw, err := decompress(stored, h.compression, int(h.rawSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %s payload: %v", ErrCorrupt, h.compression, err)
	}

	k, dim, n := int(h.k), int(h.dim), int(h.n)
	centroids := make([][]float64, k)
	off := 0
	for c := range centroids {
		row := make([]float64, dim)
		for j := range row {
			row[j] = math.Float64frombits(binary.LittleEndian.Uint64(raw[off:]))
			off += 8
		}
		centroids[c] = row
	}

	assignments := make([]int, n)
	for i := range assignments {
		assignments[i] = int(binary.LittleEndian.Uint32(raw[off:]))
		off += 4
	}

	res, err := kmeans.NewResult(centroids, assignments, h.goal, int(h.iterations))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return res, nil
}

func crcOf(b []byte) uint32 {
	return crc32.Checksum(b, castagnoli)
}
