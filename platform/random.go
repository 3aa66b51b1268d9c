package platform

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/wippyai/propstore/errors"
)

// MaxRandomBytes limits a single RandomBytes call (1MB).
const MaxRandomBytes = 1 << 20

// RandomBytes returns n cryptographically secure random bytes.
func RandomBytes(n int) ([]byte, error) {
	if n < 0 || n > MaxRandomBytes {
		return nil, errors.New(errors.OpParse, errors.KindInvalidArgument).
			Detail("random length %d outside [0, %d]", n, MaxRandomBytes).
			Value(n).
			Build()
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, errors.Wrap(errors.OpParse, errors.KindOutOfMemory, err, "read random bytes")
	}
	return buf, nil
}

// RandomU64 returns a secure random 64-bit value, or 0 if the source fails.
func RandomU64() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	return binary.LittleEndian.Uint64(buf[:])
}
