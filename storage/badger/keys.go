package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/recapit/core"
)

// Key prefixes for different data types
const (
	resultPrefix     = "sumrec"
	resultDatePrefix = "sumrecd"
)

// makeResultKey generates a key for a result by ID.
func makeResultKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", resultPrefix, id))
}

// makeResultDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeResultDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := resultDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialResultDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialResultDateKey(timestamp time.Time) []byte {
	prefix := resultDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}
