package payway

import (
	"strconv"
	"sync/atomic"
	"time"
)

var tranSeq uint64

// NewTranID returns a transaction id: "TX", the UTC time of day down to
// the second (MMDDHHMMSS, no year, no separators), and the last four hex
// characters of a clock-derived token. The atomic counter occupies the
// token's low 16 bits, so ids stay distinct across concurrent calls
// within the same second. Never fails, no I/O.
func NewTranID() string {
	now := time.Now().UTC()
	seq := atomic.AddUint64(&tranSeq, 1)
	token := strconv.FormatUint(uint64(now.UnixNano())<<16|(seq&0xffff), 16)
	return "TX" + now.Format("0102150405") + token[len(token)-4:]
}
