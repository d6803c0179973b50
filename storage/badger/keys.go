package badger

import (
	"encoding/binary"

	"github.com/poiesic/threadweave/core"
)

// Key prefixes for different data types
const (
	checkpointPrefix = "wfckpt"
	articlePrefix    = "pubart"
)

// makeCheckpointKey generates a key for a thread's workflow checkpoint.
// The ID is written BigEndian so prefix iteration yields ascending order.
func makeCheckpointKey(threadID core.ID) []byte {
	return makePrefixedIDKey(checkpointPrefix, threadID)
}

// makeArticleKey generates a key for a thread's published article.
func makeArticleKey(threadID core.ID) []byte {
	return makePrefixedIDKey(articlePrefix, threadID)
}

func makePrefixedIDKey(prefix string, id core.ID) []byte {
	buf := make([]byte, len(prefix)+1+8)
	offset := copy(buf, prefix)
	buf[offset] = ':'
	offset++
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}
