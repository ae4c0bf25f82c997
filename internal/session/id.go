// ABOUTME: Identifier generation for conversations
// ABOUTME: Time-prefixed ids with a random suffix, unique and sortable by creation

package session

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns an opaque conversation identifier. The base36 timestamp
// prefix keeps ids roughly sortable by creation time; the uuid-derived
// suffix makes collisions within the same millisecond a non-issue.
func NewID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return ts + suffix
}
