package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewID generates an entity id: prefix, creation time in unix millis, and a
// short random suffix so ids stay unique within a single millisecond.
func NewID(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}
