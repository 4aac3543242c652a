package cache

import (
	"context"
	"fmt"
	"time"
)

// Key prefixes for cached entities.
const (
	userKeyPrefix    = "user:%d"
	messageKeyPrefix = "message:%d"
	profileKeyPrefix = "profile:%d"
)

// TTLs per entity class.
const (
	UserTTL    = 5 * time.Minute
	MessageTTL = 10 * time.Minute
	ProfileTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

func MessageKey(messageID uint) string {
	return fmt.Sprintf(messageKeyPrefix, messageID)
}

func ProfileKey(userID uint) string {
	return fmt.Sprintf(profileKeyPrefix, userID)
}

// Invalidate removes a key (best-effort).
func Invalidate(ctx context.Context, key string) {
	if client == nil {
		return
	}
	client.Del(ctx, key)
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
	Invalidate(ctx, ProfileKey(userID))
}

func InvalidateMessage(ctx context.Context, messageID uint) {
	Invalidate(ctx, MessageKey(messageID))
}
