package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix        = "user:%d"
	UserEmailKeyPrefix   = "user:email:%s"
	BoardPostKeyPrefix   = "board:post:%d"
)

const (
	UserTTL      = 5 * time.Minute
	BoardPostTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func UserEmailKey(email string) string {
	return fmt.Sprintf(UserEmailKeyPrefix, email)
}

func BoardPostKey(postID uint) string {
	return fmt.Sprintf(BoardPostKeyPrefix, postID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateBoardPost(ctx context.Context, postID uint) {
	Invalidate(ctx, BoardPostKey(postID))
}
