package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// SafeInvalidatePattern invalidates a cache pattern, logging instead of failing
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete deletes cache keys, logging instead of failing
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

func MentorCardKey(mentorID uint) string {
	return fmt.Sprintf("card:%d", mentorID)
}

// MentorSearchKey is lower-cased so equivalent queries share an entry.
func MentorSearchKey(query, subject string, page, limit int) string {
	return fmt.Sprintf("search:%s:%s:%d:%d",
		strings.ToLower(strings.TrimSpace(query)),
		strings.ToLower(strings.TrimSpace(subject)),
		page, limit)
}

// InvalidateMentorCache drops the mentor's card and every cached search page
func InvalidateMentorCache(ctx context.Context, cm *CacheManager, mentorID uint) {
	SafeDelete(ctx, cm.Mentor, MentorCardKey(mentorID))
	SafeInvalidatePattern(ctx, cm.Mentor, "search:*")
}
