package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// Upstream responses are instructor-scoped, so every key carries a short
// hash of the bearer token to keep cache entries from leaking between
// instructors.

// CourseKey returns the cache key for a course payload.
func (r *CacheKeyStruct) CourseKey(token, courseID string) string {
	return fmt.Sprintf("inst:%s:course:%s", tokenHash(token), courseID)
}

// VersionKey returns the cache key for a version detail payload.
func (r *CacheKeyStruct) VersionKey(token, versionID string) string {
	return fmt.Sprintf("inst:%s:version:%s", tokenHash(token), versionID)
}

// ReviewKey returns the cache key for a review payload.
func (r *CacheKeyStruct) ReviewKey(token, reviewID string) string {
	return fmt.Sprintf("inst:%s:review:%s", tokenHash(token), reviewID)
}

func tokenHash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:4])
}

var CacheKey = NewCacheKeyStruct()
