package web

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	archiveCacheSize = 64
	archiveCacheTTL  = 10 * time.Minute
)

// cachedArchive is a generated project held for download.
type cachedArchive struct {
	FileName string
	Data     []byte
	Files    []string
}

// archiveCache keeps recent archives in memory only; they are never written
// to disk by the server.
type archiveCache struct {
	lru *expirable.LRU[string, cachedArchive]
}

func newArchiveCache(size int, ttl time.Duration) *archiveCache {
	return &archiveCache{lru: expirable.NewLRU[string, cachedArchive](size, nil, ttl)}
}

func (c *archiveCache) put(id string, a cachedArchive) {
	c.lru.Add(id, a)
}

func (c *archiveCache) get(id string) (cachedArchive, bool) {
	return c.lru.Get(id)
}

func (c *archiveCache) len() int {
	return c.lru.Len()
}
