// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

// Package cache provides an in-process LRU cache for movie lookups.
// Recommendation responses resolve many movie ids per request, so this
// sits in front of the catalog table.
package cache

import (
	"sync"
	"time"

	"github.com/filmatlas/filmatlas/internal/models"
)

type movieEntry struct {
	key       string
	value     *models.Movie
	prev      *movieEntry
	next      *movieEntry
	expiresAt time.Time
}

// MovieCache is a thread-safe LRU cache with TTL for movie records.
// A doubly-linked list keeps access order and a map gives O(1)
// lookups; expiration is lazy on Get.
type MovieCache struct {
	mu sync.RWMutex

	capacity int
	ttl      time.Duration

	items map[string]*movieEntry

	// head.next is most recently used, tail.prev is least.
	head *movieEntry
	tail *movieEntry

	hits   int64
	misses int64
}

// NewMovieCache creates a cache with the given capacity and TTL.
func NewMovieCache(capacity int, ttl time.Duration) *MovieCache {
	if capacity <= 0 {
		capacity = 10000
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	c := &MovieCache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*movieEntry, capacity),
		head:     &movieEntry{},
		tail:     &movieEntry{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get returns the cached movie, or false if absent or expired. Found
// entries move to the front of the access order.
func (c *MovieCache) Get(id string) (*models.Movie, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, exists := c.items[id]; exists {
		if time.Now().After(entry.expiresAt) {
			c.removeEntry(entry)
			c.misses++
			return nil, false
		}
		c.moveToFront(entry)
		c.hits++
		return entry.value, true
	}

	c.misses++
	return nil, false
}

// Add stores or refreshes a movie. The least recently used entry is
// evicted at capacity.
func (c *MovieCache) Add(m *models.Movie) {
	if m == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := time.Now().Add(c.ttl)

	if entry, exists := c.items[m.ID]; exists {
		entry.value = m
		entry.expiresAt = expiresAt
		c.moveToFront(entry)
		return
	}

	entry := &movieEntry{key: m.ID, value: m, expiresAt: expiresAt}
	c.addToFront(entry)
	c.items[m.ID] = entry

	for len(c.items) > c.capacity {
		c.evictOldest()
	}
}

// Remove drops a movie from the cache. Callers invalidate after
// writes that change the stored record, such as a new rating bumping
// the aggregates.
func (c *MovieCache) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, exists := c.items[id]; exists {
		c.removeEntry(entry)
		return true
	}
	return false
}

// Len returns the current number of entries.
func (c *MovieCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Clear removes all entries.
func (c *MovieCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*movieEntry, c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
}

// Stats returns hit/miss counters and the current size.
func (c *MovieCache) Stats() (hits, misses int64, size int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses, len(c.items)
}

// List manipulation below requires the lock to be held.

func (c *MovieCache) addToFront(entry *movieEntry) {
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
}

func (c *MovieCache) moveToFront(entry *movieEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	c.addToFront(entry)
}

func (c *MovieCache) removeEntry(entry *movieEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(c.items, entry.key)
}

func (c *MovieCache) evictOldest() {
	oldest := c.tail.prev
	if oldest == c.head {
		return
	}
	c.removeEntry(oldest)
}
