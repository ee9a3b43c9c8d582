// Package cache provides a bounded get-or-insert map with LRU eviction.
//
//	c := cache.New[string, int](100)
//	v := c.GetOrInsert("key", func() int { return 42 })
//
// A capacity of 0 means unbounded: entries live until Clear.
//
// # Thread Safety
//
// LRU is NOT safe for concurrent use. It is meant to be owned by a single
// goroutine, like the layout engine that embeds it.
package cache
