// Package cache provides a small generic LRU cache.
//
// It backs the glyph bitmap cache of package raster: re-packing an atlas
// after a layout-only change (padding, spacing, bin size) asks for the same
// letters in the same style again, and rasterizing them is the expensive
// part.
//
//	c := cache.New[string, int](256)
//	c.Set("A", 42)
//	v, ok := c.Get("A")
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
