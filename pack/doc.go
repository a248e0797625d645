// Package pack places rectangles inside a single 2D bin.
//
// # Algorithm
//
// Packing uses a guillotine bin: every placement consumes one free region
// and cuts the remainder into at most two new free regions with straight
// cuts. Free regions are chosen by best short side fit and split along the
// shorter leftover axis. Input is sorted by descending height (stable on
// ties) before every pass, so results are deterministic.
//
// # Modes
//
// [Fixed] runs one pass against a bin of a given size. [Auto] searches for
// the smallest square bin that holds every rectangle by bisecting between a
// lower bound (the largest rectangle side) and an upper bound (the sum of
// all widths and heights). Each attempt re-packs from scratch.
//
// Rectangles that do not fit are reported in [Result.Failed]; running out
// of space is never an error.
//
// All functions are pure and safe for concurrent use.
package pack
