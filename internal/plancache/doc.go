// Package plancache keeps recently reconstructed floor plans in memory so
// that follow-up tool calls can refer to a plan by ID instead of resending
// its geometry.
//
// # Capacity
//
// A Cache holds at most a fixed number of plans. When a new plan is stored
// into a full cache, the oldest entry is evicted first. Reading a plan does
// not refresh its position.
//
// # Thread Safety
//
// All Cache methods are safe for concurrent use.
package plancache
