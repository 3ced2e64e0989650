// Package conv provides checked integer narrowing.
//
// Record framing and the composite writers carry counts as int but
// emit them as fixed-width wire integers; these helpers validate the
// narrowing instead of silently truncating. For conversions that are
// provably safe by domain constraints (loop indices, bounded
// counters), use direct casts.
package conv
