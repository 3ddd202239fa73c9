// Package bigint implements signed arbitrary-precision decimal integers.
//
// An Int stores its magnitude as little-endian limbs in base Radix (10000),
// so four decimal digits live in each limb and string conversion never needs
// a base change. Values are immutable: every operation returns a new Int and
// never writes into the backing array of an operand, which makes Int safe to
// copy by value and to share between goroutines.
//
// The number of limbs a value may hold is bounded by MaxLimbs. Operations
// whose result would need more limbs fail with ErrCapacityExceeded instead of
// truncating.
//
// Division is truncating (like Go's / and % on native integers): the quotient
// is rounded toward zero and a nonzero remainder carries the dividend's sign.
package bigint
