// Package numtheory implements the number-theoretic primitives RSA needs on
// top of the bigint engine: the extended Euclidean algorithm and modular
// inverse, modular exponentiation, overflow-free modular multiplication, a
// Miller–Rabin test over a fixed witness set, and seeded random prime search.
//
// The primality test is probabilistic for candidates beyond the square of the
// largest witness. The witness set is fixed so that key generation stays
// reproducible for a given seed.
package numtheory
