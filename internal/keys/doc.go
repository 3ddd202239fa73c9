// Package keys generates RSA key pairs on top of numtheory and reads and
// writes the five-field key file format.
//
// A key file holds, one decimal value per line:
//
//	exponent (e for a public key, d for a secret key)
//	n
//	fragment_size
//	encrypt_fragment_size
//	encrypt_byte_val
//
// Public and secret keys of a pair share n and the three sizing fields.
package keys
