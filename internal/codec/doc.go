// Package codec maps byte streams to RSA blocks and back.
//
// Encryption splits the plaintext into groups of fragment_size bytes. Each
// group is packed into one integer by appending every byte as a
// three-decimal-digit chunk, raised to e modulo n, and serialized as exactly
// encrypt_fragment_size base-encrypt_byte_val digits, most significant digit
// first. Decryption reverses each step block by block.
//
// The block count is not recorded, so NUL bytes at the start of the final
// plaintext group pack to leading zeros and are not recovered on decryption.
// NUL bytes anywhere else round-trip.
package codec
