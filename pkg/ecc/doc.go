// Package ecc holds the types shared by the curve families: the key
// interfaces, curve metadata, hash presets and the common errors.
//
// The concrete keys live in the ecdsa package (secp256k1, secp256r1,
// secp224r1, secp384r1) and the eddsa package (Ed25519). Both satisfy
// PrivateKey and PublicKey, so tools can handle keys without knowing the
// family.
package ecc
