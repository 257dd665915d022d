// Command ecctool generates keys, signs, verifies and performs ECDH on the
// curves supported by go-ecc.
//
// Keys, hashes and signatures are read and written as hex. Settings come
// from flags, ECC_* environment variables or a YAML file named by --config.
package main

import (
	"os"
)

func main() {
	// cobra prints the error and usage, only the exit status is left
	if newRootCmd().Execute() != nil {
		os.Exit(1)
	}
}
