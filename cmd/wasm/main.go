//go:build js && wasm

package main

import (
	"syscall/js"
)

func main() {
	c := make(chan struct{})

	// each function takes one JSON request string and returns a JSON
	// response string
	js.Global().Set("GoECC", map[string]interface{}{
		"GenerateKey": export(generateKey),
		"PublicKey":   export(publicKeyOf),
		"Sign":        export(sign),
		"Verify":      export(verify),
		"ECDH":        export(ecdh),
	})
	logger.Infof("go-ecc wasm initialized")

	<-c
}

func export(h handler) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) != 1 {
			return `{"error":"expected 1 argument (json request)"}`
		}
		return call(h, args[0].String())
	})
}
