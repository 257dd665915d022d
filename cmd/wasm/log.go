package main

import "github.com/smallyu/go-ecc/internal/logging"

var logger = logging.MustGetLogger("wasm")
