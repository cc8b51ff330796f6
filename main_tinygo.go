//go:build tinygo

package main

import (
	"vigil/app"
	"vigil/hal"
)

func main() {
	app.Run(hal.New())
}
