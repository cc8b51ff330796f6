//go:build !(tinygo && bootdebug)

package app

import "vigil/hal"

func bootStep(_ hal.HAL, _ string) {}
