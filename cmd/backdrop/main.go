// backdrop - animated 3D background
// A wireframe torus, floating crystals, a pulsing platform and a starfield
// lit by three orbiting lights. Move the pointer to steer the camera.
//
// Controls:
//
//	Pointer / touch - Steer the camera
//	Esc             - Quit (q and Ctrl-C also quit the terminal view)
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
