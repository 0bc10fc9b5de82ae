// Package board binds a part selection to board-level build settings.
//
// A Profile names one variant, whether the board wants the runtime shim,
// and the panic strategy of the final binary. Building a profile resolves
// the selection and composes the facade once, so application code sees a
// single coherent capability set through the Board.
//
// Profiles ship built in (see Lookup) or load from YAML:
//
//	version: "1.0"
//	boards:
//	  - name: arduino-due
//	    variant: sam3x8e
//	    runtime: true
//	    panic: halt
//	    modules: [usb, can]
//	  - name: due-sim
//	    variant: sam3x8e
//	    freestanding: false
//	    tags: [sim]
//
// Entries are freestanding unless they set freestanding: false, and a
// profile that activates the runtime shim is always freestanding. Either
// way the profile must name a panic strategy.
package board
