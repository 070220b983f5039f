//go:build darwin && cgo

package appkit

/*
#include <stdint.h>
*/
import "C"

import "runtime/cgo"

//export wintagDispatchCallback
func wintagDispatchCallback(handle C.uintptr_t) {
	h := cgo.Handle(handle)
	f := h.Value().(func())
	h.Delete()
	f()
}
