package crypto

import "runtime"

// Zero overwrites b with zeros. The KeepAlive stops the compiler from
// eliding the wipe of a buffer that is about to become unreachable.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
