//go:build !arm64

package arch

// No switch primitive exists for this architecture. Snapshot, Prepare,
// Switch and the trampoline are declared only by per-GOARCH files, so the
// assertion in arch.go fails to compile here and the build stops — an
// unsupported target is a build error, never a runtime one.
//
// x86-64 is next in line; its register contract is laid out in doc.go.
