//go:build !js && !wasip1

package storage

// CurrentRuntime reports the runtime this binary was built for.
func CurrentRuntime() Runtime { return RuntimeNative }
