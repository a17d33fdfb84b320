//go:build linux

package proc

func newPlatformReader() reader {
	return procfsReader{root: "/proc"}
}
