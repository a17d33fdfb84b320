//go:build !linux && !darwin && !freebsd && !dragonfly && !solaris

package proc

func newPlatformReader() reader {
	return nullReader{}
}
