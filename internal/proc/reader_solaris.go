//go:build solaris

package proc

func newPlatformReader() reader {
	return psinfoReader{root: "/proc"}
}
