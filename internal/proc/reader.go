package proc

// reader fills an Info from one platform's process sources. Every method
// reports whether it populated anything; failures are recorded on the Info.
type reader interface {
	readProcInfo(p *Info, pid int) bool
	readArguments(p *Info, pid int) bool
	readCurrentDir(p *Info, pid int) bool
	readEnvironment(p *Info, pid int) bool
}

// nullReader is used where no platform source is known.
type nullReader struct{}

func (nullReader) readProcInfo(*Info, int) bool    { return false }
func (nullReader) readArguments(*Info, int) bool   { return false }
func (nullReader) readCurrentDir(*Info, int) bool  { return false }
func (nullReader) readEnvironment(*Info, int) bool { return false }
