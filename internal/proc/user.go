package proc

import (
	"os"
	"os/user"
	"strconv"

	"github.com/pranshuparmar/pinfo/internal/logging"
)

// SetUserName records name and looks up its home directory. An empty name
// falls back to the home directory of the calling user.
func (p *Info) SetUserName(name string) {
	p.userName = name
	p.userHomeDir = homeDirFor(name)
}

// readUserName resolves the recorded uid through the user database.
func (p *Info) readUserName() {
	uid, ok := p.UID()
	if !ok {
		return
	}
	u, err := user.LookupId(strconv.Itoa(uid))
	if err != nil {
		logging.New("proc").Warn().Err(err).Int("uid", uid).Int("pid", p.pid).Msg("unable to resolve user name")
		p.SetUserName("")
		return
	}
	p.SetUserName(u.Username)
}

func homeDirFor(name string) string {
	if name == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return home
	}
	u, err := user.Lookup(name)
	if err != nil {
		return ""
	}
	return u.HomeDir
}
