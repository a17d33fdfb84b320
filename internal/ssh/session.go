// Package ssh recovers the login target of a running ssh client from its
// argument vector.
package ssh

import (
	"net/netip"
	"strings"

	"github.com/pranshuparmar/pinfo/internal/logging"
	"github.com/pranshuparmar/pinfo/pkg/model"
)

// Process is the part of proc.Info a Session reads.
type Process interface {
	Name() (string, bool)
	Arguments() ([]string, bool)
}

// OpenSSH option letters, split by whether they take a value.
const (
	noArgOptions     = "1246AaCfGgKkMNnqsTtVvXxYy"
	singleArgOptions = "BbcDEeFIiJLlmOoPpQRSWw"
)

// Session is the user, host, port and remote command an ssh client was
// started with. It is computed once from the wrapped process and does not
// follow later updates of it.
type Session struct {
	process Process

	user    string
	host    string
	port    string
	command string
}

// New decodes p. When p is not an ssh client all fields are empty.
func New(p Process) *Session {
	s := &Session{process: p}

	name, ok := p.Name()
	if !ok || name != "ssh" {
		logging.New("ssh").Warn().Str("name", name).Bool("name_known", ok).Msg("process is not an ssh client")
		return s
	}

	args, _ := p.Arguments()
	s.parse(args)
	return s
}

func (s *Session) parse(args []string) {
	if len(args) == 0 {
		return
	}
	args = args[1:]

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && len(arg) > 1 {
			opt := arg[1]
			if !strings.ContainsRune(singleArgOptions, rune(opt)) {
				// includes noArgOptions and anything this table does not know
				continue
			}

			var value string
			if len(arg) > 2 {
				value = arg[2:]
			} else if i+1 < len(args) {
				i++
				value = args[i]
			}
			switch opt {
			case 'l':
				s.user = value
			case 'p':
				s.port = value
			}
			continue
		}

		if s.host == "" {
			if user, host, ok := strings.Cut(arg, "@"); ok {
				s.user, s.host = user, host
			} else {
				s.host = arg
			}
			continue
		}

		s.command = arg
		return
	}
}

// Process returns the process the session was decoded from.
func (s *Session) Process() Process { return s.process }

func (s *Session) User() string    { return s.user }
func (s *Session) Host() string    { return s.host }
func (s *Session) Port() string    { return s.port }
func (s *Session) Command() string { return s.command }

// Format substitutes %u (user), %h (host up to the first dot unless it is
// an IPv4 address), %H (full host) and %c (remote command).
func (s *Session) Format(template string) string {
	return strings.NewReplacer(
		"%u", s.user,
		"%h", s.shortHost(),
		"%H", s.host,
		"%c", s.command,
	).Replace(template)
}

func (s *Session) shortHost() string {
	if addr, err := netip.ParseAddr(s.host); err == nil && addr.Is4() {
		return s.host
	}
	host, _, _ := strings.Cut(s.host, ".")
	return host
}

func (s *Session) Snapshot() model.RemoteSession {
	return model.RemoteSession{User: s.user, Host: s.host, Port: s.port, Command: s.command}
}
