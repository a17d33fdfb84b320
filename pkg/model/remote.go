package model

// RemoteSession is the login target recovered from an ssh client's argv.
type RemoteSession struct {
	User    string `json:"user,omitempty"`
	Host    string `json:"host,omitempty"`
	Port    string `json:"port,omitempty"`
	Command string `json:"command,omitempty"`
}

// Target returns user@host, or just host when no user was given.
func (r RemoteSession) Target() string {
	if r.User == "" {
		return r.Host
	}
	return r.User + "@" + r.Host
}
