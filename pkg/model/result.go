package model

type Result struct {
	Target   Target         `json:"target"`
	Process  Process        `json:"process"`
	Ancestry []Process      `json:"ancestry,omitempty"`
	Title    string         `json:"title,omitempty"`
	Remote   *RemoteSession `json:"remote,omitempty"`
}
