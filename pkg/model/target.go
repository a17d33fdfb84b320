package model

type TargetType string

const (
	TargetPID  TargetType = "pid"
	TargetName TargetType = "name"
)

type Target struct {
	Type  TargetType `json:"type"`
	Value string     `json:"value"`
}
