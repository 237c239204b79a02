package types

import "encoding/json"

type Role string

const (
	RoleConfd     Role = "confd"
	RoleHax       Role = "hax"
	RoleIOService Role = "ioservice"
	RoleS3Server  Role = "s3server"
	RoleClient    Role = "client"
)

type Status string

const (
	StatusStarted Status = "started"
	StatusOffline Status = "offline"
	StatusUnknown Status = "unknown"
)

// Process is one service process owned by a host.
type Process struct {
	Fid      Fid
	Role     Role
	Endpoint string
	Status   Status
}

// Host is a cluster node with its processes sorted by Fid key ascending.
type Host struct {
	Name      string
	Processes []Process
}

// ClusterView is the result of one aggregation pass. It is built fresh per
// invocation and never mutated after construction.
type ClusterView struct {
	Profile    string
	Pools      []string
	Filesystem json.RawMessage
	Leader     string
	Hosts      []Host
}
