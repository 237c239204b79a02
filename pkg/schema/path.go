package schema

import (
	"strconv"
	"strings"
)

// Store key layout:
//
//	conf/nodes/<nid>                              node record (JSON, has "name")
//	conf/nodes/<nid>/processes/<pid>              process record
//	conf/nodes/<nid>/processes/<pid>/endpoint     endpoint leaf
//	conf/nodes/<nid>/processes/<pid>/services/<t> service-type marker
//	conf/profiles/current                         active profile name
//	conf/pools                                    space-delimited pool names
//	conf/filesystem/stats                         opaque JSON stats
//	leader                                        elected leader node name
const (
	nodesPrefix = "conf/nodes"
	profileKey  = "conf/profiles/current"
	poolsKey    = "conf/pools"
	fsStatsKey  = "conf/filesystem/stats"
	leaderKey   = "leader"
)

const (
	nodeKeyDepth    = 3 // conf/nodes/<nid>
	processSegIndex = 4 // conf/nodes/<nid>/processes/<pid>/...
	serviceKeyDepth = 7 // conf/nodes/<nid>/processes/<pid>/services/<type>
)

func segments(key string) []string {
	return strings.Split(strings.Trim(key, "/"), "/")
}

// parseNodeKey accepts only keys at the exact node-record depth and returns
// the numeric node id segment.
func parseNodeKey(key string) (string, bool) {
	segs := segments(key)
	if len(segs) != nodeKeyDepth {
		return "", false
	}
	id := segs[nodeKeyDepth-1]
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		return "", false
	}
	return id, true
}

// parseProcessKey extracts the numeric process id from any key at or below
// the process level. The same id shows up under several sub-paths (the record
// itself, its endpoint, its services), so callers must deduplicate.
func parseProcessKey(key string) (uint64, bool) {
	segs := segments(key)
	if len(segs) < processSegIndex+1 {
		return 0, false
	}
	pid, err := strconv.ParseUint(segs[processSegIndex], 10, 64)
	if err != nil {
		return 0, false
	}
	return pid, true
}

// parseServiceKey accepts only keys at the exact service-marker depth and
// returns the service-type token.
func parseServiceKey(key string) (string, bool) {
	segs := segments(key)
	if len(segs) != serviceKeyDepth {
		return "", false
	}
	return segs[serviceKeyDepth-1], true
}
