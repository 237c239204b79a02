package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"clustat/pkg/store"
	"clustat/pkg/types"

	"go.uber.org/zap"
)

// healthPassing is the only health status treated specially; every other
// recorded status maps to offline.
const healthPassing = "passing"

// rolePriority is the fixed priority-ordered table of service-type tokens.
// First match against a process's services wins; no match means a generic
// client process.
var rolePriority = []struct {
	token string
	role  types.Role
}{
	{"confd", types.RoleConfd},
	{"hax", types.RoleHax},
	{"ha", types.RoleHax},
	{"ios", types.RoleIOService},
	{"ioservice", types.RoleIOService},
	{"s3server", types.RoleS3Server},
	{"s3service", types.RoleS3Server},
}

// nodeRecord is the JSON payload stored at a node key.
type nodeRecord struct {
	Name string `json:"name"`
}

// Walker reconstructs the cluster topology from the store's key tree. One
// Aggregate call performs one linear sequence of reads; nothing is cached
// across calls.
type Walker struct {
	kv     store.KV
	logger *zap.Logger
}

func NewWalker(kv store.KV, logger *zap.Logger) *Walker {
	return &Walker{kv: kv, logger: logger}
}

// Aggregate walks the whole tree and builds a fresh ClusterView. The walk is
// not transactional; concurrent topology changes between reads can yield a
// torn view, which retry above this layer does not correct.
func (w *Walker) Aggregate() (*types.ClusterView, error) {
	profile, err := w.kv.Get(profileKey)
	if err != nil {
		return nil, err
	}

	pools, err := w.Pools()
	if err != nil {
		return nil, err
	}

	fsStats, err := w.kv.Get(fsStatsKey)
	if err != nil {
		return nil, err
	}

	leader, err := w.kv.Get(leaderKey)
	if err != nil {
		return nil, err
	}

	names, err := w.ListHosts()
	if err != nil {
		return nil, err
	}

	view := &types.ClusterView{
		Profile: profile,
		Pools:   pools,
		Leader:  leader,
	}
	if fsStats != "" {
		view.Filesystem = json.RawMessage(fsStats)
	}

	for _, name := range names {
		host, err := w.walkHost(name)
		if err != nil {
			return nil, err
		}
		view.Hosts = append(view.Hosts, *host)
	}

	w.logger.Debug("aggregation complete",
		zap.String("profile", profile),
		zap.Int("hosts", len(view.Hosts)))

	return view, nil
}

// Pools splits the single space-delimited pools leaf. An empty leaf yields
// [""], not an empty slice.
func (w *Walker) Pools() ([]string, error) {
	value, err := w.kv.Get(poolsKey)
	if err != nil {
		return nil, err
	}
	return strings.Split(value, " "), nil
}

// ListHosts returns the host names recorded in the node list, in store order.
func (w *Walker) ListHosts() ([]string, error) {
	pairs, err := w.kv.List(nodesPrefix)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, p := range pairs {
		if _, ok := parseNodeKey(p.Key); !ok {
			continue
		}
		var rec nodeRecord
		if err := json.Unmarshal([]byte(p.Value), &rec); err != nil {
			return nil, schemaErrorf(p.Key, "malformed node record: %v", err)
		}
		names = append(names, rec.Name)
	}
	return names, nil
}

// nodeID resolves a host name to its numeric node id by linear scan of the
// node list. A name with no node id is a schema violation, not a soft
// failure. Tens of nodes at most, so no reverse index.
func (w *Walker) nodeID(name string) (string, error) {
	pairs, err := w.kv.List(nodesPrefix)
	if err != nil {
		return "", err
	}
	for _, p := range pairs {
		id, ok := parseNodeKey(p.Key)
		if !ok {
			continue
		}
		var rec nodeRecord
		if err := json.Unmarshal([]byte(p.Value), &rec); err != nil {
			continue
		}
		if rec.Name == name {
			return id, nil
		}
	}
	return "", schemaErrorf(nodesPrefix, "no node id for host %q", name)
}

// ProcessKeys lists the numeric process ids recorded under a node,
// deduplicated and sorted ascending numerically.
func (w *Walker) ProcessKeys(nodeID string) ([]uint64, error) {
	prefix := fmt.Sprintf("%s/%s/processes", nodesPrefix, nodeID)
	pairs, err := w.kv.List(prefix)
	if err != nil {
		return nil, err
	}
	seen := make(map[uint64]bool)
	var pids []uint64
	for _, p := range pairs {
		pid, ok := parseProcessKey(p.Key)
		if !ok {
			continue
		}
		if !seen[pid] {
			seen[pid] = true
			pids = append(pids, pid)
		}
	}
	sort.Slice(pids, func(i, j int) bool { return pids[i] < pids[j] })
	return pids, nil
}

// Role resolves a process's role from its services sub-tree by the fixed
// priority table.
func (w *Walker) Role(nodeID string, pid uint64) (types.Role, error) {
	prefix := fmt.Sprintf("%s/%s/processes/%d/services", nodesPrefix, nodeID, pid)
	pairs, err := w.kv.List(prefix)
	if err != nil {
		return "", err
	}
	tokens := make(map[string]bool)
	for _, p := range pairs {
		if token, ok := parseServiceKey(p.Key); ok {
			tokens[token] = true
		}
	}
	for _, entry := range rolePriority {
		if tokens[entry.token] {
			return entry.role, nil
		}
	}
	return types.RoleClient, nil
}

// Endpoint reads a process's endpoint leaf. Absent means empty, not an error.
func (w *Walker) Endpoint(nodeID string, pid uint64) (string, error) {
	key := fmt.Sprintf("%s/%s/processes/%d/endpoint", nodesPrefix, nodeID, pid)
	return w.kv.Get(key)
}

// processStatus maps a node's health checks onto one process by numeric
// service id.
func processStatus(checks []store.Check, pid uint64) types.Status {
	id := strconv.FormatUint(pid, 10)
	for _, c := range checks {
		if c.ServiceID != id {
			continue
		}
		if c.Status == healthPassing {
			return types.StatusStarted
		}
		return types.StatusOffline
	}
	return types.StatusUnknown
}

func (w *Walker) walkHost(name string) (*types.Host, error) {
	nodeID, err := w.nodeID(name)
	if err != nil {
		return nil, err
	}

	pids, err := w.ProcessKeys(nodeID)
	if err != nil {
		return nil, err
	}

	checks, err := w.kv.NodeHealth(name)
	if err != nil {
		return nil, err
	}

	host := &types.Host{Name: name}
	for _, pid := range pids {
		role, err := w.Role(nodeID, pid)
		if err != nil {
			return nil, err
		}
		endpoint, err := w.Endpoint(nodeID, pid)
		if err != nil {
			return nil, err
		}
		host.Processes = append(host.Processes, types.Process{
			Fid:      types.ProcessFid(pid),
			Role:     role,
			Endpoint: endpoint,
			Status:   processStatus(checks, pid),
		})
	}
	return host, nil
}
