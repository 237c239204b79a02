package store

import (
	"errors"
	"sort"
	"strings"
)

// MemStore is an in-memory KV used by tests in place of a live Consul agent.
// Keys list in lexicographic order, matching Consul's recursive reads.
type MemStore struct {
	Data   map[string]string
	Checks map[string][]Check

	// FailNext makes that many subsequent calls report ErrUnavailable,
	// simulating an agent mid-election.
	FailNext int
}

func NewMemStore() *MemStore {
	return &MemStore{
		Data:   make(map[string]string),
		Checks: make(map[string][]Check),
	}
}

func (m *MemStore) failing() bool {
	if m.FailNext > 0 {
		m.FailNext--
		return true
	}
	return false
}

func (m *MemStore) Get(key string) (string, error) {
	if m.failing() {
		return "", Unavailable(errors.New("simulated outage"))
	}
	return m.Data[key], nil
}

func (m *MemStore) List(prefix string) ([]Pair, error) {
	if m.failing() {
		return nil, Unavailable(errors.New("simulated outage"))
	}
	var out []Pair
	for k, v := range m.Data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, Pair{Key: k, Value: v})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *MemStore) NodeHealth(node string) ([]Check, error) {
	if m.failing() {
		return nil, Unavailable(errors.New("simulated outage"))
	}
	return m.Checks[node], nil
}
