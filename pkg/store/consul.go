package store

import (
	"fmt"

	"github.com/hashicorp/consul/api"
	"go.uber.org/zap"
)

// Consul adapts the local Consul agent to the KV interface. Every error the
// client raises, including mid-election 500s, comes back as ErrUnavailable.
type Consul struct {
	kv     *api.KV
	health *api.Health
	logger *zap.Logger
}

// Dial connects to the Consul agent at addr (host:port).
func Dial(addr string, logger *zap.Logger) (*Consul, error) {
	cfg := api.DefaultConfig()
	if addr != "" {
		cfg.Address = addr
	}
	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}
	return &Consul{
		kv:     client.KV(),
		health: client.Health(),
		logger: logger,
	}, nil
}

func (c *Consul) Get(key string) (string, error) {
	pair, _, err := c.kv.Get(key, nil)
	if err != nil {
		c.logger.Debug("KV get failed", zap.String("key", key), zap.Error(err))
		return "", Unavailable(err)
	}
	if pair == nil {
		return "", nil
	}
	return string(pair.Value), nil
}

func (c *Consul) List(prefix string) ([]Pair, error) {
	pairs, _, err := c.kv.List(prefix, nil)
	if err != nil {
		c.logger.Debug("KV list failed", zap.String("prefix", prefix), zap.Error(err))
		return nil, Unavailable(err)
	}
	out := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, Pair{Key: p.Key, Value: string(p.Value)})
	}
	return out, nil
}

func (c *Consul) NodeHealth(node string) ([]Check, error) {
	checks, _, err := c.health.Node(node, nil)
	if err != nil {
		c.logger.Debug("health query failed", zap.String("node", node), zap.Error(err))
		return nil, Unavailable(err)
	}
	out := make([]Check, 0, len(checks))
	for _, hc := range checks {
		out = append(out, Check{ServiceID: hc.ServiceID, Status: hc.Status})
	}
	return out, nil
}
