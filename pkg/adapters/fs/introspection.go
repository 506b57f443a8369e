package fs

import (
	"github.com/aretw0/introspection"
)

// GatewayState exposes internal state for observability.
type GatewayState struct {
	Root          string `json:"root"`
	Suffix        string `json:"suffix"`
	WatcherActive bool   `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (g *Gateway) State() any {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return GatewayState{
		Root:          g.root,
		Suffix:        g.suffix,
		WatcherActive: g.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (g *Gateway) ComponentType() string {
	return "fs-gateway"
}

var _ introspection.Introspectable = (*Gateway)(nil)
var _ introspection.Component = (*Gateway)(nil)
