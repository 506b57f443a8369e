package platform

import (
	"fmt"

	"github.com/aretw0/marginalia/pkg/adapters/fs"
	"github.com/aretw0/marginalia/pkg/core"
	"github.com/aretw0/marginalia/pkg/git"
	"github.com/aretw0/marginalia/pkg/session"
)

// New wires a full interactive session for the given project root: gateway,
// remote linker, store seeding and reflection engine. The host must supply a
// prompter and a notifier via options.
func New(root string, opts ...Option) (*session.Session, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	gw, err := resolveGateway(root, o)
	if err != nil {
		return nil, err
	}

	linker := o.remoteLinker
	if linker == nil {
		linker = git.NewClient(root, o.logger)
	}

	return session.New(session.Config{
		Gateway:      gw,
		Prompter:     o.prompter,
		Notifier:     o.notifier,
		RemoteLinker: linker,
		Logger:       o.logger,
	})
}

// OpenGateway initializes just the persistence gateway for the given project
// root, for headless use (the CLI, scripts).
func OpenGateway(root string, opts ...Option) (core.Gateway, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return resolveGateway(root, o)
}

func resolveGateway(root string, o *options) (core.Gateway, error) {
	if o.gateway != nil {
		return o.gateway, nil
	}

	fileCfg, err := LoadConfig(root)
	if err != nil {
		return nil, err
	}

	// Precedence: explicit option, project config file, default.
	suffix := o.suffix
	if suffix == "" {
		suffix = fileCfg.Suffix
	}
	if suffix == "" {
		suffix = fs.DefaultSuffix
	}

	gw := fs.NewGateway(fs.Config{
		Root:      root,
		Suffix:    suffix,
		MustExist: o.mustExist,
		Logger:    o.logger,
	})
	if err := gw.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize gateway: %w", err)
	}
	return gw, nil
}
