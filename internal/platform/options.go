package platform

import (
	"log/slog"

	"github.com/aretw0/marginalia/pkg/core"
)

// options holds the internal configuration for a marginalia session.
type options struct {
	gateway      core.Gateway
	prompter     core.Prompter
	notifier     core.Notifier
	remoteLinker core.RemoteLinker
	logger       *slog.Logger
	suffix       string
	mustExist    bool
}

// Option defines a functional option for configuring marginalia.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		suffix: "",
	}
}

// WithSuffix sets the memo set file name marker (default "code_memo").
func WithSuffix(suffix string) Option {
	return func(o *options) {
		o.suffix = suffix
	}
}

// WithLogger sets the logger for all components.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMustExist requires the project root directory to already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithGateway injects a custom persistence gateway.
func WithGateway(gw core.Gateway) Option {
	return func(o *options) {
		o.gateway = gw
	}
}

// WithRemoteLinker injects the remote permalink lookup. Defaults to the
// exec-based git client when unset.
func WithRemoteLinker(linker core.RemoteLinker) Option {
	return func(o *options) {
		o.remoteLinker = linker
	}
}

// WithPrompter sets the interactive input surface.
func WithPrompter(p core.Prompter) Option {
	return func(o *options) {
		o.prompter = p
	}
}

// WithNotifier sets the user message surface.
func WithNotifier(n core.Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}
