package marginalia

import (
	_ "embed"
	"log/slog"

	"github.com/aretw0/marginalia/internal/platform"
	"github.com/aretw0/marginalia/pkg/core"
	"github.com/aretw0/marginalia/pkg/session"
)

//go:embed version.txt
var Version string

// --- Types ---

// Record is a public alias for the memo record.
type Record = core.Record

// Span is a public alias for a zero-based document span.
type Span = core.Span

// Tagged is a public alias for a record paired with its memo set title.
type Tagged = core.Tagged

// Session is a public alias for the interactive memo session.
type Session = session.Session

// --- Configuration ---

// Option defines a functional option for configuring marginalia.
type Option = platform.Option

// WithSuffix sets the memo set file name marker (default "code_memo").
func WithSuffix(suffix string) Option {
	return platform.WithSuffix(suffix)
}

// WithLogger sets the logger for all components.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithMustExist requires the project root directory to already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithGateway injects a custom persistence gateway.
func WithGateway(gw core.Gateway) Option {
	return platform.WithGateway(gw)
}

// WithRemoteLinker injects the remote permalink lookup.
func WithRemoteLinker(linker core.RemoteLinker) Option {
	return platform.WithRemoteLinker(linker)
}

// WithPrompter sets the interactive input surface.
func WithPrompter(p core.Prompter) Option {
	return platform.WithPrompter(p)
}

// WithNotifier sets the user message surface.
func WithNotifier(n core.Notifier) Option {
	return platform.WithNotifier(n)
}

// --- Factories ---

// New creates an interactive Session for the given project root, seeded from
// the memo sets already on disk. Hosts must supply a prompter and a notifier.
func New(root string, opts ...Option) (*Session, error) {
	return platform.New(root, opts...)
}

// OpenGateway initializes just the persistence gateway for headless use.
func OpenGateway(root string, opts ...Option) (core.Gateway, error) {
	return platform.OpenGateway(root, opts...)
}

// --- Utils ---

// FindProjectRoot recursively looks upwards for a project root indicator
// (config file, memo set record file, or .git).
func FindProjectRoot(startDir, suffix string) (string, error) {
	return platform.FindRoot(startDir, suffix)
}
