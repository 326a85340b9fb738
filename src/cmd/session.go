package cmd

import (
	"context"
	"runtime"

	"github.com/nvmux/nvmux/src/internal/backend"
	"github.com/nvmux/nvmux/src/internal/constants"
	"github.com/nvmux/nvmux/src/internal/settings"
	"github.com/nvmux/nvmux/src/internal/ui"
)

// session bundles the resolved backend for one command invocation:
// the loaded settings, the detected installation, and the provider
// wrapping it.
type session struct {
	settings settings.Settings
	variant  backend.Variant
	outcome  backend.Outcome
	provider backend.Provider
}

// openSession loads settings, picks the backend (the --backend flag
// wins over the settings file, and with neither set the registered
// variants are probed in order), detects its installation, and wraps
// it in a provider.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := settings.Load()
	if err != nil {
		return nil, err
	}

	name := cfg.Backend
	if backendFlag != "" {
		name = backendFlag
	}

	// A configured WSL distribution pins the session to nvm inside it;
	// host-side probing cannot see into the distro.
	if cfg.WSLDistro != "" && runtime.GOOS == constants.OSWindows &&
		(name == "" || name == string(backend.KindNvm)) {
		return wslSession(cfg)
	}

	if name == "" {
		return probeAny(ctx, cfg)
	}

	kind, err := backend.ParseKind(name)
	if err != nil {
		return nil, err
	}
	va, err := backend.Get(kind)
	if err != nil {
		return nil, err
	}

	// The configured path override belongs to the configured backend;
	// ignore it when the flag switches to another one.
	var opts backend.DetectOptions
	if string(kind) == cfg.Backend {
		opts.Override = cfg.BackendPath
	}

	out, err := va.Detect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if out.Kind == backend.OutcomeNotFound {
		return nil, &backend.ErrBackendNotFound{Backend: string(kind), Probed: out.Probed}
	}

	return newSession(cfg, va, out)
}

// wslSession builds an nvm session for the configured WSL
// distribution. BackendPath, when set, is the nvm.sh location inside
// the distro.
func wslSession(cfg settings.Settings) (*session, error) {
	va, err := backend.Get(backend.KindNvm)
	if err != nil {
		return nil, err
	}
	ui.Debug("using nvm inside WSL distribution %s", cfg.WSLDistro)
	return newSession(cfg, va, backend.FoundInWSL(cfg.WSLDistro, cfg.BackendPath))
}

// probeAny tries each registered variant in order and settles on the
// first one with a detectable installation.
func probeAny(ctx context.Context, cfg settings.Settings) (*session, error) {
	var probed []string
	for _, kind := range backend.Kinds() {
		va, err := backend.Get(kind)
		if err != nil {
			continue
		}
		out, err := va.Detect(ctx, backend.DetectOptions{})
		if err != nil {
			return nil, err
		}
		if out.Kind == backend.OutcomeNotFound {
			probed = append(probed, out.Probed...)
			continue
		}
		ui.Debug("auto-selected backend %s at %s", kind, out.Path)
		return newSession(cfg, va, out)
	}
	return nil, &backend.ErrBackendNotFound{Backend: "node version manager", Probed: probed}
}

func newSession(cfg settings.Settings, va backend.Variant, out backend.Outcome) (*session, error) {
	env := backend.FromOutcome(va.Info().Kind, out)
	env.ShowWindow = cfg.ShowConsoleWindows
	env.CmdTimeout = cfg.CommandTimeout()
	env.InstallTimeout = cfg.InstallTimeout()
	env.ShellInit = backend.ShellInitOptions{Prelude: cfg.ShellInitPrelude}

	provider, err := va.New(env)
	if err != nil {
		return nil, err
	}
	return &session{settings: cfg, variant: va, outcome: out, provider: provider}, nil
}

// describeBackendError prints a resolution error with a hint for the
// common cases.
func describeBackendError(err error) {
	ui.Error("%v", err)
	if backend.IsBackendNotFound(err) {
		ui.Info("Install one with: nvmux setup fnm (or nvmux setup nvm)")
	}
}
