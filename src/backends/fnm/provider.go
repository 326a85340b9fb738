// Package fnm drives the Fast Node Manager (fnm) through its command
// line interface, normalizing it to the shared backend contract.
package fnm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nvmux/nvmux/src/internal/backend"
	"github.com/nvmux/nvmux/src/internal/node"
	"github.com/nvmux/nvmux/src/internal/proc"
	"github.com/nvmux/nvmux/src/internal/release"
)

const toolRepo = "Schniz/fnm"

const (
	defaultCmdTimeout     = 30 * time.Second
	defaultInstallTimeout = 10 * time.Minute
)

func init() {
	if err := backend.Register(newVariant()); err != nil {
		panic(fmt.Sprintf("failed to register fnm backend: %v", err))
	}
}

type variant struct {
	rel *release.Client
}

func newVariant() *variant {
	return &variant{rel: release.NewClient()}
}

func info() backend.Info {
	return backend.Info{
		Kind:        backend.KindFnm,
		DisplayName: "Fast Node Manager (fnm)",
		Executable:  "fnm",
		Repo:        toolRepo,
	}
}

func (va *variant) Info() backend.Info {
	return info()
}

// New wraps a detected fnm installation in a Provider.
func (va *variant) New(env backend.Environment) (backend.Provider, error) {
	if env.ExecPath == "" {
		return nil, fmt.Errorf("fnm provider requires an executable path")
	}
	return &Provider{env: env, rel: va.rel}, nil
}

// Provider executes fnm subcommands against one detected installation.
type Provider struct {
	env backend.Environment
	rel *release.Client
}

func (p *Provider) Info() backend.Info {
	return info()
}

func (p *Provider) Capabilities() backend.Capabilities {
	return backend.Capabilities{
		SelfUpdate:     true,
		InstallPercent: true,
	}
}

func cmdTimeout(env backend.Environment) time.Duration {
	if env.CmdTimeout > 0 {
		return env.CmdTimeout
	}
	return defaultCmdTimeout
}

func installTimeout(env backend.Environment) time.Duration {
	if env.InstallTimeout > 0 {
		return env.InstallTimeout
	}
	return defaultInstallTimeout
}

func (p *Provider) run(ctx context.Context, timeout time.Duration, args ...string) (proc.Result, error) {
	return proc.Run(ctx, proc.Command{
		Path:       p.env.ExecPath,
		Args:       args,
		Timeout:    timeout,
		ShowWindow: p.env.ShowWindow,
	})
}

// ListInstalled returns the versions fnm manages, with the default
// marked from the listing annotations.
func (p *Provider) ListInstalled(ctx context.Context) ([]node.Installed, error) {
	res, err := p.run(ctx, cmdTimeout(p.env), "ls")
	if err != nil {
		return nil, err
	}
	return ParseInstalled(res.Stdout)
}

// ListRemote returns the versions available from the Node distribution
// index, as reported by fnm itself.
func (p *Provider) ListRemote(ctx context.Context) ([]node.Remote, error) {
	res, err := p.run(ctx, cmdTimeout(p.env), "ls-remote")
	if err != nil {
		return nil, err
	}
	return ParseRemote(res.Stdout)
}

// Install runs `fnm install` and streams phase updates parsed from its
// output. The installed version is determined afterwards from the
// listing, since fnm resolves aliases like "lts" internally.
func (p *Provider) Install(ctx context.Context, version node.Version, onProgress func(backend.InstallProgress)) (*node.Installed, error) {
	if onProgress == nil {
		onProgress = func(backend.InstallProgress) {}
	}
	onProgress(backend.Resolving(fmt.Sprintf("resolving %s", version)))

	before, err := p.ListInstalled(ctx)
	if err != nil && !backend.IsParseFailed(err) {
		return nil, err
	}

	parser := newProgressParser()
	_, err = proc.RunStream(ctx, proc.Command{
		Path:       p.env.ExecPath,
		Args:       []string{"install", version.String()},
		Timeout:    installTimeout(p.env),
		ShowWindow: p.env.ShowWindow,
	}, func(line string) {
		if progress, ok := parser.Parse(line); ok {
			onProgress(progress)
		}
	})
	if err != nil {
		onProgress(backend.Failed(err.Error()))
		var cmdErr *backend.ErrCommandFailed
		if errors.As(err, &cmdErr) {
			return nil, &backend.ErrInstallFailed{Version: version.String(), Reason: cmdErr.Stderr}
		}
		return nil, err
	}

	after, err := p.ListInstalled(ctx)
	if err != nil {
		onProgress(backend.Failed(err.Error()))
		return nil, err
	}

	installed := resolveInstalled(version, before, after)
	if installed == nil {
		err := &backend.ErrInstallFailed{Version: version.String(), Reason: "version missing from listing after install"}
		onProgress(backend.Failed(err.Error()))
		return nil, err
	}
	onProgress(backend.Done())
	return installed, nil
}

// resolveInstalled picks the entry Install produced. Exact matches win;
// for aliases the entry absent from the pre-install listing is the new
// one, and a re-install of an existing alias target falls back to the
// newest installed version.
func resolveInstalled(requested node.Version, before, after []node.Installed) *node.Installed {
	if !requested.IsAlias() {
		for i := range after {
			if after[i].Version.Equal(requested) {
				return &after[i]
			}
		}
		return nil
	}

	known := make(map[string]bool, len(before))
	for _, iv := range before {
		known[iv.Version.Raw] = true
	}
	for i := range after {
		if !known[after[i].Version.Raw] {
			return &after[i]
		}
	}

	var newest *node.Installed
	for i := range after {
		if newest == nil {
			newest = &after[i]
			continue
		}
		if cmp, err := after[i].Version.Compare(newest.Version); err == nil && cmp > 0 {
			newest = &after[i]
		}
	}
	return newest
}

// SetDefault points fnm's default alias at an installed version.
func (p *Provider) SetDefault(ctx context.Context, version node.Version) error {
	if err := p.ensureInstalled(ctx, version); err != nil {
		return err
	}
	_, err := p.run(ctx, cmdTimeout(p.env), "default", version.String())
	return err
}

// Uninstall removes an installed version.
func (p *Provider) Uninstall(ctx context.Context, version node.Version) error {
	if err := p.ensureInstalled(ctx, version); err != nil {
		return err
	}
	_, err := p.run(ctx, cmdTimeout(p.env), "uninstall", version.String())
	return err
}

// ensureInstalled fails fast with ErrVersionNotFound when a concrete
// version is absent from the listing. Aliases pass through untouched;
// only the tool can resolve them.
func (p *Provider) ensureInstalled(ctx context.Context, version node.Version) error {
	if version.IsAlias() {
		return nil
	}
	installed, err := p.ListInstalled(ctx)
	if err != nil {
		return err
	}
	for _, iv := range installed {
		if iv.Version.Equal(version) {
			return nil
		}
	}
	return &backend.ErrVersionNotFound{Version: version.String(), Backend: string(backend.KindFnm)}
}

// CheckUpdate reports a newer fnm release, or nil when current.
func (p *Provider) CheckUpdate(ctx context.Context, current node.Version) (*backend.Update, error) {
	return p.rel.ToolUpdate(ctx, toolRepo, current)
}
