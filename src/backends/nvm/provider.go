// Package nvm drives the Node Version Manager through a sourcing bash
// shell on Unix and through the nvm-windows executable on Windows,
// normalizing both to the shared backend contract.
package nvm

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/nvmux/nvmux/src/internal/backend"
	"github.com/nvmux/nvmux/src/internal/constants"
	"github.com/nvmux/nvmux/src/internal/node"
	"github.com/nvmux/nvmux/src/internal/proc"
	"github.com/nvmux/nvmux/src/internal/release"
)

const (
	defaultCmdTimeout     = 30 * time.Second
	defaultInstallTimeout = 10 * time.Minute
)

func init() {
	if err := backend.Register(newVariant()); err != nil {
		panic(fmt.Sprintf("failed to register nvm backend: %v", err))
	}
}

// toolRepo returns the release repository for the distribution that
// runs on this platform. The Unix shell function and nvm-windows are
// separate projects with separate release lines.
func toolRepo() string {
	if runtime.GOOS == constants.OSWindows {
		return "coreybutler/nvm-windows"
	}
	return "nvm-sh/nvm"
}

func info() backend.Info {
	return backend.Info{
		Kind:        backend.KindNvm,
		DisplayName: "Node Version Manager (nvm)",
		Executable:  "nvm",
		Repo:        toolRepo(),
	}
}

type variant struct {
	rel *release.Client
}

func newVariant() *variant {
	return &variant{rel: release.NewClient()}
}

func (va *variant) Info() backend.Info {
	return info()
}

// New wraps a detected nvm installation in a Provider. Inside a WSL
// distribution the path may be empty; the runner then sources nvm.sh
// from the distro's own NVM_DIR.
func (va *variant) New(env backend.Environment) (backend.Provider, error) {
	if env.ExecPath == "" && env.WSLDistro == "" {
		return nil, fmt.Errorf("nvm provider requires a path to nvm.sh or nvm.exe")
	}
	return &Provider{
		env:    env,
		rel:    va.rel,
		direct: runtime.GOOS == constants.OSWindows && env.WSLDistro == "",
	}, nil
}

// Provider executes nvm commands against one detected installation.
type Provider struct {
	env backend.Environment
	rel *release.Client

	// direct invokes nvm.exe straight instead of sourcing nvm.sh
	// through bash.
	direct bool
}

func (p *Provider) Info() backend.Info {
	return info()
}

func (p *Provider) Capabilities() backend.Capabilities {
	if p.direct {
		return backend.Capabilities{
			SelfUpdate:    true,
			ArchSelection: true,
		}
	}
	return backend.Capabilities{
		ShellInit:  true,
		SelfUpdate: true,
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
	cmd, err := p.command(timeout, args)
	if err != nil {
		return proc.Result{}, err
	}
	return proc.Run(ctx, cmd)
}

func (p *Provider) listArgs() []string {
	if p.direct {
		return []string{"list"}
	}
	return []string{"ls", "--no-colors"}
}

func (p *Provider) remoteArgs() []string {
	if p.direct {
		return []string{"list", "available"}
	}
	return []string{"ls-remote", "--no-colors"}
}

// ListInstalled returns the versions nvm manages, with the selected
// version marked as default.
func (p *Provider) ListInstalled(ctx context.Context) ([]node.Installed, error) {
	res, err := p.run(ctx, cmdTimeout(p.env), p.listArgs()...)
	if err != nil {
		return nil, err
	}
	return ParseInstalled(res.Stdout)
}

// ListRemote returns the versions available for installation. The
// remote index is large on Unix and slow to fetch; the command runs
// under the normal timeout regardless.
func (p *Provider) ListRemote(ctx context.Context) ([]node.Remote, error) {
	res, err := p.run(ctx, cmdTimeout(p.env), p.remoteArgs()...)
	if err != nil {
		return nil, err
	}
	return ParseRemote(res.Stdout)
}

// Install runs `nvm install` and streams phase updates parsed from its
// output. The installed version is determined afterwards from the
// listing, since nvm resolves aliases like "lts/iron" internally.
func (p *Provider) Install(ctx context.Context, version node.Version, onProgress func(backend.InstallProgress)) (*node.Installed, error) {
	if onProgress == nil {
		onProgress = func(backend.InstallProgress) {}
	}
	onProgress(backend.Resolving(fmt.Sprintf("resolving %s", version)))

	before, err := p.ListInstalled(ctx)
	if err != nil && !backend.IsParseFailed(err) {
		return nil, err
	}

	cmd, err := p.command(installTimeout(p.env), []string{"install", version.String()})
	if err != nil {
		return nil, err
	}
	parser := newProgressParser()
	_, err = proc.RunStream(ctx, cmd, func(line string) {
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

// resolveInstalled picks the entry Install produced. Exact matches
// win; for aliases the entry absent from the pre-install listing is
// the new one, and a re-install of an existing alias target falls back
// to the newest installed version.
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

// SetDefault makes a version the one new shells pick up. Unix nvm
// models this as the "default" alias; nvm-windows switches the active
// symlink with `nvm use`.
func (p *Provider) SetDefault(ctx context.Context, version node.Version) error {
	if err := p.ensureInstalled(ctx, version); err != nil {
		return err
	}
	args := []string{"alias", "default", version.String()}
	if p.direct {
		args = []string{"use", version.String()}
	}
	_, err := p.run(ctx, cmdTimeout(p.env), args...)
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
	return &backend.ErrVersionNotFound{Version: version.String(), Backend: string(backend.KindNvm)}
}

// CheckUpdate reports a newer release of the nvm distribution for this
// platform, or nil when current.
func (p *Provider) CheckUpdate(ctx context.Context, current node.Version) (*backend.Update, error) {
	return p.rel.ToolUpdate(ctx, toolRepo(), current)
}
