package nvm

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/nvmux/nvmux/src/internal/backend"
	"github.com/nvmux/nvmux/src/internal/node"
	"github.com/nvmux/nvmux/src/internal/proc"
)

const probeTimeout = 10 * time.Second

// Detect locates an nvm installation. On Unix the target is the
// nvm.sh script that gets sourced; on Windows it is the nvm.exe that
// nvm-windows installs. An explicit override is trusted as-is except
// for existence.
func (va *variant) Detect(ctx context.Context, opts backend.DetectOptions) (backend.Outcome, error) {
	var probed []string

	if opts.Override != "" {
		if _, err := os.Stat(opts.Override); err != nil {
			return backend.NotFound([]string{opts.Override}), nil
		}
		return va.confirm(ctx, opts.Override)
	}

	for _, candidate := range wellKnownPaths() {
		probed = append(probed, candidate)
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		return va.confirm(ctx, candidate)
	}

	if found, ok := lookPath(); ok {
		return va.confirm(ctx, found)
	}

	return backend.NotFound(probed), nil
}

// confirm asks the candidate installation for its version. The version
// is informational: an install that will not answer is still Found,
// and whatever is wrong with it surfaces on the first real command.
func (va *variant) confirm(ctx context.Context, path string) (backend.Outcome, error) {
	var version *node.Version
	if provider, err := va.New(backend.Environment{Kind: backend.KindNvm, ExecPath: path}); err == nil {
		if v, err := provider.(*Provider).toolVersion(ctx); err == nil {
			version = &v
		}
	}
	return backend.Found(path, version), nil
}

func (p *Provider) toolVersion(ctx context.Context) (node.Version, error) {
	cmd, err := p.command(probeTimeout, versionArgs())
	if err != nil {
		return node.Version{}, err
	}
	res, err := proc.Run(ctx, cmd)
	if err != nil {
		return node.Version{}, err
	}
	for _, f := range strings.Fields(strings.TrimSpace(res.Stdout)) {
		if v, perr := node.Parse(f); perr == nil && !v.IsAlias() {
			return v, nil
		}
	}
	return node.Version{}, &backend.ErrParseFailed{Source: "nvm version", Detail: "no version in output"}
}
