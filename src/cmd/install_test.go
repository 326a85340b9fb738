package cmd

import (
	"context"
	"testing"

	"github.com/nvmux/nvmux/src/internal/backend"
	"github.com/nvmux/nvmux/src/internal/node"
)

// mockProvider implements backend.Provider for testing
type mockProvider struct {
	info            backend.Info
	installed       []node.Installed
	listErr         error
	setDefaultCalls []node.Version
	setDefaultErr   error
}

func (m *mockProvider) Info() backend.Info                 { return m.info }
func (m *mockProvider) Capabilities() backend.Capabilities { return backend.Capabilities{} }
func (m *mockProvider) ListInstalled(ctx context.Context) ([]node.Installed, error) {
	return m.installed, m.listErr
}
func (m *mockProvider) ListRemote(ctx context.Context) ([]node.Remote, error) {
	return nil, nil
}
func (m *mockProvider) Install(ctx context.Context, version node.Version, onProgress func(backend.InstallProgress)) (*node.Installed, error) {
	return &node.Installed{Version: version}, nil
}
func (m *mockProvider) SetDefault(ctx context.Context, version node.Version) error {
	m.setDefaultCalls = append(m.setDefaultCalls, version)
	return m.setDefaultErr
}
func (m *mockProvider) Uninstall(ctx context.Context, version node.Version) error { return nil }
func (m *mockProvider) CheckUpdate(ctx context.Context, current node.Version) (*backend.Update, error) {
	return nil, nil
}

func TestAutoSetDefaultIfNeeded_NoDefaultVersion(t *testing.T) {
	v := node.MustParse("20.11.0")
	provider := &mockProvider{
		installed: []node.Installed{{Version: v}},
	}
	s := &session{provider: provider}

	autoSetDefaultIfNeeded(context.Background(), s, &node.Installed{Version: v})

	if len(provider.setDefaultCalls) != 1 {
		t.Fatalf("Expected SetDefault to be called once, got %d calls", len(provider.setDefaultCalls))
	}
	if !provider.setDefaultCalls[0].Equal(v) {
		t.Errorf("Expected SetDefault called with %s, got %s", v, provider.setDefaultCalls[0])
	}
}

func TestAutoSetDefaultIfNeeded_InstallAlreadyDefault(t *testing.T) {
	v := node.MustParse("20.11.0")
	provider := &mockProvider{}
	s := &session{provider: provider}

	autoSetDefaultIfNeeded(context.Background(), s, &node.Installed{Version: v, Default: true})

	if len(provider.setDefaultCalls) != 0 {
		t.Errorf("Expected SetDefault to not be called when install is already default, got %d calls", len(provider.setDefaultCalls))
	}
}

func TestAutoSetDefaultIfNeeded_DefaultAlreadySet(t *testing.T) {
	provider := &mockProvider{
		installed: []node.Installed{
			{Version: node.MustParse("18.19.0"), Default: true},
			{Version: node.MustParse("20.11.0")},
		},
	}
	s := &session{provider: provider}

	autoSetDefaultIfNeeded(context.Background(), s, &node.Installed{Version: node.MustParse("20.11.0")})

	if len(provider.setDefaultCalls) != 0 {
		t.Errorf("Expected SetDefault to not be called when a default exists, got %d calls", len(provider.setDefaultCalls))
	}
}

func TestAutoSetDefaultIfNeeded_ListingFailure(t *testing.T) {
	provider := &mockProvider{
		listErr: &backend.ErrCommandFailed{Command: "fnm ls", ExitCode: 1},
	}
	s := &session{provider: provider}

	autoSetDefaultIfNeeded(context.Background(), s, &node.Installed{Version: node.MustParse("20.11.0")})

	if len(provider.setDefaultCalls) != 0 {
		t.Errorf("Expected SetDefault to not be called when the listing fails, got %d calls", len(provider.setDefaultCalls))
	}
}
