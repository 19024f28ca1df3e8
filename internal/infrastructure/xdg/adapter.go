package xdg

import (
	"path/filepath"

	"github.com/bnema/casement/internal/application/port"
	"github.com/bnema/casement/internal/infrastructure/config"
)

// Adapter implements port.XDGPaths using config.GetXDGDirs().
type Adapter struct{}

// New creates a new XDG paths adapter.
func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) ConfigDir() (string, error) {
	return config.GetConfigDir()
}

func (a *Adapter) DataDir() (string, error) {
	return config.GetDataDir()
}

func (a *Adapter) StateDir() (string, error) {
	return config.GetStateDir()
}

func (a *Adapter) RuntimeDir() (string, error) {
	return config.GetRuntimeDir()
}

// ManDir returns the user man page directory for section 1, a sibling of
// the casement data directory.
func (a *Adapter) ManDir() (string, error) {
	dataDir, err := config.GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(dataDir), "man", "man1"), nil
}

var _ port.XDGPaths = (*Adapter)(nil)
