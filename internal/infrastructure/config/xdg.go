package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	appName         = "casement"
	configFileName  = "config.toml"
	sessionFileName = "session.json"
	databaseName    = "history.sqlite"
	socketName      = "casement.sock"
	dirPerm         = 0o755
	filePerm        = 0o644
)

// XDGDirs holds the XDG Base Directory paths for the application.
type XDGDirs struct {
	ConfigHome  string
	DataHome    string
	StateHome   string
	CacheHome   string
	RuntimeHome string
}

// GetXDGDirs returns the XDG Base Directory paths for casement:
// - $XDG_CONFIG_HOME/casement (default: ~/.config/casement)
// - $XDG_DATA_HOME/casement (default: ~/.local/share/casement)
// - $XDG_STATE_HOME/casement (default: ~/.local/state/casement)
// - $XDG_CACHE_HOME/casement (default: ~/.cache/casement)
// - $XDG_RUNTIME_DIR (default: $TMPDIR/casement-<uid>)
func GetXDGDirs() (*XDGDirs, error) {
	// Development mode: keep everything under .dev in the working directory.
	if os.Getenv("ENV") == "dev" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		devDir := filepath.Join(cwd, ".dev", appName)
		return &XDGDirs{
			ConfigHome:  devDir,
			DataHome:    devDir,
			StateHome:   devDir,
			CacheHome:   filepath.Join(devDir, "cache"),
			RuntimeHome: devDir,
		}, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	dir := func(env string, fallback ...string) string {
		base := os.Getenv(env)
		if base == "" {
			base = filepath.Join(append([]string{homeDir}, fallback...)...)
		}
		return filepath.Join(base, appName)
	}

	runtime := os.Getenv("XDG_RUNTIME_DIR")
	if runtime == "" {
		runtime = filepath.Join(os.TempDir(), appName+"-"+strconv.Itoa(os.Getuid()))
	}

	return &XDGDirs{
		ConfigHome:  dir("XDG_CONFIG_HOME", ".config"),
		DataHome:    dir("XDG_DATA_HOME", ".local", "share"),
		StateHome:   dir("XDG_STATE_HOME", ".local", "state"),
		CacheHome:   dir("XDG_CACHE_HOME", ".cache"),
		RuntimeHome: runtime,
	}, nil
}

// GetConfigDir returns the XDG config directory for casement.
func GetConfigDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.ConfigHome, nil
}

// GetConfigFile returns the default config file path.
func GetConfigFile() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// GetDataDir returns the XDG data directory for casement.
func GetDataDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.DataHome, nil
}

// GetRuntimeDir returns the directory holding the controller socket.
func GetRuntimeDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.RuntimeHome, nil
}

// GetStateDir returns the XDG state directory for casement.
func GetStateDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.StateHome, nil
}

// GetLogDir returns the default log directory.
func GetLogDir() (string, error) {
	dir, err := GetStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}

// GetFilterCacheDir returns where downloaded block lists are kept.
func GetFilterCacheDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return filepath.Join(dirs.CacheHome, "filters"), nil
}

// EnsureDirectories creates the config, data and state directories.
func EnsureDirectories() error {
	dirs, err := GetXDGDirs()
	if err != nil {
		return err
	}
	for _, d := range []string{dirs.ConfigHome, dirs.DataHome, dirs.StateHome} {
		if err := os.MkdirAll(d, dirPerm); err != nil {
			return fmt.Errorf("create %s: %w", d, err)
		}
	}
	return nil
}

// resolvePaths fills every empty path setting from the XDG directories.
func resolvePaths(cfg *Config) error {
	dirs, err := GetXDGDirs()
	if err != nil {
		return fmt.Errorf("failed to resolve XDG directories: %w", err)
	}
	if cfg.Session.File == "" {
		cfg.Session.File = filepath.Join(dirs.StateHome, sessionFileName)
	}
	if cfg.History.DatabasePath == "" {
		cfg.History.DatabasePath = filepath.Join(dirs.DataHome, databaseName)
	}
	if cfg.Logging.LogDir == "" {
		cfg.Logging.LogDir = filepath.Join(dirs.StateHome, "logs")
	}
	if cfg.IPC.SocketPath == "" {
		cfg.IPC.SocketPath = filepath.Join(dirs.RuntimeHome, socketName)
	}
	if cfg.ContentView.CDP.UserDataDir == "" {
		cfg.ContentView.CDP.UserDataDir = filepath.Join(dirs.DataHome, "chrome")
	}
	return nil
}
