package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "ghprofile"

	// EnvPrefix prefixes every environment variable the application reads
	EnvPrefix = "GHPROFILE"

	// ConfigName is the config file base name searched without extension
	ConfigName = "ghprofile"

	historyFileName = "history.bolt"
)

// Version is set at build time with -ldflags
var Version = "dev"

var (
	once   sync.Once
	appDir string
	errDir error
)

// GetApplicationDirectory returns the ghprofile configuration directory path.
// Linux: ~/.config/ghprofile (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\ghprofile (via os.UserCacheDir)
func GetApplicationDirectory() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, nil
}

// DefaultHistoryFile returns the run ledger path inside the application directory
func DefaultHistoryFile() (string, error) {
	dir, err := GetApplicationDirectory()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, historyFileName), nil
}

func lazyLoad() {
	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		baseDir, err = os.UserCacheDir()
	default:
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)
		return
	}

	appDir = filepath.Join(baseDir, AppName)
}
