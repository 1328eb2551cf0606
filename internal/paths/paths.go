package paths

import (
	"os"
	"path/filepath"
)

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// ConfigDir returns ~/.profilectl.
func ConfigDir() string {
	return filepath.Join(home(), ".profilectl")
}

// ConfigFile returns ~/.profilectl/config.yaml.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// EnvFile returns the .env file in the working directory.
func EnvFile() string {
	return ".env"
}

// StoreDir returns ~/.pdf3md/profiles, where the profile service keeps its files.
func StoreDir() string {
	return filepath.Join(home(), ".pdf3md", "profiles")
}
