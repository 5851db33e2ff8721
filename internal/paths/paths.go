package paths

import (
	"os"
	"path/filepath"
)

// ReportFileName is the merge report written next to the profiles dir.
const ReportFileName = "vscode-setting-merge-report.md"

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// ConfigDir returns ~/.code-profiles.
func ConfigDir() string {
	return filepath.Join(home(), ".code-profiles")
}

// ConfigFile returns ~/.code-profiles/config.yaml.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ProfilesDir returns ~/.code-profiles/profiles.
func ProfilesDir() string {
	return filepath.Join(ConfigDir(), "profiles")
}

// UserDir returns the VS Code user settings directory for goos.
func UserDir(goos string, getenv func(string) string, home string) string {
	switch goos {
	case "windows":
		if appData := getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Code", "User")
		}
		return filepath.Join(home, "AppData", "Roaming", "Code", "User")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Code", "User")
	default:
		if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "Code", "User")
		}
		return filepath.Join(home, ".config", "Code", "User")
	}
}

// ReportFile returns the report path for a profiles dir: a sibling of it.
func ReportFile(profilesDir string) string {
	return filepath.Join(filepath.Dir(filepath.Clean(profilesDir)), ReportFileName)
}
