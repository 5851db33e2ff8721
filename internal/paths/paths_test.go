package paths_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ruminaider/code-profiles/internal/paths"
	"github.com/stretchr/testify/assert"
)

func TestConfigDir(t *testing.T) {
	home, _ := os.UserHomeDir()
	assert.True(t, strings.HasPrefix(paths.ConfigDir(), home))
	assert.True(t, strings.HasSuffix(paths.ConfigDir(), ".code-profiles"))
}

func TestConfigFile(t *testing.T) {
	assert.True(t, strings.HasSuffix(paths.ConfigFile(), "config.yaml"))
}

func TestProfilesDir(t *testing.T) {
	assert.Equal(t, filepath.Join(paths.ConfigDir(), "profiles"), paths.ProfilesDir())
}

func TestUserDir(t *testing.T) {
	env := func(vars map[string]string) func(string) string {
		return func(k string) string { return vars[k] }
	}

	tests := []struct {
		name string
		goos string
		vars map[string]string
		want string
	}{
		{"windows appdata", "windows", map[string]string{"APPDATA": "/appdata"}, filepath.Join("/appdata", "Code", "User")},
		{"windows fallback", "windows", nil, filepath.Join("/home/u", "AppData", "Roaming", "Code", "User")},
		{"darwin", "darwin", nil, filepath.Join("/home/u", "Library", "Application Support", "Code", "User")},
		{"linux xdg", "linux", map[string]string{"XDG_CONFIG_HOME": "/xdg"}, filepath.Join("/xdg", "Code", "User")},
		{"linux default", "linux", nil, filepath.Join("/home/u", ".config", "Code", "User")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paths.UserDir(tt.goos, env(tt.vars), "/home/u"))
		})
	}
}

func TestReportFile(t *testing.T) {
	assert.Equal(t, filepath.Join("/work", paths.ReportFileName), paths.ReportFile("/work/profiles"))
	assert.Equal(t, filepath.Join("/work", paths.ReportFileName), paths.ReportFile("/work/profiles/"))
}
