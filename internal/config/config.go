package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ruminaider/code-profiles/internal/extensions"
	"github.com/ruminaider/code-profiles/internal/merge"
	"github.com/ruminaider/code-profiles/internal/paths"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

// DefaultCommonProfile is the profile that is always applied.
const DefaultCommonProfile = ".project-common"

// EnvPrefix prefixes environment overrides, e.g. CODE_PROFILES_PROFILES_DIR.
const EnvPrefix = "CODE_PROFILES"

// Config represents ~/.code-profiles/config.yaml.
type Config struct {
	ProfilesDir       string        `yaml:"profiles_dir"`
	UserDir           string        `yaml:"user_dir,omitempty"`
	CommonProfile     string        `yaml:"common_profile"`
	ExplanationsFile  string        `yaml:"explanations_file,omitempty"`
	ReportFile        string        `yaml:"report_file,omitempty"`
	CodeCommand       string        `yaml:"code_command"`
	SafePresetKeys    []string      `yaml:"safe_preset_keys"`
	IgnoreProfiles    []string      `yaml:"ignore_profiles,omitempty"`
	FoldExtensionCase bool          `yaml:"fold_extension_case"`
	Install           InstallConfig `yaml:"install"`
}

// InstallConfig controls extension installation.
type InstallConfig struct {
	Retries     int  `yaml:"retries"`
	Force       bool `yaml:"force"`
	InsecureSSL bool `yaml:"insecure_ssl"`
}

// Default returns a Config with default values.
func Default() Config {
	return Config{
		ProfilesDir:    paths.ProfilesDir(),
		CommonProfile:  DefaultCommonProfile,
		CodeCommand:    "code",
		SafePresetKeys: append([]string(nil), merge.SafePresetKeys...),
		Install: InstallConfig{
			Retries: 1,
			Force:   true,
		},
	}
}

// Parse parses config.yaml bytes. Fields not present keep their defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal serializes a Config to YAML bytes.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Load reads the config file at path. A missing file yields Default().
func Load(fs afero.Fs, path string) (Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Validate checks values that would make a run meaningless.
func (c Config) Validate() error {
	if c.ProfilesDir == "" {
		return fmt.Errorf("config: profiles_dir must not be empty")
	}
	if c.CommonProfile == "" {
		return fmt.Errorf("config: common_profile must not be empty")
	}
	if c.Install.Retries < 0 {
		return fmt.Errorf("config: install.retries must be >= 0, got %d", c.Install.Retries)
	}
	return nil
}

// ExplanationsPath is explanations_file or, when unset, the explanations
// file next to the profiles dir.
func (c Config) ExplanationsPath() string {
	if c.ExplanationsFile != "" {
		return c.ExplanationsFile
	}
	return filepath.Join(filepath.Dir(filepath.Clean(c.ProfilesDir)), extensions.ExplanationsFileName)
}

// ReportPath is report_file or, when unset, the report next to the
// profiles dir.
func (c Config) ReportPath() string {
	if c.ReportFile != "" {
		return c.ReportFile
	}
	return paths.ReportFile(c.ProfilesDir)
}

// ResolveUserDir is user_dir or, when unset, the platform's VS Code user dir.
func (c Config) ResolveUserDir(goos string, getenv func(string) string, home string) string {
	if c.UserDir != "" {
		return c.UserDir
	}
	return paths.UserDir(goos, getenv, home)
}

// overridable lists the scalar keys that env vars and flags may override.
var overridable = []string{
	"profiles_dir",
	"user_dir",
	"common_profile",
	"explanations_file",
	"report_file",
	"code_command",
	"fold_extension_case",
	"install.retries",
	"install.force",
	"install.insecure_ssl",
}

// NewViper returns a viper instance reading CODE_PROFILES_* environment
// variables for every overridable key. Callers bind flags onto it.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range overridable {
		_ = v.BindEnv(key)
	}
	return v
}

// Overlay returns cfg with every key explicitly set in v applied on top.
func Overlay(cfg Config, v *viper.Viper) Config {
	str := func(key string, dst *string) {
		if v.IsSet(key) {
			if s := v.GetString(key); s != "" {
				*dst = s
			}
		}
	}
	str("profiles_dir", &cfg.ProfilesDir)
	str("user_dir", &cfg.UserDir)
	str("common_profile", &cfg.CommonProfile)
	str("explanations_file", &cfg.ExplanationsFile)
	str("report_file", &cfg.ReportFile)
	str("code_command", &cfg.CodeCommand)

	if v.IsSet("fold_extension_case") {
		cfg.FoldExtensionCase = v.GetBool("fold_extension_case")
	}
	if v.IsSet("install.retries") {
		cfg.Install.Retries = v.GetInt("install.retries")
	}
	if v.IsSet("install.force") {
		cfg.Install.Force = v.GetBool("install.force")
	}
	if v.IsSet("install.insecure_ssl") {
		cfg.Install.InsecureSSL = v.GetBool("install.insecure_ssl")
	}
	return cfg
}
