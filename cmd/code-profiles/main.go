package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/ruminaider/code-profiles/internal/config"
	"github.com/ruminaider/code-profiles/internal/logging"
	"github.com/ruminaider/code-profiles/internal/paths"
	"github.com/ruminaider/code-profiles/internal/style"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

var (
	configFlag      string
	profilesDirFlag string
	userDirFlag     string
	logLevelFlag    string
	noColorFlag     bool
)

var settingsViper = config.NewViper()

var rootCmd = &cobra.Command{
	Use:   "code-profiles",
	Short: "Apply VS Code settings and extension profiles",
	Long: "code-profiles merges shared VS Code settings profiles into your user settings " +
		"and installs the extensions they list, keeping a report of every change.",
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("code-profiles %s\n", version)
	},
}

// env is what every command needs after flags and config are resolved.
type env struct {
	fs      afero.Fs
	cfg     config.Config
	userDir string
	log     zerolog.Logger
	format  style.Formatter
}

func loadEnv() (*env, error) {
	fs := afero.NewOsFs()

	level, err := logging.ParseLevel(settingsViper.GetString("log_level"))
	if err != nil {
		return nil, err
	}
	logCfg := logging.DefaultConfig()
	logCfg.Level = level
	logCfg.NoColor = noColorFlag || !isatty.IsTerminal(os.Stderr.Fd())
	log := logging.New(logCfg)

	path := configFlag
	if path == "" {
		path = paths.ConfigFile()
	}
	cfg, err := config.Load(fs, path)
	if err != nil {
		return nil, err
	}
	cfg = config.Overlay(cfg, settingsViper)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Debug().Str("config", path).Str("profiles_dir", cfg.ProfilesDir).Msg("configuration loaded")

	home, _ := os.UserHomeDir()
	return &env{
		fs:      fs,
		cfg:     cfg,
		userDir: cfg.ResolveUserDir(runtime.GOOS, os.Getenv, home),
		log:     log,
		format:  style.Formatter{Color: !noColorFlag && isatty.IsTerminal(os.Stdout.Fd())},
	}, nil
}

func bindFlag(v *viper.Viper, key string, cmd *cobra.Command, name string) {
	if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(name)); err != nil {
		panic(err)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFlag, "config", "", "Config file (default ~/.code-profiles/config.yaml)")
	pf.StringVar(&profilesDirFlag, "profiles-dir", "", "Profiles directory")
	pf.StringVar(&userDirFlag, "user-dir", "", "VS Code user directory")
	pf.StringVar(&logLevelFlag, "log-level", "warn", "Diagnostic log level (debug, info, warn, error)")
	pf.BoolVar(&noColorFlag, "no-color", false, "Disable coloured output")

	_ = settingsViper.BindEnv("log_level")
	bindFlag(settingsViper, "profiles_dir", rootCmd, "profiles-dir")
	bindFlag(settingsViper, "user_dir", rootCmd, "user-dir")
	bindFlag(settingsViper, "log_level", rootCmd, "log-level")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(matrixCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
