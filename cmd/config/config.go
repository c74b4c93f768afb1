package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chyyran/noter/pkg/service"
	"github.com/chyyran/noter/pkg/workspace"
)

var (
	cfgFile      string
	RootOverride string
	Verbose      bool
)

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "noter")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("NOTER")

	// Set defaults
	viper.SetDefault("data_dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "noter"))
	viper.SetDefault("editor", os.Getenv("EDITOR"))
	viper.SetDefault("date_prefix", false)
	viper.SetDefault("root", "")

	if err := viper.ReadInConfig(); err == nil {
		// Do not print this in normal operation, it's noisy.
		// fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// NewLogger builds the process logger. Warnings only unless --verbose.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}

// ResolveRoot discovers the notes root for the current invocation. The
// --root flag wins over NOTER_ROOT / the config "root" key, which win over
// the marker-file walk from the working directory.
func ResolveRoot() (*workspace.Root, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	override := RootOverride
	if override == "" {
		override = viper.GetString("root")
	}

	root, err := workspace.Discover(cwd, override)
	if err != nil {
		return nil, fmt.Errorf("resolve notes root: %w", err)
	}
	return root, nil
}

func InitService() (*service.Service, error) {
	root, err := ResolveRoot()
	if err != nil {
		return nil, err
	}

	// Per-root marker settings override the global config.
	editor := viper.GetString("editor")
	if root.Config.Editor != "" {
		editor = root.Config.Editor
	}

	config := &service.Config{
		DataDir:    viper.GetString("data_dir"),
		Editor:     editor,
		DatePrefix: viper.GetBool("date_prefix") || root.Config.DatePrefix,
	}

	svc, err := service.New(config, root, NewLogger())
	if err != nil {
		return nil, err
	}

	return svc, nil
}

func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/noter/config.yaml)")
	cmd.PersistentFlags().StringVarP(&RootOverride, "root", "R", "", "Override the notes root directory")
	cmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false, "Enable debug logging")
}
