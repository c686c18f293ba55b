package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"custody/config"
	"custody/core"

	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultConfigName = ".custody.yaml"

var (
	cfgFile   string
	cfg       core.Config
	debugMode bool
	jsonLog   bool
	loaded    bool
)

var rootCmd = cobra.Command{
	Use:           "custody",
	Short:         "custodial vault: role gated deposits and withdrawals",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(setup)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file, defaults to ~/"+defaultConfigName)
	flags.BoolVar(&debugMode, "debug", false, "enable debug logging")
	flags.BoolVar(&jsonLog, "json-log", false, "log as json lines")
}

// Execute run the command line with ver as the reported version
func Execute(ver string) {
	rootCmd.Version = ver
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup runs once per process, before any command
func setup() {
	if loaded {
		return
	}

	loaded = true
	setupLogging()

	if cfgFile == "" {
		cfgFile = lookupConfig()
	}

	if cfgFile != "" {
		logrus.Debugln("use config file", cfgFile)
	}

	if err := config.Load(cfgFile, &cfg); err != nil {
		logrus.WithError(err).Fatalln("load config")
	}
}

// lookupConfig the default config file when it exists
func lookupConfig() string {
	dir, err := homedir.Dir()
	if err != nil {
		logrus.WithError(err).Warnln("resolve home dir")
		return ""
	}

	filename := filepath.Join(dir, defaultConfigName)
	if info, err := os.Stat(filename); err != nil || info.IsDir() {
		return ""
	}

	return filename
}

func setupLogging() {
	level := logrus.InfoLevel
	if debugMode {
		level = logrus.DebugLevel
	}

	logrus.SetLevel(level)

	if jsonLog {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return
	}

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}
