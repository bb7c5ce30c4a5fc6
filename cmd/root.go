package cmd

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	applog "github.com/spigell/hh-recruiter/internal/logger"
	"github.com/spigell/hh-recruiter/internal/settings"
	"github.com/spigell/hh-recruiter/internal/store"
)

const (
	app                 = "hh-recruiter"
	defaultSettingsFile = "recruitment-settings.json"
)

type Config struct {
	SettingsFile string `mapstructure:"settings-file"`
	// Defaults are applied before the settings file exists. Keys are settings field names.
	Defaults map[string]interface{} `mapstructure:"defaults"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hh-recruiter manages employer recruitment settings",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("settings-file", "HH_RECRUITER_SETTINGS_FILE"); err != nil {
		log.Fatalf("binding HH_RECRUITER_SETTINGS_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hh-recruiter.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("settings-file", "s", "", "file with recruitment settings (default is "+defaultSettingsFile+")")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("settings-file", rootCmd.PersistentFlags().Lookup("settings-file"))
}

func initConfig() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("loading .env file: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	if config.SettingsFile == "" {
		config.SettingsFile = defaultSettingsFile
	}

	return config, nil
}

// defaultSnapshot overlays the configured defaults on the built-in ones.
// Viper lowercases keys, field names are matched case-insensitively.
func (c *Config) defaultSnapshot() (settings.Snapshot, error) {
	return store.DecodeSnapshot(c.Defaults, settings.Default())
}

// setup builds the logger and loads the settings store for a command.
func setup(cmd *cobra.Command) (*zap.Logger, *store.File) {
	base, err := applog.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		base.Fatal("getting a config", zap.Error(err))
	}

	logger := applog.WithCommonFields(base, cmd.Name(), config.SettingsFile)
	logger.Debug("starting", zap.String("version", version), zap.Any("defaults", config.Defaults))

	defaults, err := config.defaultSnapshot()
	if err != nil {
		logger.Fatal("decoding default settings", zap.Error(err))
	}

	st := store.NewFile(config.SettingsFile, defaults, logger)
	if err := st.Load(); err != nil {
		logger.Fatal("loading settings", zap.Error(err))
	}

	return logger, st
}
