package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/josephgoksu/gameforge/internal/config"
	"github.com/josephgoksu/gameforge/internal/logger"
	"github.com/josephgoksu/gameforge/internal/orchestrator"
	"github.com/josephgoksu/gameforge/types"
	"github.com/spf13/viper"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single validator instance; it caches struct info.
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(cfg *types.AppConfig) error {
	if errs := validate.Struct(cfg); errs != nil {
		return errs
	}
	return nil
}

// InitConfig reads in config files and ENV variables if set.
//
// Sources, strongest first: flags, GAMEFORGE_* environment variables, the
// project config (./.gameforge/config.yaml), the global config
// (~/.gameforge/config.yaml), built-in defaults. The project file is merged
// over the global one key by key, so a project can override just the model
// while keeping the globally stored API keys.
func InitConfig() {
	// Load .env first if present; missing is fine.
	_ = godotenv.Load()

	// Environment handling must be set up before any viper.Get call so env
	// vars can already influence config loading.
	viper.SetEnvPrefix(config.EnvPrefix) // e.g. GAMEFORGE_VERBOSE
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cfgFileFlag := viper.GetString("config"); cfgFileFlag != "" {
		// An explicit file replaces the whole search, no layering.
		viper.SetConfigFile(cfgFileFlag)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintln(os.Stderr, "Error: specified config file not usable:", cfgFileFlag, "-", err)
			os.Exit(1)
		}
	} else {
		loadLayeredConfig()
	}

	// Pipeline defaults. llm.* keys deliberately have no defaults: the
	// config package infers provider and model from whatever is present.
	viper.SetDefault("project.rootDir", config.ConfigFileBase)
	viper.SetDefault("pipeline.deliveryThreshold", orchestrator.DefaultDeliveryThreshold)
	viper.SetDefault("pipeline.maxIterations", orchestrator.DefaultMaxIterations)
	viper.SetDefault("pipeline.stageRetries", orchestrator.DefaultStageRetries)
	viper.SetDefault("pipeline.callTimeoutSeconds", int(orchestrator.DefaultCallTimeout/time.Second))
	viper.SetDefault("pipeline.outputDir", config.DefaultOutputDir)
	viper.SetDefault("pipeline.historyFormat", "json")

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling config: %s\n", err)
		os.Exit(1)
	}

	// The history directory has its own fallback chain (explicit config,
	// local .gameforge, XDG data dir, home), so it is resolved here rather
	// than through a viper default.
	if GlobalAppConfig.Pipeline.HistoryDir == "" {
		GlobalAppConfig.Pipeline.HistoryDir = config.GetHistoryBasePath()
	}

	if err := validateAppConfig(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation error: %s\n", err)
		os.Exit(1)
	}

	logger.SetBasePath(GlobalAppConfig.Project.RootDir)
}

// loadLayeredConfig reads the global config and merges the project config
// over it. Either file may be absent.
func loadLayeredConfig() {
	var paths []string
	if dir, err := config.GetGlobalConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "config.yaml"))
	}
	paths = append(paths, filepath.Join(config.ConfigFileBase, "config.yaml"))

	loaded := false
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		viper.SetConfigFile(path)
		var err error
		if loaded {
			err = viper.MergeInConfig()
		} else {
			err = viper.ReadInConfig()
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error reading config file:", path, "-", err)
			continue
		}
		loaded = true
	}

	if viper.GetBool("verbose") {
		if loaded {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		} else {
			fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
		}
	}
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}
