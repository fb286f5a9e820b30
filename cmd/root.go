/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"os"

	"github.com/josephgoksu/gameforge/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gameforge",
	Short: "GameForge builds playable browser games with a crew of AI agents.",
	Long: `GameForge turns a one-line game idea into a playable HTML5 game.

Four agents iterate until the game is good enough to ship:

  Designer -> Developer -> Player -> Reviewer -> Deliver

The Designer writes the design document, the Developer implements it,
the Player playtests the build, and the Reviewer scores the result.
Games below the delivery bar loop back for another pass.

Examples:
  gameforge create "a snake game with power-ups"
  gameforge create                 # describe the game interactively
  gameforge demo                   # quick two-pass snake demo
  gameforge runs                   # list stored runs
  gameforge resume 1a2b3c4d        # pick an abandoned run back up`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVersion(GetVersion())
		logger.SetCommand(cmd.Name())
	},
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./.gameforge/config.yaml, then ~/.gameforge/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().Bool("json", false, "machine-readable JSON output where supported")
	rootCmd.PersistentFlags().String("provider", "", "LLM provider (openai, anthropic, gemini, ollama)")
	rootCmd.PersistentFlags().String("model", "", "model name for all agents")
	rootCmd.PersistentFlags().String("api-key", "", "API key for the selected provider")

	// Bind persistent flags to Viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("llm.provider", rootCmd.PersistentFlags().Lookup("provider"))
	_ = viper.BindPFlag("llm.modelName", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("llm.apiKey", rootCmd.PersistentFlags().Lookup("api-key"))
}
