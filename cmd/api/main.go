package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"alfredoptarigan/resume-analyzer/internal/config"
)

const app = "resume-analyzer"

var rootCmd = &cobra.Command{
	Use:   app,
	Short: "resume-analyzer scores a resume against a job description with an LLM pipeline",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		config.LoadDotEnv()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("log_debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("json"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
