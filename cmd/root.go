package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rag-containers",
	Short: "Document ingestion and semantic search service",
	Long: `rag-containers exposes a document ingestion and semantic search API
on top of a vector database and an external embedding service.

Documents are split into retrieval-sized chunks, embedded in a single
batched call and stored with normalized metadata; searches combine
vector similarity with tag and date-range filters.`,
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
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config/config.yaml", "config file")
}
