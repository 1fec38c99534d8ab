package cmd

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/ayala-manuel/rag-containers/config"
	"github.com/ayala-manuel/rag-containers/database"
	"github.com/ayala-manuel/rag-containers/service"
	"github.com/ayala-manuel/rag-containers/types"
	"github.com/spf13/cobra"
)

// uploadDocumentCmd ingests a JSON file of documents straight from the
// command line, bypassing the HTTP layer. The file holds an array of
// {text, metadata} items, the same shape the upload endpoint accepts.
var uploadDocumentCmd = &cobra.Command{
	Use:   "upload-document",
	Short: "Upload a JSON documents file into a collection",
	Run: func(cmd *cobra.Command, args []string) {
		filePath, _ := cmd.Flags().GetString("file")
		collection, _ := cmd.Flags().GetString("collection")
		if filePath == "" || collection == "" {
			log.Fatal("both --file and --collection are required")
		}

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		raw, err := os.ReadFile(filePath)
		if err != nil {
			log.Fatalf("Failed to read documents file: %v", err)
		}
		var docs []types.Document
		if err := json.Unmarshal(raw, &docs); err != nil {
			log.Fatalf("Failed to parse documents file: %v", err)
		}

		weaviateDb, err := database.NewWeaviateStore(cfg.WeaviateStoreConfig)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}
		embedder := newEmbedder(cfg.Embedding)
		chunkService := service.NewChunkService(service.ChunkServiceConfig{
			MaxWords:         cfg.Chunking.MaxWords,
			OverlapSentences: cfg.Chunking.OverlapSentences,
		})
		payloadService := service.NewPayloadService(chunkService, embedder, cfg.Chunking.Enabled)
		documentService := service.NewDocumentService(payloadService, weaviateDb)

		count, err := documentService.UploadDocuments(context.Background(), collection, docs)
		if err != nil {
			log.Fatalf("Failed to upload documents: %v", err)
		}
		log.Printf("Uploaded %d fragment(s) from %s into collection %s", count, filePath, collection)
	},
}

func init() {
	rootCmd.AddCommand(uploadDocumentCmd)

	uploadDocumentCmd.Flags().StringP("file", "f", "", "Path to the JSON documents file")
	uploadDocumentCmd.Flags().StringP("collection", "c", "", "Target collection name")
}
