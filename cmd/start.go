package cmd

import (
	"log"

	"github.com/ayala-manuel/rag-containers/config"
	"github.com/ayala-manuel/rag-containers/database"
	"github.com/ayala-manuel/rag-containers/handler"
	"github.com/ayala-manuel/rag-containers/middleware"
	"github.com/ayala-manuel/rag-containers/service"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// startCmd boots the HTTP API. All long-lived clients (vector store,
// embedder) are constructed once here and injected into the handlers.
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the document search server",
	Long:  `Starts the HTTP server exposing collection, ingestion and search endpoints`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if cfg.APIKey == "" {
			log.Fatal("API_KEY is not configured")
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

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		healthHandler := handler.NewHealthHandler()
		collectionHandler := handler.NewCollectionHandler(weaviateDb, cfg.Embedding.VectorSize)
		documentHandler := handler.NewDocumentHandler(documentService)
		searchHandler := handler.NewSearchHandler(documentService)

		// Setup Gin router
		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		router.GET("/", healthHandler.HandleWelcome)
		router.GET("/ping", healthHandler.HandlePing)

		// API v1 routes - require the static API key
		apiV1 := router.Group("/api/v1")
		apiV1.Use(middleware.APIKeyAuth(cfg.APIKey))
		{
			apiV1.GET("/collections", collectionHandler.HandleListCollections)
			apiV1.POST("/collections/create", collectionHandler.HandleCreateCollection)
			apiV1.DELETE("/collections/:collection", collectionHandler.HandleDeleteCollection)

			apiV1.POST("/collections/:collection/documents/upload", documentHandler.HandleUploadDocuments)
			apiV1.GET("/collections/:collection/documents", documentHandler.HandleListDocuments)
			apiV1.POST("/collections/:collection/documents/delete", documentHandler.HandleDeleteDocuments)
			apiV1.POST("/collections/:collection/documents/search", searchHandler.HandleSearch)
		}

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

// newEmbedder picks the embedding backend from config: the in-house
// embeddings service by default, or any OpenAI-compatible API.
func newEmbedder(cfg config.EmbeddingConfig) service.Embedder {
	if cfg.Provider == "openai" {
		return service.NewOpenAIEmbedder(cfg.BaseURL, cfg.OpenAIAPIKey, cfg.Model)
	}
	return service.NewRemoteEmbedder(cfg.Endpoint)
}

func init() {
	rootCmd.AddCommand(startCmd)
}
