package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/sahayak/sahayak-backend/internal/config"
	"github.com/sahayak/sahayak-backend/internal/migration"
	"github.com/sahayak/sahayak-backend/internal/repository"
	"github.com/sahayak/sahayak-backend/internal/service"
	pkges "github.com/sahayak/sahayak-backend/pkg/elasticsearch"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	configPath := flag.String("config", "configs/config.local.yaml", "config file path")
	reindex := flag.Bool("reindex", false, "rebuild the Elasticsearch index from published subjects")
	verbose := flag.Bool("verbose", false, "verbose SQL logging")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logLevel := gormlogger.Warn
	if *verbose {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying DB: %v", err)
	}
	defer sqlDB.Close()

	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migration complete")

	if *reindex {
		if !cfg.Elasticsearch.Enabled() {
			log.Fatal("Elasticsearch is not configured")
		}
		esClient, err := pkges.NewClient(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Username, cfg.Elasticsearch.Password)
		if err != nil {
			log.Fatalf("Failed to connect to Elasticsearch: %v", err)
		}

		subjectRepo := repository.NewSubjectRepository(db)
		searchService := service.NewSearchService(esClient, subjectRepo)

		ctx := context.Background()
		if err := searchService.EnsureIndices(ctx); err != nil {
			log.Fatalf("Failed to create index: %v", err)
		}
		count, err := searchService.ReindexAll(ctx)
		if err != nil {
			log.Fatalf("Reindex failed: %v", err)
		}
		log.Printf("Reindexed %d subjects", count)
	}
}
