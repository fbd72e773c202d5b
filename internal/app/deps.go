package app

import (
	"time"

	"github.com/vidshelf/backend/internal/catalog"
	"github.com/vidshelf/backend/internal/config"
	"github.com/vidshelf/backend/internal/db"
	"github.com/vidshelf/backend/internal/handlers"
	"github.com/vidshelf/backend/internal/middleware"
	"github.com/vidshelf/backend/internal/repositories"
	"github.com/vidshelf/backend/internal/videos"
)

// buildDependencies wires together concrete implementations used by the HTTP handlers.
func buildDependencies(pool db.Pool, cfg config.Config) handlers.Dependencies {
	youtube := videos.NewYouTubeProvider(cfg.YouTubeAPIKey, cfg.MetadataTimeout)
	metadataProvider := videos.NewCachingProvider(youtube, cfg.MetadataCacheTTL)

	categoryRepo := repositories.NewPostgresCategoryRepository(pool)
	videoRepo := repositories.NewPostgresVideoRepository(pool)

	return handlers.Dependencies{
		Categories: &catalog.CategoryService{Categories: categoryRepo},
		Videos: &catalog.VideoService{
			Videos:     videoRepo,
			Categories: categoryRepo,
			Metadata:   metadataProvider,
		},
		VideoMetadata: metadataProvider,
		WriteLimiter:  middleware.NewIPRateLimiter(cfg.WriteRateLimit, time.Minute, cfg.WriteRateBurst, 10*time.Minute),
	}
}
