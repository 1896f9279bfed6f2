package usecase

import (
	"context"

	"github.com/ArnW0lf/ParaJose/domain/model"
	"github.com/ArnW0lf/ParaJose/domain/repository"
	"github.com/ArnW0lf/ParaJose/infrastructure/logger"
)

// Media dimensions per platform: square feed images for Instagram and
// Facebook, portrait for TikTok.
const (
	squareImageSize   = 1024
	portraitImgWidth  = 720
	portraitImgHeight = 1280
)

// Enricher attaches generated media URLs to an adaptation set. Every field is
// enriched independently: a failed image or video lookup logs a warning and
// leaves that field empty without affecting the others.
type Enricher struct {
	images repository.IImageGenerator
	videos repository.IVideoSearcher
}

func NewEnricher(images repository.IImageGenerator, videos repository.IVideoSearcher) *Enricher {
	return &Enricher{images: images, videos: videos}
}

func (e *Enricher) Enrich(ctx context.Context, set *model.AdaptationSet) {
	if set == nil {
		return
	}
	e.enrichInstagram(ctx, set)
	e.enrichTikTok(ctx, set.TikTok)
}

func (e *Enricher) enrichInstagram(ctx context.Context, set *model.AdaptationSet) {
	ig := set.Instagram
	if ig == nil || ig.SuggestedImagePrompt == "" || e.images == nil {
		return
	}
	url, err := e.images.GenerateImage(ctx, ig.SuggestedImagePrompt, squareImageSize, squareImageSize)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("instagram image generation failed")
		return
	}
	ig.GeneratedImageURL = url
	// Facebook reuses the Instagram visual when it has none of its own.
	if fb := set.Facebook; fb != nil && fb.GeneratedImageURL == "" {
		fb.GeneratedImageURL = url
	}
}

func (e *Enricher) enrichTikTok(ctx context.Context, tk *model.PlatformAdaptation) {
	if tk == nil {
		return
	}

	imagePrompt := tk.SuggestedImagePrompt
	if imagePrompt == "" {
		imagePrompt = tk.VideoHook
	}
	if imagePrompt != "" && e.images != nil {
		url, err := e.images.GenerateImage(ctx, imagePrompt, portraitImgWidth, portraitImgHeight)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("tiktok cover image generation failed")
		} else {
			tk.GeneratedImageURL = url
		}
	}

	keywords := tk.StockVideoKeywords
	if keywords == "" {
		keywords = tk.VideoHook
	}
	if keywords != "" && e.videos != nil {
		url, err := e.videos.SearchVideo(ctx, keywords, "portrait")
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("tiktok stock video search failed")
		} else {
			tk.GeneratedVideoURL = url
		}
	}
}
