package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ArnW0lf/ParaJose/domain/dto"
	"github.com/ArnW0lf/ParaJose/domain/model"
	"github.com/ArnW0lf/ParaJose/domain/repository"
	"github.com/ArnW0lf/ParaJose/infrastructure/logger"
)

type IAdaptUsecase interface {
	Adapt(ctx context.Context, req dto.AdaptRequest) (*dto.AdaptResponse, error)
	ListPosts(ctx context.Context) ([]*model.Post, error)
	GetPost(ctx context.Context, id int64) (*model.PostWithPublications, error)
	DeletePost(ctx context.Context, id int64) error
}

type adaptUsecase struct {
	textModel    repository.ITextModel
	enricher     *Enricher
	posts        repository.IPost
	publications repository.IPublication
}

func NewAdaptUsecase(textModel repository.ITextModel, enricher *Enricher, posts repository.IPost, publications repository.IPublication) IAdaptUsecase {
	return &adaptUsecase{
		textModel:    textModel,
		enricher:     enricher,
		posts:        posts,
		publications: publications,
	}
}

// Adapt is all-or-nothing on the generation side: a model failure or an
// unparseable response fails the request and nothing is persisted. Media
// enrichment failures, in contrast, only cost the affected field.
func (u *adaptUsecase) Adapt(ctx context.Context, req dto.AdaptRequest) (*dto.AdaptResponse, error) {
	title := strings.TrimSpace(req.Title)
	body := strings.TrimSpace(req.Body)
	if title == "" || body == "" {
		return nil, errors.New("title and body are required")
	}

	raw, err := u.textModel.Generate(ctx, buildAdaptationPrompt(title, body))
	if err != nil {
		return nil, fmt.Errorf("content generation failed: %w", err)
	}
	set, err := parseAdaptationSet(raw)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("model returned unusable adaptation payload")
		return nil, err
	}

	u.enricher.Enrich(ctx, set)

	post := &model.Post{Title: title, Body: body}
	if err := u.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("persist post: %w", err)
	}

	resp := &dto.AdaptResponse{PostID: post.ID, Adaptations: make(map[string]dto.AdaptedDraft)}
	for _, platform := range model.AllPlatforms() {
		adaptation := set.Get(platform)
		if adaptation == nil || adaptation.Text == "" {
			logger.GetLogger().WithField("platform", platform).Warn("model omitted platform adaptation")
			continue
		}
		pub := publicationFromAdaptation(post.ID, platform, adaptation)
		if err := u.publications.Create(ctx, pub); err != nil {
			return nil, fmt.Errorf("persist %s draft: %w", platform, err)
		}
		resp.Adaptations[platform.String()] = dto.AdaptedDraft{
			DraftID:     pub.ID,
			Text:        adaptation.Text,
			Hashtags:    adaptation.Hashtags,
			ImagePrompt: adaptation.SuggestedImagePrompt,
			VideoHook:   adaptation.VideoHook,
			ImageURL:    adaptation.GeneratedImageURL,
			VideoURL:    adaptation.GeneratedVideoURL,
		}
	}
	return resp, nil
}

func (u *adaptUsecase) ListPosts(ctx context.Context) ([]*model.Post, error) {
	return u.posts.List(ctx)
}

func (u *adaptUsecase) GetPost(ctx context.Context, id int64) (*model.PostWithPublications, error) {
	post, err := u.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pubs, err := u.publications.ListByPostID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.PostWithPublications{Post: *post, Publications: pubs}, nil
}

func (u *adaptUsecase) DeletePost(ctx context.Context, id int64) error {
	return u.posts.Delete(ctx, id)
}

// parseAdaptationSet tolerates markdown fences some models wrap JSON in even
// when asked not to.
func parseAdaptationSet(raw string) (*model.AdaptationSet, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var set model.AdaptationSet
	if err := json.Unmarshal([]byte(cleaned), &set); err != nil {
		return nil, fmt.Errorf("parse adaptation JSON: %w", err)
	}
	if set.Empty() {
		return nil, errors.New("model response contained no platform adaptations")
	}
	return &set, nil
}

func publicationFromAdaptation(postID int64, platform model.Platform, a *model.PlatformAdaptation) *model.Publication {
	pub := &model.Publication{
		PostID:   postID,
		Platform: platform,
		Text:     a.Text,
		Hashtags: a.Hashtags,
		State:    model.StateDraft,
	}
	if a.SuggestedImagePrompt != "" {
		v := a.SuggestedImagePrompt
		pub.ImagePrompt = &v
	}
	if a.VideoHook != "" {
		v := a.VideoHook
		pub.VideoHook = &v
	}
	if a.GeneratedImageURL != "" {
		v := a.GeneratedImageURL
		pub.ImageURL = &v
	}
	if a.GeneratedVideoURL != "" {
		v := a.GeneratedVideoURL
		pub.VideoURL = &v
	}
	return pub
}
