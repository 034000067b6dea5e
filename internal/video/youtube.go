package video

import (
	"context"
	"errors"
	"fmt"
	"io"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/Anietiedaniel/stay-next-agent-service/internal/config"
)

// Platform is the video-hosting collaborator. Insert publishes a video
// and returns the platform video id.
type Platform interface {
	Insert(ctx context.Context, title, description string, tags []string, privacyStatus string, media io.Reader) (string, error)
}

// ErrNotConfigured is returned by the disabled platform when no
// YouTube credentials are present.
var ErrNotConfigured = errors.New("video platform not configured")

// youtubePlatform implements Platform over the YouTube Data API.
type youtubePlatform struct {
	cfg *config.Config
	svc *youtube.Service
}

// NewYouTube creates the YouTube-backed Platform from a service
// account credentials file.
func NewYouTube(ctx context.Context, cfg *config.Config) (Platform, error) {
	svc, err := youtube.NewService(ctx, option.WithCredentialsFile(cfg.YoutubeCredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize YouTube service: %w", err)
	}
	return &youtubePlatform{cfg: cfg, svc: svc}, nil
}

// Insert uploads a video and returns its id.
func (p *youtubePlatform) Insert(ctx context.Context, title, description string, tags []string, privacyStatus string, media io.Reader) (string, error) {
	if privacyStatus == "" {
		privacyStatus = p.cfg.YoutubePrivacyStatus
	}
	upload := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       title,
			Description: description,
			Tags:        tags,
			CategoryId:  p.cfg.YoutubeCategoryID,
		},
		Status: &youtube.VideoStatus{PrivacyStatus: privacyStatus},
	}

	call := p.svc.Videos.Insert([]string{"snippet", "status"}, upload)
	resp, err := call.Media(media).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("youtube insert failed for %q: %w", title, err)
	}
	return resp.Id, nil
}

// disabledPlatform fails every insert; used when YouTube credentials
// are not configured so video uploads surface a clear error.
type disabledPlatform struct{}

// NewDisabled returns a Platform that always reports ErrNotConfigured.
func NewDisabled() Platform {
	return disabledPlatform{}
}

func (disabledPlatform) Insert(context.Context, string, string, []string, string, io.Reader) (string, error) {
	return "", ErrNotConfigured
}

// WatchURL composes the public watch link for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
