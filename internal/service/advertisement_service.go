package service

import (
	"context"
	"regexp"

	"go.uber.org/zap"

	"github.com/nexjob/nexjob-api/internal/dto"
	"github.com/nexjob/nexjob-api/internal/models"
	appErrors "github.com/nexjob/nexjob-api/pkg/errors"
)

var h2OpenTag = regexp.MustCompile(`(?i)<h2[\s>]`)

// AdvertisementService serves ad snippets by placement and injects the
// in-content ad into article bodies.
type AdvertisementService struct {
	settings SettingsProvider
	logger   *zap.Logger
}

// NewAdvertisementService wires the advertisement service.
func NewAdvertisementService(settings SettingsProvider, logger *zap.Logger) *AdvertisementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdvertisementService{settings: settings, logger: logger}
}

// AdCode returns the snippet configured for one placement. Unknown placements
// return ErrNotFound.
func (s *AdvertisementService) AdCode(ctx context.Context, position models.AdPosition) (*dto.AdCodeResponse, error) {
	if !validAdPosition(position) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "unknown ad position")
	}

	settings := s.settings.GetSettings(ctx, false)
	return &dto.AdCodeResponse{
		Position: string(position),
		Code:     settings.AdCode(position),
	}, nil
}

// AllAdCodes returns every placement with its configured snippet.
func (s *AdvertisementService) AllAdCodes(ctx context.Context) []dto.AdCodeResponse {
	settings := s.settings.GetSettings(ctx, false)
	out := make([]dto.AdCodeResponse, 0, len(models.AdPositions))
	for _, position := range models.AdPositions {
		out = append(out, dto.AdCodeResponse{
			Position: string(position),
			Code:     settings.AdCode(position),
		})
	}
	return out
}

// InjectMiddleAd places the in-content ad snippet before the median <h2> of
// the rendered article HTML. Content without headings, and sites without a
// configured snippet, pass through unchanged.
func (s *AdvertisementService) InjectMiddleAd(ctx context.Context, html string) string {
	settings := s.settings.GetSettings(ctx, false)
	return InsertBeforeMedianHeading(html, settings.SingleMiddleAdCode)
}

// InsertBeforeMedianHeading splices snippet into html immediately before the
// middle <h2> tag.
func InsertBeforeMedianHeading(html, snippet string) string {
	if snippet == "" {
		return html
	}

	headings := h2OpenTag.FindAllStringIndex(html, -1)
	if len(headings) == 0 {
		return html
	}

	at := headings[len(headings)/2][0]
	return html[:at] + snippet + html[at:]
}

func validAdPosition(position models.AdPosition) bool {
	for _, known := range models.AdPositions {
		if known == position {
			return true
		}
	}
	return false
}
