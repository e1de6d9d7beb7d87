package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kdduha/burnmaster/internal/config"
	"github.com/kdduha/burnmaster/internal/llm"
	"github.com/kdduha/burnmaster/internal/metrics"
	"github.com/kdduha/burnmaster/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type TextGenerator interface {
	CompleteJSON(ctx context.Context, req llm.TextRequest) (string, error)
}

type ImageGenerator interface {
	EditImage(ctx context.Context, prompt string, source *models.Image) (*models.Image, error)
}

type RoastService struct {
	logger       *zap.Logger
	text         TextGenerator
	image        ImageGenerator
	textTimeout  time.Duration
	imageTimeout time.Duration

	now   func() time.Time
	newID func() string
}

func NewRoastService(logger *zap.Logger, text TextGenerator, image ImageGenerator, cfg config.OpenAIConfig) *RoastService {
	return &RoastService{
		logger:       logger,
		text:         text,
		image:        image,
		textTimeout:  cfg.TextTimeout,
		imageTimeout: cfg.ImageTimeout,
		now:          time.Now,
		newID:        newRoastID,
	}
}

func newRoastID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

type textResult struct {
	reply    roastReply
	fallback bool
}

type caricatureResult struct {
	image   *models.Image
	skipped string
}

// Generate runs both stages and assembles the result. Only a failed text
// stage is returned as an error; everything else degrades in place.
func (s *RoastService) Generate(ctx context.Context, settings models.RoastSettings) (*models.GeneratedRoast, error) {
	source, err := prepare(settings)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, settings, source, func(models.RoastEvent) {})
}

// GenerateStream is Generate reporting each finished stage as it lands.
// The channel ends with exactly one done or error event.
func (s *RoastService) GenerateStream(ctx context.Context, settings models.RoastSettings) (<-chan models.RoastEvent, error) {
	source, err := prepare(settings)
	if err != nil {
		return nil, err
	}

	ch := make(chan models.RoastEvent, 3)
	sendOrStop := func(ev models.RoastEvent) bool {
		select {
		case ch <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	go func() {
		defer close(ch)

		roast, err := s.run(ctx, settings, source, func(ev models.RoastEvent) {
			sendOrStop(ev)
		})
		if err != nil {
			sendOrStop(models.RoastEvent{Type: models.EventError, Err: err})
			return
		}
		sendOrStop(models.RoastEvent{Type: models.EventDone, Roast: roast})
	}()

	return ch, nil
}

// prepare validates the settings and decodes the photo, if any.
func prepare(settings models.RoastSettings) (*models.Image, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings.SourceImage()
}

func (s *RoastService) run(
	ctx context.Context,
	settings models.RoastSettings,
	source *models.Image,
	emit func(models.RoastEvent),
) (*models.GeneratedRoast, error) {
	var (
		text       textResult
		caricature caricatureResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.generateText(gctx, settings, source)
		if err != nil {
			return err
		}
		text = res
		stats, _ := resolveStats(res.reply, settings)
		emit(models.RoastEvent{Type: models.EventText, Text: roastText(res.reply), Stats: &stats})
		return nil
	})
	if source != nil {
		g.Go(func() error {
			caricature = s.generateCaricature(gctx, settings, source)
			if caricature.image != nil {
				emit(models.RoastEvent{Type: models.EventCaricature, CaricatureURL: caricature.image.DataURI()})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.assemble(settings, text, caricature), nil
}

func (s *RoastService) generateText(ctx context.Context, settings models.RoastSettings, source *models.Image) (textResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.textTimeout)
	defer cancel()

	start := time.Now()
	content, err := s.text.CompleteJSON(ctx, buildTextReq(settings, source))
	switch {
	case errors.Is(err, llm.ErrEmptyCompletion):
		s.logger.Warn("text stage returned no content, using fallback", zap.Error(err))
		metrics.RoastStage(StageText, statusDegraded, time.Since(start))
		return textResult{fallback: true}, nil
	case err != nil:
		s.logger.Error("text stage failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		metrics.RoastStage(StageText, statusFailed, time.Since(start))
		return textResult{}, &GenerationError{Stage: StageText, Err: err}
	}

	reply, err := parseReply(content)
	if err != nil {
		s.logger.Warn("malformed text stage reply, using fallback", zap.Error(err))
		metrics.RoastStage(StageText, statusDegraded, time.Since(start))
		return textResult{fallback: true}, nil
	}

	status := statusOK
	if reply.Text == "" {
		status = statusDegraded
	}
	metrics.RoastStage(StageText, status, time.Since(start))
	return textResult{reply: reply, fallback: reply.Text == ""}, nil
}

func (s *RoastService) generateCaricature(ctx context.Context, settings models.RoastSettings, source *models.Image) caricatureResult {
	ctx, cancel := context.WithTimeout(ctx, s.imageTimeout)
	defer cancel()

	start := time.Now()
	img, err := s.image.EditImage(ctx, getImagePrompt(settings), source)
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		s.logger.Debug("caricature stage cancelled", zap.Duration("elapsed", time.Since(start)))
		metrics.RoastStage(StageCaricature, statusCancelled, time.Since(start))
		return caricatureResult{skipped: "cancelled"}
	}
	if err != nil {
		s.logger.Warn("caricature generation failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		metrics.RoastStage(StageCaricature, statusFailed, time.Since(start))
		return caricatureResult{skipped: fmt.Sprintf("generation failed: %v", err)}
	}
	if img == nil || len(img.Data) == 0 {
		s.logger.Info("caricature stage produced no image")
		metrics.RoastStage(StageCaricature, statusEmpty, time.Since(start))
		return caricatureResult{skipped: "no image produced"}
	}

	metrics.RoastStage(StageCaricature, statusOK, time.Since(start))
	return caricatureResult{image: img}
}

func (s *RoastService) assemble(settings models.RoastSettings, text textResult, caricature caricatureResult) *models.GeneratedRoast {
	stats, statsFallback := resolveStats(text.reply, settings)

	diag := models.Diagnostics{
		TextFallback:      text.fallback,
		StatsFallback:     statsFallback,
		CaricatureSkipped: caricature.skipped,
	}
	if diag.TextFallback {
		metrics.RoastFallback("text")
	}
	for _, axis := range statsFallback {
		metrics.RoastFallback("stats_" + axis)
	}

	roast := &models.GeneratedRoast{
		ID:        s.newID(),
		Text:      roastText(text.reply),
		Timestamp: s.now(),
		Settings:  settings,
		Stats:     stats,
	}
	if caricature.image != nil {
		roast.CaricatureURL = caricature.image.DataURI()
	}
	if !diag.Empty() {
		roast.Diagnostics = &diag
	}
	return roast
}

func roastText(reply roastReply) string {
	if reply.Text == "" {
		return FallbackText
	}
	return reply.Text
}
