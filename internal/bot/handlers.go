// Package bot implements the conversation flow: name queries, prediction
// summaries, and on-demand chart rendering behind an inline button.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"nationbot/core/buildinfo"
	"nationbot/core/logger"
	"nationbot/core/telegram/callbacks"
	"nationbot/core/telegram/helpers"
	"nationbot/core/telegram/keyboard"
	"nationbot/internal/chart"
	"nationbot/internal/nationalize"
	"nationbot/internal/resultcache"
)

// GraphCallbackKey identifies the "show chart" inline button.
const GraphCallbackKey = "graph"

// TopN is how many guesses appear in the summary and on the chart.
const TopN = 5

// Predictor resolves a name into nationality guesses.
type Predictor interface {
	Predict(ctx context.Context, name string) ([]nationalize.Guess, error)
}

// Options wire the conversation service together.
type Options struct {
	Predictor Predictor
	Cache     *resultcache.Cache

	// Render overrides chart rendering, mainly for tests.
	Render func([]nationalize.Guess) ([]byte, error)

	// PredictTimeout bounds one prediction call; zero relies on the
	// client's own timeout.
	PredictTimeout time.Duration
}

// Service handles conversation events. One instance serves all chats.
type Service struct {
	predictor Predictor
	cache     *resultcache.Cache
	render    func([]nationalize.Guess) ([]byte, error)
	timeout   time.Duration
	startedAt time.Time
}

// New builds a Service. Predictor and Cache are required.
func New(opts Options) (*Service, error) {
	if opts.Predictor == nil {
		return nil, errors.New("bot: predictor is required")
	}
	if opts.Cache == nil {
		return nil, errors.New("bot: cache is required")
	}
	render := opts.Render
	if render == nil {
		render = chart.Render
	}
	return &Service{
		predictor: opts.Predictor,
		cache:     opts.Cache,
		render:    render,
		timeout:   opts.PredictTimeout,
		startedAt: time.Now(),
	}, nil
}

// HandleStart replies with the onboarding message for /start and /help.
func (s *Service) HandleStart(c tele.Context) error {
	return helpers.ReplyText(c, msgWelcome)
}

// HandleName treats an arbitrary text message as a name query.
func (s *Service) HandleName(c tele.Context) error {
	name := trimmedText(c)
	if !validName(name) {
		return helpers.ReplyText(c, msgNameTooShort)
	}

	ctx := helpers.BuildContext(c)
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	guesses, err := s.predictor.Predict(ctx, name)
	if err != nil {
		_ = helpers.ReplyText(c, predictErrorMessage(err))
		return err
	}
	if len(guesses) == 0 {
		return helpers.ReplyText(c, msgNoPrediction)
	}

	ranked := nationalize.Rank(guesses, TopN)
	token := s.cache.Put(chatID(c), name, ranked)

	markup := keyboard.SingleInline(keyboard.InlineBtn{
		Text:   msgChartButton,
		Unique: GraphCallbackKey,
		Data:   token,
	})
	return helpers.SendKeyboard(c, formatResults(name, ranked), markup)
}

// HandleGraph redeems a chart token from the inline button.
func (s *Service) HandleGraph(c tele.Context) error {
	token := callbacks.CallbackPayload(c)

	entry, ok := s.cache.Take(token)
	if !ok || entry.ChatID != chatID(c) {
		return callbacks.RespondAlert(c, msgStaleData)
	}

	img, err := s.render(entry.Guesses)
	if err != nil {
		_ = callbacks.RespondAlert(c, msgRenderErrorPrefix+logger.SanitizeLimit(err.Error(), 150))
		return err
	}

	if err := callbacks.Respond(c, msgChartAckToast); err != nil {
		return err
	}
	return helpers.SendPhoto(c, img, fmt.Sprintf(msgChartCaption, entry.Name))
}

// HandleStats reports runtime details. Registered admin-only.
func (s *Service) HandleStats(c tele.Context) error {
	uptime := time.Since(s.startedAt).Round(time.Second)
	return helpers.ReplyText(c, fmt.Sprintf(msgStatsTemplate, buildinfo.Version, uptime, s.cache.Len()))
}

// HandleDocument nudges users who send files instead of text.
func (s *Service) HandleDocument(c tele.Context) error {
	return helpers.ReplyText(c, msgDocumentHint)
}

// RejectNonAdmin answers admin-only commands invoked by other users.
func (s *Service) RejectNonAdmin(c tele.Context) error {
	return helpers.ReplyText(c, msgAdminOnly)
}

func predictErrorMessage(err error) string {
	var netErr *nationalize.NetworkError
	if errors.As(err, &netErr) {
		return msgNetworkErrorPrefix + logger.SanitizeLimit(err.Error(), 150)
	}
	return msgUnexpectedErrorPrefix + logger.SanitizeLimit(err.Error(), 150)
}

func trimmedText(c tele.Context) string {
	return strings.TrimSpace(c.Text())
}

func chatID(c tele.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	return 0
}
