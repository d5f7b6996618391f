package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"nationbot/internal/nationalize"
	"nationbot/internal/resultcache"
)

type stubPredictor struct {
	guesses []nationalize.Guess
	err     error
	calls   []string
}

func (s *stubPredictor) Predict(ctx context.Context, name string) ([]nationalize.Guess, error) {
	s.calls = append(s.calls, name)
	return s.guesses, s.err
}

// fakeContext implements the handful of tele.Context methods the handlers
// touch; everything else panics via the embedded nil interface.
type fakeContext struct {
	tele.Context

	text     string
	chat     *tele.Chat
	sender   *tele.User
	callback *tele.Callback

	store     map[string]any
	sent      []any
	sentOpts  [][]any
	replies   []string
	responses []*tele.CallbackResponse
}

func newFakeContext(chatID int64, text string) *fakeContext {
	return &fakeContext{
		text:   text,
		chat:   &tele.Chat{ID: chatID},
		sender: &tele.User{ID: chatID},
		store:  make(map[string]any),
	}
}

func (f *fakeContext) Text() string              { return f.text }
func (f *fakeContext) Chat() *tele.Chat          { return f.chat }
func (f *fakeContext) Sender() *tele.User        { return f.sender }
func (f *fakeContext) Update() tele.Update       { return tele.Update{ID: 1} }
func (f *fakeContext) Callback() *tele.Callback  { return f.callback }
func (f *fakeContext) Get(key string) any        { return f.store[key] }
func (f *fakeContext) Set(key string, value any) { f.store[key] = value }

func (f *fakeContext) Send(what any, opts ...any) error {
	f.sent = append(f.sent, what)
	f.sentOpts = append(f.sentOpts, opts)
	return nil
}

func (f *fakeContext) Reply(what any, opts ...any) error {
	if s, ok := what.(string); ok {
		f.replies = append(f.replies, s)
	}
	return nil
}

func (f *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) > 0 {
		f.responses = append(f.responses, resp[0])
	} else {
		f.responses = append(f.responses, &tele.CallbackResponse{})
	}
	return nil
}

func newTestService(t *testing.T, p *stubPredictor) (*Service, *resultcache.Cache) {
	t.Helper()
	cache := resultcache.New(resultcache.Options{})
	svc, err := New(Options{
		Predictor: p,
		Cache:     cache,
		Render: func([]nationalize.Guess) ([]byte, error) {
			return []byte("png-bytes"), nil
		},
	})
	require.NoError(t, err)
	return svc, cache
}

func sixGuesses() []nationalize.Guess {
	return []nationalize.Guess{
		{CountryID: "DE", Probability: 0.31},
		{CountryID: "AT", Probability: 0.22},
		{CountryID: "CH", Probability: 0.14},
		{CountryID: "NL", Probability: 0.09},
		{CountryID: "BE", Probability: 0.07},
		{CountryID: "LU", Probability: 0.05},
	}
}

// keyboardOf digs the inline markup out of the recorded send options.
func keyboardOf(t *testing.T, f *fakeContext, i int) *tele.ReplyMarkup {
	t.Helper()
	require.Greater(t, len(f.sentOpts), i)
	for _, opt := range f.sentOpts[i] {
		if so, ok := opt.(*tele.SendOptions); ok && so.ReplyMarkup != nil {
			return so.ReplyMarkup
		}
	}
	t.Fatal("no reply markup attached to send")
	return nil
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(Options{Cache: resultcache.New(resultcache.Options{})})
	assert.Error(t, err)

	_, err = New(Options{Predictor: &stubPredictor{}})
	assert.Error(t, err)

	svc, err := New(Options{
		Predictor: &stubPredictor{},
		Cache:     resultcache.New(resultcache.Options{}),
	})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestHandleNameShortInputSkipsPrediction(t *testing.T) {
	predictor := &stubPredictor{guesses: sixGuesses()}
	svc, cache := newTestService(t, predictor)

	c := newFakeContext(7, " a ")
	require.NoError(t, svc.HandleName(c))

	assert.Empty(t, predictor.calls, "no request may be made for names shorter than 2 runes")
	assert.Equal(t, []string{msgNameTooShort}, c.replies)
	assert.Empty(t, c.sent)
	assert.Equal(t, 0, cache.Len())
}

func TestHandleNameQueryFlow(t *testing.T) {
	predictor := &stubPredictor{guesses: sixGuesses()}
	svc, cache := newTestService(t, predictor)

	c := newFakeContext(7, "  Hans  ")
	require.NoError(t, svc.HandleName(c))

	require.Equal(t, []string{"Hans"}, predictor.calls, "query must be trimmed before the request")

	require.Len(t, c.sent, 1)
	text, ok := c.sent[0].(string)
	require.True(t, ok)
	assert.Contains(t, text, "Hans")
	lines := strings.Split(text, "\n")
	require.Len(t, lines, 6, "header plus exactly five result lines")

	markup := keyboardOf(t, c, 0)
	require.Len(t, markup.InlineKeyboard, 1)
	require.Len(t, markup.InlineKeyboard[0], 1)
	btn := markup.InlineKeyboard[0][0]
	assert.Equal(t, GraphCallbackKey, btn.Unique)
	require.NotEmpty(t, btn.Data)

	entry, ok := cache.Take(btn.Data)
	require.True(t, ok)
	assert.Equal(t, int64(7), entry.ChatID)
	assert.Equal(t, "Hans", entry.Name)
	assert.Len(t, entry.Guesses, 5)
}

func TestHandleNameEmptyResult(t *testing.T) {
	predictor := &stubPredictor{guesses: []nationalize.Guess{}}
	svc, cache := newTestService(t, predictor)

	c := newFakeContext(7, "zzzz")
	require.NoError(t, svc.HandleName(c))

	assert.Equal(t, []string{msgNoPrediction}, c.replies)
	assert.Empty(t, c.sent, "no button may be attached when there is no prediction")
	assert.Equal(t, 0, cache.Len())
}

func TestHandleNamePredictError(t *testing.T) {
	predictor := &stubPredictor{err: &nationalize.NetworkError{Err: errors.New("dial timeout")}}
	svc, cache := newTestService(t, predictor)

	c := newFakeContext(7, "Hans")
	err := svc.HandleName(c)
	require.Error(t, err)

	require.Len(t, c.replies, 1)
	assert.True(t, strings.HasPrefix(c.replies[0], msgNetworkErrorPrefix))
	assert.Contains(t, c.replies[0], "dial timeout")
	assert.Equal(t, 0, cache.Len())
}

func TestHandleGraphDoublePress(t *testing.T) {
	predictor := &stubPredictor{guesses: sixGuesses()}
	svc, cache := newTestService(t, predictor)

	query := newFakeContext(7, "Hans")
	require.NoError(t, svc.HandleName(query))
	token := keyboardOf(t, query, 0).InlineKeyboard[0][0].Data
	require.Equal(t, 1, cache.Len())

	press := newFakeContext(7, "")
	press.callback = &tele.Callback{Unique: GraphCallbackKey, Data: token}
	require.NoError(t, svc.HandleGraph(press))

	require.Len(t, press.sent, 1)
	photo, ok := press.sent[0].(*tele.Photo)
	require.True(t, ok)
	assert.Contains(t, photo.Caption, "Hans")
	require.Len(t, press.responses, 1)
	assert.False(t, press.responses[0].ShowAlert)

	again := newFakeContext(7, "")
	again.callback = &tele.Callback{Unique: GraphCallbackKey, Data: token}
	require.NoError(t, svc.HandleGraph(again))

	assert.Empty(t, again.sent, "second press must not send a new message")
	require.Len(t, again.responses, 1)
	assert.True(t, again.responses[0].ShowAlert)
	assert.Equal(t, msgStaleData, again.responses[0].Text)
}

func TestHandleGraphChatMismatch(t *testing.T) {
	predictor := &stubPredictor{}
	svc, cache := newTestService(t, predictor)

	token := cache.Put(42, "Hans", sixGuesses()[:1])

	press := newFakeContext(99, "")
	press.callback = &tele.Callback{Unique: GraphCallbackKey, Data: token}
	require.NoError(t, svc.HandleGraph(press))

	assert.Empty(t, press.sent)
	require.Len(t, press.responses, 1)
	assert.True(t, press.responses[0].ShowAlert)
	assert.Equal(t, msgStaleData, press.responses[0].Text)
}

func TestHandleGraphRenderFailure(t *testing.T) {
	cache := resultcache.New(resultcache.Options{})
	svc, err := New(Options{
		Predictor: &stubPredictor{},
		Cache:     cache,
		Render: func([]nationalize.Guess) ([]byte, error) {
			return nil, errors.New("surface lost")
		},
	})
	require.NoError(t, err)

	token := cache.Put(7, "Hans", sixGuesses()[:1])

	press := newFakeContext(7, "")
	press.callback = &tele.Callback{Unique: GraphCallbackKey, Data: token}
	require.Error(t, svc.HandleGraph(press))

	assert.Empty(t, press.sent)
	require.Len(t, press.responses, 1)
	assert.True(t, press.responses[0].ShowAlert)
	assert.True(t, strings.HasPrefix(press.responses[0].Text, msgRenderErrorPrefix))
}

func TestPredictErrorMessages(t *testing.T) {
	netErr := &nationalize.NetworkError{Err: errors.New("dial timeout")}
	msg := predictErrorMessage(netErr)
	assert.True(t, strings.HasPrefix(msg, msgNetworkErrorPrefix))
	assert.Contains(t, msg, "dial timeout")

	unexpected := &nationalize.UnexpectedError{Err: errors.New("broken payload")}
	msg = predictErrorMessage(unexpected)
	assert.True(t, strings.HasPrefix(msg, msgUnexpectedErrorPrefix))
	assert.Contains(t, msg, "broken payload")
}
