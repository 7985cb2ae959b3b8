// File: internal/application/bot_facade_test.go
package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"

	"telegram-ai-companion/internal/domain"
	"telegram-ai-companion/internal/infra/i18n"
)

type sentMsg struct {
	chatID int64
	text   string
	id     int
}

// recordingBot captures every outbound call so tests can assert the full
// notice lifecycle: what was sent, edited and deleted, in order.
type recordingBot struct {
	mu      sync.Mutex
	nextID  int
	sent    []sentMsg
	edits   []sentMsg
	deleted []int
	sendErr error
}

func (r *recordingBot) SendMessage(ctx context.Context, chatID int64, text string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sendErr != nil {
		return 0, r.sendErr
	}
	r.nextID++
	r.sent = append(r.sent, sentMsg{chatID: chatID, text: text, id: r.nextID})
	return r.nextID, nil
}

func (r *recordingBot) EditMessage(ctx context.Context, chatID int64, messageID int, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.edits = append(r.edits, sentMsg{chatID: chatID, text: text, id: messageID})
	return nil
}

func (r *recordingBot) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, messageID)
	return nil
}

type fakeConversation struct {
	reply  string
	err    error
	resets []int64
	asked  []string
}

func (f *fakeConversation) Respond(ctx context.Context, userID int64, text string) (string, error) {
	f.asked = append(f.asked, text)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeConversation) Reset(ctx context.Context, userID int64) {
	f.resets = append(f.resets, userID)
}

type fakeRecognition struct {
	voiceText string
	voiceErr  error
	imageText string
	imageErr  error
}

func (f *fakeRecognition) TranscribeVoice(ctx context.Context, fileID string) (string, error) {
	return f.voiceText, f.voiceErr
}

func (f *fakeRecognition) ExtractImageText(ctx context.Context, fileID string) (string, error) {
	return f.imageText, f.imageErr
}

func testTranslator(t *testing.T) *i18n.Translator {
	t.Helper()
	fsys := fstest.MapFS{
		"locales/en.yaml": &fstest.MapFile{Data: []byte(`start_welcome: "welcome"
help: "help text"
history_cleared: "cleared"
thinking: "thinking"
transcribing_voice: "transcribing"
recognizing_image: "reading image"
recognized_analyzing: "got: %s, analyzing"
combined_reply: "got: %s | %s"
generic_error: "oops"
speech_not_understood: "could not hear"
speech_service_error: "speech service: %s"
no_text_found: "no text"
`)},
		"locales/persona-en.txt": &fstest.MapFile{Data: []byte("persona")},
	}
	tr, err := i18n.NewTranslator(fsys, "en")
	if err != nil {
		t.Fatalf("translator: %v", err)
	}
	return tr
}

func newTestFacade(t *testing.T, bot *recordingBot, conv *fakeConversation, recog *fakeRecognition) *BotFacade {
	t.Helper()
	logger := zerolog.Nop()
	return NewBotFacade(bot, conv, recog, testTranslator(t), &logger)
}

func TestHandleStart_ResetsAndWelcomes(t *testing.T) {
	bot := &recordingBot{}
	conv := &fakeConversation{}
	f := newTestFacade(t, bot, conv, &fakeRecognition{})

	if err := f.HandleStart(context.Background(), 7, 42); err != nil {
		t.Fatal(err)
	}
	if len(conv.resets) != 1 || conv.resets[0] != 42 {
		t.Errorf("expected history reset for user 42, got %v", conv.resets)
	}
	if len(bot.sent) != 1 || bot.sent[0].text != "welcome" {
		t.Errorf("expected welcome message, got %v", bot.sent)
	}
}

func TestHandleClear(t *testing.T) {
	bot := &recordingBot{}
	conv := &fakeConversation{}
	f := newTestFacade(t, bot, conv, &fakeRecognition{})

	if err := f.HandleClear(context.Background(), 7, 42); err != nil {
		t.Fatal(err)
	}
	if len(conv.resets) != 1 {
		t.Error("expected one reset")
	}
	if len(bot.sent) != 1 || bot.sent[0].text != "cleared" {
		t.Errorf("expected confirmation, got %v", bot.sent)
	}
}

func TestHandleText_NoticeDeletedBeforeReply(t *testing.T) {
	bot := &recordingBot{}
	conv := &fakeConversation{reply: "here you go"}
	f := newTestFacade(t, bot, conv, &fakeRecognition{})

	if err := f.HandleText(context.Background(), 7, 42, "question"); err != nil {
		t.Fatal(err)
	}

	if len(bot.sent) != 2 {
		t.Fatalf("expected notice + reply, got %d sends", len(bot.sent))
	}
	notice := bot.sent[0]
	if notice.text != "thinking" {
		t.Errorf("expected interim notice first, got %q", notice.text)
	}
	if len(bot.deleted) != 1 || bot.deleted[0] != notice.id {
		t.Errorf("notice %d not deleted, deletions: %v", notice.id, bot.deleted)
	}
	if bot.sent[1].text != "here you go" {
		t.Errorf("unexpected reply %q", bot.sent[1].text)
	}
}

func TestHandleText_FailureResolvesNotice(t *testing.T) {
	bot := &recordingBot{}
	conv := &fakeConversation{err: errors.New("model down")}
	f := newTestFacade(t, bot, conv, &fakeRecognition{})

	if err := f.HandleText(context.Background(), 7, 42, "question"); err == nil {
		t.Fatal("expected error")
	}

	if len(bot.deleted) != 1 || bot.deleted[0] != bot.sent[0].id {
		t.Error("interim notice must be deleted on failure too")
	}
	last := bot.sent[len(bot.sent)-1]
	if last.text != "oops" {
		t.Errorf("expected generic error message, got %q", last.text)
	}
}

func TestHandleVoice_FullFlow(t *testing.T) {
	bot := &recordingBot{}
	conv := &fakeConversation{reply: "answer"}
	recog := &fakeRecognition{voiceText: "spoken words"}
	f := newTestFacade(t, bot, conv, recog)

	if err := f.HandleVoice(context.Background(), 7, 42, "voice-file"); err != nil {
		t.Fatal(err)
	}

	if len(bot.edits) != 1 || !strings.Contains(bot.edits[0].text, "spoken words") {
		t.Errorf("expected transcript status edit, got %v", bot.edits)
	}
	if bot.edits[0].id != bot.sent[0].id {
		t.Error("status edit must target the interim notice")
	}
	if len(conv.asked) != 1 || conv.asked[0] != "spoken words" {
		t.Errorf("transcript not forwarded to conversation: %v", conv.asked)
	}
	final := bot.sent[len(bot.sent)-1].text
	if final != "got: spoken words | answer" {
		t.Errorf("unexpected combined reply %q", final)
	}
	if len(bot.deleted) != 1 {
		t.Errorf("expected single notice deletion, got %v", bot.deleted)
	}
}

func TestHandleVoice_RecognitionErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantText string
	}{
		{"not understood", domain.ErrSpeechNotUnderstood, "could not hear"},
		{"service down", fmt.Errorf("%w: status 503", domain.ErrSpeechServiceUnavailable), "speech service:"},
		{"other", errors.New("disk full"), "oops"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bot := &recordingBot{}
			conv := &fakeConversation{}
			f := newTestFacade(t, bot, conv, &fakeRecognition{voiceErr: tc.err})

			if err := f.HandleVoice(context.Background(), 7, 42, "voice-file"); err == nil {
				t.Fatal("expected error")
			}
			if len(conv.asked) != 0 {
				t.Error("conversation must not run when recognition fails")
			}
			if len(bot.deleted) != 1 {
				t.Error("interim notice must be resolved")
			}
			last := bot.sent[len(bot.sent)-1].text
			if !strings.Contains(last, tc.wantText) {
				t.Errorf("expected message containing %q, got %q", tc.wantText, last)
			}
		})
	}
}

func TestHandlePhoto_NoTextFound(t *testing.T) {
	bot := &recordingBot{}
	conv := &fakeConversation{}
	f := newTestFacade(t, bot, conv, &fakeRecognition{imageErr: domain.ErrNoTextRecognized})

	if err := f.HandlePhoto(context.Background(), 7, 42, "photo-file"); err == nil {
		t.Fatal("expected error")
	}
	if len(conv.asked) != 0 {
		t.Error("conversation must not run without recognized text")
	}
	last := bot.sent[len(bot.sent)-1].text
	if last != "no text" {
		t.Errorf("expected no-text message, got %q", last)
	}
}

func TestHandlePhoto_FullFlow(t *testing.T) {
	bot := &recordingBot{}
	conv := &fakeConversation{reply: "summary"}
	f := newTestFacade(t, bot, conv, &fakeRecognition{imageText: "printed text"})

	if err := f.HandlePhoto(context.Background(), 7, 42, "photo-file"); err != nil {
		t.Fatal(err)
	}
	if len(conv.asked) != 1 || conv.asked[0] != "printed text" {
		t.Errorf("OCR text not forwarded: %v", conv.asked)
	}
	final := bot.sent[len(bot.sent)-1].text
	if final != "got: printed text | summary" {
		t.Errorf("unexpected combined reply %q", final)
	}
}
