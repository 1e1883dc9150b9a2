package telegram

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"curhat-bot/internal/pipeline"
)

const (
	welcomeText = "Hai 🙂 aku bisa jadi teman ngobrol kamu.\n\n" +
		"Kamu boleh cerita apa aja. Aku akan dengerin tanpa nge-judge.\n\n" +
		"Ketik /privacy untuk info privasi, /reset untuk mulai dari nol, /help untuk bantuan."

	privacyText = "🔒 *Privasi*\n\n" +
		"Aku menyimpan *riwayat chat singkat sementara* supaya obrolan nyambung.\n" +
		"Kamu bisa ketik /reset kapan pun untuk menghapus memory.\n\n" +
		"Aku bukan tenaga profesional. Kalau kamu sedang dalam bahaya atau ingin menyakiti diri, " +
		"tolong hubungi orang terdekat atau layanan darurat setempat."

	helpText = "✨ *Bantuan*\n\n" +
		"Kamu bisa pakai perintah ini:\n" +
		"- /start — mulai\n" +
		"- /privacy — info privasi\n" +
		"- /reset — hapus memory & mulai ulang\n" +
		"- /help — bantuan\n\n" +
		"Kamu boleh curhat apa aja. Aku akan dengerin 🙂"

	resetText = "Oke, aku hapus memory obrolan kita. Kita mulai dari nol ya 🙂"
)

// sender is the slice of the Telegram API the bot writes through; tests
// substitute it.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type apiSender struct{ api *tgbotapi.BotAPI }

func (s apiSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return s.api.Send(c)
}

// resetter is the slice of the history store the router needs for /reset.
type resetter interface {
	Reset(userID int64)
}

type replier interface {
	Handle(ctx context.Context, userID int64, text string) pipeline.Result
}

type Bot struct {
	api       *tgbotapi.BotAPI
	s         sender
	pipeline  replier
	history   resetter
	parseMode string
}

func New(botToken string, pipe replier, hist resetter, parseMode string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:       api,
		s:         apiSender{api: api},
		pipeline:  pipe,
		history:   hist,
		parseMode: parseMode,
	}, nil
}

// Start long-polls for updates until ctx is done. Each message is handled
// on its own goroutine so one user's slow model call does not stall the
// poll loop; ordering for a single user is enforced inside the pipeline.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	log.Printf("bot running as @%s", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			go b.handleIncomingMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	b.relayToPipeline(ctx, msg)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.sendMessage(msg.Chat.ID, welcomeText)
	case "privacy":
		b.sendMessage(msg.Chat.ID, privacyText)
	case "help":
		b.sendMessage(msg.Chat.ID, helpText)
	case "reset":
		b.history.Reset(msg.From.ID)
		b.sendMessage(msg.Chat.ID, resetText)
	default:
		// Unknown commands go through the pipeline as plain text.
		b.relayToPipeline(ctx, msg)
	}
}

func (b *Bot) relayToPipeline(ctx context.Context, msg *tgbotapi.Message) {
	res := b.pipeline.Handle(ctx, msg.From.ID, msg.Text)
	if res.Kind == pipeline.KindSilent {
		return
	}
	b.sendMessage(msg.Chat.ID, res.Text)
}

// Send delivers text to an arbitrary chat; used for the daily report.
func (b *Bot) Send(chatID int64, text string) error {
	return b.send(chatID, text)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	if err := b.send(chatID, text); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

func (b *Bot) send(chatID int64, text string) error {
	out := tgbotapi.NewMessage(chatID, text)
	if b.parseMode != "" {
		out.ParseMode = b.parseMode
	}
	_, err := b.s.Send(out)
	return err
}
