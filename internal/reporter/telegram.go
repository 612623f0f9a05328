package reporter

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-seace-automation/internal/config"
	"go-seace-automation/internal/seace"
)

type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(cfg *config.Config) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	//turn this on in case of debug
	//bot.Debug = true

	return &TelegramReporter{
		bot:    bot,
		chatID: cfg.TelegramChatID,
	}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	_, err := t.bot.Send(msg)
	return err
}

func (t *TelegramReporter) SendResultado(res *seace.Resultado) error {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 <b>CUI %s</b> (%d)\n", res.CUI, res.Anio)
	if res.NumeroContrato != "" {
		fmt.Fprintf(&b, "📑 Contrato: %s\n", res.NumeroContrato)
	}
	if len(res.Cronograma) == 0 {
		b.WriteString("🗓 Sin cronograma disponible\n")
	}
	for _, etapa := range res.Cronograma {
		fmt.Fprintf(&b, "🗓 %s: %s → %s\n", etapa.Etapa, etapa.FechaInicio, etapa.FechaFin)
	}
	return t.SendMessage(b.String())
}

func (t *TelegramReporter) SendError(errReq error) error {
	text := fmt.Sprintf("⚠️ <b>SEACE Error</b>:\n%v", errReq)
	return t.SendMessage(text)
}
