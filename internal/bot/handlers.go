package bot

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/freesidejockey/blackjack-engine/internal/config"
	"github.com/freesidejockey/blackjack-engine/internal/game"
	"github.com/freesidejockey/blackjack-engine/internal/stats"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Handler struct {
	bot      *tgbotapi.BotAPI
	cfg      *config.Config
	profiles stats.Repository
	games    *game.Manager
}

func NewHandler(bot *tgbotapi.BotAPI, cfg *config.Config, repo stats.Repository) *Handler {
	return &Handler{
		bot:      bot,
		cfg:      cfg,
		profiles: repo,
		games:    game.NewManager(),
	}
}

// ============== HELPERS ==============

func (h *Handler) send(chatID int64, text string) {
	if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func (h *Handler) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := h.bot.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func (h *Handler) answerCallback(id, text string) {
	h.bot.Request(tgbotapi.NewCallback(id, text))
}

func displayName(from *tgbotapi.User) string {
	if from == nil {
		return "Player"
	}
	if from.FirstName != "" {
		return from.FirstName
	}
	if from.UserName != "" {
		return from.UserName
	}
	return "Player"
}

func (h *Handler) getProfile(chatID int64, name string) (*stats.Profile, error) {
	return h.profiles.GetOrCreate(chatID, name, h.cfg.StartBalance, h.cfg.DefaultBet)
}

func (h *Handler) saveProfile(p *stats.Profile) {
	if err := h.profiles.Save(p); err != nil {
		log.Printf("Failed to save profile: %v", err)
	}
}

// gameFor returns the chat's table, creating one seeded with the
// profile's balance when the chat has none yet. The table outlives
// rounds so the shoe keeps its state between them.
func (h *Handler) gameFor(chatID int64, p *stats.Profile) (*game.Game, error) {
	if g := h.games.Get(chatID); g != nil {
		return g, nil
	}

	g, err := game.New(game.Settings{
		PlayerName: p.Name,
		DeckCount:  h.cfg.DeckCount,
		Bankroll:   p.Balance,
	})
	if err != nil {
		return nil, err
	}
	g.ShuffleShoe()
	g.SetEventFunc(func(ev game.Event) {
		if ev.Kind == game.EventShoeReplaced {
			h.send(chatID, "🔀 Shuffling a fresh shoe...")
			time.Sleep(h.cfg.ShoeSwapDelay)
		}
	})

	h.games.Set(chatID, g)
	return g, nil
}

// ============== FORMATTING ==============

func outcomeLabel(o game.Outcome) string {
	switch o {
	case game.OutcomeWin:
		return "🎉 Win"
	case game.OutcomeLoss:
		return "😔 Loss"
	case game.OutcomePush:
		return "🤝 Push"
	case game.OutcomeBlackjack:
		return "🎰 BLACKJACK!"
	}
	return ""
}

func formatTable(snap game.Snapshot) string {
	var sb strings.Builder

	for i, hand := range snap.PlayerHands {
		label := "🎴 You:"
		if len(snap.PlayerHands) > 1 {
			label = fmt.Sprintf("🎴 Hand %d:", i+1)
			if snap.Phase == game.PhasePlayerTurn && i == snap.ActiveHandIndex {
				label = fmt.Sprintf("➡️ Hand %d:", i+1)
			}
		}
		sb.WriteString(fmt.Sprintf("%s [%s] (%d)", label, hand, hand.BestValue()))
		if hand.Outcome != "" {
			sb.WriteString(" " + outcomeLabel(hand.Outcome))
		}
		sb.WriteString("\n")
	}

	if snap.Phase == game.PhasePlayerTurn {
		sb.WriteString(fmt.Sprintf("🃏 Dealer: [%s, ?]", snap.DealerHand.Cards[0]))
	} else {
		sb.WriteString(fmt.Sprintf("🃏 Dealer: [%s] (%d)", snap.DealerHand, snap.DealerHand.BestValue()))
	}

	return sb.String()
}

// payout sums what the table returns to the player at settlement,
// stake included.
func payout(snap game.Snapshot) float64 {
	var total float64
	for _, hand := range snap.PlayerHands {
		switch hand.Outcome {
		case game.OutcomeWin:
			total += hand.Bet * 2
		case game.OutcomePush:
			total += hand.Bet
		case game.OutcomeBlackjack:
			total += hand.Bet * 2.5
		}
	}
	return total
}

// ============== COMMAND HANDLERS ==============

func (h *Handler) HandleStart(chatID int64, name string) {
	p, err := h.getProfile(chatID, name)
	if err != nil {
		h.send(chatID, "❌ Something went wrong. Try again later.")
		return
	}

	h.send(chatID, fmt.Sprintf(
		"🎰 Welcome to Blackjack!\n\n"+
			"💵 Balance: %.0f\n\n"+
			"/play <bet> — play a round\n"+
			"/balance — your stats\n"+
			"/top — leaderboard\n"+
			"/help — rules",
		p.Balance))
}

func (h *Handler) HandleHelp(chatID int64) {
	h.send(chatID, fmt.Sprintf(
		"📖 Blackjack rules:\n\n"+
			"🎯 Goal: get closer to 21 than the dealer without going over\n\n"+
			"📊 Card values:\n"+
			"• 2-10 — face value\n"+
			"• J, Q, K — 10\n"+
			"• A — 11 or 1\n\n"+
			"🎮 Actions:\n"+
			"• Hit — take a card\n"+
			"• Stand — end your turn\n"+
			"• Double — double the bet, take one card\n"+
			"• Split — split a pair into two hands\n\n"+
			"🎰 Blackjack pays x%.1f",
		h.cfg.BlackjackPays))
}

func (h *Handler) HandleBalance(chatID int64, name string) {
	p, err := h.getProfile(chatID, name)
	if err != nil {
		h.send(chatID, "❌ Something went wrong")
		return
	}

	h.send(chatID, fmt.Sprintf(
		"💰 Balance: %.0f\n\n"+
			"📊 Stats:\n"+
			"🎮 Rounds: %d\n"+
			"✅ Wins: %d (%.1f%%)\n"+
			"🎰 Blackjacks: %d\n"+
			"❌ Losses: %d\n"+
			"🤝 Pushes: %d",
		p.Balance, p.Games, p.Wins, p.WinRate(), p.Blackjacks, p.Losses, p.Pushes))
}

func (h *Handler) HandleTop(chatID int64) {
	leaders, err := h.profiles.TopByBalance(10)
	if err != nil {
		h.send(chatID, "❌ Something went wrong")
		return
	}

	if len(leaders) == 0 {
		h.send(chatID, "🏆 Nobody has played yet!")
		return
	}

	var sb strings.Builder
	sb.WriteString("🏆 Top players:\n\n")

	medals := []string{"🥇", "🥈", "🥉"}
	for i, l := range leaders {
		medal := fmt.Sprintf("%d.", i+1)
		if i < 3 {
			medal = medals[i]
		}
		sb.WriteString(fmt.Sprintf("%s %s — %.0f 💰 | %d rounds (%.0f%%)\n",
			medal, l.Name, l.Balance, l.Games, l.WinRate))
	}

	h.send(chatID, sb.String())
}

func (h *Handler) HandlePlay(chatID int64, name string, args []string) {
	p, err := h.getProfile(chatID, name)
	if err != nil {
		h.send(chatID, "❌ Something went wrong")
		return
	}

	bet := h.cfg.DefaultBet
	if len(args) > 0 {
		if b, err := strconv.ParseFloat(args[0], 64); err == nil && b > 0 {
			bet = b
		} else {
			h.send(chatID, fmt.Sprintf("❌ Bad bet. Example: /play %.0f", h.cfg.DefaultBet))
			return
		}
	}

	if bet < h.cfg.MinBet || bet > h.cfg.MaxBet {
		h.send(chatID, fmt.Sprintf("❌ Bets run from %.0f to %.0f", h.cfg.MinBet, h.cfg.MaxBet))
		return
	}

	if !p.CanAfford(bet) {
		h.send(chatID, fmt.Sprintf("❌ Not enough funds! Balance: %.0f", p.Balance))
		return
	}

	g, err := h.gameFor(chatID, p)
	if err != nil {
		h.send(chatID, "❌ Something went wrong")
		return
	}

	if g.Phase() == game.PhaseRoundComplete {
		g.NextRound()
	}
	if g.Phase() != game.PhaseWaitingForBet {
		h.send(chatID, "⏳ Finish the current round first")
		return
	}

	if err := g.AcceptBet(bet); err != nil {
		h.send(chatID, fmt.Sprintf("❌ Not enough funds! Balance: %.0f", p.Balance))
		return
	}

	p.LastBet = bet
	h.saveProfile(p)

	if err := g.Deal(); err != nil {
		h.send(chatID, "❌ Something went wrong")
		return
	}

	snap := g.Snapshot()
	if snap.Phase == game.PhaseRoundComplete {
		h.finishRound(chatID, snap, p)
		return
	}

	h.sendTurn(chatID, snap, fmt.Sprintf("💰 Bet: %.0f | Balance: %.0f\n\n", bet, snap.Bankroll))
}

func (h *Handler) sendTurn(chatID int64, snap game.Snapshot, prefix string) {
	opts := GameKeyboardOptions{}
	if hand, ok := snap.ActiveHand(); ok {
		canPay := snap.Bankroll >= hand.Bet
		opts.CanDouble = len(hand.Cards) == 2 && canPay
		opts.CanSplit = hand.CanSplit() && canPay
	}

	h.sendWithKeyboard(chatID, prefix+formatTable(snap), GameKeyboard(opts))
}

func (h *Handler) finishRound(chatID int64, snap game.Snapshot, p *stats.Profile) {
	p.RecordRound(snap)
	h.saveProfile(p)

	msg := formatTable(snap) + "\n"
	if amount := payout(snap); amount > 0 {
		msg += fmt.Sprintf("\n💰 Payout: +%.0f", amount)
	}
	msg += fmt.Sprintf("\n💵 Balance: %.0f", p.Balance)

	h.sendWithKeyboard(chatID, msg, EndGameKeyboard(p.LastBet))
}

// ============== CALLBACK HANDLERS ==============

func (h *Handler) HandleCallback(callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	data := callback.Data

	p, err := h.getProfile(chatID, displayName(callback.From))
	if err != nil {
		h.answerCallback(callback.ID, "Something went wrong")
		return
	}

	switch data {
	case CallbackPlayAgain:
		h.answerCallback(callback.ID, "")
		h.HandlePlay(chatID, p.Name, []string{strconv.FormatFloat(p.LastBet, 'f', -1, 64)})
		return

	case CallbackBalance:
		h.answerCallback(callback.ID, fmt.Sprintf("💵 %.0f", p.Balance))
		return
	}

	g := h.games.Get(chatID)
	if g == nil || g.Phase() != game.PhasePlayerTurn {
		h.answerCallback(callback.ID, "No round in progress")
		return
	}

	switch data {
	case CallbackHit:
		h.playAction(chatID, g, p, game.ActionHit)
	case CallbackStand:
		h.playAction(chatID, g, p, game.ActionStand)
	case CallbackDouble:
		h.playAction(chatID, g, p, game.ActionDouble)
	case CallbackSplit:
		h.playAction(chatID, g, p, game.ActionSplit)
	}

	h.answerCallback(callback.ID, "")
}

func (h *Handler) playAction(chatID int64, g *game.Game, p *stats.Profile, action game.Action) {
	if action == game.ActionDouble || action == game.ActionSplit {
		snap := g.Snapshot()
		if hand, ok := snap.ActiveHand(); ok && snap.Bankroll < hand.Bet {
			h.send(chatID, "❌ Not enough funds for that")
			return
		}
	}

	if err := g.PlayerAction(action, g.ActiveHandIndex()); err != nil {
		h.send(chatID, "❌ That move is not available")
		return
	}

	switch g.Phase() {
	case game.PhasePlayerTurn:
		h.sendTurn(chatID, g.Snapshot(), "")
	case game.PhaseDealerTurn:
		h.runDealer(chatID, g, p)
	case game.PhaseRoundComplete:
		h.finishRound(chatID, g.Snapshot(), p)
	}
}

func (h *Handler) runDealer(chatID int64, g *game.Game, p *stats.Profile) {
	for g.Phase() == game.PhaseDealerTurn {
		if err := g.AdvanceDealer(); err != nil {
			h.send(chatID, "❌ Something went wrong")
			return
		}
	}

	h.finishRound(chatID, g.Snapshot(), p)
}

// ============== MESSAGE HANDLER ==============

func (h *Handler) HandleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	name := displayName(msg.From)
	parts := strings.Fields(msg.Text)

	if len(parts) == 0 {
		return
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch {
	case cmd == "/start":
		h.HandleStart(chatID, name)
	case cmd == "/help":
		h.HandleHelp(chatID)
	case cmd == "/play":
		h.HandlePlay(chatID, name, args)
	case cmd == "/balance":
		h.HandleBalance(chatID, name)
	case cmd == "/top":
		h.HandleTop(chatID)
	}
}
