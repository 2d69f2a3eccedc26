package main

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/freesidejockey/blackjack-engine/internal/config"
	"github.com/freesidejockey/blackjack-engine/internal/game"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		pterm.Error.Printfln("Bad configuration: %v", err)
		return
	}

	handler := pterm.NewSlogHandler(&pterm.DefaultLogger)
	logger := slog.New(handler)

	pterm.Print("\n")
	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Black", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("jack", pterm.FgDarkGray.ToStyle()),
	).Srender()
	if err != nil {
		logger.Error(err.Error())
	}
	pterm.Print(title)

	name, _ := pterm.DefaultInteractiveTextInput.
		WithDefaultText("Enter your name").
		WithDefaultValue("Player").Show()
	pterm.Println()

	decksInput, _ := pterm.DefaultInteractiveTextInput.
		WithDefaultText("How many decks in the shoe (1-8)").
		WithDefaultValue(strconv.Itoa(cfg.DeckCount)).Show()
	decks, err := strconv.Atoi(decksInput)
	if err != nil {
		decks = cfg.DeckCount
	}

	g, err := game.New(game.Settings{
		PlayerName: name,
		DeckCount:  decks,
		Bankroll:   cfg.StartBalance,
	})
	if err != nil {
		logger.Error(err.Error())
		return
	}
	g.ShuffleShoe()
	g.SetEventFunc(func(ev game.Event) {
		switch ev.Kind {
		case game.EventShoeReplaced:
			spinner, _ := pterm.DefaultSpinner.Start("Shoe is running low, shuffling a fresh one ...")
			time.Sleep(cfg.ShoeSwapDelay)
			spinner.Success("Fresh shoe in play")
		case game.EventDealerDraw:
			pterm.Info.Printfln("Dealer draws %s", ev.Detail)
			time.Sleep(400 * time.Millisecond)
		}
	})

	pterm.Println()
	pterm.Info.Printfln("Welcome, %s! Bankroll: %.0f", pterm.LightCyan(name), cfg.StartBalance)

	for playRound(g, cfg, logger) {
	}

	snap := g.Snapshot()
	pterm.Println()
	pterm.Info.Printfln("Thanks for playing, %s. You leave with %.0f", pterm.LightCyan(snap.PlayerName), snap.Bankroll)
}

// playRound walks one bet through deal, player turn, dealer turn and
// settlement. It reports whether the player wants another round.
func playRound(g *game.Game, cfg *config.Config, logger *slog.Logger) bool {
	snap := g.Snapshot()
	if snap.Bankroll < cfg.MinBet {
		pterm.Error.Printfln("Bankroll %.0f cannot cover the minimum bet %.0f", snap.Bankroll, cfg.MinBet)
		return false
	}

	bet := askBet(cfg, snap.Bankroll)
	if bet == 0 {
		return false
	}

	if err := g.AcceptBet(bet); err != nil {
		pterm.Error.Printfln("Bet rejected: %v", err)
		return true
	}
	if err := g.Deal(); err != nil {
		logger.Error(err.Error())
		return false
	}

	for g.Phase() == game.PhasePlayerTurn {
		playTurn(g)
	}

	for g.Phase() == game.PhaseDealerTurn {
		if err := g.AdvanceDealer(); err != nil {
			logger.Error(err.Error())
			return false
		}
	}

	snap = g.Snapshot()
	renderTable(snap)
	renderOutcomes(snap)

	if err := g.NextRound(); err != nil {
		logger.Error(err.Error())
		return false
	}

	again, _ := pterm.DefaultInteractiveConfirm.
		WithDefaultText("Play another round?").
		WithDefaultValue(true).Show()
	return again
}

func askBet(cfg *config.Config, bankroll float64) float64 {
	for {
		input, _ := pterm.DefaultInteractiveTextInput.
			WithDefaultText(pterm.Sprintf("Your bet (%.0f-%.0f, 0 to leave)", cfg.MinBet, cfg.MaxBet)).
			WithDefaultValue(strconv.FormatFloat(cfg.DefaultBet, 'f', -1, 64)).Show()

		bet, err := strconv.ParseFloat(input, 64)
		if err != nil || bet < 0 {
			pterm.Error.Println("Enter a number")
			continue
		}
		if bet == 0 {
			return 0
		}
		if bet < cfg.MinBet || bet > cfg.MaxBet {
			pterm.Error.Printfln("Bets run from %.0f to %.0f", cfg.MinBet, cfg.MaxBet)
			continue
		}
		if bet > bankroll {
			pterm.Error.Printfln("Bankroll is only %.0f", bankroll)
			continue
		}
		return bet
	}
}

func playTurn(g *game.Game) {
	snap := g.Snapshot()
	renderTable(snap)

	hand, ok := snap.ActiveHand()
	if !ok {
		return
	}

	options := []string{"Hit", "Stand"}
	canPay := snap.Bankroll >= hand.Bet
	if len(hand.Cards) == 2 && canPay {
		options = append(options, "Double")
	}
	if hand.CanSplit() && canPay {
		options = append(options, "Split")
	}

	choice, _ := pterm.DefaultInteractiveSelect.
		WithDefaultText("Select your next action").
		WithOptions(options).Show()

	action, err := game.ParseAction(choice)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	if err := g.PlayerAction(action, snap.ActiveHandIndex); err != nil {
		pterm.Error.Printfln("Invalid action: %s", err.Error())
	}
}
