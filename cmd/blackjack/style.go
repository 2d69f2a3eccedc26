package main

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/freesidejockey/blackjack-engine/internal/game"
)

func handLine(hand *game.Hand) string {
	return fmt.Sprintf("%s  (%d)", hand, hand.BestValue())
}

// renderTable draws the dealer box above the player's hand boxes. The
// dealer's second card stays hidden while the player still acts.
func renderTable(snap game.Snapshot) {
	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)

	dealer := handLine(snap.DealerHand)
	if snap.Phase == game.PhasePlayerTurn {
		dealer = pterm.Sprintf("%s ?", snap.DealerHand.Cards[0])
	}
	dealerPanel := pterm.Panel{Data: pbox.WithTitle(pterm.LightRed("|DEALER|")).WithTitleTopCenter().Sprintf(dealer)}

	var playerPanels []pterm.Panel
	for i, hand := range snap.PlayerHands {
		title := pterm.LightCyan("|" + snap.PlayerName + "|")
		if len(snap.PlayerHands) > 1 {
			title = pterm.LightCyan(fmt.Sprintf("|HAND %d|", i+1))
			if snap.Phase == game.PhasePlayerTurn && i == snap.ActiveHandIndex {
				title = pterm.LightGreen(fmt.Sprintf("|HAND %d <|", i+1))
			}
		}
		body := pterm.Sprintf("%s\nBet: %.0f", handLine(hand), hand.Bet)
		playerPanels = append(playerPanels, pterm.Panel{Data: pbox.WithTitle(title).WithTitleTopCenter().Sprintf(body)})
	}

	pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		{dealerPanel},
		playerPanels,
	}).Render()

	pterm.Info.Printfln("Bankroll: %.0f", snap.Bankroll)
}

func renderOutcomes(snap game.Snapshot) {
	for i, hand := range snap.PlayerHands {
		label := outcomeText(hand.Outcome)
		if len(snap.PlayerHands) > 1 {
			label = pterm.Sprintf("Hand %d: %s", i+1, label)
		}
		pterm.Println(label)
	}
}

func outcomeText(o game.Outcome) string {
	switch o {
	case game.OutcomeWin:
		return pterm.LightGreen("You win!")
	case game.OutcomeBlackjack:
		return pterm.LightGreen("Blackjack! Paid 3:2")
	case game.OutcomeLoss:
		return pterm.LightRed("Dealer takes it")
	case game.OutcomePush:
		return pterm.LightYellow("Push, bet returned")
	}
	return "Not settled"
}
