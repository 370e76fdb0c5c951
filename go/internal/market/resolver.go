package market

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/trebol/go/internal/apperrors"
	"github.com/mcdev12/trebol/go/internal/models"
)

// Resolve settles the expired listing of leagueID on s. For each listed
// player the best bid wins; a winner who can no longer pay is skipped and
// the player stays unowned. Every bid of the league is deleted afterwards.
// Any storage error aborts the whole resolution.
func Resolve(ctx context.Context, s *Stores, leagueID uuid.UUID) (*ResolutionReport, error) {
	listing, err := s.Market.Listing(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	winners, err := s.Market.WinningBids(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	report := &ResolutionReport{LeagueID: leagueID}
	for _, player := range listing {
		bid, ok := winners[player.ID]
		if !ok {
			report.Unsold++
			continue
		}

		settled, skip, err := settle(ctx, s, player, bid)
		if err != nil {
			return nil, fmt.Errorf("failed to settle player %s: %w", player.ID, err)
		}
		if skip != nil {
			log.Info().
				Str("league_id", leagueID.String()).
				Str("player_id", player.ID.String()).
				Str("user_id", bid.UserID.String()).
				Str("amount", bid.Amount.String()).
				Str("reason", string(skip.Reason)).
				Msg("winning bid skipped")
			report.Skipped = append(report.Skipped, *skip)
			continue
		}
		report.Settled = append(report.Settled, *settled)
	}

	if err := s.Market.DeleteBids(ctx, leagueID); err != nil {
		return nil, err
	}
	return report, nil
}

func settle(ctx context.Context, s *Stores, player models.Player, bid models.Bid) (*Settlement, *Skip, error) {
	if _, err := s.Ledger.Debit(ctx, bid.LeagueID, bid.UserID, bid.Amount); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			return nil, &Skip{PlayerID: player.ID, UserID: bid.UserID, Amount: bid.Amount, Reason: SkipInsufficientFunds}, nil
		case apperrors.Is(err, apperrors.KindNotFound):
			return nil, &Skip{PlayerID: player.ID, UserID: bid.UserID, Amount: bid.Amount, Reason: SkipNotMember}, nil
		default:
			return nil, nil, err
		}
	}

	if _, err := s.Ledger.TransferOwnership(ctx, bid.LeagueID, player.ID, nil, bid.UserID); err != nil {
		return nil, nil, err
	}

	buyer := bid.UserID
	transfer, err := s.Ledger.AppendHistory(ctx, models.Transfer{
		LeagueID:   bid.LeagueID,
		PlayerID:   player.ID,
		PlayerName: player.Name,
		BuyerID:    &buyer,
		Amount:     bid.Amount,
		Kind:       models.TransferKindMarketPurchase,
	})
	if err != nil {
		return nil, nil, err
	}

	if err := s.Events.RecordTransfer(ctx, transfer); err != nil {
		return nil, nil, err
	}

	return &Settlement{
		PlayerID:   player.ID,
		UserID:     bid.UserID,
		Amount:     bid.Amount,
		TransferID: transfer.ID,
	}, nil, nil
}
