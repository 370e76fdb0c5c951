package roster

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/mcdev12/trebol/go/internal/apperrors"
	"github.com/mcdev12/trebol/go/internal/events"
	"github.com/mcdev12/trebol/go/internal/models"
)

// RosterReader is what the app reads outside of transactions
type RosterReader interface {
	ListByMember(ctx context.Context, leagueID, userID uuid.UUID) ([]models.RosterEntry, error)
	ListForSale(ctx context.Context, leagueID uuid.UUID) ([]models.RosterEntry, error)
}

// App handles roster business logic
type App struct {
	reader RosterReader
	tx     Transactor
	clock  clockwork.Clock
}

// NewApp creates a new roster App
func NewApp(reader RosterReader, tx Transactor, clock clockwork.Clock) *App {
	return &App{
		reader: reader,
		tx:     tx,
		clock:  clock,
	}
}

// Roster returns the players userID owns in leagueID
func (a *App) Roster(ctx context.Context, leagueID, userID uuid.UUID) ([]models.RosterEntry, error) {
	entries, err := a.reader.ListByMember(ctx, leagueID, userID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.RosterEntry{}
	}
	return entries, nil
}

// ForSale returns the players of leagueID other members can buy directly
func (a *App) ForSale(ctx context.Context, leagueID uuid.UUID) ([]models.RosterEntry, error) {
	entries, err := a.reader.ListForSale(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.RosterEntry{}
	}
	return entries, nil
}

// ListForSale flags a player userID owns as buyable at price
func (a *App) ListForSale(ctx context.Context, userID, leagueID, playerID uuid.UUID, price decimal.Decimal) error {
	if !price.IsPositive() {
		return apperrors.Validation("price must be positive")
	}
	if !price.Equal(price.Round(2)) {
		return apperrors.Validation("price must have at most two decimals")
	}

	err := a.tx.WithinTx(ctx, func(s *Stores) error {
		entry, err := a.ownedEntry(ctx, s, userID, leagueID, playerID)
		if err != nil {
			return err
		}
		if entry.ForSale {
			return apperrors.ErrAlreadyListed
		}

		if err := s.Roster.SetForSale(ctx, leagueID, playerID, price); err != nil {
			return err
		}
		return s.Events.Record(ctx, leagueID, events.EventTypePlayerListed, events.PlayerListedPayload{
			LeagueID:    leagueID.String(),
			PlayerID:    playerID.String(),
			OwnerID:     userID.String(),
			AskingPrice: price.StringFixed(2),
			At:          a.clock.Now().UTC(),
		})
	})
	if err != nil {
		return fmt.Errorf("failed to list player for sale: %w", err)
	}

	log.Info().
		Str("league_id", leagueID.String()).
		Str("player_id", playerID.String()).
		Str("price", price.StringFixed(2)).
		Msg("player listed for sale")
	return nil
}

// Unlist clears the for sale flag of a player userID owns
func (a *App) Unlist(ctx context.Context, userID, leagueID, playerID uuid.UUID) error {
	err := a.tx.WithinTx(ctx, func(s *Stores) error {
		entry, err := a.ownedEntry(ctx, s, userID, leagueID, playerID)
		if err != nil {
			return err
		}
		if !entry.ForSale {
			return apperrors.ErrNotListed
		}

		if err := s.Roster.ClearForSale(ctx, leagueID, playerID); err != nil {
			return err
		}
		return s.Events.Record(ctx, leagueID, events.EventTypePlayerUnlisted, events.PlayerListedPayload{
			LeagueID: leagueID.String(),
			PlayerID: playerID.String(),
			OwnerID:  userID.String(),
			At:       a.clock.Now().UTC(),
		})
	})
	if err != nil {
		return fmt.Errorf("failed to unlist player: %w", err)
	}
	return nil
}

// QuickSale sells a player userID owns back to the system at its catalog
// base price. The player returns to the unowned pool.
func (a *App) QuickSale(ctx context.Context, userID, leagueID, playerID uuid.UUID) (*models.Transfer, error) {
	var transfer *models.Transfer
	err := a.tx.WithinTx(ctx, func(s *Stores) error {
		if _, err := a.ownedEntry(ctx, s, userID, leagueID, playerID); err != nil {
			return err
		}

		price, err := s.Roster.BasePrice(ctx, playerID)
		if err != nil {
			return err
		}
		if err := s.Ledger.ReleaseOwnership(ctx, leagueID, playerID, userID); err != nil {
			return err
		}
		if _, err := s.Ledger.Credit(ctx, leagueID, userID, price); err != nil {
			return err
		}

		seller := userID
		transfer, err = s.Ledger.AppendHistory(ctx, models.Transfer{
			LeagueID: leagueID,
			PlayerID: playerID,
			SellerID: &seller,
			Amount:   price,
			Kind:     models.TransferKindQuickSale,
		})
		if err != nil {
			return err
		}
		return s.Events.RecordTransfer(ctx, transfer)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to quick sell player: %w", err)
	}

	log.Info().
		Str("league_id", leagueID.String()).
		Str("player_id", playerID.String()).
		Str("user_id", userID.String()).
		Str("amount", transfer.Amount.String()).
		Msg("player quick sold")
	return transfer, nil
}

// ownedEntry locks the roster entry of playerID, then the membership of
// userID, the same order direct purchases use, and checks ownership.
func (a *App) ownedEntry(ctx context.Context, s *Stores, userID, leagueID, playerID uuid.UUID) (*models.RosterEntry, error) {
	entry, err := s.Ledger.Owner(ctx, leagueID, playerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Ledger.LockMembership(ctx, leagueID, userID); err != nil {
		return nil, err
	}
	if entry == nil || entry.UserID != userID {
		return nil, apperrors.ErrNotOwned
	}
	return entry, nil
}
