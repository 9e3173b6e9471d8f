package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fantasy-league/internal/db"
	"fantasy-league/internal/domain"

	"github.com/rs/zerolog"
)

type TeamRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewTeamRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *TeamRepository {
	return &TeamRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// Create stores a new team with its roster in order. Rostered players are
// upserted along the way and marked unavailable in the pool.
func (r *TeamRepository) Create(ctx context.Context, team domain.Team) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := time.Now().UTC()

	err = qtx.InsertTeam(ctx, db.InsertTeamParams{
		ID:              team.ID,
		Name:            team.Name,
		UserID:          team.UserID,
		Season:          int64(team.Season),
		TradesRemaining: int64(team.TradesRemaining),
		LastTradeDate:   nullTime(team.LastTradeDate),
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return fmt.Errorf("failed to insert team %s: %w", team.ID, err)
	}

	for pos, p := range team.Players {
		if err := p.Validate(); err != nil {
			return err
		}
		if err := qtx.UpsertPlayer(ctx, upsertPlayerParams(p, now)); err != nil {
			return fmt.Errorf("failed to upsert player %s: %w", p.ID, err)
		}
		err := qtx.SetTeamPlayer(ctx, db.SetTeamPlayerParams{
			TeamID:   team.ID,
			Position: int64(pos),
			PlayerID: p.ID,
		})
		if err != nil {
			return fmt.Errorf("failed to roster player %s: %w", p.ID, err)
		}
		err = qtx.UpsertPoolAvailability(ctx, db.UpsertPoolAvailabilityParams{
			PlayerID:    p.ID,
			IsAvailable: false,
			TotalPoints: p.Points,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("failed to reserve pool player %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

func (r *TeamRepository) Get(ctx context.Context, teamID string) (*domain.Team, error) {
	row, err := r.queries.GetTeam(ctx, teamID)
	if err != nil {
		return nil, notFound(err, "team", teamID)
	}

	players, err := r.queries.ListTeamPlayers(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster for team %s: %w", teamID, err)
	}

	team := toDomainTeam(row)
	for _, tp := range players {
		team.Players = append(team.Players, toDomainPlayer(tp.Player))
	}
	return &team, nil
}

func (r *TeamRepository) ListBySeason(ctx context.Context, season int) ([]domain.Team, error) {
	rows, err := r.queries.ListTeamsBySeason(ctx, int64(season))
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for season %d: %w", season, err)
	}
	if len(rows) == 0 {
		return []domain.Team{}, nil
	}

	players, err := r.queries.ListSeasonTeamPlayers(ctx, int64(season))
	if err != nil {
		return nil, fmt.Errorf("failed to list rosters for season %d: %w", season, err)
	}

	rosters := make(map[string][]domain.Player, len(rows))
	for _, tp := range players {
		rosters[tp.TeamID] = append(rosters[tp.TeamID], toDomainPlayer(tp.Player))
	}

	teams := make([]domain.Team, len(rows))
	for i, row := range rows {
		teams[i] = toDomainTeam(row)
		teams[i].Players = rosters[row.ID]
	}

	r.logger.Debug().Int("season", season).Int("teams", len(teams)).Msg("season teams loaded")
	return teams, nil
}

func toDomainTeam(t db.Team) domain.Team {
	team := domain.Team{
		ID:              t.ID,
		Name:            t.Name,
		UserID:          t.UserID,
		Season:          int(t.Season),
		TradesRemaining: int(t.TradesRemaining),
		Version:         t.Version,
	}
	if t.LastTradeDate.Valid {
		d := t.LastTradeDate.Time
		team.LastTradeDate = &d
	}
	return team
}
