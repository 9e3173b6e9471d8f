package rules

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"fantasy-league/internal/domain"
)

// Structural trade errors. A request failing one of these is malformed;
// it is never reported as a rejected trade.
var (
	ErrTeamMismatch      = errors.New("trade request does not target this team")
	ErrPlayerNotOnRoster = errors.New("outgoing player is not on the team roster")
	ErrPlayerUnavailable = errors.New("incoming player is unavailable")
	ErrSamePlayer        = errors.New("incoming and outgoing player are the same")
	ErrDuplicatePlayer   = errors.New("player appears twice on the roster")
)

const ReasonNoTradesRemaining = "no trades remaining"

// RejectedError is returned by ExecuteTrade when the trade no longer passes
// validation against the snapshot it was given.
type RejectedError struct {
	Code   domain.RejectionCode
	Reason string
}

func (e *RejectedError) Error() string {
	return "trade rejected: " + e.Reason
}

type TradeRequest struct {
	TeamID      string
	PlayerOutID string
	PlayerInID  string
}

// Engine applies the configured league rules.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

func (e *Engine) Config() Config {
	return e.cfg
}

// NewSeasonTeam builds a team for season starting with the full trade budget.
func (e *Engine) NewSeasonTeam(id, name, userID string, season int, players []domain.Player) (domain.Team, error) {
	seen := make(map[string]struct{}, len(players))
	for _, p := range players {
		if _, ok := seen[p.ID]; ok {
			return domain.Team{}, fmt.Errorf("%w: %s", ErrDuplicatePlayer, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	return domain.Team{
		ID:              id,
		Name:            name,
		UserID:          userID,
		Season:          season,
		TradesRemaining: e.cfg.TradeBudget,
		Players:         slices.Clone(players),
	}, nil
}

// ValidateTrade decides whether team may swap req.PlayerOutID for
// req.PlayerInID at now. The first failing check wins. Structural problems
// come back as errors; rule violations come back as an invalid
// TradeValidation with a reason.
func (e *Engine) ValidateTrade(team domain.Team, pool PlayerPool, req TradeRequest, now time.Time) (domain.TradeValidation, error) {
	if req.TeamID != "" && req.TeamID != team.ID {
		return domain.TradeValidation{}, fmt.Errorf("%w: request %s, snapshot %s", ErrTeamMismatch, req.TeamID, team.ID)
	}

	pos := team.PlayerIndex(req.PlayerOutID)
	if pos < 0 {
		return domain.TradeValidation{}, fmt.Errorf("%w: %s", ErrPlayerNotOnRoster, req.PlayerOutID)
	}
	out := team.Players[pos]

	if req.PlayerInID == req.PlayerOutID {
		return domain.TradeValidation{}, fmt.Errorf("%w: %s", ErrSamePlayer, req.PlayerInID)
	}

	in, ok := pool.FindByID(req.PlayerInID)
	if !ok {
		return domain.TradeValidation{}, fmt.Errorf("%w: %s is not in the pool", ErrPlayerUnavailable, req.PlayerInID)
	}
	if !in.IsAvailable {
		return domain.TradeValidation{}, fmt.Errorf("%w: %s", ErrPlayerUnavailable, req.PlayerInID)
	}

	if team.TradesRemaining <= 0 {
		return reject(domain.RejectNoTrades, ReasonNoTradesRemaining), nil
	}

	if reason, ok := e.trancheAllowed(out.Tranche, in.Tranche, now); !ok {
		return reject(domain.RejectTranchePhase, reason), nil
	}

	if in.Rank > e.cfg.RankCeiling {
		return reject(domain.RejectRankEligibility,
			fmt.Sprintf("incoming player must be in the top %d of their region (rank %d)", e.cfg.RankCeiling, in.Rank)), nil
	}

	next := team.Clone()
	next.TradesRemaining--
	traded := now
	next.LastTradeDate = &traded
	next.Players[pos] = in.Player

	return domain.TradeValidation{IsValid: true, NewTeamState: &next}, nil
}

// ExecuteTrade validates the request again against the snapshot given and
// returns the resulting team. Callers must pass freshly loaded state; no
// earlier validation result is trusted.
func (e *Engine) ExecuteTrade(team domain.Team, pool PlayerPool, req TradeRequest, now time.Time) (domain.Team, error) {
	v, err := e.ValidateTrade(team, pool, req, now)
	if err != nil {
		return domain.Team{}, err
	}
	if !v.IsValid {
		return domain.Team{}, &RejectedError{Code: v.Code, Reason: v.Reason}
	}
	return *v.NewTeamState, nil
}

// During the restricted month a team may only bring in a player from the
// same or a lower tier (numerically equal or higher tranche). The rest of the
// season the tranches must match exactly. Tranches without a numeric level
// (NEW) only ever match themselves.
func (e *Engine) trancheAllowed(out, in domain.Tranche, now time.Time) (string, bool) {
	month := e.cfg.RestrictedMonth

	if now.Month() == month {
		outLevel, outOK := out.Level()
		inLevel, inOK := in.Level()
		if outOK && inOK && inLevel >= outLevel {
			return "", true
		}
		if !outOK && !inOK && in == out {
			return "", true
		}
		return fmt.Sprintf("in %s, incoming player must be in the same or a lower tranche than the outgoing player (in %s, out %s)",
			month, in, out), false
	}

	if in != out {
		return fmt.Sprintf("outside %s, incoming player must be in the same tranche as the outgoing player (in %s, out %s)",
			month, in, out), false
	}
	return "", true
}

func reject(code domain.RejectionCode, reason string) domain.TradeValidation {
	return domain.TradeValidation{IsValid: false, Code: code, Reason: reason}
}
