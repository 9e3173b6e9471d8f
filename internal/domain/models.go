package domain

import (
	"time"
)

type Player struct {
	ID              string
	Nickname        string
	Region          Region
	Tranche         Tranche
	Points          float64
	Rank            int // 1-based standing within Region
	IsWorldChampion bool
	IsActive        bool
	LastUpdate      time.Time
}

type PlayerStats struct {
	TotalPoints       float64
	TournamentsPlayed int
	AveragePlacement  float64
	WinRate           float64
}

type PoolEntry struct {
	Player
	IsAvailable bool
	Stats       PlayerStats
}

type Team struct {
	ID              string
	Name            string
	UserID          string
	Season          int
	TradesRemaining int
	LastTradeDate   *time.Time
	Players         []Player

	// store-managed, bumped on every write
	Version int64
}

// Clone returns a deep copy so derived team states never share a roster
// backing array with their source.
func (t Team) Clone() Team {
	c := t
	if t.LastTradeDate != nil {
		d := *t.LastTradeDate
		c.LastTradeDate = &d
	}
	c.Players = append([]Player(nil), t.Players...)
	return c
}

// PlayerIndex returns the roster position of the player, or -1.
func (t Team) PlayerIndex(playerID string) int {
	for i, p := range t.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

type LeaderboardEntry struct {
	Rank              int
	UserID            string
	TotalPoints       float64
	PointsByRegion    map[Region]float64
	RegionsWon        int
	FirstPlacePlayers int
	WorldChampions    int
	Team              *Team
}

type TradeValidation struct {
	IsValid      bool
	Reason       string
	Code         RejectionCode
	NewTeamState *Team
}

type RejectionCode string

const (
	RejectNone            RejectionCode = ""
	RejectNoTrades        RejectionCode = "no_trades_remaining"
	RejectTranchePhase    RejectionCode = "tranche_phase"
	RejectRankEligibility RejectionCode = "rank_eligibility"
)

type Trade struct {
	ID          string // nanoid
	TeamID      string
	PlayerOutID string
	PlayerInID  string
	ExecutedAt  time.Time
}
