package db

import (
	"database/sql"
	"time"
)

type Player struct {
	ID              string
	Nickname        string
	Region          string
	Tranche         string
	Points          float64
	Rank            int64
	IsWorldChampion bool
	IsActive        bool
	LastUpdate      time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type PoolEntry struct {
	Player
	IsAvailable       bool
	TotalPoints       float64
	TournamentsPlayed int64
	AveragePlacement  float64
	WinRate           float64
}

type Team struct {
	ID              string
	Name            string
	UserID          string
	Season          int64
	TradesRemaining int64
	LastTradeDate   sql.NullTime
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type TeamPlayer struct {
	TeamID   string
	Position int64
	Player
}

type Trade struct {
	ID          string
	TeamID      string
	PlayerOutID string
	PlayerInID  string
	ExecutedAt  time.Time
}

type LeaderboardSnapshot struct {
	ID        string
	Season    int64
	Region    string
	CreatedAt time.Time
}

type LeaderboardEntry struct {
	SnapshotID        string
	Rank              int64
	TeamID            string
	UserID            string
	TotalPoints       float64
	PointsByRegion    string
	RegionsWon        int64
	FirstPlacePlayers int64
	WorldChampions    int64
}
