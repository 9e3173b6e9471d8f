package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownRegion  = errors.New("unknown region")
	ErrUnknownTranche = errors.New("unknown tranche")
	ErrInvalidPlayer  = errors.New("invalid player")
)

type Region string

const (
	RegionEU   Region = "EU"
	RegionNAW  Region = "NAW"
	RegionBR   Region = "BR"
	RegionASIA Region = "ASIA"
	RegionOCE  Region = "OCE"
	RegionNAC  Region = "NAC"
	RegionME   Region = "ME"
)

// Regions lists every competitive region in display order.
var Regions = []Region{RegionEU, RegionNAW, RegionBR, RegionASIA, RegionOCE, RegionNAC, RegionME}

func (r Region) Valid() bool {
	for _, known := range Regions {
		if r == known {
			return true
		}
	}
	return false
}

func ParseRegion(s string) (Region, error) {
	r := Region(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRegion, s)
	}
	return r, nil
}

// Tranche is a tier label: "1" (strongest) through "7", or TrancheNew for
// players who changed region mid-season.
type Tranche string

const (
	TrancheNew Tranche = "NEW"

	MinTrancheLevel = 1
	MaxTrancheLevel = 7
)

// Level returns the numeric tier. ok is false for TrancheNew and malformed labels.
func (t Tranche) Level() (level int, ok bool) {
	n, err := strconv.Atoi(string(t))
	if err != nil || n < MinTrancheLevel || n > MaxTrancheLevel {
		return 0, false
	}
	return n, true
}

func (t Tranche) Valid() bool {
	if t == TrancheNew {
		return true
	}
	_, ok := t.Level()
	return ok
}

func ParseTranche(s string) (Tranche, error) {
	t := Tranche(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTranche, s)
	}
	return t, nil
}

func TrancheOf(level int) Tranche {
	return Tranche(strconv.Itoa(level))
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidPlayer)
	}
	if !p.Region.Valid() {
		return fmt.Errorf("%w: player %s: %w", ErrInvalidPlayer, p.ID, ErrUnknownRegion)
	}
	if !p.Tranche.Valid() {
		return fmt.Errorf("%w: player %s: %w", ErrInvalidPlayer, p.ID, ErrUnknownTranche)
	}
	if p.Rank < 1 {
		return fmt.Errorf("%w: player %s: rank must be >= 1, got %d", ErrInvalidPlayer, p.ID, p.Rank)
	}
	if p.Points < 0 {
		return fmt.Errorf("%w: player %s: points must be >= 0, got %v", ErrInvalidPlayer, p.ID, p.Points)
	}
	return nil
}
