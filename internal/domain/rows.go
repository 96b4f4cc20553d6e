package domain

import "time"

// Row models mirror the hosted schema. The catalog service writes through the
// table-level store, so these exist to create the schema in tests and to
// document the column layout.

type HeroRow struct {
	ID          string    `gorm:"primaryKey"` // e.g., "anti-mage"
	Name        string    `gorm:"not null"`
	Role        string    `gorm:"not null"`
	Difficulty  string    `gorm:"not null"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (HeroRow) TableName() string { return "heroes" }

type HeroMoodRow struct {
	HeroID string `gorm:"primaryKey"`
	Mood   string `gorm:"primaryKey"`
}

func (HeroMoodRow) TableName() string { return "hero_moods" }

type HeroStrengthRow struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	HeroID     string `gorm:"not null;index"`
	Strength   string `gorm:"not null"`
	OrderIndex int    `gorm:"not null;default:0"`
}

func (HeroStrengthRow) TableName() string { return "hero_strengths" }

type HeroWeaknessRow struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	HeroID     string `gorm:"not null;index"`
	Weakness   string `gorm:"not null"`
	OrderIndex int    `gorm:"not null;default:0"`
}

func (HeroWeaknessRow) TableName() string { return "hero_weaknesses" }

type BuildRow struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	HeroID    string `gorm:"not null;uniqueIndex:idx_builds_hero_mood"`
	Mood      string `gorm:"not null;uniqueIndex:idx_builds_hero_mood"`
	EarlyGame string
	MidGame   string
	LateGame  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (BuildRow) TableName() string { return "builds" }

type ItemRow struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	BuildID     int64  `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	Cost        int    `gorm:"not null"`
	Phase       string `gorm:"not null"`
	Priority    string `gorm:"not null"`
	Description string
	OrderIndex  int `gorm:"not null;default:0"`
}

func (ItemRow) TableName() string { return "items" }

type PlaystyleDoRow struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	BuildID    int64  `gorm:"not null;index"`
	DoItem     string `gorm:"not null"`
	OrderIndex int    `gorm:"not null;default:0"`
}

func (PlaystyleDoRow) TableName() string { return "playstyle_dos" }

type PlaystyleDontRow struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	BuildID    int64  `gorm:"not null;index"`
	DontItem   string `gorm:"not null"`
	OrderIndex int    `gorm:"not null;default:0"`
}

func (PlaystyleDontRow) TableName() string { return "playstyle_donts" }

type PlaystyleTipRow struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	BuildID    int64  `gorm:"not null;index"`
	Tip        string `gorm:"not null"`
	OrderIndex int    `gorm:"not null;default:0"`
}

func (PlaystyleTipRow) TableName() string { return "playstyle_tips" }

// AllRowModels lists every row model, parents before children.
func AllRowModels() []interface{} {
	return []interface{}{
		&HeroRow{},
		&HeroMoodRow{},
		&HeroStrengthRow{},
		&HeroWeaknessRow{},
		&BuildRow{},
		&ItemRow{},
		&PlaystyleDoRow{},
		&PlaystyleDontRow{},
		&PlaystyleTipRow{},
	}
}
