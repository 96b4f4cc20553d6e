package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Hero struct {
	ID          string     `json:"id"`   // e.g., "anti-mage"
	Name        string     `json:"name"` // Display name
	Role        Role       `json:"role"`
	Difficulty  Difficulty `json:"difficulty"`
	Moods       []Mood     `json:"moods"`
	Description string     `json:"description"`
	Strengths   []string   `json:"strengths"`
	Weaknesses  []string   `json:"weaknesses"`
}

type Build struct {
	ID        int64     `json:"-"` // Generated by the store
	HeroID    string    `json:"heroId"`
	Mood      Mood      `json:"mood"`
	Items     []Item    `json:"items"`
	Playstyle Playstyle `json:"playstyle"`
	Gameplan  Gameplan  `json:"gameplan"`
}

type Item struct {
	ID          ItemRef  `json:"id"`
	Name        string   `json:"name"`
	Cost        int      `json:"cost"`
	Phase       Phase    `json:"phase"`
	Priority    Priority `json:"priority"`
	Description string   `json:"description"`
}

type Playstyle struct {
	Dos   []string `json:"dos"`
	Donts []string `json:"donts"`
	Tips  []string `json:"tips"`
}

type Gameplan struct {
	Early string `json:"early"`
	Mid   string `json:"mid"`
	Late  string `json:"late"`
}

// ItemRef identifies an item in a build file. Source files use both slugs
// ("power-treads") and numeric ids, so either JSON form is accepted.
type ItemRef string

func (r *ItemRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = ItemRef(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("item id must be a string or number: %w", err)
	}
	*r = ItemRef(n.String())
	return nil
}

func (r ItemRef) String() string {
	return string(r)
}
