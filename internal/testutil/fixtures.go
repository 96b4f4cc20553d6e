package testutil

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/dom/hero-builds/internal/domain"
	"github.com/dom/hero-builds/internal/record"
	"github.com/google/uuid"
)

// Fixed seed so failures reproduce.
var faker = gofakeit.New(42)

// HeroBuilder creates test heroes with a builder pattern
type HeroBuilder struct {
	hero      domain.Hero
	overrides map[string]any
	removed   []string
}

// NewHeroBuilder creates a HeroBuilder with valid default values
func NewHeroBuilder() *HeroBuilder {
	return &HeroBuilder{
		hero: domain.Hero{
			ID:          fmt.Sprintf("test-hero-%s", uuid.New().String()[:8]),
			Name:        "Test Hero",
			Role:        domain.RoleCarry,
			Difficulty:  domain.DifficultyMedium,
			Moods:       []domain.Mood{domain.MoodAggressive, domain.MoodExperimental},
			Description: faker.Sentence(8),
			Strengths:   []string{faker.Sentence(4), faker.Sentence(4), faker.Sentence(4)},
			Weaknesses:  []string{faker.Sentence(4), faker.Sentence(4), faker.Sentence(4)},
		},
		overrides: make(map[string]any),
	}
}

// WithID sets the hero id
func (b *HeroBuilder) WithID(id string) *HeroBuilder {
	b.hero.ID = id
	return b
}

// WithName sets the display name
func (b *HeroBuilder) WithName(name string) *HeroBuilder {
	b.hero.Name = name
	return b
}

func (b *HeroBuilder) WithRole(role domain.Role) *HeroBuilder {
	b.hero.Role = role
	return b
}

func (b *HeroBuilder) WithMoods(moods ...domain.Mood) *HeroBuilder {
	b.hero.Moods = moods
	return b
}

func (b *HeroBuilder) WithStrengths(strengths ...string) *HeroBuilder {
	b.hero.Strengths = strengths
	return b
}

// Set overrides a raw field in the record form, e.g. to give it the wrong type
func (b *HeroBuilder) Set(field string, v any) *HeroBuilder {
	b.overrides[field] = v
	return b
}

// Without drops a field from the record form
func (b *HeroBuilder) Without(fields ...string) *HeroBuilder {
	b.removed = append(b.removed, fields...)
	return b
}

// Hero returns the typed hero
func (b *HeroBuilder) Hero() *domain.Hero {
	h := b.hero
	h.Moods = append([]domain.Mood(nil), b.hero.Moods...)
	h.Strengths = append([]string(nil), b.hero.Strengths...)
	h.Weaknesses = append([]string(nil), b.hero.Weaknesses...)
	return &h
}

// Record returns the hero as loosely typed input, the way it is read from a file
func (b *HeroBuilder) Record() record.Record {
	moods := make([]any, len(b.hero.Moods))
	for i, m := range b.hero.Moods {
		moods[i] = string(m)
	}

	rec := record.Record{
		"id":          b.hero.ID,
		"name":        b.hero.Name,
		"role":        string(b.hero.Role),
		"difficulty":  string(b.hero.Difficulty),
		"moods":       moods,
		"description": b.hero.Description,
		"strengths":   stringList(b.hero.Strengths),
		"weaknesses":  stringList(b.hero.Weaknesses),
	}
	return finish(rec, b.overrides, b.removed)
}

// BuildBuilder creates test builds with a builder pattern
type BuildBuilder struct {
	build     domain.Build
	overrides map[string]any
	removed   []string
}

// NewBuildBuilder creates a BuildBuilder with a valid four-item build
func NewBuildBuilder() *BuildBuilder {
	return &BuildBuilder{
		build: domain.Build{
			HeroID: "anti-mage",
			Mood:   domain.MoodAggressive,
			Items: []domain.Item{
				{ID: "power-treads", Name: "Power Treads", Cost: 1400, Phase: domain.PhaseEarly, Priority: domain.PriorityCore, Description: "Attack speed and stat switching"},
				{ID: "battle-fury", Name: "Battle Fury", Cost: 4100, Phase: domain.PhaseMid, Priority: domain.PriorityCore, Description: "Farming acceleration and cleave"},
				{ID: "manta-style", Name: "Manta Style", Cost: 4850, Phase: domain.PhaseMid, Priority: domain.PriorityCore, Description: "Illusions and dispel"},
				{ID: "butterfly", Name: "Butterfly", Cost: 5525, Phase: domain.PhaseLate, Priority: domain.PriorityLuxury, Description: "Evasion and attack speed"},
			},
			Playstyle: domain.Playstyle{
				Dos:   []string{faker.Sentence(5), faker.Sentence(5), faker.Sentence(5)},
				Donts: []string{faker.Sentence(5), faker.Sentence(5), faker.Sentence(5)},
				Tips:  []string{faker.Sentence(5), faker.Sentence(5), faker.Sentence(5)},
			},
			Gameplan: domain.Gameplan{
				Early: "Farm safely and rush Battle Fury before joining fights.",
				Mid:   "Use Manta Style to split push and take towers.",
				Late:  "Butterfly makes you the main damage dealer in fights.",
			},
		},
		overrides: make(map[string]any),
	}
}

func (b *BuildBuilder) WithHeroID(heroID string) *BuildBuilder {
	b.build.HeroID = heroID
	return b
}

func (b *BuildBuilder) WithMood(mood domain.Mood) *BuildBuilder {
	b.build.Mood = mood
	return b
}

// WithItems replaces the item list
func (b *BuildBuilder) WithItems(items ...domain.Item) *BuildBuilder {
	b.build.Items = items
	return b
}

// WithItemCount keeps the first n items, repeating the last one to grow the list
func (b *BuildBuilder) WithItemCount(n int) *BuildBuilder {
	items := make([]domain.Item, n)
	for i := range items {
		src := b.build.Items[len(b.build.Items)-1]
		if i < len(b.build.Items) {
			src = b.build.Items[i]
		}
		items[i] = src
	}
	b.build.Items = items
	return b
}

func (b *BuildBuilder) WithGameplan(gameplan domain.Gameplan) *BuildBuilder {
	b.build.Gameplan = gameplan
	return b
}

// Set overrides a raw field in the record form
func (b *BuildBuilder) Set(field string, v any) *BuildBuilder {
	b.overrides[field] = v
	return b
}

// Without drops a field from the record form
func (b *BuildBuilder) Without(fields ...string) *BuildBuilder {
	b.removed = append(b.removed, fields...)
	return b
}

// Build returns the typed build
func (b *BuildBuilder) Build() *domain.Build {
	build := b.build
	build.Items = append([]domain.Item(nil), b.build.Items...)
	build.Playstyle = domain.Playstyle{
		Dos:   append([]string(nil), b.build.Playstyle.Dos...),
		Donts: append([]string(nil), b.build.Playstyle.Donts...),
		Tips:  append([]string(nil), b.build.Playstyle.Tips...),
	}
	return &build
}

// Record returns the build as loosely typed input
func (b *BuildBuilder) Record() record.Record {
	items := make([]any, len(b.build.Items))
	for i, item := range b.build.Items {
		items[i] = ItemRecord(item)
	}

	rec := record.Record{
		"heroId": b.build.HeroID,
		"mood":   string(b.build.Mood),
		"items":  items,
		"playstyle": map[string]any{
			"dos":   stringList(b.build.Playstyle.Dos),
			"donts": stringList(b.build.Playstyle.Donts),
			"tips":  stringList(b.build.Playstyle.Tips),
		},
		"gameplan": map[string]any{
			"early": b.build.Gameplan.Early,
			"mid":   b.build.Gameplan.Mid,
			"late":  b.build.Gameplan.Late,
		},
	}
	return finish(rec, b.overrides, b.removed)
}

// ItemRecord converts an item to its loosely typed form
func ItemRecord(item domain.Item) map[string]any {
	return map[string]any{
		"id":          string(item.ID),
		"name":        item.Name,
		"cost":        item.Cost,
		"phase":       string(item.Phase),
		"priority":    string(item.Priority),
		"description": item.Description,
	}
}

func stringList(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func finish(rec record.Record, overrides map[string]any, removed []string) record.Record {
	for field, v := range overrides {
		rec[field] = v
	}
	for _, field := range removed {
		delete(rec, field)
	}
	return rec
}
