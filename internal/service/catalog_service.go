package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dom/hero-builds/internal/domain"
	"github.com/dom/hero-builds/internal/record"
	"github.com/dom/hero-builds/internal/repository"
	"github.com/dom/hero-builds/internal/validate"
	"github.com/rs/zerolog/log"
)

var (
	heroConflict     = []string{repository.ColID}
	heroMoodConflict = []string{repository.ColHeroID, repository.ColMood}
	buildConflict    = []string{repository.ColHeroID, repository.ColMood}
)

type CatalogService struct {
	store repository.TableStore
}

func NewCatalogService(store repository.TableStore) *CatalogService {
	return &CatalogService{store: store}
}

// AddHero upserts the hero row, then its moods, strengths and weaknesses.
// Only a failure on the hero row itself is returned; child rows that fail are
// logged and skipped.
func (s *CatalogService) AddHero(ctx context.Context, hero *domain.Hero) error {
	if hero.ID == "" {
		return fmt.Errorf("%w: empty id", domain.ErrInvalidHero)
	}

	_, err := s.store.Upsert(ctx, repository.TableHeroes, repository.Row{
		"id":          hero.ID,
		"name":        hero.Name,
		"role":        string(hero.Role),
		"difficulty":  string(hero.Difficulty),
		"description": hero.Description,
	}, heroConflict)
	if err != nil {
		return fmt.Errorf("upsert hero %s: %w", hero.ID, err)
	}

	for _, mood := range hero.Moods {
		row := repository.Row{repository.ColHeroID: hero.ID, repository.ColMood: string(mood)}
		if _, err := s.store.Upsert(ctx, repository.TableHeroMoods, row, heroMoodConflict); err != nil {
			log.Warn().Err(err).Str("hero_id", hero.ID).Str("mood", string(mood)).Msg("failed to add hero mood")
		}
	}

	s.insertList(ctx, repository.TableHeroStrengths, repository.ColHeroID, hero.ID, "strength", hero.Strengths)
	s.insertList(ctx, repository.TableHeroWeaknesses, repository.ColHeroID, hero.ID, "weakness", hero.Weaknesses)

	log.Info().Str("hero_id", hero.ID).Msg("hero stored")
	return nil
}

// AddBuild upserts the build keyed by hero and mood, then inserts its items
// and playstyle entries under the build's generated id. The hero must exist.
func (s *CatalogService) AddBuild(ctx context.Context, build *domain.Build) error {
	exists, err := s.HeroExists(ctx, build.HeroID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", domain.ErrHeroNotFound, build.HeroID)
	}

	stored, err := s.store.Upsert(ctx, repository.TableBuilds, repository.Row{
		repository.ColHeroID: build.HeroID,
		repository.ColMood:   string(build.Mood),
		"early_game":         build.Gameplan.Early,
		"mid_game":           build.Gameplan.Mid,
		"late_game":          build.Gameplan.Late,
	}, buildConflict)
	if err != nil {
		return fmt.Errorf("upsert build %s (%s): %w", build.HeroID, build.Mood, err)
	}

	buildID, ok := stored.Int64(repository.ColID)
	if !ok {
		return fmt.Errorf("upsert build %s (%s): no id returned", build.HeroID, build.Mood)
	}
	build.ID = buildID

	for i, item := range build.Items {
		_, err := s.store.Upsert(ctx, repository.TableItems, repository.Row{
			repository.ColBuildID:    buildID,
			"name":                   item.Name,
			"cost":                   item.Cost,
			"phase":                  string(item.Phase),
			"priority":               string(item.Priority),
			"description":            item.Description,
			repository.ColOrderIndex: i,
		}, nil)
		if err != nil {
			log.Warn().Err(err).Int64("build_id", buildID).Str("item", item.Name).Msg("failed to add item")
		}
	}

	s.insertList(ctx, repository.TablePlaystyleDos, repository.ColBuildID, buildID, "do_item", build.Playstyle.Dos)
	s.insertList(ctx, repository.TablePlaystyleDonts, repository.ColBuildID, buildID, "dont_item", build.Playstyle.Donts)
	s.insertList(ctx, repository.TablePlaystyleTips, repository.ColBuildID, buildID, "tip", build.Playstyle.Tips)

	log.Info().Str("hero_id", build.HeroID).Str("mood", string(build.Mood)).Int64("build_id", buildID).Msg("build stored")
	return nil
}

func (s *CatalogService) insertList(ctx context.Context, table, parentCol string, parentID interface{}, valueCol string, values []string) {
	for i, v := range values {
		row := repository.Row{parentCol: parentID, valueCol: v, repository.ColOrderIndex: i}
		if _, err := s.store.Upsert(ctx, table, row, nil); err != nil {
			log.Warn().Err(err).Str("table", table).Interface("parent", parentID).Int("order_index", i).Msg("failed to add row")
		}
	}
}

// ImportOutcome is the result for one record of a bulk import.
type ImportOutcome struct {
	Label    string
	Problems []string // validation messages
	Err      error
}

func (o ImportOutcome) OK() bool {
	return len(o.Problems) == 0 && o.Err == nil
}

type ImportResult struct {
	Outcomes  []ImportOutcome
	Succeeded int
	Failed    int
}

func (r *ImportResult) add(o ImportOutcome) {
	r.Outcomes = append(r.Outcomes, o)
	if o.OK() {
		r.Succeeded++
	} else {
		r.Failed++
	}
}

// ImportHeroes validates and stores each record in turn. A bad record never
// stops the ones after it.
func (s *CatalogService) ImportHeroes(ctx context.Context, recs []record.Record) ImportResult {
	var result ImportResult
	for _, rec := range recs {
		result.add(s.importHero(ctx, rec))
	}
	return result
}

func (s *CatalogService) importHero(ctx context.Context, rec record.Record) ImportOutcome {
	outcome := ImportOutcome{Label: heroLabel(rec)}

	if problems := validate.Hero(rec); len(problems) > 0 {
		outcome.Problems = problems
		return outcome
	}

	var hero domain.Hero
	if err := record.Decode(rec, &hero); err != nil {
		outcome.Err = fmt.Errorf("%w: %v", domain.ErrInvalidHero, err)
		return outcome
	}

	if err := s.AddHero(ctx, &hero); err != nil {
		log.Error().Err(err).Str("hero_id", hero.ID).Msg("failed to add hero")
		outcome.Err = err
	}
	return outcome
}

// ImportBuilds validates and stores each build record in turn.
func (s *CatalogService) ImportBuilds(ctx context.Context, recs []record.Record) ImportResult {
	var result ImportResult
	for _, rec := range recs {
		result.add(s.importBuild(ctx, rec))
	}
	return result
}

func (s *CatalogService) importBuild(ctx context.Context, rec record.Record) ImportOutcome {
	outcome := ImportOutcome{Label: buildLabel(rec)}

	if problems := validate.Build(rec); len(problems) > 0 {
		outcome.Problems = problems
		return outcome
	}

	var build domain.Build
	if err := record.Decode(rec, &build); err != nil {
		outcome.Err = fmt.Errorf("%w: %v", domain.ErrInvalidBuild, err)
		return outcome
	}

	if err := s.AddBuild(ctx, &build); err != nil {
		if !errors.Is(err, domain.ErrHeroNotFound) {
			log.Error().Err(err).Str("hero_id", build.HeroID).Str("mood", string(build.Mood)).Msg("failed to add build")
		}
		outcome.Err = err
	}
	return outcome
}

func heroLabel(rec record.Record) string {
	if name, ok := rec.Field("name").Text(); ok && name != "" {
		return name
	}
	if id, ok := rec.Field("id").Text(); ok && id != "" {
		return id
	}
	return "unknown"
}

func buildLabel(rec record.Record) string {
	heroID, ok := rec.Field("heroId").Text()
	if !ok || heroID == "" {
		heroID = "unknown"
	}
	if mood, ok := rec.Field("mood").Text(); ok && mood != "" {
		return fmt.Sprintf("%s (%s)", heroID, mood)
	}
	return heroID
}

// HeroExists reports whether a hero row with the id is stored.
func (s *CatalogService) HeroExists(ctx context.Context, heroID string) (bool, error) {
	rows, err := s.store.Select(ctx, repository.TableHeroes, repository.Row{repository.ColID: heroID})
	if err != nil {
		return false, fmt.Errorf("check hero %s: %w", heroID, err)
	}
	return len(rows) > 0, nil
}

// ListHeroes returns every stored hero, ordered by name.
func (s *CatalogService) ListHeroes(ctx context.Context) ([]*domain.Hero, error) {
	rows, err := s.store.SelectAll(ctx, repository.TableHeroes)
	if err != nil {
		return nil, fmt.Errorf("list heroes: %w", err)
	}

	moods, err := s.store.SelectAll(ctx, repository.TableHeroMoods)
	if err != nil {
		return nil, fmt.Errorf("list hero moods: %w", err)
	}
	strengths, err := s.store.SelectAll(ctx, repository.TableHeroStrengths)
	if err != nil {
		return nil, fmt.Errorf("list hero strengths: %w", err)
	}
	weaknesses, err := s.store.SelectAll(ctx, repository.TableHeroWeaknesses)
	if err != nil {
		return nil, fmt.Errorf("list hero weaknesses: %w", err)
	}

	moodsBy := groupBy(moods, repository.ColHeroID)
	strengthsBy := groupBy(strengths, repository.ColHeroID)
	weaknessesBy := groupBy(weaknesses, repository.ColHeroID)

	heroes := make([]*domain.Hero, 0, len(rows))
	for _, row := range rows {
		id := row.String(repository.ColID)
		heroes = append(heroes, heroFromRows(row, moodsBy[id], strengthsBy[id], weaknessesBy[id]))
	}

	sort.SliceStable(heroes, func(i, j int) bool {
		return heroes[i].Name < heroes[j].Name
	})
	return heroes, nil
}

// GetHero returns one hero with its tags, or domain.ErrHeroNotFound.
func (s *CatalogService) GetHero(ctx context.Context, heroID string) (*domain.Hero, error) {
	rows, err := s.store.Select(ctx, repository.TableHeroes, repository.Row{repository.ColID: heroID})
	if err != nil {
		return nil, fmt.Errorf("get hero %s: %w", heroID, err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrHeroNotFound
	}

	byHero := repository.Row{repository.ColHeroID: heroID}
	moods, err := s.store.Select(ctx, repository.TableHeroMoods, byHero)
	if err != nil {
		return nil, fmt.Errorf("get hero moods %s: %w", heroID, err)
	}
	strengths, err := s.store.Select(ctx, repository.TableHeroStrengths, byHero)
	if err != nil {
		return nil, fmt.Errorf("get hero strengths %s: %w", heroID, err)
	}
	weaknesses, err := s.store.Select(ctx, repository.TableHeroWeaknesses, byHero)
	if err != nil {
		return nil, fmt.Errorf("get hero weaknesses %s: %w", heroID, err)
	}

	return heroFromRows(rows[0], moods, strengths, weaknesses), nil
}

// ListBuilds returns the hero's builds ordered by mood.
func (s *CatalogService) ListBuilds(ctx context.Context, heroID string) ([]*domain.Build, error) {
	rows, err := s.store.Select(ctx, repository.TableBuilds, repository.Row{repository.ColHeroID: heroID})
	if err != nil {
		return nil, fmt.Errorf("list builds %s: %w", heroID, err)
	}

	builds := make([]*domain.Build, 0, len(rows))
	for _, row := range rows {
		build, err := s.loadBuild(ctx, row)
		if err != nil {
			return nil, err
		}
		builds = append(builds, build)
	}

	sort.SliceStable(builds, func(i, j int) bool {
		return builds[i].Mood < builds[j].Mood
	})
	return builds, nil
}

// GetBuild returns the hero's build for one mood, or domain.ErrBuildNotFound.
func (s *CatalogService) GetBuild(ctx context.Context, heroID string, mood domain.Mood) (*domain.Build, error) {
	rows, err := s.store.Select(ctx, repository.TableBuilds, repository.Row{
		repository.ColHeroID: heroID,
		repository.ColMood:   string(mood),
	})
	if err != nil {
		return nil, fmt.Errorf("get build %s (%s): %w", heroID, mood, err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrBuildNotFound
	}
	return s.loadBuild(ctx, rows[0])
}

func (s *CatalogService) loadBuild(ctx context.Context, row repository.Row) (*domain.Build, error) {
	buildID, _ := row.Int64(repository.ColID)
	byBuild := repository.Row{repository.ColBuildID: buildID}

	children := make(map[string][]repository.Row, 4)
	for _, table := range []string{
		repository.TableItems,
		repository.TablePlaystyleDos,
		repository.TablePlaystyleDonts,
		repository.TablePlaystyleTips,
	} {
		rows, err := s.store.Select(ctx, table, byBuild)
		if err != nil {
			return nil, fmt.Errorf("load %s for build %d: %w", table, buildID, err)
		}
		children[table] = sortByOrder(rows)
	}

	build := &domain.Build{
		ID:     buildID,
		HeroID: row.String(repository.ColHeroID),
		Mood:   domain.Mood(row.String(repository.ColMood)),
		Playstyle: domain.Playstyle{
			Dos:   column(children[repository.TablePlaystyleDos], "do_item"),
			Donts: column(children[repository.TablePlaystyleDonts], "dont_item"),
			Tips:  column(children[repository.TablePlaystyleTips], "tip"),
		},
		Gameplan: domain.Gameplan{
			Early: row.String("early_game"),
			Mid:   row.String("mid_game"),
			Late:  row.String("late_game"),
		},
	}

	for _, item := range children[repository.TableItems] {
		cost, _ := item.Int64("cost")
		build.Items = append(build.Items, domain.Item{
			Name:        item.String("name"),
			Cost:        int(cost),
			Phase:       domain.Phase(item.String("phase")),
			Priority:    domain.Priority(item.String("priority")),
			Description: item.String("description"),
		})
	}

	return build, nil
}

func heroFromRows(row repository.Row, moods, strengths, weaknesses []repository.Row) *domain.Hero {
	hero := &domain.Hero{
		ID:          row.String(repository.ColID),
		Name:        row.String("name"),
		Role:        domain.Role(row.String("role")),
		Difficulty:  domain.Difficulty(row.String("difficulty")),
		Description: row.String("description"),
		Strengths:   column(sortByOrder(strengths), "strength"),
		Weaknesses:  column(sortByOrder(weaknesses), "weakness"),
	}
	for _, m := range moods {
		hero.Moods = append(hero.Moods, domain.Mood(m.String(repository.ColMood)))
	}
	return hero
}

func groupBy(rows []repository.Row, col string) map[string][]repository.Row {
	out := make(map[string][]repository.Row)
	for _, row := range rows {
		key := row.String(col)
		out[key] = append(out[key], row)
	}
	return out
}

func sortByOrder(rows []repository.Row) []repository.Row {
	sort.SliceStable(rows, func(i, j int) bool {
		a, _ := rows[i].Int64(repository.ColOrderIndex)
		b, _ := rows[j].Int64(repository.ColOrderIndex)
		return a < b
	})
	return rows
}

func column(rows []repository.Row, col string) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.String(col))
	}
	return out
}
