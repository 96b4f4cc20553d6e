package domain

import "unicode/utf8"

// Score tuning. Every build starts at baseScore and earns or loses points
// from the modifiers below; the result is clamped to [minScore, maxScore].
const (
	baseScore = 3.0
	minScore  = 0.0
	maxScore  = 5.0

	coreItemBonus        = 0.5
	situationalItemBonus = 0.2
	luxuryItemBonus      = 0.3

	descriptionBonus         = 0.1
	playstyleCompleteBonus   = 0.3
	gameplanCompleteBonus    = 0.2
	minCoreItems             = 3
	minItemDescriptionLength = 10
	minGameplanLength        = 20
	minPlaystyleEntries      = 3
)

// roleMoodModifiers rewards moods that suit a role
var roleMoodModifiers = map[Role]map[Mood]float64{
	RoleCarry:     {MoodAggressive: 0.5, MoodDefensive: -0.2, MoodExperimental: 0.1, MoodCreative: 0.1, MoodChaos: 0.2},
	RoleSupport:   {MoodAggressive: -0.2, MoodDefensive: 0.5, MoodExperimental: 0.2, MoodCreative: 0.3, MoodChaos: 0.1},
	RoleMid:       {MoodAggressive: 0.4, MoodDefensive: 0.0, MoodExperimental: 0.3, MoodCreative: 0.3, MoodChaos: 0.4},
	RoleInitiator: {MoodAggressive: 0.5, MoodDefensive: 0.1, MoodExperimental: 0.1, MoodCreative: 0.2, MoodChaos: 0.5},
}

// ScoreBuild rates how legitimate a build looks for its hero, from 0 to 5.
func ScoreBuild(hero *Hero, build *Build) float64 {
	score := baseScore
	score += roleMoodModifiers[hero.Role][build.Mood]

	var core, situational, luxury int
	describedItems := 0
	for _, item := range build.Items {
		switch item.Priority {
		case PriorityCore:
			core++
		case PrioritySituational:
			situational++
		case PriorityLuxury:
			luxury++
		}
		if utf8.RuneCountInString(item.Description) > minItemDescriptionLength {
			describedItems++
		}
	}

	if core >= minCoreItems {
		score += coreItemBonus
	}
	if situational > 0 {
		score += situationalItemBonus
	}
	if luxury > 0 && hero.Role == RoleCarry {
		score += luxuryItemBonus
	}

	if describedItems == len(build.Items) {
		score += descriptionBonus
	}

	ps := build.Playstyle
	if len(ps.Dos) >= minPlaystyleEntries && len(ps.Donts) >= minPlaystyleEntries && len(ps.Tips) >= minPlaystyleEntries {
		score += playstyleCompleteBonus
	}

	gp := build.Gameplan
	if longer(gp.Early, minGameplanLength) && longer(gp.Mid, minGameplanLength) && longer(gp.Late, minGameplanLength) {
		score += gameplanCompleteBonus
	}

	if score < minScore {
		return minScore
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

// longer compares length in characters, not bytes.
func longer(s string, n int) bool {
	return utf8.RuneCountInString(s) > n
}
