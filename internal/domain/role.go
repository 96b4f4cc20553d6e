package domain

// Role represents the position a hero is built for
type Role string

const (
	RoleCarry     Role = "Carry"
	RoleSupport   Role = "Support"
	RoleMid       Role = "Mid"
	RoleInitiator Role = "Initiator"
)

// AllRoles contains all valid roles in order
var AllRoles = []Role{RoleCarry, RoleSupport, RoleMid, RoleInitiator}

// IsValid checks if a role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleCarry, RoleSupport, RoleMid, RoleInitiator:
		return true
	}
	return false
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// Difficulty is how hard a hero is to play well
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// AllDifficulties contains all valid difficulties from easiest to hardest
var AllDifficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// IsValid checks if a difficulty is valid
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

func (d Difficulty) String() string {
	return string(d)
}

// Mood is the playstyle archetype shared by heroes and builds
type Mood string

const (
	MoodAggressive   Mood = "aggressive"
	MoodDefensive    Mood = "defensive"
	MoodExperimental Mood = "experimental"
	MoodCreative     Mood = "creative"
	MoodChaos        Mood = "chaos"
)

// AllMoods contains all valid moods in order
var AllMoods = []Mood{MoodAggressive, MoodDefensive, MoodExperimental, MoodCreative, MoodChaos}

// IsValid checks if a mood is valid
func (m Mood) IsValid() bool {
	switch m {
	case MoodAggressive, MoodDefensive, MoodExperimental, MoodCreative, MoodChaos:
		return true
	}
	return false
}

func (m Mood) String() string {
	return string(m)
}

// DisplayName returns a user-friendly display name for the mood
func (m Mood) DisplayName() string {
	switch m {
	case MoodAggressive:
		return "Aggressive"
	case MoodDefensive:
		return "Defensive"
	case MoodExperimental:
		return "Experimental"
	case MoodCreative:
		return "Creative"
	case MoodChaos:
		return "Chaos"
	default:
		return string(m)
	}
}

// Phase is the game phase an item is bought in
type Phase string

const (
	PhaseEarly Phase = "Early"
	PhaseMid   Phase = "Mid"
	PhaseLate  Phase = "Late"
)

// AllPhases contains all valid phases in game order
var AllPhases = []Phase{PhaseEarly, PhaseMid, PhaseLate}

func (p Phase) IsValid() bool {
	switch p {
	case PhaseEarly, PhaseMid, PhaseLate:
		return true
	}
	return false
}

func (p Phase) String() string {
	return string(p)
}

// Priority ranks how essential an item is to a build
type Priority string

const (
	PriorityCore        Priority = "Core"
	PrioritySituational Priority = "Situational"
	PriorityLuxury      Priority = "Luxury"
)

// AllPriorities contains all valid priorities, most essential first
var AllPriorities = []Priority{PriorityCore, PrioritySituational, PriorityLuxury}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityCore, PrioritySituational, PriorityLuxury:
		return true
	}
	return false
}

func (p Priority) String() string {
	return string(p)
}
