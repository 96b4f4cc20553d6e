package repository

// Table names
const (
	TableHeroes         = "heroes"
	TableHeroMoods      = "hero_moods"
	TableHeroStrengths  = "hero_strengths"
	TableHeroWeaknesses = "hero_weaknesses"
	TableBuilds         = "builds"
	TableItems          = "items"
	TablePlaystyleDos   = "playstyle_dos"
	TablePlaystyleDonts = "playstyle_donts"
	TablePlaystyleTips  = "playstyle_tips"
)

// Column names shared across tables
const (
	ColID         = "id"
	ColHeroID     = "hero_id"
	ColBuildID    = "build_id"
	ColOrderIndex = "order_index"
	ColMood       = "mood"
)

// Table describes how rows of one table are identified.
type Table struct {
	Name string
	// IDColumn is the surrogate id used to address a single row. Empty when
	// rows can only be addressed by their natural key.
	IDColumn string
	// Key is the natural key used to detect duplicates.
	Key []string
	// Children are tables whose ChildColumn references this table's IDColumn.
	Children    []string
	ChildColumn string
	// ReportOnly tables are scanned but never cleaned. Deleting a parent row
	// by its key would cascade to every child of the row being kept.
	ReportOnly bool
}

// Tables lists every catalog table, children before parents, which is the
// order rows must be removed in.
var Tables = []Table{
	{Name: TableItems, IDColumn: ColID, Key: []string{ColBuildID, "name"}},
	{Name: TablePlaystyleDos, IDColumn: ColID, Key: []string{ColBuildID, "do_item"}},
	{Name: TablePlaystyleDonts, IDColumn: ColID, Key: []string{ColBuildID, "dont_item"}},
	{Name: TablePlaystyleTips, IDColumn: ColID, Key: []string{ColBuildID, "tip"}},
	{Name: TableHeroStrengths, IDColumn: ColID, Key: []string{ColHeroID, "strength"}},
	{Name: TableHeroWeaknesses, IDColumn: ColID, Key: []string{ColHeroID, "weakness"}},
	{Name: TableHeroMoods, Key: []string{ColHeroID, ColMood}},
	{
		Name:        TableBuilds,
		IDColumn:    ColID,
		Key:         []string{ColHeroID, ColMood},
		Children:    []string{TableItems, TablePlaystyleDos, TablePlaystyleDonts, TablePlaystyleTips},
		ChildColumn: ColBuildID,
	},
	{Name: TableHeroes, Key: []string{ColID}, ReportOnly: true},
}

// LookupTable finds a table by name.
func LookupTable(name string) (Table, bool) {
	for _, t := range Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// IDColumnFor returns the surrogate id column of a table, or "".
func IDColumnFor(name string) string {
	t, _ := LookupTable(name)
	return t.IDColumn
}
