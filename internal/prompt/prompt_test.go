package prompt_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dom/hero-builds/internal/prompt"
	"github.com/dom/hero-builds/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(ls ...string) *strings.Reader {
	return strings.NewReader(strings.Join(ls, "\n") + "\n")
}

func TestPrompter_Hero(t *testing.T) {
	in := lines(
		"axe", "Axe", "Initiator", "Easy",
		"aggressive, chaos,",
		"Berserker with a big call",
		"Counter Helix", "Blink initiation", "Culling Blade resets", "",
		"Mana hungry", "Kited easily", "Weak to silences", "",
	)
	var out bytes.Buffer

	rec, err := prompt.New(in, &out).Hero()
	require.NoError(t, err)

	assert.Equal(t, "axe", rec["id"])
	assert.Equal(t, []any{"aggressive", "chaos"}, rec["moods"])
	assert.Len(t, rec["strengths"], 3)
	assert.Empty(t, validate.Hero(rec))
	assert.Contains(t, out.String(), "Available roles: Carry, Support, Mid, Initiator")
	assert.Contains(t, out.String(), "Strength 4: ")
}

func TestPrompter_Build(t *testing.T) {
	item := func(id, cost string) []string {
		return []string{id, "Item " + id, cost, "Mid", "Core", "Useful all game"}
	}

	var input []string
	input = append(input, "axe", "aggressive")
	input = append(input, item("blink", "2250")...)
	input = append(input, item("blade-mail", "2100")...)
	input = append(input, item("bkb", "lots")...)
	input = append(input, "") // end of items
	input = append(input, "Blink in", "Call", "Hold Blade Mail", "")
	input = append(input, "Don't farm", "Don't walk in", "")
	input = append(input, "Buy smoke", "Watch cooldowns", "Stack camps", "")
	input = append(input, "Jungle until Blink", "Gank mid", "Initiate fights")

	rec, err := prompt.New(lines(input...), &bytes.Buffer{}).Build()
	require.NoError(t, err)

	items := rec["items"].([]any)
	require.Len(t, items, 3)
	assert.Equal(t, 2250, items[0].(map[string]any)["cost"])
	assert.Equal(t, "lots", items[2].(map[string]any)["cost"], "unparseable costs stay as text")

	assert.ElementsMatch(t, []string{
		"Items must be a list with at least 4 items",
		"Playstyle donts must be a list with at least 3 items",
	}, validate.Build(rec))
}

func TestPrompter_InputEndsEarly(t *testing.T) {
	_, err := prompt.New(strings.NewReader("axe\nAxe\n"), &bytes.Buffer{}).Hero()
	assert.ErrorIs(t, err, prompt.ErrInputClosed)
}

func TestPrompter_ListEndsAtEOF(t *testing.T) {
	entries, err := prompt.New(strings.NewReader("one\ntwo"), &bytes.Buffer{}).List("Tip")
	require.NoError(t, err)
	assert.Equal(t, []any{"one", "two"}, entries)
}

func TestPrompter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "yes\n", want: true},
		{input: "  yes  \n", want: true},
		{input: "y\n", want: false},
		{input: "YES\n", want: false},
		{input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ok, err := prompt.New(strings.NewReader(tt.input), &bytes.Buffer{}).Confirm("Type 'yes' to continue: ", "yes")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
