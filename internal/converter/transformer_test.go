package converter

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ginjaninja78/taplist/internal/csvparser"
	"github.com/ginjaninja78/taplist/internal/types"
)

const testSnippet = "<article><h2>{title}</h2><h3>{brewery}</h3>{image_snippet}" +
	"<p>{beerstyle} {abv}</p><p>{description}</p><p>{price_small}/{price_big}</p></article>"

func row(tap, brewery, name, style, country, abv, image, description, small, big string) []string {
	return []string{tap, brewery, name, style, country, abv, image, description, small, big}
}

func tableOf(rows ...[]string) *csvparser.Table {
	return &csvparser.Table{Headers: types.ExpectedHeaderCopy(), Rows: rows}
}

func TestToBeersMapsColumns(t *testing.T) {
	table := tableOf(row(" 7 ", "Acme Brewing", "Golden Ale", "Pale Ale", "USA", "5.2%",
		"https://example.com/a.png", "A crisp pale ale.", "$4", "$7"))

	beers, err := ToBeers(table)
	if err != nil {
		t.Fatalf("ToBeers: %v", err)
	}

	want := []types.Beer{{
		TapNum:      7,
		TapLabel:    " 7 ",
		Brewery:     "Acme Brewing",
		Name:        "Golden Ale",
		Style:       "Pale Ale",
		Country:     "USA",
		ABV:         "5.2%",
		ImageURL:    "https://example.com/a.png",
		Description: "A crisp pale ale.",
		PriceSmall:  "$4",
		PriceBig:    "$7",
		RowNumber:   2,
	}}
	if diff := cmp.Diff(want, beers); diff != "" {
		t.Fatalf("beers mismatch (-want +got):\n%s", diff)
	}
}

func TestToBeersRejectsBadRows(t *testing.T) {
	good := row("1", "b", "n", "s", "c", "5%", "", "d", "$1", "$2")

	cases := map[string]struct {
		row    []string
		column string
	}{
		"short row":       {good[:9], ""},
		"long row":        {append(append([]string{}, good...), "extra"), ""},
		"non-integer tap": {row("one", "b", "n", "s", "c", "5%", "", "d", "$1", "$2"), types.ColTapNum},
		"decimal tap":     {row("1.5", "b", "n", "s", "c", "5%", "", "d", "$1", "$2"), types.ColTapNum},
		"empty tap":       {row("", "b", "n", "s", "c", "5%", "", "d", "$1", "$2"), types.ColTapNum},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ToBeers(tableOf(good, tc.row))
			if !errors.Is(err, ErrInvalidRow) {
				t.Fatalf("expected ErrInvalidRow, got %v", err)
			}

			var dataErr *DataError
			if !errors.As(err, &dataErr) {
				t.Fatalf("expected *DataError, got %T", err)
			}
			if dataErr.Row != 3 {
				t.Fatalf("Row = %d, want 3", dataErr.Row)
			}
			if dataErr.Column != tc.column {
				t.Fatalf("Column = %q, want %q", dataErr.Column, tc.column)
			}
		})
	}
}

func TestSortBeersIsStable(t *testing.T) {
	beers := []types.Beer{
		{TapNum: 3, Name: "c"},
		{TapNum: 1, Name: "a"},
		{TapNum: 3, Name: "d"},
		{TapNum: -2, Name: "z"},
		{TapNum: 1, Name: "b"},
	}
	SortBeers(beers)

	var got []string
	for _, b := range beers {
		got = append(got, b.Name)
	}
	if diff := cmp.Diff([]string{"z", "a", "b", "c", "d"}, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderSnippetPlaceholderScenario(t *testing.T) {
	beer := types.Beer{
		TapNum:      1,
		Brewery:     "Acme Brewing",
		Name:        "Golden Ale",
		Style:       "Pale Ale",
		Country:     "USA",
		ABV:         "5.2%",
		Description: "A crisp pale ale.",
		PriceSmall:  "$4",
		PriceBig:    "$7",
	}

	got, err := RenderSnippet(testSnippet, beer)
	if err != nil {
		t.Fatalf("RenderSnippet: %v", err)
	}

	want := "<article><h2>1. Golden Ale</h2><h3>Acme Brewing, USA</h3>" + PlaceholderImage +
		"<p>Pale Ale 5.2%</p><p>A crisp pale ale.</p><p>$4/$7</p></article>"
	if got != want {
		t.Fatalf("RenderSnippet =\n%s\nwant\n%s", got, want)
	}
	if strings.Contains(got, "<img") {
		t.Fatal("snippet without image_url must not contain an image element")
	}
}

func TestRenderSnippetWithImage(t *testing.T) {
	beer := types.Beer{TapNum: 4, Name: "Dark Star", ImageURL: "https://cdn.example.com/dark.jpg"}

	got, err := RenderSnippet("{image_snippet}", beer)
	if err != nil {
		t.Fatalf("RenderSnippet: %v", err)
	}

	want := "<img src='https://cdn.example.com/dark.jpg' alt='Dark Star' />"
	if got != want {
		t.Fatalf("RenderSnippet = %q, want %q", got, want)
	}
	if strings.Contains(got, "placeholder") {
		t.Fatal("snippet with image_url must not contain the placeholder block")
	}
}

func TestRenderSnippetKeepsTapLabel(t *testing.T) {
	beers, err := ToBeers(tableOf(
		row("07", "A", "Seven", "s", "c", "5%", "", "d", "$1", "$2"),
		row("+3", "B", "Three", "s", "c", "5%", "", "d", "$1", "$2"),
	))
	if err != nil {
		t.Fatalf("ToBeers: %v", err)
	}
	SortBeers(beers)

	out, err := RenderSnippets("{title}", beers)
	if err != nil {
		t.Fatalf("RenderSnippets: %v", err)
	}
	if out != "+3. Three\n07. Seven" {
		t.Fatalf("RenderSnippets = %q", out)
	}
}

func TestRenderSnippetMissingKey(t *testing.T) {
	if _, err := RenderSnippet("<p>{ibu}</p>", types.Beer{}); err == nil {
		t.Fatal("expected error for unknown placeholder")
	}
}

func TestRenderSnippetsOrderAndCompleteness(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for iteration := 0; iteration < 50; iteration++ {
		n := 1 + rng.IntN(20)
		var rows [][]string
		wantTitles := make(map[string]int)
		for i := 0; i < n; i++ {
			tap := strconv.Itoa(rng.IntN(10))
			name := "beer-" + strconv.Itoa(i)
			rows = append(rows, row(tap, "b", name, "s", "c", "5%", "", "d", "$1", "$2"))
			wantTitles[tap+". "+name]++
		}

		beers, err := ToBeers(tableOf(rows...))
		if err != nil {
			t.Fatalf("ToBeers: %v", err)
		}
		SortBeers(beers)

		out, err := RenderSnippets("{title}", beers)
		if err != nil {
			t.Fatalf("RenderSnippets: %v", err)
		}
		lines := strings.Split(out, "\n")

		gotTitles := make(map[string]int)
		prev := -1 << 31
		for _, line := range lines {
			gotTitles[line]++
			tap, err := strconv.Atoi(strings.SplitN(line, ".", 2)[0])
			if err != nil {
				t.Fatalf("unexpected title %q", line)
			}
			if tap < prev {
				t.Fatalf("titles out of order: %v", lines)
			}
			prev = tap
		}
		if diff := cmp.Diff(wantTitles, gotTitles); diff != "" {
			t.Fatalf("titles mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestRenderSnippetsEmpty(t *testing.T) {
	out, err := RenderSnippets(testSnippet, nil)
	if err != nil {
		t.Fatalf("RenderSnippets: %v", err)
	}
	if out != "" {
		t.Fatalf("RenderSnippets = %q, want empty", out)
	}
}
