package shuffle

import (
	"errors"
	"reflect"
	"testing"

	"github.com/robalobadob/bingo/internal/catalog"
	"github.com/robalobadob/bingo/internal/seedhash"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Category{
		{Name: "Birds", Items: []catalog.Item{{Description: "Robin"}, {Description: "Sparrow"}, {Description: "Crow"}}},
		{Name: "Trees", Items: []catalog.Item{{Description: "Oak"}, {Description: "Pine"}, {Description: "Birch"}, {Description: "Maple"}}},
		{Name: "Bugs", Items: []catalog.Item{{Description: "Ant"}, {Description: "Bee"}, {Description: "Moth"}}},
	})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

func names(items []catalog.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Description
	}
	return out
}

func TestPermuteKnownPermutations(t *testing.T) {
	cases := map[string][]int{
		"bingo":  {7, 0, 5, 3, 4, 6, 9, 1, 8, 2},
		"abc123": {1, 5, 4, 3, 9, 0, 8, 2, 6, 7},
	}
	for seed, want := range cases {
		got := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
		Permute(got, seedhash.Func(seed))
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("seed %q: got %v, want %v", seed, got, want)
		}
	}
}

func TestShuffleKnownGrid(t *testing.T) {
	c := testCatalog(t)
	got, err := Shuffle(c, "bingo", 3, c.Order())
	if err != nil {
		t.Fatalf("Shuffle: %v", err)
	}
	want := []string{"Ant", "Robin", "Birch", "Oak", "Pine", "Maple", "Moth", "Sparrow", "Bee", "Crow"}
	if !reflect.DeepEqual(names(got), want) {
		t.Fatalf("got %v, want %v", names(got), want)
	}
}

func TestDeterminism(t *testing.T) {
	c := testCatalog(t)
	for _, seed := range []string{"a", "zz9", "4fzyo82mvyr"} {
		a, err := Shuffle(c, seed, 3, c.Order())
		if err != nil {
			t.Fatal(err)
		}
		b, _ := Shuffle(c, seed, 3, c.Order())
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("seed %q not deterministic", seed)
		}
	}
}

func TestSelectionOrderDoesNotMatter(t *testing.T) {
	c := testCatalog(t)
	a, _ := Shuffle(c, "x1", 3, []string{"Birds", "Trees", "Bugs"})
	b, _ := Shuffle(c, "x1", 3, []string{"Bugs", "Birds", "Trees"})
	if !reflect.DeepEqual(a, b) {
		t.Fatal("selection order changed the result")
	}
}

func TestInsufficientItems(t *testing.T) {
	c := testCatalog(t)
	got, err := Shuffle(c, "bingo", 3, []string{"Birds", "Bugs"})
	if got != nil {
		t.Fatalf("expected no items, got %v", got)
	}
	var ie *InsufficientItemsError
	if !errors.As(err, &ie) {
		t.Fatalf("expected InsufficientItemsError, got %v", err)
	}
	if ie.Have != 6 || ie.Need != 9 {
		t.Fatalf("have/need = %d/%d", ie.Have, ie.Need)
	}
	if !errors.Is(err, ErrInsufficientItems) {
		t.Fatal("errors.Is should match ErrInsufficientItems")
	}
}

func TestGridRowMajor(t *testing.T) {
	c := testCatalog(t)
	rows, err := Grid(c, "bingo", 3, c.Order())
	if err != nil {
		t.Fatalf("Grid: %v", err)
	}
	want := [][]string{{"Ant", "Robin", "Birch"}, {"Oak", "Pine", "Maple"}, {"Moth", "Sparrow", "Bee"}}
	for r := range want {
		if !reflect.DeepEqual(names(rows[r]), want[r]) {
			t.Fatalf("row %d = %v, want %v", r, names(rows[r]), want[r])
		}
	}
}

func TestIndexBounds(t *testing.T) {
	if Index(0, 7) != 0 || Index(^uint32(0), 7) != 6 {
		t.Fatal("Index out of expected bounds")
	}
}
