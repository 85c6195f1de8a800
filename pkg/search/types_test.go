package search

import (
	"encoding/json"
	"testing"

	"github.com/google/go-github/v53/github"

	"github.com/matzehuels/reposcout/pkg/errors"
)

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		input   string
		want    SortKey
		wantErr bool
	}{
		{"", SortUnset, false},
		{"default", SortUnset, false},
		{"stars", SortStars, false},
		{"Forks", SortForks, false},
		{" stars ", SortStars, false},
		{"updated", SortUnset, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSortKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidSort) {
				t.Errorf("ParseSortKey(%q) code = %v, want %v", tt.input, errors.GetCode(err), errors.ErrCodeInvalidSort)
			}
			if got != tt.want {
				t.Errorf("ParseSortKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFiltersValidate(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		wantErr bool
	}{
		{"zero", Filters{}, false},
		{"all set", Filters{Forks: 10, Stars: 100, Language: "go"}, false},
		{"negative forks", Filters{Forks: -1}, true},
		{"negative stars", Filters{Stars: -10}, true},
		{"bad language", Filters{Language: "c++"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.filters.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestQueryString(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  string
	}{
		{
			name:  "text only",
			query: Query{SearchText: "parser"},
			want:  `Search term: "parser"`,
		},
		{
			name: "everything",
			query: Query{
				SearchText: "parser",
				Filters:    Filters{Forks: 10, Stars: 100, Language: "rust"},
				SortBy:     SortStars,
			},
			want: `Search term: "parser", with at least 10 forks, containing code written in rust, with at least 100 stars, with results sorted by stars`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.query.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQueryJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(Query{SearchText: "x", Filters: Filters{Stars: 10}, SortBy: SortForks})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"searchText":"x","filters":{"forks":0,"stars":10,"language":""},"sortBy":"forks"}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestRepositoryJSONFlattensProviderFields(t *testing.T) {
	r := Repository{
		Repository: &github.Repository{
			FullName:        github.String("owner/parser"),
			StargazersCount: github.Int(42),
		},
		Languages: map[string]int{"Rust": 1200},
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got["full_name"] != "owner/parser" {
		t.Errorf("full_name = %v, want owner/parser", got["full_name"])
	}
	if got["stargazers_count"] != float64(42) {
		t.Errorf("stargazers_count = %v, want 42", got["stargazers_count"])
	}
	langs, ok := got["languages"].(map[string]any)
	if !ok || langs["Rust"] != float64(1200) {
		t.Errorf("languages = %v, want map with Rust=1200", got["languages"])
	}
}
