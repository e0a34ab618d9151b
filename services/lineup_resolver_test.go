package services

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseLineups(t *testing.T) {
	lines := []string{
		"Arsenal: Raya, Saliba, Rice, Odegaard, Saka",
		"Arsenal Subs: Nketiah, Jesus, Nelson",
		"Man Utd: Onana, Dalot, Casemiro, Bruno Fernandes, Marcus Rashford",
	}

	lineups, err := ParseLineups(lines)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if lineups.Team1 != "Arsenal" {
		t.Errorf("Expected team1 'Arsenal', got '%s'", lineups.Team1)
	}
	if lineups.Team2 != "Manchester United" {
		t.Errorf("Expected canonical team2 'Manchester United', got '%s'", lineups.Team2)
	}

	expectedRoster1 := []string{"Raya", "Saliba", "Rice", "Odegaard", "Saka", "Nketiah", "Jesus", "Nelson"}
	if !reflect.DeepEqual(lineups.Roster1, expectedRoster1) {
		t.Errorf("Expected roster1 %v, got %v", expectedRoster1, lineups.Roster1)
	}
	if len(lineups.Roster2) != 5 {
		t.Errorf("Expected 5 players for team2, got %v", lineups.Roster2)
	}
}

func TestParseLineupsSingleTeamFails(t *testing.T) {
	_, err := ParseLineups([]string{"Arsenal: Raya, Saliba, Rice, Odegaard, Saka"})
	if err == nil {
		t.Fatal("Expected error with a single team")
	}

	var lineupErr *LineupResolutionError
	if !errors.As(err, &lineupErr) {
		t.Fatalf("Expected *LineupResolutionError, got %T", err)
	}
	if len(lineupErr.Lines) != 1 {
		t.Errorf("Expected offending lines preserved, got %v", lineupErr.Lines)
	}
}

func TestParseLineupsDeduplicates(t *testing.T) {
	lines := []string{
		"Arsenal: Saka, Saka, Rice, Odegaard, Raya",
		"Chelsea: Sanchez, Cucurella, Fernandez, Palmer, Jackson",
	}

	lineups, err := ParseLineups(lines)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := []string{"Saka", "Rice", "Odegaard", "Raya"}
	if !reflect.DeepEqual(lineups.Roster1, expected) {
		t.Errorf("Expected deduplicated roster %v, got %v", expected, lineups.Roster1)
	}
}

func TestCanonicalTeamName(t *testing.T) {
	cases := map[string]string{
		"Man Utd":        "Manchester United",
		"MAN UTD":        "Manchester United",
		"manchester utd": "Manchester United",
		"Chelsea FC":     "Chelsea",
		"Arsenal":        "Arsenal",
	}
	for in, expected := range cases {
		if got := CanonicalTeamName(in); got != expected {
			t.Errorf("CanonicalTeamName(%q) = %q, expected %q", in, got, expected)
		}
	}
}

func TestSplitNameList(t *testing.T) {
	got := splitNameList("Raya; Saliba, Rice - Odegaard")
	expected := []string{"Raya", "Saliba", "Rice", "Odegaard"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestExtractLineupsFromCommentary(t *testing.T) {
	commentary := []string{
		"[MIN=1] Kick-off.",
		"[MIN=2] Arsenal: Raya, Saliba, Rice, Odegaard, Saka",
		"3' Chelsea: Sanchez, Cucurella, Fernandez, Palmer, Jackson",
		"[MIN=4] Subs: Nketiah, Jesus, Nelson",
		"[MIN=5] A short list: one, two",
	}

	got := ExtractLineupsFromCommentary(commentary)

	expected := []string{
		"Arsenal: Raya, Saliba, Rice, Odegaard, Saka",
		"Chelsea: Sanchez, Cucurella, Fernandez, Palmer, Jackson",
		"Chelsea Subs: Nketiah, Jesus, Nelson",
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	if _, err := ParseLineups(got); err != nil {
		t.Errorf("Synthetic lineup lines must be parseable, got %v", err)
	}
}
