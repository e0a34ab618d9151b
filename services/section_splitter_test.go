package services

import (
	"reflect"
	"testing"
)

func TestSplitSections(t *testing.T) {
	raw := "Context: League derby under the lights.\n" +
		"Arsenal: Raya, Saliba, Rice, Odegaard, Saka\n" +
		"Subs: Nketiah, Jesus, Nelson\n" +
		"Chelsea XI: Sanchez, Cucurella, Fernandez, Palmer, Jackson\n" +
		"\n" +
		"1' Kick-off.\n" +
		"23' Goal! Arsenal 1, Chelsea 0.\n"

	contextLines, lineupLines, commentaryLines := SplitSections(raw)

	expectedContext := []string{"Context: League derby under the lights."}
	if !reflect.DeepEqual(contextLines, expectedContext) {
		t.Errorf("Expected context %v, got %v", expectedContext, contextLines)
	}

	expectedLineups := []string{
		"Arsenal: Raya, Saliba, Rice, Odegaard, Saka",
		"Arsenal Subs: Nketiah, Jesus, Nelson",
		"Chelsea XI: Sanchez, Cucurella, Fernandez, Palmer, Jackson",
	}
	if !reflect.DeepEqual(lineupLines, expectedLineups) {
		t.Errorf("Expected lineups %v, got %v", expectedLineups, lineupLines)
	}

	if len(commentaryLines) != 2 {
		t.Fatalf("Expected 2 commentary lines, got %d: %v", len(commentaryLines), commentaryLines)
	}
	if commentaryLines[0] != "1' Kick-off." {
		t.Errorf("Unexpected first commentary line %q", commentaryLines[0])
	}
}

func TestSplitSectionsShortRosterIsContext(t *testing.T) {
	raw := "Arsenal: Raya, Saliba, Rice, Odegaard\n" +
		"1' Kick-off.\n"

	contextLines, lineupLines, _ := SplitSections(raw)

	if len(lineupLines) != 0 {
		t.Errorf("A 4-entry list must not count as a roster, got %v", lineupLines)
	}
	if len(contextLines) != 1 {
		t.Errorf("Expected the short list as context, got %v", contextLines)
	}
}

func TestSplitSectionsShortSubsIsContext(t *testing.T) {
	raw := "Arsenal: Raya, Saliba, Rice, Odegaard, Saka\n" +
		"Subs: Nketiah, Jesus\n" +
		"1' Kick-off.\n"

	contextLines, lineupLines, _ := SplitSections(raw)

	if len(lineupLines) != 1 {
		t.Errorf("Expected only the roster line as lineup, got %v", lineupLines)
	}
	found := false
	for _, ln := range contextLines {
		if ln == "Subs: Nketiah, Jesus" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected short subs list in context, got %v", contextLines)
	}
}

func TestSplitSectionsNoMinutes(t *testing.T) {
	raw := "Context: Nothing happened yet.\nArsenal: Raya, Saliba, Rice, Odegaard, Saka\n"

	_, lineupLines, commentaryLines := SplitSections(raw)

	if commentaryLines != nil {
		t.Errorf("Expected no commentary without minute markers, got %v", commentaryLines)
	}
	if len(lineupLines) != 1 {
		t.Errorf("Expected 1 lineup line, got %v", lineupLines)
	}
}

func TestSplitSectionsRecognizesNormalizedTags(t *testing.T) {
	raw := "Arsenal: Raya, Saliba, Rice, Odegaard, Saka\n" +
		"Chelsea: Sanchez, Cucurella, Fernandez, Palmer, Jackson\n" +
		"[MIN=1] Kick-off.\n"

	_, _, commentaryLines := SplitSections(raw)

	if len(commentaryLines) != 1 {
		t.Fatalf("Expected 1 commentary line, got %v", commentaryLines)
	}
}
