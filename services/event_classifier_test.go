package services

import (
	"reflect"
	"testing"

	"commentary-service/models"
)

func testClassifier() *EventClassifier {
	return NewEventClassifier(NewPlayerMatcher(nil, 0))
}

var (
	testTeam1   = "Manchester United"
	testRoster1 = []string{"Andre Onana", "Diogo Dalot", "Casemiro", "Bruno Fernandes", "Marcus Rashford"}
	testTeam2   = "Chelsea"
	testRoster2 = []string{"Robert Sanchez", "Marc Cucurella", "Enzo Fernandez", "Cole Palmer", "Nicolas Jackson"}
)

func parseLine(t *testing.T, line string) []models.MatchEvent {
	t.Helper()
	return testClassifier().ParseEvents(line, testTeam1, testRoster1, testTeam2, testRoster2, testTeam1)
}

func parseOne(t *testing.T, line string) models.MatchEvent {
	t.Helper()
	events := parseLine(t, line)
	if len(events) != 1 {
		t.Fatalf("Expected exactly 1 event for %q, got %d: %v", line, len(events), events)
	}
	return events[0]
}

func TestParseEventsKickOff(t *testing.T) {
	e := parseOne(t, "[MIN=1] Kick-off.")
	if e.Type != models.EventKickOff {
		t.Errorf("Expected KICK_OFF, got %s", e.Type)
	}
	if e.Minute != "1" {
		t.Errorf("Expected minute 1, got %s", e.Minute)
	}
}

func TestParseEventsStructuredGoal(t *testing.T) {
	e := parseOne(t, "[MIN=23] Goal! Manchester United 1, Chelsea 0. Casemiro (Manchester United) header from close range.")
	if e.Type != models.EventOurGoal {
		t.Errorf("Expected OUR_GOAL, got %s", e.Type)
	}
	if e.Player != "Casemiro" {
		t.Errorf("Expected scorer 'Casemiro', got '%s'", e.Player)
	}
	if e.Minute != "23" {
		t.Errorf("Expected minute 23, got %s", e.Minute)
	}
}

func TestParseEventsOppositionGoal(t *testing.T) {
	e := parseOne(t, "[MIN=31] Goal! Manchester United 1, Chelsea 1. Cole Palmer (Chelsea) right footed shot. Assisted by Raheem Sterling.")
	if e.Type != models.EventOppGoal {
		t.Errorf("Expected OPP_GOAL, got %s", e.Type)
	}
	if e.Player != "Cole Palmer" {
		t.Errorf("Expected scorer 'Cole Palmer', got '%s'", e.Player)
	}
}

func TestParseEventsGoalWithoutStructure(t *testing.T) {
	e := parseOne(t, "[MIN=52] Cole Palmer makes it two with a cool penalty.")
	if e.Type != models.EventOppGoal {
		t.Errorf("Expected OPP_GOAL via roster ownership, got %s", e.Type)
	}
	if e.Player != "Cole Palmer" {
		t.Errorf("Expected 'Cole Palmer', got '%s'", e.Player)
	}
}

func TestParseEventsAddedTimePair(t *testing.T) {
	e := parseOne(t, "[MIN=45] +[MIN=2] Goal! Manchester United 2, Chelsea 1. Bruno Fernandes (Manchester United) strikes.")
	if e.Minute != "45+2" {
		t.Errorf("Expected minute '45+2', got '%s'", e.Minute)
	}
	if e.Type != models.EventOurGoal {
		t.Errorf("Expected OUR_GOAL, got %s", e.Type)
	}
}

func TestParseEventsSecondYellowIsRed(t *testing.T) {
	e := parseOne(t, "[MIN=60] Second yellow card to Marc Cucurella (Chelsea) for a late tackle.")
	if e.Type != models.EventRedOpp {
		t.Errorf("Second yellow must classify as red card, got %s", e.Type)
	}
	if e.Player != "Marc Cucurella" {
		t.Errorf("Expected 'Marc Cucurella', got '%s'", e.Player)
	}
}

func TestParseEventsYellowCard(t *testing.T) {
	e := parseOne(t, "[MIN=44] Casemiro (Manchester United) is shown the yellow card.")
	if e.Type != models.EventYellowUs {
		t.Errorf("Expected YC_US, got %s", e.Type)
	}
	if e.Player != "Casemiro" {
		t.Errorf("Expected 'Casemiro', got '%s'", e.Player)
	}
}

func TestParseEventsCornerAndOffside(t *testing.T) {
	corner := parseOne(t, "[MIN=55] Corner, Chelsea. Conceded by Diogo Dalot.")
	if corner.Type != models.EventCornerOpp {
		t.Errorf("Expected CORNER_OPP, got %s", corner.Type)
	}

	offside := parseOne(t, "[MIN=70] Offside, Manchester United. Marcus Rashford is caught ahead of the last man.")
	if offside.Type != models.EventOffsideUs {
		t.Errorf("Expected OFFSIDE_US, got %s", offside.Type)
	}
}

func TestParseEventsSubstitutionExplicit(t *testing.T) {
	e := parseOne(t, "[MIN=65] Substitution, Manchester United. Marcus Rashford replaces Diogo Dalot.")
	if e.Type != models.EventSubUs {
		t.Errorf("Expected SUB_US, got %s", e.Type)
	}
	if e.Player != "Marcus Rashford" {
		t.Errorf("Expected incoming player, got '%s'", e.Player)
	}
}

func TestParseEventsDisallowedGoal(t *testing.T) {
	e := parseOne(t, "[MIN=78] Ball in the net but the flag is up against Nicolas Jackson.")
	if e.Type != models.EventDisallowedGoalOpp {
		t.Errorf("Expected DISALLOWED_GOAL_OPP, got %s", e.Type)
	}
}

func TestParseEventsFoulOwnedByParentheticalTeam(t *testing.T) {
	e := parseOne(t, "[MIN=50] Foul by Enzo Fernandez (Chelsea) as Manchester United look to break.")
	if e.Type != models.EventFoulOpp {
		t.Errorf("Expected FOUL_OPP from United's perspective, got %s", e.Type)
	}
	if e.Player != "Enzo Fernandez" {
		t.Errorf("Expected 'Enzo Fernandez', got '%s'", e.Player)
	}
}

func TestParseEventsParensOutrankFreeTextAlias(t *testing.T) {
	// 括号队名与行内别名指向不同球队时,括号证据说了算,
	// 名字故意不在任一名单里,避免名单归属介入
	e := parseOne(t, "[MIN=62] Ball in the net but it is ruled out, Joao Felix (Chelsea) strayed beyond the last defender as Manchester United appeal.")
	if e.Type != models.EventDisallowedGoalOpp {
		t.Errorf("Expected DISALLOWED_GOAL_OPP via parenthetical team, got %s", e.Type)
	}
}

func TestParseEventsSaveAttempt(t *testing.T) {
	e := parseOne(t, "[MIN=12] Attempt saved. Bruno Fernandes header from the centre of the box.")
	if e.Type != models.EventSaveUs {
		t.Errorf("Expected SAVE_US, got %s", e.Type)
	}
	if e.Player != "Bruno Fernandes" {
		t.Errorf("Expected 'Bruno Fernandes', got '%s'", e.Player)
	}
}

func TestParseEventsMissWithLabel(t *testing.T) {
	e := parseOne(t, "[MIN=89] HUGE CHANCE! Marcus Rashford misses the target from six yards.")
	if e.Type != models.EventOurBigChanceMissed {
		t.Errorf("Expected OUR_BIG_CHANCE_MISSED, got %s", e.Type)
	}
	if e.Note != "[HUGE CHANCE!] Marcus Rashford misses the target from six yards." {
		t.Errorf("Expected label folded into note, got %q", e.Note)
	}
}

func TestParseEventsQuote(t *testing.T) {
	e := parseOne(t, "[MIN=90] \"We never gave up,\" said the manager afterwards.")
	if e.Type != models.EventQuote {
		t.Errorf("Expected QUOTE, got %s", e.Type)
	}
	if e.Note != "We never gave up," {
		t.Errorf("Unexpected quote body %q", e.Note)
	}
}

func TestParseEventsHalfTimeConsumed(t *testing.T) {
	events := parseLine(t, "[MIN=45] Half-time: Manchester United 1, Chelsea 0.")
	if len(events) != 0 {
		t.Errorf("Half-time summaries must not produce events, got %v", events)
	}

	events = parseLine(t, "[MIN=90] Full-time: Manchester United 2, Chelsea 1.")
	if len(events) != 0 {
		t.Errorf("Full-time summaries must not produce events, got %v", events)
	}
}

func TestParseEventsMinutelessLinesSkipped(t *testing.T) {
	text := "Some pre-match chatter without a minute.\n[MIN=1] Kick-off.\n"
	events := parseLine(t, text)
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %v", events)
	}
	if events[0].Type != models.EventKickOff {
		t.Errorf("Expected KICK_OFF, got %s", events[0].Type)
	}
}

func TestParseEventsImplausibleMinuteSkipped(t *testing.T) {
	for _, line := range []string{"[MIN=500] Kick-off.", "999' Kick-off."} {
		events := parseLine(t, line)
		if len(events) != 0 {
			t.Errorf("Minutes above %d must not anchor events, got %v for %q", maxRegularMinute, events, line)
		}
	}
}

func TestParseEventsCarriedMinute(t *testing.T) {
	text := "[MIN=30] Corner, Chelsea. Short one.\nGoal! Manchester United 0, Chelsea 1. Cole Palmer (Chelsea) taps in.\n"
	events := parseLine(t, text)
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %v", events)
	}
	if events[1].Type != models.EventOppGoal || events[1].Minute != "30" {
		t.Errorf("Expected follow-up line to inherit minute 30, got %v", events[1])
	}
}

func TestParseEventsPerspectiveFlips(t *testing.T) {
	line := "[MIN=23] Goal! Manchester United 1, Chelsea 0. Casemiro (Manchester United) header."

	asUnited := testClassifier().ParseEvents(line, testTeam1, testRoster1, testTeam2, testRoster2, "Manchester United")
	asChelsea := testClassifier().ParseEvents(line, testTeam1, testRoster1, testTeam2, testRoster2, "Chelsea")

	if asUnited[0].Type != models.EventOurGoal {
		t.Errorf("Expected OUR_GOAL from United's perspective, got %s", asUnited[0].Type)
	}
	if asChelsea[0].Type != models.EventOppGoal {
		t.Errorf("Expected OPP_GOAL from Chelsea's perspective, got %s", asChelsea[0].Type)
	}
}

func TestParseEventsDefaultPerspectiveIsTeam1(t *testing.T) {
	line := "[MIN=23] Goal! Manchester United 1, Chelsea 0. Casemiro (Manchester United) header."
	events := testClassifier().ParseEvents(line, testTeam1, testRoster1, testTeam2, testRoster2, "")
	if events[0].Type != models.EventOurGoal {
		t.Errorf("Empty perspective must default to team 1, got %s", events[0].Type)
	}
}

func TestParseEventsDeterministic(t *testing.T) {
	text := "[MIN=1] Kick-off.\n" +
		"[MIN=23] Goal! Manchester United 1, Chelsea 0. Casemiro (Manchester United) header.\n" +
		"[MIN=44] Casemiro (Manchester United) is shown the yellow card.\n" +
		"[MIN=55] Corner, Chelsea. Conceded by Diogo Dalot.\n" +
		"[MIN=89] HUGE CHANCE! Marcus Rashford misses the target.\n"

	first := parseLine(t, text)
	second := parseLine(t, text)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Same input must produce the same timeline:\nfirst:  %v\nsecond: %v", first, second)
	}
	if len(first) != 5 {
		t.Errorf("Expected 5 events, got %d: %v", len(first), first)
	}
}
