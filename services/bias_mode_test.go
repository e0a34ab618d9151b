package services

import (
	"testing"

	"commentary-service/models"
)

func statsFor(goalsFor, goalsAgainst, cardsUs int) *models.MatchStats {
	return &models.MatchStats{
		GoalsFor:     goalsFor,
		GoalsAgainst: goalsAgainst,
		CardsUs:      cardsUs,
	}
}

func TestSelectModeWinOrDrawIsSupportive(t *testing.T) {
	memory := &models.MatchMemory{}

	if mode := SelectMode(memory, statsFor(2, 1, 0)); mode != ModeSupportive {
		t.Errorf("Expected SUPPORTIVE for a win, got %s", mode)
	}
	if mode := SelectMode(memory, statsFor(1, 1, 3)); mode != ModeSupportive {
		t.Errorf("Expected SUPPORTIVE for a draw regardless of cards, got %s", mode)
	}
}

func TestSelectModeHeavyLossIsRant(t *testing.T) {
	memory := &models.MatchMemory{}

	if mode := SelectMode(memory, statsFor(0, 2, 0)); mode != ModeRant {
		t.Errorf("Expected RANT for a two-goal loss, got %s", mode)
	}
}

func TestSelectModeNarrowLoss(t *testing.T) {
	calm := &models.MatchMemory{PressureFor: 3, PressureAgainst: 4}
	if mode := SelectMode(calm, statsFor(0, 1, 0)); mode != ModeSupportive {
		t.Errorf("Expected SUPPORTIVE for a quiet narrow loss, got %s", mode)
	}

	overrun := &models.MatchMemory{PressureFor: 1, PressureAgainst: 5}
	if mode := SelectMode(overrun, statsFor(0, 1, 0)); mode != ModeRant {
		t.Errorf("Expected RANT when overrun in a narrow loss, got %s", mode)
	}

	illDisciplined := &models.MatchMemory{}
	if mode := SelectMode(illDisciplined, statsFor(0, 1, 2)); mode != ModeRant {
		t.Errorf("Expected RANT with two cards in a narrow loss, got %s", mode)
	}

	shootout := &models.MatchMemory{}
	if mode := SelectMode(shootout, statsFor(2, 3, 0)); mode != ModeRant {
		t.Errorf("Expected RANT conceding three in a narrow loss, got %s", mode)
	}
}
