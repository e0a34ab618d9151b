package config

import "testing"

func TestGetEnvIntUnset(t *testing.T) {
	t.Setenv("FUZZY_THRESHOLD", "")
	if got := getEnvInt("FUZZY_THRESHOLD", 86); got != 86 {
		t.Errorf("Expected default 86 for unset key, got %d", got)
	}
}

func TestGetEnvIntExplicitZero(t *testing.T) {
	t.Setenv("FUZZY_THRESHOLD", "0")
	if got := getEnvInt("FUZZY_THRESHOLD", 86); got != 0 {
		t.Errorf("Expected explicit 0 to be kept, got %d", got)
	}
}

func TestGetEnvIntInvalid(t *testing.T) {
	t.Setenv("FUZZY_THRESHOLD", "not-a-number")
	if got := getEnvInt("FUZZY_THRESHOLD", 86); got != 86 {
		t.Errorf("Expected default 86 for unparsable value, got %d", got)
	}
}

func TestGetEnvIntValid(t *testing.T) {
	t.Setenv("FUZZY_THRESHOLD", "92")
	if got := getEnvInt("FUZZY_THRESHOLD", 86); got != 92 {
		t.Errorf("Expected 92, got %d", got)
	}
}
