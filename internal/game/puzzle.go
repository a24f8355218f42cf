package game

import "strings"

// Workshop: assemble the machine parts in blueprint order.
var (
	WorkshopParts = map[string]string{
		"G": "Gear Mechanism",
		"S": "Spring Coil",
		"P": "Piston Rod",
		"V": "Valve Controller",
		"C": "Circuit Board",
	}
	workshopSequence = []string{"S", "G", "P", "V", "C"}
)

// Observatory riddle.
const (
	ObservatoryRiddle = "I speak without a mouth and hear without ears. I have no body, but I come alive with wind. What am I?"
	observatoryAnswer = "echo"
)

// Pattern is one of the laboratory number sequences. One of the three is
// bound to a session at random on first view and held until the room passes.
type Pattern struct {
	Sequence []string `json:"sequence"`
	Answer   string   `json:"-"`
	Hint     string   `json:"hint"`
}

var LaboratoryPatterns = []Pattern{
	{Sequence: []string{"2", "4", "8", "16", "?"}, Answer: "32", Hint: "Each number doubles the previous"},
	{Sequence: []string{"1", "1", "2", "3", "5", "?"}, Answer: "8", Hint: "Each number is the sum of the two before it"},
	{Sequence: []string{"3", "9", "27", "81", "?"}, Answer: "243", Hint: "Each number multiplies by 3"},
}

// Control room logic puzzle.
var (
	ControlClues = []string{
		"The Red System technician isn't Alex",
		"The Blue System belongs to the Electrician",
		"The Plumber doesn't have the Green System",
		"Sam is the Mechanic",
		"The Green System owner is the Mechanic",
	}

	// ControlKeys fixes the six assignment slots the final room asks for.
	ControlKeys = []string{"red_system", "blue_system", "green_system", "alex_role", "sam_role", "taylor_role"}

	controlAnswers = map[string]string{
		"red_system":   "plumber",
		"blue_system":  "electrician",
		"green_system": "mechanic",
		"alex_role":    "electrician",
		"sam_role":     "mechanic",
		"taylor_role":  "plumber",
	}
)

// ValidateWorkshop checks the submitted part codes against the blueprint
// sequence. Order-sensitive, no partial credit.
func ValidateWorkshop(sequence []string) bool {
	if len(sequence) != len(workshopSequence) {
		return false
	}
	for i, code := range sequence {
		if code != workshopSequence[i] {
			return false
		}
	}
	return true
}

// ValidateObservatory compares the riddle answer after trimming and lowercasing.
func ValidateObservatory(answer string) bool {
	return strings.ToLower(strings.TrimSpace(answer)) == observatoryAnswer
}

// ValidateLaboratory checks the answer against the pattern bound to the
// session. A correct answer for a different pattern still fails.
func ValidateLaboratory(patternIndex int, answer string) bool {
	if patternIndex < 0 || patternIndex >= len(LaboratoryPatterns) {
		return false
	}
	return strings.TrimSpace(answer) == LaboratoryPatterns[patternIndex].Answer
}

// ValidateControl requires all six assignments to match; five of six is a miss.
func ValidateControl(answers map[string]string) bool {
	for key, want := range controlAnswers {
		if strings.ToLower(strings.TrimSpace(answers[key])) != want {
			return false
		}
	}
	return true
}
