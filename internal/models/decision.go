package models

// Category classifies what kind of question the student asked.
type Category string

const (
	CategoryConcept    Category = "concept"
	CategoryCode       Category = "code"
	CategoryAssignment Category = "assignment"
	CategoryPractice   Category = "practice"
	CategoryReview     Category = "review"
	CategoryLogistics  Category = "logistics"
	CategoryOutOfScope Category = "out_of_scope"
)

// Difficulty is the router's difficulty estimate for a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// AgentName identifies which specialist variant should answer.
type AgentName string

const (
	AgentConcept  AgentName = "Concept"
	AgentCode     AgentName = "Code"
	AgentPractice AgentName = "Practice"
	AgentReview   AgentName = "Review"
	AgentNone     AgentName = "None"
)

// RouterDecision is the structured classification produced per question.
// It carries no identity beyond the question it was derived from and is only
// persisted as part of a pending escalation record.
type RouterDecision struct {
	Category   Category   `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
	Escalate   bool       `json:"escalate"`
	Target     AgentName  `json:"target_agent"`
	Notes      string     `json:"notes"`
}
