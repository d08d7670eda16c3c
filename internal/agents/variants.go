package agents

import (
	"fmt"

	"github.com/studyhall/kyoshi/internal/digest"
	"github.com/studyhall/kyoshi/internal/llm"
	"github.com/studyhall/kyoshi/internal/models"
	"github.com/studyhall/kyoshi/pkg/utils"
)

// labKeywords mark a question as lab/homework guidance rather than a pure
// concept question.
var labKeywords = []string{
	"lab", "exercise", "experiment", "homework", "assignment",
	"作业", "练习", "实验",
}

// timeBudgetKeywords signal that a review request carries a deadline.
var timeBudgetKeywords = []string{
	"day", "days", "week", "weeks", "tomorrow", "tonight",
	"天", "日", "周", "明天", "后天",
}

// difficultyKeywords signal an explicit difficulty in a practice request.
var difficultyKeywords = []string{
	"easy", "medium", "hard", "简单", "中等", "困难", "基础", "进阶",
}

// NewConcept explains concepts and guides labs/homework at the idea level.
// Temperature 0.5: some variety in explanations, still grounded.
func NewConcept(client llm.Client, h *digest.Handle) *Variant {
	return &Variant{
		Name:         models.AgentConcept,
		systemPrompt: conceptSystemPrompt,
		temperature:  0.5,
		client:       client,
		digest:       h,
		frame: func(digestText, question string) string {
			parts := []string{
				digestPreamble(digestText, "Below is the complete course-materials digest (grouped by lecture/chapter); refer to it strictly:"),
			}
			if utils.ContainsAny(question, labKeywords) {
				parts = append(parts,
					"The digest likely already contains the description or related examples for this lab/homework. "+
						"First restate the task requirements in your own words from the materials, then give step-by-step "+
						"problem-solving ideas, relate them to in-class examples or pseudocode, and point out common mistakes. "+
						"Do not provide complete code or final answers that can be copied.\n")
			}
			parts = append(parts, fmt.Sprintf("The student's question is:\n%s\n", question))
			return joinParts(parts...)
		},
	}
}

// NewCode debugs posted code. Temperature 0.4: debugging wants low variance.
func NewCode(client llm.Client, h *digest.Handle) *Variant {
	return &Variant{
		Name:         models.AgentCode,
		systemPrompt: codeSystemPrompt,
		temperature:  0.4,
		client:       client,
		digest:       h,
		frame: func(digestText, question string) string {
			return joinParts(
				digestPreamble(digestText, "Below is the complete course-materials digest (grouped by lecture/chapter), for reference:"),
				fmt.Sprintf("The student's posted code or question is:\n%s\n\nAnalyze and answer as a code-debugging TA.", question),
			)
		},
	}
}

// NewPractice generates practice problems from a request naming topics,
// counts, and difficulty. Temperature 0.6: problem generation wants variety.
func NewPractice(client llm.Client, h *digest.Handle) *Variant {
	return &Variant{
		Name:         models.AgentPractice,
		systemPrompt: practiceSystemPrompt,
		temperature:  0.6,
		client:       client,
		digest:       h,
		frame: func(digestText, request string) string {
			parts := []string{
				digestPreamble(digestText, "Below is the complete course-materials digest (grouped by lecture/chapter); generate problems from this content:"),
				fmt.Sprintf("Student's practice request:\n%s\n", request),
			}
			if !utils.ContainsAny(request, difficultyKeywords) {
				parts = append(parts, "The student did not specify a difficulty; default to medium.")
			}
			parts = append(parts, "Generate suitable practice problems, following the rules in the system prompt.")
			return joinParts(parts...)
		},
	}
}

// NewReview builds review summaries for a study-scope request. Temperature
// 0.5.
func NewReview(client llm.Client, h *digest.Handle) *Variant {
	return &Variant{
		Name:         models.AgentReview,
		systemPrompt: reviewSystemPrompt,
		temperature:  0.5,
		client:       client,
		digest:       h,
		frame: func(digestText, request string) string {
			parts := []string{
				digestPreamble(digestText, "Below is the complete course-materials digest (grouped by lecture/chapter); build the review summary from this content:"),
				fmt.Sprintf("The student's review request (may name chapters, topics, or an exam date):\n%s\n", request),
			}
			if utils.ContainsAny(request, timeBudgetKeywords) {
				parts = append(parts, "The request appears to include a time budget; propose a day-by-day study plan within it.")
			}
			parts = append(parts, "Produce a structured review guide from the materials above.")
			return joinParts(parts...)
		},
	}
}
