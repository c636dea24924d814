package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Perfect-Cube/Reflex/internal/providers/llm"
)

// Orchestrator drives the four agent roles over a single model capability.
// It holds no conversation state: callers replay persisted history each turn.
type Orchestrator struct {
	llm llm.Provider

	interviewer llm.RoleConfig
	evaluator   llm.RoleConfig
	analyst     llm.RoleConfig
	candidate   llm.RoleConfig
}

// New builds an orchestrator. pastFeedback is the rolling admin-feedback block
// folded into the interviewer's instructions; empty means no history yet.
func New(provider llm.Provider, pastFeedback string) *Orchestrator {
	return &Orchestrator{
		llm:         provider,
		interviewer: interviewerRole(pastFeedback),
		evaluator:   evaluatorRole(),
		analyst:     analystRole(),
		candidate:   candidateRole(),
	}
}

// OpeningMessage produces the interviewer's greeting and first question from a
// synthetic instruction, before any real history exists.
func (o *Orchestrator) OpeningMessage(ctx context.Context, candidateName string) (string, error) {
	prompt := fmt.Sprintf(
		"The candidate, %s, has just joined the interview. Please provide a professional and welcoming introduction and ask your first foundational question.",
		candidateName,
	)
	return o.llm.Generate(ctx, o.interviewer, []llm.ChatMessage{
		{Role: llm.RoleUser, Content: prompt},
	})
}

// NextReply generates the interviewer's next utterance from the full replayed
// history (ai mapped to assistant, user to user, original order preserved).
func (o *Orchestrator) NextReply(ctx context.Context, history []llm.ChatMessage) (string, error) {
	return o.llm.Generate(ctx, o.interviewer, history)
}

// Terminated reports whether a reply carries the termination token.
func Terminated(text string) bool {
	return strings.Contains(strings.ToUpper(text), TerminationToken)
}

type Evaluation struct {
	Score      int    `json:"score"`
	Summary    string `json:"summary"`
	Strengths  string `json:"strengths"`
	Weaknesses string `json:"weaknesses"`
}

// sentinelEvaluation is substituted whenever the evaluator's output cannot be
// used, so a bad model response degrades to a labeled artifact, never an error.
func sentinelEvaluation() Evaluation {
	return Evaluation{
		Score:      0,
		Summary:    "Error generating report.",
		Strengths:  "N/A",
		Weaknesses: "The AI evaluation agent did not return a valid JSON response.",
	}
}

// Evaluate scores the full sender-labeled transcript. The result is always a
// well-formed record with Score in [0,100].
func (o *Orchestrator) Evaluate(ctx context.Context, transcript string) Evaluation {
	raw, err := o.llm.Generate(ctx, o.evaluator, []llm.ChatMessage{
		{Role: llm.RoleUser, Content: transcript},
	})
	if err != nil {
		return sentinelEvaluation()
	}

	var parsed struct {
		Score      float64 `json:"score"`
		Summary    string  `json:"summary"`
		Strengths  string  `json:"strengths"`
		Weaknesses string  `json:"weaknesses"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		return sentinelEvaluation()
	}

	score := int(parsed.Score)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return Evaluation{
		Score:      score,
		Summary:    parsed.Summary,
		Strengths:  parsed.Strengths,
		Weaknesses: parsed.Weaknesses,
	}
}

// extractJSON tolerates markdown code fences around the evaluator's object.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.LastIndex(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
	}
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// Suggest turns a transcript plus admin critique into one forward-looking
// improvement sentence.
func (o *Orchestrator) Suggest(ctx context.Context, transcript, adminFeedback string) (string, error) {
	prompt := fmt.Sprintf("TRANSCRIPT:\n%s\n\nADMIN FEEDBACK:\n%s", transcript, adminFeedback)
	return o.llm.Generate(ctx, o.analyst, []llm.ChatMessage{
		{Role: llm.RoleUser, Content: prompt},
	})
}

type SimTurn struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

const (
	simulationRounds  = 8
	simulationOpening = "Hello Candidate. Let's start the simulation. Can you explain what a PivotTable is?"
)

// RunSimulation plays a bounded round-robin exchange between the interviewer
// and candidate roles, seeded with a fixed opening line. Empty utterances are
// filtered from the returned transcript.
func (o *Orchestrator) RunSimulation(ctx context.Context) ([]SimTurn, error) {
	turns := []SimTurn{{Sender: SenderInterviewer, Text: simulationOpening}}

	for len(turns) < simulationRounds {
		var speaker llm.RoleConfig
		var sender string
		if turns[len(turns)-1].Sender == SenderInterviewer {
			speaker, sender = o.candidate, SenderCandidate
		} else {
			speaker, sender = o.interviewer, SenderInterviewer
		}

		reply, err := o.llm.Generate(ctx, speaker, simulationHistory(turns, sender))
		if err != nil {
			return nil, err
		}
		turns = append(turns, SimTurn{Sender: sender, Text: strings.TrimSpace(reply)})
	}

	out := make([]SimTurn, 0, len(turns))
	for _, t := range turns {
		if t.Text != "" {
			out = append(out, t)
		}
	}
	return out, nil
}

// simulationHistory maps the shared transcript into the speaker's perspective:
// its own turns become assistant messages, the counterpart's become user ones.
func simulationHistory(turns []SimTurn, self string) []llm.ChatMessage {
	history := make([]llm.ChatMessage, 0, len(turns))
	for _, t := range turns {
		role := llm.RoleUser
		if t.Sender == self {
			role = llm.RoleAssistant
		}
		history = append(history, llm.ChatMessage{Role: role, Content: t.Text})
	}
	return history
}
