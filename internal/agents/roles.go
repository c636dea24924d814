package agents

import (
	"fmt"

	"github.com/Perfect-Cube/Reflex/internal/providers/llm"
)

// TerminationToken is the marker the interviewer appends to its final remarks.
const TerminationToken = "TERMINATE"

// Simulation transcript sender labels.
const (
	SenderInterviewer = "Interviewer"
	SenderCandidate   = "Candidate"
)

const noFeedbackFallback = "No specific feedback yet. Follow standard procedure."

const interviewerPromptFmt = `You are Alex, an expert AI interviewer for Excel roles. Your primary goal is to assess a candidate's skills through a structured conversation.
**Past Feedback for Improvement:** Based on previous reviews, remember the following: '%s'
**Your Task:** Your only job is to generate the NEXT response in the conversation based on the history provided.
- Ask one clear question at a time.
- Guide the conversation through foundational, scenario-based, and practical tasks.
- After your final concluding remarks, you MUST end your response with the single word "` + TerminationToken + `".`

const evaluatorPrompt = `You are a silent evaluation agent. Your only task is to analyze the provided interview transcript.
Generate ONLY a single, valid JSON object with the following keys:
- "score": An integer from 0 to 100 representing the candidate's overall proficiency.
- "summary": A concise 2-3 sentence summary of the candidate's performance.
- "strengths": A string containing a bulleted list of the candidate's key strengths.
- "weaknesses": A string containing a bulleted list of the candidate's areas for improvement.
Do not add any text or formatting before or after the JSON object.`

const analystPrompt = `You are an AI System Analyst. You will be given an interview transcript and feedback from a human admin.
Your task is to analyze both and provide a concise, one-sentence, actionable suggestion for how the Interviewer Agent can improve in future interviews.
Example: "Suggestion: The Interviewer Agent should ask for a specific code example when a candidate discusses complex formulas."
Output ONLY the single sentence suggestion.`

const candidatePrompt = `You are a job candidate with intermediate Excel skills. You are confident about VLOOKUP, PivotTables, and basic formulas, but you might be slightly hesitant or need a moment to think about complex nested formulas or advanced topics like dynamic arrays. Answer questions naturally and professionally as this persona.`

func interviewerRole(pastFeedback string) llm.RoleConfig {
	if pastFeedback == "" {
		pastFeedback = noFeedbackFallback
	}
	return llm.RoleConfig{
		Name:         "interviewer",
		Model:        "gemini-1.5-pro",
		SystemPrompt: fmt.Sprintf(interviewerPromptFmt, pastFeedback),
		Temperature:  0.7,
		MaxTokens:    8192,
	}
}

func evaluatorRole() llm.RoleConfig {
	return llm.RoleConfig{
		Name:         "evaluator",
		Model:        "gemini-1.5-flash",
		SystemPrompt: evaluatorPrompt,
		Temperature:  0.5,
		MaxTokens:    1024,
	}
}

func analystRole() llm.RoleConfig {
	// shares the evaluator's model budget; only the prompt differs
	return llm.RoleConfig{
		Name:         "analyst",
		Model:        "gemini-1.5-flash",
		SystemPrompt: analystPrompt,
		Temperature:  0.5,
		MaxTokens:    1024,
	}
}

func candidateRole() llm.RoleConfig {
	return llm.RoleConfig{
		Name:         "candidate",
		Model:        "gemini-1.5-flash",
		SystemPrompt: candidatePrompt,
		Temperature:  1,
		MaxTokens:    1024,
	}
}
