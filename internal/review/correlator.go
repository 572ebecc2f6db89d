// Package review associates reviewer-raised issues with the questions
// they describe. The upstream convention embeds the target as a literal
// "Question N:" prefix in the issue description; Correlate parses that
// prefix exactly once and records the result as an explicit field, so the
// rest of the code never touches the text pattern.
package review

import (
	"regexp"
	"strconv"

	"github.com/courseloom/courseloom-backend/internal/model"
)

var questionRef = regexp.MustCompile(`^Question (\d+):`)

// Correlate returns a copy of the issues with QuestionNumber populated
// for every issue whose description starts with the reference prefix. An
// issue that does not match correlates with no question; that is a valid,
// silent outcome.
func Correlate(issues []model.Issue) []model.Issue {
	out := make([]model.Issue, len(issues))
	for i, issue := range issues {
		out[i] = issue
		if m := questionRef.FindStringSubmatch(issue.Description); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				out[i].QuestionNumber = &n
			}
		}
	}
	return out
}

// IssuesForQuestion returns the correlated issues targeting the given
// question_number, in input order.
func IssuesForQuestion(issues []model.Issue, questionNumber int) []model.Issue {
	matched := make([]model.Issue, 0)
	for _, issue := range issues {
		if issue.QuestionNumber != nil && *issue.QuestionNumber == questionNumber {
			matched = append(matched, issue)
		}
	}
	return matched
}

// HasOpenIssues reports whether at least one issue correlated with the
// question is OPEN.
func HasOpenIssues(issues []model.Issue, questionNumber int) bool {
	for _, issue := range IssuesForQuestion(issues, questionNumber) {
		if issue.Status == model.IssueStatusOpen {
			return true
		}
	}
	return false
}

// OpenIssueCount counts OPEN issues across the whole review, correlated
// or not. Orphaned issues are invisible in per-question views but still
// counted here, so the two tallies can legitimately disagree.
func OpenIssueCount(issues []model.Issue) int {
	count := 0
	for _, issue := range issues {
		if issue.Status == model.IssueStatusOpen {
			count++
		}
	}
	return count
}

// Actionable reports whether an issue may be responded to by the
// instructor. RESOLVED and CLOSED issues are display-only.
func Actionable(status model.IssueStatus) bool {
	return status == model.IssueStatusOpen || status == model.IssueStatusInProgress
}
