package engine

import "fmt"

// FormatScore renders a root search score for humans: W<k> for a forced win
// in k plies, L<k> for a forced loss in k plies, D0 for an even score, and
// a signed heuristic value otherwise.
func FormatScore(score int) string {
	switch {
	case score >= OutcomeWin-MaxDepth:
		return fmt.Sprintf("W%d", OutcomeWin-score)
	case score <= OutcomeLoss+MaxDepth:
		return fmt.Sprintf("L%d", score-OutcomeLoss)
	case score == 0:
		return "D0"
	case score > 0:
		return fmt.Sprintf("+%d", score)
	default:
		return fmt.Sprintf("%d", score)
	}
}
