package conversation

import (
	"fmt"

	"github.com/xn_chatbot/backend/internal/utils"
)

// SelectionStrategy picks one follow-up question from a candidate list.
// Injectable so tests can pin the choice.
type SelectionStrategy interface {
	Select(sessionID string, turn int, candidates []string) string
}

// HashSelection derives a stable index from the session id and turn number.
// The same session asking at the same turn always gets the same question,
// while different sessions spread across the bank.
type HashSelection struct{}

func (HashSelection) Select(sessionID string, turn int, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	h := utils.HashStringToUint64(fmt.Sprintf("%s:%d", sessionID, turn))
	return candidates[h%uint64(len(candidates))]
}

// FirstSelection always picks the first candidate.
type FirstSelection struct{}

func (FirstSelection) Select(_ string, _ int, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	return candidates[0]
}

// NewStrategy maps a config name to a strategy, defaulting to hash selection.
func NewStrategy(name string) SelectionStrategy {
	if name == "first" {
		return FirstSelection{}
	}
	return HashSelection{}
}
