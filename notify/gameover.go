package notify

import (
	"hash/fnv"

	"github.com/lixenwraith/git-conflict/constants"
)

// GameOverMessage picks a flavor line for a finished session
// The pick is stable per session, so every redraw shows the same line
func GameOverMessage(sessionID string) string {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	return constants.GameOverMessages[h.Sum32()%uint32(len(constants.GameOverMessages))]
}
