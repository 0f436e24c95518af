package tutor

import (
	"strings"

	"github.com/solonlabs/mentor/model"
)

// Aggregate turns a fragment stream into conversation snapshots. The first
// fragment materializes history plus the new user turn plus an assistant turn
// holding that fragment; every later fragment re-emits the whole conversation
// with the assistant body grown by concatenation. A stream that closes
// without fragments emits exactly one snapshot with an empty assistant body.
//
// Snapshots are independent values: mutating one never affects another, and
// the caller's history is copied once up front. The returned channel closes
// after the fragment channel does.
func Aggregate(history model.Conversation, userContent string, fragments <-chan string) <-chan model.Conversation {
	snapshots := make(chan model.Conversation)
	go func() {
		defer close(snapshots)

		base := history.Clone()
		var body strings.Builder
		emitted := false
		for fragment := range fragments {
			body.WriteString(fragment)
			emitted = true
			snapshots <- snapshot(base, userContent, body.String())
		}
		if !emitted {
			snapshots <- snapshot(base, userContent, "")
		}
	}()
	return snapshots
}

// snapshot builds a fresh conversation value ending in the user turn and the
// assistant body as streamed so far.
func snapshot(history model.Conversation, userContent, assistantBody string) model.Conversation {
	snap := make(model.Conversation, 0, len(history)+2)
	snap = append(snap, history...)
	snap = append(snap, model.UserTurn(userContent), model.AssistantTurn(assistantBody))
	return snap
}
