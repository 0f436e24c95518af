package tutor

import (
	"strings"
	"testing"

	"github.com/solonlabs/mentor/model"
)

// feed returns a channel that yields the given fragments then closes.
func feed(fragments ...string) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		for _, fragment := range fragments {
			ch <- fragment
		}
	}()
	return ch
}

func TestAggregateGrowsAssistantBody(t *testing.T) {
	fragments := []string{"The ", "loop ", "runs ", "five ", "times."}
	got := collect(t, Aggregate(nil, "explain this", feed(fragments...)))

	if len(got) != len(fragments) {
		t.Fatalf("emitted %d snapshots, want one per fragment", len(got))
	}

	want := ""
	for i, fragment := range fragments {
		want += fragment
		snap := got[i]
		if len(snap) != 2 {
			t.Fatalf("snapshot %d has %d turns, want user+assistant", i, len(snap))
		}
		if snap[0].Role != model.RoleUser || snap[0].Body != "explain this" {
			t.Errorf("snapshot %d user turn = %+v", i, snap[0])
		}
		if snap[1].Body != want {
			t.Errorf("snapshot %d assistant body = %q, want %q", i, snap[1].Body, want)
		}
	}

	final, _ := got[len(got)-1].Last()
	if final.Body != strings.Join(fragments, "") {
		t.Errorf("final body = %q, want all fragments concatenated", final.Body)
	}
}

func TestAggregateZeroFragments(t *testing.T) {
	got := collect(t, Aggregate(nil, "explain this", feed()))

	if len(got) != 1 {
		t.Fatalf("emitted %d snapshots, want one for an empty completion", len(got))
	}
	last, _ := got[0].Last()
	if last.Role != model.RoleAssistant || last.Body != "" {
		t.Errorf("empty completion turn = %+v", last)
	}
}

func TestAggregateSnapshotsIndependent(t *testing.T) {
	history := model.Conversation{
		model.UserTurn("before"),
		model.AssistantTurn("reply"),
	}
	got := collect(t, Aggregate(history, "explain this", feed("a", "b")))

	got[0][0].Body = "mutated"
	if got[1][0].Body != "before" {
		t.Error("snapshots share backing storage")
	}
	if history[0].Body != "before" {
		t.Error("aggregation mutated the caller's history")
	}
}
