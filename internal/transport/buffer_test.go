package transport

import (
	"reflect"
	"testing"
)

func TestBufferSnapshotIsolation(t *testing.T) {
	var b Buffer
	b.Append("hello ")
	snap := b.Snapshot()
	b.Append("world")

	if snap.Text != "hello " {
		t.Errorf("snapshot text = %q, mutated after the fact", snap.Text)
	}
	if b.Snapshot().Text != "hello world" {
		t.Errorf("buffer text = %q", b.Snapshot().Text)
	}
}

func TestBufferGenerationTracksMutation(t *testing.T) {
	var b Buffer
	first := b.Snapshot()
	b.Append("x")
	second := b.Snapshot()
	if second.Gen == first.Gen {
		t.Error("generation unchanged after append")
	}
	third := b.Snapshot()
	if third.Gen != second.Gen {
		t.Error("generation changed without mutation")
	}
}

func TestBufferFinishedClearsOnAppend(t *testing.T) {
	var b Buffer
	b.Append("response")
	b.Finish()
	if !b.Snapshot().Finished {
		t.Fatal("not finished after Finish")
	}
	b.Append(" more")
	if b.Snapshot().Finished {
		t.Error("still finished after new streamed content")
	}
}

func TestBufferPromptOrdering(t *testing.T) {
	var b Buffer
	b.Append("some transcript text of sufficient length")
	for _, off := range []int{30, 5, 30, 12} {
		b.MarkPrompt(off)
	}
	got := b.Snapshot().Prompts
	want := []int{5, 12, 30}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("prompts = %v, want %v", got, want)
	}
}

func TestBufferEmptyAppendIsNoop(t *testing.T) {
	var b Buffer
	gen := b.Snapshot().Gen
	b.Append("")
	if b.Snapshot().Gen != gen {
		t.Error("empty append bumped the generation")
	}
}
