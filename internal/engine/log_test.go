package engine

import "testing"

// alternatingLog builds a log of n moves with strictly alternating marks
// starting with the first mover, filling cells left-to-right, top-to-bottom.
func alternatingLog(n int) MoveLog {
	log := MoveLog{}
	mark := FirstMover
	for i := 0; i < n; i++ {
		log = log.Record(Move{Row: i / 3, Col: i % 3, Mark: mark})
		mark = mark.Other()
	}
	return log
}

func TestActivePlayer_EmptyLog(t *testing.T) {
	if got := ActivePlayer(MoveLog{}); got != MarkX {
		t.Errorf("ActivePlayer(empty) got = %v, want %v", got, MarkX)
	}
	if got := ActivePlayer(nil); got != MarkX {
		t.Errorf("ActivePlayer(nil) got = %v, want %v", got, MarkX)
	}
}

func TestActivePlayer_Parity(t *testing.T) {
	for n := 0; n <= 9; n++ {
		log := alternatingLog(n)
		want := MarkX
		if n%2 == 1 {
			want = MarkO
		}
		if got := ActivePlayer(log); got != want {
			t.Errorf("ActivePlayer(log of %d) got = %v, want %v", n, got, want)
		}
	}
}

func TestRecord_Prepends(t *testing.T) {
	log := MoveLog{}.Record(Move{Row: 0, Col: 0, Mark: MarkX})
	log = log.Record(Move{Row: 1, Col: 1, Mark: MarkO})

	if len(log) != 2 {
		t.Fatalf("Record() log length got = %d, want 2", len(log))
	}
	if log[0].Mark != MarkO || log[0].Row != 1 {
		t.Errorf("Record() head got = %+v, want the newest move first", log[0])
	}
	if log[1].Mark != MarkX || log[1].Row != 0 {
		t.Errorf("Record() tail got = %+v, want the oldest move last", log[1])
	}
}

func TestRecord_DoesNotMutateReceiver(t *testing.T) {
	prior := MoveLog{}.Record(Move{Row: 0, Col: 0, Mark: MarkX})
	next := prior.Record(Move{Row: 2, Col: 2, Mark: MarkO})
	next = next.Record(Move{Row: 0, Col: 1, Mark: MarkX})

	if len(prior) != 1 {
		t.Fatalf("prior log length got = %d, want 1", len(prior))
	}
	if prior[0] != (Move{Row: 0, Col: 0, Mark: MarkX}) {
		t.Errorf("prior log head got = %+v, want original move", prior[0])
	}

	// Mutating the new log must not leak into the prior one.
	next[len(next)-1] = Move{Row: 2, Col: 0, Mark: MarkO}
	if prior[0] != (Move{Row: 0, Col: 0, Mark: MarkX}) {
		t.Errorf("prior log aliased by Record() result: %+v", prior[0])
	}
}

func TestMarkOther(t *testing.T) {
	tests := []struct {
		mark Mark
		want Mark
	}{
		{MarkX, MarkO},
		{MarkO, MarkX},
		{None, None},
	}

	for _, tt := range tests {
		if got := tt.mark.Other(); got != tt.want {
			t.Errorf("Other(%q) got = %v, want %v", tt.mark, got, tt.want)
		}
	}
}
