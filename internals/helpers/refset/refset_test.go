package refset

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

func TestAddIsIdempotent(t *testing.T) {
	id := uuid.New()
	set := pq.StringArray{}

	set = Add(set, id)
	set = Add(set, id)

	if len(set) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(set))
	}
	if !Contains(set, id) {
		t.Fatalf("set should contain %s", id)
	}
}

func TestRemove(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	set := pq.StringArray{a.String(), b.String()}

	set = Remove(set, a)

	if Contains(set, a) {
		t.Fatalf("set should no longer contain %s", a)
	}
	if !Contains(set, b) {
		t.Fatalf("set should still contain %s", b)
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	a := uuid.New()
	set := pq.StringArray{a.String()}

	set = Remove(set, uuid.New())

	if len(set) != 1 || !Contains(set, a) {
		t.Fatalf("unexpected set after removing absent id: %v", set)
	}
}

func TestRoundTrip(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	set := FromUUIDs(ids)

	got := ToUUIDs(set)
	if len(got) != len(ids) {
		t.Fatalf("expected %d ids, got %d", len(ids), len(got))
	}
	for i := range ids {
		if got[i] != ids[i] {
			t.Fatalf("id %d mismatch: %s != %s", i, got[i], ids[i])
		}
	}
}
