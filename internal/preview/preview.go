// Package preview composes transient what-if mutations over a snapshot.
// An Overlay is an ordered op log; Materialize applies it to a clone of the
// live snapshot so derivations can run against the hypothetical state while
// the persisted data stays untouched. Committing an overlay is op replay
// through the store, handled by the service layer.
package preview

import (
	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/errors"
)

// Kind is a pending operation's verb.
type Kind string

const (
	OpInsert Kind = "insert"
	OpUpdate Kind = "update"
	OpDelete Kind = "delete"
)

// Collection names a snapshot collection an op addresses.
type Collection string

const (
	CollectionChildren  Collection = "children"
	CollectionItems     Collection = "scheduled_items"
	CollectionInterests Collection = "interests"
	CollectionProfile   Collection = "profile"
)

// Op is one pending mutation. Payload carries the full entity for insert
// and update (*domain.Child, *domain.ScheduledItem, *domain.CampInterest,
// or *domain.Profile); delete needs only the ID.
type Op struct {
	Kind       Kind       `json:"kind"`
	Collection Collection `json:"collection"`
	ID         string     `json:"id"`
	Payload    any        `json:"payload,omitempty"`
}

// Overlay is an ordered log of pending operations. It is not safe for
// concurrent use; each preview session owns its overlay.
type Overlay struct {
	ops []Op
}

// NewOverlay returns an empty overlay.
func NewOverlay() *Overlay {
	return &Overlay{}
}

// Append adds an op to the end of the log.
func (o *Overlay) Append(op Op) {
	o.ops = append(o.ops, op)
}

// Ops returns a copy of the pending ops in order.
func (o *Overlay) Ops() []Op {
	out := make([]Op, len(o.ops))
	copy(out, o.ops)
	return out
}

// Len returns the number of pending ops.
func (o *Overlay) Len() int {
	return len(o.ops)
}

// Discard drops all pending ops.
func (o *Overlay) Discard() {
	o.ops = nil
}

// Truncate drops every op before index i, keeping the rest for retry after
// a partial commit.
func (o *Overlay) Truncate(i int) {
	if i <= 0 {
		return
	}
	if i >= len(o.ops) {
		o.ops = nil
		return
	}
	o.ops = o.ops[i:]
}

// Materialize applies the overlay in order to a clone of the snapshot and
// returns the result. The input snapshot is never modified. Op semantics on
// the clone are last-write-wins: insert and update both place the payload
// under its ID, and delete of a missing ID is a no-op, so materialization
// is total and deterministic for any op order.
func Materialize(s *domain.Snapshot, o *Overlay) (*domain.Snapshot, error) {
	out := s.Clone()
	for _, op := range o.ops {
		if err := apply(out, op); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func apply(s *domain.Snapshot, op Op) error {
	switch op.Collection {
	case CollectionChildren:
		if op.Kind == OpDelete {
			s.Children = deleteByID(s.Children, op.ID, func(c domain.Child) string { return c.ID })
			return nil
		}
		c, ok := op.Payload.(*domain.Child)
		if !ok {
			return errors.Validation("preview op payload is not a child")
		}
		s.Children = placeByID(s.Children, *c, func(c domain.Child) string { return c.ID })

	case CollectionItems:
		if op.Kind == OpDelete {
			s.Items = deleteByID(s.Items, op.ID, func(i domain.ScheduledItem) string { return i.ID })
			return nil
		}
		it, ok := op.Payload.(*domain.ScheduledItem)
		if !ok {
			return errors.Validation("preview op payload is not a scheduled item")
		}
		s.Items = placeByID(s.Items, *it, func(i domain.ScheduledItem) string { return i.ID })

	case CollectionInterests:
		if op.Kind == OpDelete {
			s.Interests = deleteByID(s.Interests, op.ID, func(ci domain.CampInterest) string { return ci.ID })
			return nil
		}
		ci, ok := op.Payload.(*domain.CampInterest)
		if !ok {
			return errors.Validation("preview op payload is not an interest")
		}
		s.Interests = placeByID(s.Interests, *ci, func(ci domain.CampInterest) string { return ci.ID })

	case CollectionProfile:
		if op.Kind == OpDelete {
			s.Profile = nil
			return nil
		}
		p, ok := op.Payload.(*domain.Profile)
		if !ok {
			return errors.Validation("preview op payload is not a profile")
		}
		s.Profile = p

	default:
		return errors.Validation("unknown preview collection: " + string(op.Collection))
	}
	return nil
}

func placeByID[T any](list []T, entity T, id func(T) string) []T {
	target := id(entity)
	for i := range list {
		if id(list[i]) == target {
			list[i] = entity
			return list
		}
	}
	return append(list, entity)
}

func deleteByID[T any](list []T, target string, id func(T) string) []T {
	for i := range list {
		if id(list[i]) == target {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}

// CommitResult reports how far a commit replay got. When Failed is set,
// FailedIndex addresses the op that errored and Remaining holds it plus
// everything after it, so the caller can retry.
type CommitResult struct {
	Applied     int   `json:"applied"`
	Failed      bool  `json:"failed"`
	FailedIndex int   `json:"failed_index,omitempty"`
	Remaining   []Op  `json:"remaining,omitempty"`
	Err         error `json:"-"`
}

// Applier persists a single op. The service layer backs this with real
// store calls.
type Applier func(op Op) error

// Commit replays the overlay through the applier in order, stopping at the
// first failure. On success the overlay is emptied; on failure the applied
// prefix is dropped and the overlay keeps the failing op and everything
// after it.
func Commit(o *Overlay, apply Applier) CommitResult {
	for i, op := range o.ops {
		if err := apply(op); err != nil {
			remaining := make([]Op, len(o.ops)-i)
			copy(remaining, o.ops[i:])
			o.Truncate(i)
			return CommitResult{
				Applied:     i,
				Failed:      true,
				FailedIndex: i,
				Remaining:   remaining,
				Err:         errors.PreviewConflict("preview commit failed at op " + string(op.Kind) + " " + op.ID).Wrap(err),
			}
		}
	}
	applied := o.Len()
	o.Discard()
	return CommitResult{Applied: applied}
}
