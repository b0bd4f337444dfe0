package script

import (
	"fmt"
)

// Target is the tree a script is replayed against. Both *rbtree.Tree[int]
// and *rbtree.Synced[int] satisfy it.
type Target interface {
	Insert(key int) bool
	Delete(key int) bool
	Clear()
}

// Outcome records what an entry did. Applied is false for a duplicate
// insert or a delete of a missing key.
type Outcome struct {
	Entry   Entry
	Applied bool
}

func (o Outcome) String() string {
	switch o.Entry.Op {
	case OpInsert:
		if o.Applied {
			return fmt.Sprintf("inserted %d", o.Entry.Key)
		}
		return fmt.Sprintf("%d already present", o.Entry.Key)
	case OpDelete:
		if o.Applied {
			return fmt.Sprintf("deleted %d", o.Entry.Key)
		}
		return fmt.Sprintf("%d not found", o.Entry.Key)
	default:
		return "cleared"
	}
}

// Apply runs a single entry against t.
func Apply(t Target, e Entry) Outcome {
	switch e.Op {
	case OpInsert:
		return Outcome{Entry: e, Applied: t.Insert(e.Key)}
	case OpDelete:
		return Outcome{Entry: e, Applied: t.Delete(e.Key)}
	default:
		t.Clear()
		return Outcome{Entry: e, Applied: true}
	}
}
