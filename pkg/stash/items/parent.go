package items

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rfallows/stash/pkg/stash/apperr"
	"github.com/rfallows/stash/pkg/stash/models"
	"gorm.io/gorm"
)

// maxAncestorDepth bounds the ancestor walk during cycle detection. It
// keeps the check cheap and terminates even if stored data is already
// corrupted into a loop. A cycle whose closing edge sits beyond this many
// hops goes undetected; in practice real hierarchies are far shallower.
const maxAncestorDepth = 30

// ParentRef is a tri-state parent reference in JSON request bodies:
// field absent = leave the parent unchanged, explicit null = detach,
// an id = reparent to that item.
type ParentRef struct {
	Set bool  `json:"-"`
	ID  *uint `json:"-"`
}

func (r *ParentRef) UnmarshalJSON(data []byte) error {
	r.Set = true
	if string(data) == "null" {
		r.ID = nil
		return nil
	}
	var id uint
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	r.ID = &id
	return nil
}

func (r ParentRef) MarshalJSON() ([]byte, error) {
	if !r.Set || r.ID == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*r.ID)
}

// parentNode is the slice of an item the resolver needs while walking.
type parentNode struct {
	ID       uint
	ParentID *uint
}

// ResolveParent validates a proposed parent assignment for an item and
// returns the parent id to persist. The second return value reports
// whether the caller should write anything at all (false when ref was
// absent from the request). itemID is zero on create, in which case the
// cycle check is skipped: a row that does not exist yet cannot be anyone's
// ancestor.
//
// The candidate must be a live item of the same owner, must not be the
// item itself, and must not have the item anywhere in its ancestor chain.
// ResolveParent performs no writes; persisting the result is the caller's
// job.
func ResolveParent(db *gorm.DB, ownerID uint, itemID uint, ref ParentRef) (*uint, bool, error) {
	if !ref.Set {
		return nil, false, nil
	}
	if ref.ID == nil {
		return nil, true, nil
	}
	if itemID != 0 && *ref.ID == itemID {
		return nil, false, fmt.Errorf("%w: item cannot be its own parent", apperr.ErrInvalidRelation)
	}

	var parent parentNode
	err := db.Model(&models.Item{}).
		Select("id", "parent_id").
		Where("id = ? AND owner_id = ?", *ref.ID, ownerID).
		First(&parent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, fmt.Errorf("%w: invalid parent id", apperr.ErrInvalidReference)
		}
		return nil, false, err
	}

	// Cycle check: walk up the candidate's parent chain. The walk treats
	// the chain as a point-in-time snapshot; a concurrent reparent during
	// the walk is tolerated.
	if itemID != 0 {
		cur := parent
		for depth := 0; depth < maxAncestorDepth && cur.ParentID != nil; depth++ {
			if *cur.ParentID == itemID {
				return nil, false, fmt.Errorf("%w: circular parent relation", apperr.ErrInvalidRelation)
			}
			var next parentNode
			err := db.Model(&models.Item{}).
				Select("id", "parent_id").
				Where("id = ? AND owner_id = ?", *cur.ParentID, ownerID).
				First(&next).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// Dangling or soft-deleted ancestor ends the chain.
					break
				}
				return nil, false, err
			}
			cur = next
		}
	}

	return ref.ID, true, nil
}
