package tags

import (
	"errors"
	"fmt"

	"github.com/rfallows/stash/pkg/stash/apperr"
	"github.com/rfallows/stash/pkg/stash/models"
	"gorm.io/gorm"
)

// resolveTags loads the requested tags scoped to the owner. Every id must
// resolve to a live tag; one unknown id fails the whole call so a caller
// never ends up with a partially applied tag set.
func resolveTags(db *gorm.DB, ownerID uint, tagIDs []uint) ([]models.Tag, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}

	var tags []models.Tag
	if err := db.Where("owner_id = ? AND id IN ?", ownerID, tagIDs).Find(&tags).Error; err != nil {
		return nil, err
	}

	found := make(map[uint]bool, len(tags))
	for _, t := range tags {
		found[t.ID] = true
	}
	for _, id := range tagIDs {
		if !found[id] {
			return nil, fmt.Errorf("%w: invalid tag id %d", apperr.ErrInvalidReference, id)
		}
	}
	return tags, nil
}

// AttachTags attaches the given tags to an item that has no associations
// yet (the create path). It creates one snapshot-carrying association per
// tag, bumps each tag's usage counter, and returns the tag names for the
// item's snapshot field, in the order the tags resolved. Runs on whatever
// db/tx handle it is given; item existence is the caller's concern.
func AttachTags(tx *gorm.DB, ownerID, itemID uint, tagIDs []uint) ([]string, error) {
	tags, err := resolveTags(tx, ownerID, tagIDs)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return []string{}, nil
	}

	assocs := make([]models.ItemTag, len(tags))
	names := make([]string, len(tags))
	ids := make([]uint, len(tags))
	for i, t := range tags {
		assocs[i] = models.ItemTag{
			OwnerID:         ownerID,
			ItemID:          itemID,
			TagID:           t.ID,
			TagNameSnapshot: t.Name,
		}
		names[i] = t.Name
		ids[i] = t.ID
	}

	if err := tx.Create(&assocs).Error; err != nil {
		return nil, err
	}

	err = tx.Model(&models.Tag{}).
		Where("owner_id = ? AND id IN ?", ownerID, ids).
		UpdateColumn("usage_count", gorm.Expr("usage_count + ?", 1)).Error
	if err != nil {
		return nil, err
	}

	return names, nil
}

// SetItemTags replaces an item's tag set with the given tags, as one
// transaction: retire every live association, create fresh ones carrying
// the tags' current names, bump usage counters (a full resync counts as a
// new attachment event even for tags that were already present), and
// rewrite the item's tag-names snapshot. Either all four steps commit or
// none do.
func SetItemTags(db *gorm.DB, ownerID, itemID uint, tagIDs []uint) error {
	var item models.Item
	err := db.Select("id").Where("id = ? AND owner_id = ?", itemID, ownerID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: item %d", apperr.ErrNotFound, itemID)
		}
		return err
	}

	// Resolve before opening the transaction so a bad id never touches
	// existing associations.
	tags, err := resolveTags(db, ownerID, tagIDs)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ? AND item_id = ?", ownerID, itemID).
			Delete(&models.ItemTag{}).Error; err != nil {
			return err
		}

		names := make([]string, len(tags))
		if len(tags) > 0 {
			assocs := make([]models.ItemTag, len(tags))
			ids := make([]uint, len(tags))
			for i, t := range tags {
				assocs[i] = models.ItemTag{
					OwnerID:         ownerID,
					ItemID:          itemID,
					TagID:           t.ID,
					TagNameSnapshot: t.Name,
				}
				names[i] = t.Name
				ids[i] = t.ID
			}
			if err := tx.Create(&assocs).Error; err != nil {
				return err
			}
			err := tx.Model(&models.Tag{}).
				Where("owner_id = ? AND id IN ?", ownerID, ids).
				UpdateColumn("usage_count", gorm.Expr("usage_count + ?", 1)).Error
			if err != nil {
				return err
			}
		}

		return tx.Model(&models.Item{}).
			Where("id = ?", itemID).
			Update("tag_names_snapshot", names).Error
	})
}
