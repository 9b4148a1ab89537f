// Package itemtemplates maintains template instances attached to items.
// An instance carries a frozen snapshot of the source template's group,
// name and field schema; the snapshot only moves when an upsert explicitly
// names a template to re-pull from.
package itemtemplates

import (
	"errors"
	"fmt"

	"github.com/rfallows/stash/pkg/stash/apperr"
	"github.com/rfallows/stash/pkg/stash/models"
	"gorm.io/gorm"
)

// UpsertInput is one upsert request, already validated at the HTTP layer.
type UpsertInput struct {
	ItemID                uint
	InstanceID            *uint
	TemplateID            *uint
	TemplateGroupSnapshot string
	TemplateNameSnapshot  string
	SchemaSnapshot        models.FieldSchema
	Values                map[string]any
}

// UpsertInstance creates or updates a template instance on an item.
//
// Schema resolution: when TemplateID is set, the live template's current
// schema is snapshotted, overriding any caller-supplied snapshot (the
// attach/refresh path). Without a TemplateID the caller's snapshot is
// stored verbatim, and an update that supplies none keeps the stored
// snapshot (the edit-values-only path). Values are stored as given;
// checking them against the schema is the presentation layer's problem.
func UpsertInstance(db *gorm.DB, ownerID uint, in UpsertInput) (*models.ItemTemplate, error) {
	var item models.Item
	err := db.Select("id").Where("id = ? AND owner_id = ?", in.ItemID, ownerID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: item %d", apperr.ErrNotFound, in.ItemID)
		}
		return nil, err
	}

	schema := in.SchemaSnapshot
	haveSchema := schema != nil
	if in.TemplateID != nil {
		var tpl models.Template
		err := db.Where("id = ? AND owner_id = ?", *in.TemplateID, ownerID).First(&tpl).Error
		if err == nil {
			schema = tpl.Schema
			haveSchema = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// A vanished template is not an error here: the caller keeps
		// whatever snapshot it supplied or already stored.
	}

	if in.InstanceID != nil {
		var instance models.ItemTemplate
		err := db.Where("id = ? AND owner_id = ? AND item_id = ?", *in.InstanceID, ownerID, in.ItemID).
			First(&instance).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: template instance %d", apperr.ErrNotFound, *in.InstanceID)
			}
			return nil, err
		}

		instance.TemplateGroupSnapshot = in.TemplateGroupSnapshot
		instance.TemplateNameSnapshot = in.TemplateNameSnapshot
		if haveSchema {
			instance.SchemaSnapshot = schema
		}
		instance.Values = in.Values
		if in.TemplateID != nil {
			instance.TemplateID = in.TemplateID
		}

		if err := db.Save(&instance).Error; err != nil {
			return nil, err
		}
		return &instance, nil
	}

	instance := models.ItemTemplate{
		OwnerID:               ownerID,
		ItemID:                in.ItemID,
		TemplateID:            in.TemplateID,
		TemplateGroupSnapshot: in.TemplateGroupSnapshot,
		TemplateNameSnapshot:  in.TemplateNameSnapshot,
		SchemaSnapshot:        schema,
		Values:                in.Values,
	}
	if err := db.Create(&instance).Error; err != nil {
		return nil, err
	}
	return &instance, nil
}

// RemoveInstance soft-deletes an instance. Removing an absent or already
// deleted instance is a no-op, so the call is idempotent.
func RemoveInstance(db *gorm.DB, ownerID, instanceID uint) error {
	return db.Where("id = ? AND owner_id = ?", instanceID, ownerID).
		Delete(&models.ItemTemplate{}).Error
}

// ListByItem returns the live instances of an item, oldest first.
func ListByItem(db *gorm.DB, ownerID, itemID uint) ([]models.ItemTemplate, error) {
	var item models.Item
	err := db.Select("id").Where("id = ? AND owner_id = ?", itemID, ownerID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: item %d", apperr.ErrNotFound, itemID)
		}
		return nil, err
	}

	var instances []models.ItemTemplate
	err = db.Where("owner_id = ? AND item_id = ?", ownerID, itemID).
		Order("created_at ASC").Find(&instances).Error
	if err != nil {
		return nil, err
	}
	return instances, nil
}
