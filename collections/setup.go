package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

// Setup programmatically creates/ensures the calculator_configs, materials
// and pricing_overrides collections exist.
func Setup(app *pocketbase.PocketBase) {
	configs := ensureCollection(app, "calculator_configs", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "owner", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:     "trade",
			Required: true,
			// Must stay in sync with services.Trades.
			Values: []string{
				"roofing", "siding", "decking", "fencing", "gutter",
				"electrical", "excavation", "tile", "veneer", "paint",
			},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.BoolField{Name: "is_configured"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})

		// One configuration per (user, trade). Concurrent first-use races
		// resolve against this index; see services.GetOrCreateConfiguration.
		c.AddIndex("idx_configs_owner_trade", true, "owner, trade", "")
	})

	ensureCollection(app, "materials", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "config",
			Required:      true,
			CollectionId:  configs.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "category", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "price", Required: false, Min: types.Pointer(0.0)})
		c.Fields.Add(&core.TextField{Name: "unit", Required: true})
		c.Fields.Add(&core.BoolField{Name: "is_archived"})
		c.Fields.Add(&core.NumberField{Name: "sort_order"})
		c.Fields.Add(&core.JSONField{Name: "metadata"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})

		c.AddIndex("idx_materials_config_sort", false, "config, sort_order", "")
		// Active names stay unique per category; archived duplicates are fine.
		c.AddIndex("idx_materials_active_name", true, "config, category, name COLLATE NOCASE", "is_archived = false")
	})

	ensureCollection(app, "pricing_overrides", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "config",
			Required:      true,
			CollectionId:  configs.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "component_key", Required: true})
		c.Fields.Add(&core.NumberField{Name: "value"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})

		c.AddIndex("idx_overrides_config_key", true, "config, component_key", "")
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
