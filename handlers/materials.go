package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"contractorhub/services"
)

// HandleMaterialAdd creates a custom catalog entry. Validation failures come
// back as a field-error map so the form can render them inline.
func HandleMaterialAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userID, ok := requireUserID(e)
		if !ok {
			return nil
		}
		cfgRec, ok := findOwnedConfig(app, e, userID)
		if !ok {
			return nil
		}

		var in services.MaterialInput
		if err := e.BindBody(&in); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		if errs := services.ValidateMaterialInput(in); len(errs) > 0 {
			return e.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": errs})
		}

		material, err := services.AddMaterial(app, cfgRec.Id, in)
		if err != nil {
			log.Printf("material_add: could not save material: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not save material"})
		}

		return e.JSON(http.StatusOK, material)
	}
}

// HandleMaterialUpdate merges changed fields into an existing material.
func HandleMaterialUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userID, ok := requireUserID(e)
		if !ok {
			return nil
		}
		cfgRec, ok := findOwnedConfig(app, e, userID)
		if !ok {
			return nil
		}
		materialID := e.Request.PathValue("materialId")
		if !materialBelongsToConfig(app, e, materialID, cfgRec.Id) {
			return nil
		}

		var update services.MaterialUpdate
		if err := e.BindBody(&update); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}

		material, err := services.UpdateMaterial(app, materialID, update)
		if err != nil {
			log.Printf("material_update: could not update %s: %v", materialID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not update material"})
		}

		return e.JSON(http.StatusOK, material)
	}
}

// HandleMaterialArchive soft-deletes (archived=true) or restores
// (archived=false) a material.
func HandleMaterialArchive(app *pocketbase.PocketBase, archived bool) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userID, ok := requireUserID(e)
		if !ok {
			return nil
		}
		cfgRec, ok := findOwnedConfig(app, e, userID)
		if !ok {
			return nil
		}
		materialID := e.Request.PathValue("materialId")
		if !materialBelongsToConfig(app, e, materialID, cfgRec.Id) {
			return nil
		}

		if err := services.SetMaterialArchived(app, materialID, archived); err != nil {
			log.Printf("material_archive: could not set archived=%v on %s: %v", archived, materialID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not update material"})
		}

		return e.JSON(http.StatusOK, map[string]bool{"is_archived": archived})
	}
}

// HandleMaterialDelete hard-deletes a material. The UI must confirm first;
// there is no undo.
func HandleMaterialDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		userID, ok := requireUserID(e)
		if !ok {
			return nil
		}
		cfgRec, ok := findOwnedConfig(app, e, userID)
		if !ok {
			return nil
		}
		materialID := e.Request.PathValue("materialId")
		if !materialBelongsToConfig(app, e, materialID, cfgRec.Id) {
			return nil
		}

		if err := services.DeleteMaterial(app, materialID); err != nil {
			log.Printf("material_delete: could not delete %s: %v", materialID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not delete material"})
		}

		return e.JSON(http.StatusOK, map[string]bool{"deleted": true})
	}
}

func materialBelongsToConfig(app *pocketbase.PocketBase, e *core.RequestEvent, materialID, configID string) bool {
	rec, err := app.FindRecordById("materials", materialID)
	if err != nil {
		e.JSON(http.StatusNotFound, map[string]string{"error": "Material not found"})
		return false
	}
	if rec.GetString("config") != configID {
		e.JSON(http.StatusForbidden, map[string]string{"error": "Material belongs to another configuration"})
		return false
	}
	return true
}
