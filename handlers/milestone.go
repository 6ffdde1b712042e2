package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"apollo/config"
	"apollo/supabase"
	"apollo/types"
)

func CreateMilestoneHandler(w http.ResponseWriter, r *http.Request) {
	var milestone types.Milestone
	if err := json.NewDecoder(r.Body).Decode(&milestone); err != nil {
		config.Logger.Error("Failed to decode milestone JSON:", err)
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	saved, err := supabase.NewMilestoneStore(client).CreateMilestone(r.Context(), userID, milestone)
	if err != nil {
		config.Logger.Error("Failed to create milestone:", err)
		if types.IsUserFacing(err) {
			writeError(w, err.Error(), storeStatus(err))
			return
		}
		writeError(w, "Failed to create milestone", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, types.MilestoneResponse{
		Success:   true,
		Milestone: saved,
	})
}

func UpdateMilestoneProgressHandler(w http.ResponseWriter, r *http.Request) {
	milestoneID := r.URL.Query().Get("id")
	if milestoneID == "" {
		writeError(w, "Missing milestone ID", http.StatusBadRequest)
		return
	}
	if _, err := uuid.Parse(milestoneID); err != nil {
		config.Logger.Error("Invalid milestone ID format:", err)
		writeError(w, "Invalid milestone ID", http.StatusBadRequest)
		return
	}

	var body struct {
		Progress *int `json:"progress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Progress == nil {
		config.Logger.Error("Failed to decode progress JSON:", err)
		writeError(w, "Invalid or missing progress payload", http.StatusBadRequest)
		return
	}

	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	updated, err := supabase.NewMilestoneStore(client).UpdateMilestoneProgress(r.Context(), userID, milestoneID, *body.Progress)
	if err != nil {
		config.Logger.Error("Failed to update milestone progress:", err)
		if types.IsUserFacing(err) {
			writeError(w, err.Error(), storeStatus(err))
			return
		}
		writeError(w, "Failed to update milestone", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, types.MilestoneResponse{
		Success:   true,
		Milestone: updated,
	})
}

func GetMilestonesHandler(w http.ResponseWriter, r *http.Request) {
	goalID := r.URL.Query().Get("goal_id")

	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	milestones, err := supabase.NewMilestoneStore(client).ListMilestones(r.Context(), userID, goalID, config.MaxContextMilestones)
	if err != nil {
		config.Logger.Error("Failed to fetch milestones:", err)
		writeError(w, "Failed to fetch milestones", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, types.GetMilestonesResponse{
		Success:    true,
		Milestones: milestones,
	})
}
