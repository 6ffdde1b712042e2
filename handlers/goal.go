package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"apollo/config"
	"apollo/supabase"
	"apollo/types"
)

func CreateGoalHandler(w http.ResponseWriter, r *http.Request) {
	var goal types.Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		config.Logger.Error("Failed to decode goal JSON:", err)
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	saved, err := supabase.NewGoalStore(client).CreateGoal(r.Context(), userID, goal)
	if err != nil {
		config.Logger.Error("Failed to create goal:", err)
		if types.IsUserFacing(err) {
			writeError(w, err.Error(), storeStatus(err))
			return
		}
		writeError(w, "Failed to create goal", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, types.GoalResponse{
		Success: true,
		Goal:    saved,
	})
}

func UpdateGoalHandler(w http.ResponseWriter, r *http.Request) {
	goalID := r.URL.Query().Get("id")
	if goalID == "" {
		writeError(w, "Missing goal ID", http.StatusBadRequest)
		return
	}
	if _, err := uuid.Parse(goalID); err != nil {
		config.Logger.Error("Invalid goal ID format:", err)
		writeError(w, "Invalid goal ID", http.StatusBadRequest)
		return
	}

	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil || len(updates) == 0 {
		config.Logger.Error("Failed to decode update JSON:", err)
		writeError(w, "Invalid or empty update payload", http.StatusBadRequest)
		return
	}

	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	updated, err := supabase.NewGoalStore(client).UpdateGoal(r.Context(), userID, goalID, updates)
	if err != nil {
		config.Logger.Error("Failed to update goal:", err)
		if types.IsUserFacing(err) {
			writeError(w, err.Error(), storeStatus(err))
			return
		}
		writeError(w, "Failed to update goal", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, types.GoalResponse{
		Success: true,
		Goal:    updated,
	})
}

func GetGoalsHandler(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	goals, err := supabase.NewGoalStore(client).ListGoals(r.Context(), userID, status, config.MaxContextGoals)
	if err != nil {
		config.Logger.Error("Failed to fetch goals:", err)
		if types.IsUserFacing(err) {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeError(w, "Failed to fetch goals", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, types.GetGoalsResponse{
		Success: true,
		Goals:   goals,
	})
}
