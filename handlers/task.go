package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"apollo/config"
	"apollo/supabase"
	"apollo/types"
)

func storeStatus(err error) int {
	if errors.Is(err, types.ErrNotOwned) {
		return http.StatusNotFound
	}
	if types.IsUserFacing(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	var task types.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		config.Logger.Error("Failed to decode task JSON:", err)
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	saved, err := supabase.NewTaskStore(client).CreateTask(r.Context(), userID, task)
	if err != nil {
		config.Logger.Error("Failed to create task:", err)
		if types.IsUserFacing(err) {
			writeError(w, err.Error(), storeStatus(err))
			return
		}
		writeError(w, "Failed to create task", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, types.TaskResponse{
		Success: true,
		Task:    saved,
	})
}

func UpdateTaskHandler(w http.ResponseWriter, r *http.Request) {
	taskID := r.URL.Query().Get("id")
	if taskID == "" {
		writeError(w, "Missing task ID", http.StatusBadRequest)
		return
	}
	if _, err := uuid.Parse(taskID); err != nil {
		config.Logger.Error("Invalid task ID format:", err)
		writeError(w, "Invalid task ID", http.StatusBadRequest)
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

	updated, err := supabase.NewTaskStore(client).UpdateTask(r.Context(), userID, taskID, updates)
	if err != nil {
		config.Logger.Error("Failed to update task:", err)
		if types.IsUserFacing(err) {
			writeError(w, err.Error(), storeStatus(err))
			return
		}
		writeError(w, "Failed to update task", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, types.TaskResponse{
		Success: true,
		Task:    updated,
	})
}

func DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, "Only DELETE is allowed", http.StatusMethodNotAllowed)
		return
	}

	taskID := r.URL.Query().Get("id")
	if taskID == "" {
		writeError(w, "Missing task ID", http.StatusBadRequest)
		return
	}

	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := supabase.NewTaskStore(client).DeleteTask(r.Context(), userID, taskID); err != nil {
		config.Logger.Error("Failed to delete task:", err)
		if types.IsUserFacing(err) {
			writeError(w, err.Error(), storeStatus(err))
			return
		}
		writeError(w, "Could not delete task", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, types.DeleteTaskResponse{
		Success: true,
		Message: "Task deleted successfully",
	})
}

func GetTasksHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := q.Get("status")

	limit := 20
	if limitStr := q.Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			config.Logger.Error("Invalid limit value:", err)
			writeError(w, "Invalid limit value", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to create Supabase client:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	tasks, err := supabase.NewTaskStore(client).List(r.Context(), userID, status, limit)
	if err != nil {
		config.Logger.Error("Failed to fetch tasks:", err)
		writeError(w, "Failed to fetch tasks", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, types.GetTasksResponse{
		Success: true,
		Tasks:   tasks,
		Total:   len(tasks),
	})
}
