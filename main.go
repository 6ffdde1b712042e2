package main

import (
	"log"
	"net/http"
	"os"

	"apollo/agent"
	"apollo/config"
	"apollo/handlers"
	"apollo/llm"
	"apollo/middleware"
	"apollo/profile"
)

func main() {

	config.LoadEnv()
	config.InitLogger()

	model := llm.NewClient(os.Getenv("OPENAI_BASE_URL"), os.Getenv("OPENAI_API_KEY"))

	var profileSource agent.ProfileSource
	if vaultURL := os.Getenv("VAULT_URL"); vaultURL != "" {
		profileSource = profile.NewClient(vaultURL)
	} else {
		config.Logger.Warn("VAULT_URL not set, chat context will have no user profile")
	}

	chat := &handlers.ChatHandler{
		Model:   model,
		Agent:   config.DefaultAgentConfig(),
		Profile: profileSource,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /chat", chat.Chat)
	mux.HandleFunc("POST /tasks/create", handlers.CreateTaskHandler)
	mux.HandleFunc("PATCH /tasks/update", handlers.UpdateTaskHandler)
	mux.HandleFunc("DELETE /tasks/delete", handlers.DeleteTaskHandler)
	mux.HandleFunc("GET /tasks", handlers.GetTasksHandler)
	mux.HandleFunc("POST /goals/create", handlers.CreateGoalHandler)
	mux.HandleFunc("PATCH /goals/update", handlers.UpdateGoalHandler)
	mux.HandleFunc("GET /goals", handlers.GetGoalsHandler)
	mux.HandleFunc("POST /milestones/create", handlers.CreateMilestoneHandler)
	mux.HandleFunc("PATCH /milestones/progress", handlers.UpdateMilestoneProgressHandler)
	mux.HandleFunc("GET /milestones", handlers.GetMilestonesHandler)

	handler := middleware.Chain(
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)(mux)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Server is running on port " + port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
