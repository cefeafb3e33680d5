package main

import (
	"log"
	"os"

	"github.com/abdalla1234567890/chatbot/internal/apiclient"
	"github.com/abdalla1234567890/chatbot/internal/session"
	"github.com/abdalla1234567890/chatbot/internal/web"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	apiBase := os.Getenv("API_BASE_URL")
	if apiBase == "" {
		apiBase = "http://localhost:8000"
	}

	api := apiclient.New(apiBase)
	sessions := session.NewCookieStore(os.Getenv("SESSION_SECRET"))
	server := web.NewServer(api, sessions)

	port := os.Getenv("WEB_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Web client listening on :%s (backend %s)", port, apiBase)
	if err := server.Router().Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
