package main

import (
	"log"

	"Pigment/CronJobs"
	"Pigment/FiberConfig"
	"Pigment/Models"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}

	Models.Connect()

	overdueChecker := CronJobs.NewOverdueChecker(Models.DB, Models.OverdueAfterDays, true)
	if err := overdueChecker.Start(); err != nil {
		log.Println("Failed to start overdue sweep:", err)
	}

	FiberConfig.FiberConfig()
}
