package main

import (
	stdLog "log"

	"github.com/joho/godotenv"

	"github.com/pkrylov/shareit-service/app"
	"github.com/pkrylov/shareit-service/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		stdLog.Println("no .env file, using environment")
	}
	cfg := config.NewConfig()

	if err := app.Run(cfg); err != nil {
		stdLog.Fatal(err)
	}
}
