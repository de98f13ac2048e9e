package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/exportapp2024/cordelia-api/internal/config"
	"github.com/exportapp2024/cordelia-api/internal/database"
	"github.com/exportapp2024/cordelia-api/internal/handlers"
	"github.com/exportapp2024/cordelia-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userService := services.NewUserService(db)
	teamService := services.NewTeamService(db)
	calendarService := services.NewCalendarService(db)
	chatService := services.NewChatService(db, calendarService)

	teamHandler := handlers.NewTeamHandler(teamService)
	userHandler := handlers.NewUserHandler(userService)
	calendarHandler := handlers.NewCalendarHandler(calendarService)
	chatHandler := handlers.NewChatHandler(chatService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	calendar := app.Group("/calendar")

	team := calendar.Group("/team")
	team.Get("/members/:userId", teamHandler.Members)
	team.Get("/invitations/sent/:userId", teamHandler.SentInvitations)
	team.Get("/invitations/:userId", teamHandler.PendingInvitations)
	team.Get("/info/:userId", teamHandler.Info)
	team.Get("/details/:userId", teamHandler.Details)
	team.Post("/invite", teamHandler.Invite)
	team.Post("/invitations/:id/accept", teamHandler.AcceptInvitation)
	team.Post("/invitations/:id/reject", teamHandler.RejectInvitation)
	team.Delete("/members/:memberId", teamHandler.RemoveMember)
	team.Post("/create", teamHandler.Create)
	team.Put("/update-name", teamHandler.UpdateName)

	calendar.Get("/events/:userId", calendarHandler.Events)
	calendar.Get("/account/:userId", calendarHandler.Account)

	calendar.Get("/user/:userId", userHandler.Get)
	calendar.Put("/user/:userId", userHandler.Update)

	calendar.Post("/chat", chatHandler.Send)
	calendar.Get("/chat/history/:userId", chatHandler.History)

	app.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
