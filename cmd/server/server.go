package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/thereayou/meeting-planner/internal/database"
	"github.com/thereayou/meeting-planner/internal/handlers"
	"github.com/thereayou/meeting-planner/internal/mailer"
	"github.com/thereayou/meeting-planner/internal/planner"
	ws "github.com/thereayou/meeting-planner/internal/websocket"
	"github.com/thereayou/meeting-planner/pkg/auth"
)

type Server struct {
	Router       *gin.Engine
	DB           *database.Database
	Redis        *redis.Client
	Hub          *ws.Hub
	Synchronizer *planner.Synchronizer
	Reminders    *planner.ReminderScheduler
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(
		os.Getenv("JWT_SECRET"),
		24*time.Hour,
	)
	verifier := auth.NewVerifier(jwtMgr, rdb)

	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		smtpPort = 465
	}
	smtpMailer := mailer.NewSMTPMailer(
		os.Getenv("SMTP_HOST"),
		smtpPort,
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASS"),
	)

	mailFrom := os.Getenv("MAIL_FROM")
	if mailFrom == "" {
		mailFrom = `"Meeting Planner" <admin@meetingplanner.in>`
	}

	hub := ws.NewHub()
	go hub.Run()

	dispatcher := planner.NewDispatcher(hub, smtpMailer, mailFrom)
	reminders := planner.NewReminderScheduler(dispatcher.ReminderFired)
	detector := planner.NewConflictDetector(dbConn)
	synchronizer := planner.NewSynchronizer(dbConn, detector, reminders, dispatcher)

	meetingH := handlers.NewMeetingHandler(verifier, hub, synchronizer)
	wsH := handlers.NewWebSocketHandler(hub, meetingH)

	router := gin.Default()
	APIEndpoints(router, wsH)

	return &Server{
		Router:       router,
		DB:           dbConn,
		Redis:        rdb,
		Hub:          hub,
		Synchronizer: synchronizer,
		Reminders:    reminders,
	}
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}
