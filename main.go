package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/allofdaniel/yessirpanda-dashboard-sub000/internal/ai"
	"github.com/allofdaniel/yessirpanda-dashboard-sub000/internal/database"
	"github.com/allofdaniel/yessirpanda-dashboard-sub000/internal/dispatch"
	"github.com/allofdaniel/yessirpanda-dashboard-sub000/internal/excel"
	"github.com/allofdaniel/yessirpanda-dashboard-sub000/internal/notify"
	"github.com/allofdaniel/yessirpanda-dashboard-sub000/internal/quiz"
	"github.com/allofdaniel/yessirpanda-dashboard-sub000/internal/scheduler"
	"github.com/allofdaniel/yessirpanda-dashboard-sub000/internal/server"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
)

func main() {
	importPath := flag.String("import", "", "path to an Excel or CSV workbook to import into the word catalog, then exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if *importPath != "" {
		runImport(*importPath)
		return
	}

	loc := loadLocation()
	log.Printf("Using timezone %s", loc.String())

	notifier := buildNotifier()
	content := buildContentGenerator()

	subscribers := database.NewSubscriberRepository()
	settings := database.NewSettingsRepository()
	words := database.NewWordRepository()
	attendance := database.NewAttendanceRepository()
	appConfig := database.NewConfigRepository()
	wrongWords := database.NewWrongWordRepository()
	quizResults := database.NewQuizResultRepository()

	dispatcher := dispatch.New(dispatch.Config{
		Subscribers:  subscribers,
		Settings:     settings,
		Words:        words,
		Attendance:   attendance,
		AppConfig:    appConfig,
		Sender:       notifier,
		Content:      content,
		Location:     loc,
		DashboardURL: os.Getenv("DASHBOARD_URL"),
	})

	processor := quiz.NewProcessor(wrongWords, quizResults, attendance, loc)
	progress := server.NewProgressHandler(subscribers, attendance, appConfig, loc)
	review := server.NewReviewHandler(wrongWords, subscribers, words, attendance)
	subHandler := server.NewSubscriberHandler(subscribers, settings, words, quizResults, wrongWords, appConfig)
	srv := server.New(dispatcher, processor, progress, review, subHandler)

	sched := scheduler.New(dispatcher, loc)
	sched.Start()
	defer sched.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("Server listening on :%s", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("Received signal: %v", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped successfully")
}

// loadLocation resolves the organizational timezone. All send-time gates and
// date stamps use this location, never the server-local clock.
func loadLocation() *time.Location {
	name := os.Getenv("TIMEZONE")
	if name == "" {
		name = "Asia/Seoul"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Invalid TIMEZONE %q, falling back to UTC: %v", name, err)
		return time.UTC
	}
	return loc
}

// buildNotifier assembles the delivery channels. Channels without
// configuration stay registered but report themselves unconfigured, so
// per-subscriber channel selection can still consult them.
func buildNotifier() *notify.Notifier {
	channels := []notify.Channel{
		notify.NewEmailChannel(),
		notify.NewGoogleChatChannel(),
	}

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		bot, err := tgbotapi.NewBotAPI(token)
		if err != nil {
			log.Printf("Failed to create Telegram bot, channel disabled: %v", err)
			channels = append(channels, notify.NewTelegramChannel(nil))
		} else {
			log.Printf("Telegram channel authorized as %s", bot.Self.UserName)
			channels = append(channels, notify.NewTelegramChannel(bot))
		}
	} else {
		channels = append(channels, notify.NewTelegramChannel(nil))
	}

	return notify.New(channels...)
}

// buildContentGenerator returns the AI client, or nil when no API key is
// configured. Dispatch treats a nil generator as "no generated sections".
func buildContentGenerator() dispatch.ContentGenerator {
	client, err := ai.New()
	if err != nil {
		log.Printf("AI content disabled: %v", err)
		return nil
	}
	return client
}

// runImport loads a workbook into the word catalog
func runImport(path string) {
	config := excel.DefaultImportConfig()
	config.FilePath = path

	result, err := excel.ImportWords(config)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Import finished: %d rows processed, %d imported, %d skipped",
		result.TotalProcessed, result.Imported, result.Skipped)
	for _, e := range result.Errors {
		log.Printf("  %s", e)
	}
}
