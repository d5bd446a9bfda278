package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/google/uuid"

	"github.com/remihq/remi/pkg/api"
	"github.com/remihq/remi/pkg/api/handler"
	"github.com/remihq/remi/pkg/database"
	"github.com/remihq/remi/pkg/domain"
	"github.com/remihq/remi/pkg/logger"
	"github.com/remihq/remi/pkg/openai"
	"github.com/remihq/remi/pkg/persona"
	"github.com/remihq/remi/pkg/player"
	"github.com/remihq/remi/pkg/repository"
	"github.com/remihq/remi/pkg/services"
	"github.com/remihq/remi/pkg/state"
	"github.com/remihq/remi/pkg/tools"
	"github.com/remihq/remi/pkg/workers"
)

type Config struct {
	OpenAIToken  string        `env:"OPEN_AI_TOKEN,required"`
	OpenAIModel  string        `env:"OPEN_AI_MODEL" envDefault:"gpt-4o-mini"`
	ListenAddr   string        `env:"LISTEN_ADDR" envDefault:":8080"`
	DBPath       string        `env:"DB_PATH" envDefault:"data/remi.db"`
	PersonaPath  string        `env:"PERSONA_PATH"`
	PlayDelay    time.Duration `env:"YOUTUBE_PLAY_DELAY" envDefault:"250ms"`
	RestartDelay time.Duration `env:"YOUTUBE_RESTART_DELAY" envDefault:"300ms"`
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	if err := runMain(); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func runMain() error {
	workerGroup, err := setupWorkers()
	if err != nil {
		return err
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGHUP)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return workerGroup.Start(ctx)
}

func setupWorkers() (workers.Group, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	var worker workers.Worker
	var workerGroup workers.Group

	db, err := database.NewSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("creating db: %w", err)
	}

	p, err := persona.Load(cfg.PersonaPath)
	if err != nil {
		return nil, fmt.Errorf("loading persona: %w", err)
	}

	recorder := tools.NewRecorder()
	toolFunctions := []openai.ToolFunction{
		tools.NewSelectContent(recorder),
		tools.NewControlMediaPlayback(recorder),
	}

	openAIClient, err := openai.NewClient(cfg.OpenAIToken, cfg.OpenAIModel, p, recorder, toolFunctions)
	if err != nil {
		return nil, fmt.Errorf("creating open ai client: %w", err)
	}

	catalogRepository := repository.NewCatalogRepository()
	chatLogRepository := repository.NewChatLogRepository()
	slotRepository := repository.NewSlotRepository(db)

	stateStore := state.NewStore()

	eventCh := make(chan domain.Event)
	emit := func(event domain.Event) { eventCh <- event }

	registry := player.NewRegistry(emit)

	duckingService := services.NewDuckingService(registry)
	playbackService := services.NewPlaybackService(stateStore, registry, cfg.PlayDelay, cfg.RestartDelay)

	restoreState(catalogRepository, chatLogRepository, stateStore, slotRepository)

	// A fresh install opens with the persona's greeting in the chat log.
	if len(chatLogRepository.All()) == 0 && p.Greeting != "" {
		chatLogRepository.Append(domain.ChatMessage{
			ID:        uuid.NewString(),
			Sender:    domain.SenderAI,
			Text:      p.Greeting,
			Timestamp: time.Now(),
		})
	}

	contentService := services.NewContentService(
		catalogRepository,
		stateStore,
		openAIClient,
		registry,
		duckingService,
		playbackService,
		eventCh,
	)

	turnService := services.NewTurnService(
		openAIClient,
		catalogRepository,
		chatLogRepository,
		stateStore,
		eventCh,
	)

	voiceService := services.NewVoiceService(duckingService, eventCh)
	speechService := services.NewSpeechService(openAIClient, duckingService)

	hub := api.NewHub()

	contentHandler := handler.NewContent(contentService, catalogRepository)
	chatHandler := handler.NewChat(turnService, chatLogRepository)
	voiceHandler := handler.NewVoice(voiceService)
	speechHandler := handler.NewSpeech(speechService)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/content/add", contentHandler.Add)
	mux.HandleFunc("/api/content/list", contentHandler.List)
	mux.HandleFunc("/api/content/delete", contentHandler.Delete)
	mux.HandleFunc("/api/content/select", contentHandler.Select)
	mux.HandleFunc("/api/content/displayed", contentHandler.Displayed)
	mux.HandleFunc("/api/chat/send", chatHandler.Send)
	mux.HandleFunc("/api/chat/history", chatHandler.History)
	mux.HandleFunc("/api/voice/start", voiceHandler.Start)
	mux.HandleFunc("/api/voice/result", voiceHandler.Result)
	mux.HandleFunc("/api/voice/fail", voiceHandler.Fail)
	mux.HandleFunc("/api/voice/stop", voiceHandler.Stop)
	mux.HandleFunc("/api/voice/status", voiceHandler.Status)
	mux.HandleFunc("/api/speech/speak", speechHandler.Speak)
	mux.HandleFunc("/api/speech/done", speechHandler.Done)
	mux.Handle("/api/events", hub)

	if worker, err = workers.NewEventDispatcher(
		eventCh,
		hub,
		slotRepository,
		catalogRepository,
		chatLogRepository,
		playbackService,
	); err == nil {
		workerGroup = append(workerGroup, worker)
	} else {
		return nil, err
	}

	if worker, err = workers.NewHTTPServer(cfg.ListenAddr, api.RequestID(mux)); err == nil {
		workerGroup = append(workerGroup, worker)
	} else {
		return nil, err
	}

	return workerGroup, nil
}

type slotLoader interface {
	Load(ctx context.Context, name string, out any) error
}

type catalogRestorer interface {
	Replace(items []domain.ContentItem)
}

type chatLogRestorer interface {
	Replace(messages []domain.ChatMessage)
}

// restoreState rehydrates in-memory repositories from the state slots. A
// missing slot just means a fresh install; anything else is logged and the
// app starts empty rather than refusing to boot.
func restoreState(catalog catalogRestorer, chatLog chatLogRestorer, store *state.Store, slots slotLoader) {
	ctx := context.Background()

	var items []domain.ContentItem
	switch err := slots.Load(ctx, domain.SlotContentItems, &items); {
	case err == nil:
		catalog.Replace(items)
	case !errors.Is(err, domain.ErrNotFound):
		slog.Warn("restoring content items", logger.Err(err))
	}

	var messages []domain.ChatMessage
	switch err := slots.Load(ctx, domain.SlotChatMessages, &messages); {
	case err == nil:
		chatLog.Replace(messages)
	case !errors.Is(err, domain.ErrNotFound):
		slog.Warn("restoring chat messages", logger.Err(err))
	}

	var selection domain.SelectionChange
	switch err := slots.Load(ctx, domain.SlotSelectedContent, &selection); {
	case err == nil:
		if selection.ContentID != "" {
			store.Select(selection.ContentID)
		}
	case !errors.Is(err, domain.ErrNotFound):
		slog.Warn("restoring selection", logger.Err(err))
	}
}
