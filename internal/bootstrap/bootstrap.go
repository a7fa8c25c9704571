package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	goalsinadapter "stringlog/internal/modules/goals/adapter/in"
	goalsoutadapter "stringlog/internal/modules/goals/adapter/out"
	goalsservice "stringlog/internal/modules/goals/service"
	goalsusecase "stringlog/internal/modules/goals/usecase"
	metronomeinadapter "stringlog/internal/modules/metronome/adapter/in"
	metronomeoutadapter "stringlog/internal/modules/metronome/adapter/out"
	metronomedto "stringlog/internal/modules/metronome/dto"
	metronomeservice "stringlog/internal/modules/metronome/service"
	metronomeusecase "stringlog/internal/modules/metronome/usecase"
	practiceinadapter "stringlog/internal/modules/practice/adapter/in"
	practiceoutadapter "stringlog/internal/modules/practice/adapter/out"
	practiceservice "stringlog/internal/modules/practice/service"
	practiceusecase "stringlog/internal/modules/practice/usecase"
	remindersinadapter "stringlog/internal/modules/reminders/adapter/in"
	remindersoutadapter "stringlog/internal/modules/reminders/adapter/out"
	remindersservice "stringlog/internal/modules/reminders/service"
	remindersusecase "stringlog/internal/modules/reminders/usecase"
	repertoireinadapter "stringlog/internal/modules/repertoire/adapter/in"
	repertoireoutadapter "stringlog/internal/modules/repertoire/adapter/out"
	repertoirein "stringlog/internal/modules/repertoire/port/in"
	repertoireservice "stringlog/internal/modules/repertoire/service"
	repertoireusecase "stringlog/internal/modules/repertoire/usecase"
	statsinadapter "stringlog/internal/modules/stats/adapter/in"
	statsoutadapter "stringlog/internal/modules/stats/adapter/out"
	statsservice "stringlog/internal/modules/stats/service"
	statsusecase "stringlog/internal/modules/stats/usecase"
	transferinadapter "stringlog/internal/modules/transfer/adapter/in"
	transferoutadapter "stringlog/internal/modules/transfer/adapter/out"
	transferservice "stringlog/internal/modules/transfer/service"
	transferusecase "stringlog/internal/modules/transfer/usecase"
	"stringlog/internal/platform/clock"
	"stringlog/internal/platform/config"
	"stringlog/internal/platform/id"
	"stringlog/internal/platform/logging"
	"stringlog/internal/platform/sqlite"
	"stringlog/internal/platform/tx"
	uiapp "stringlog/internal/ui/app"
)

type App struct {
	Config      config.Config
	Preferences config.Preferences
	Logger      *zap.Logger

	PracticeCLI  practiceinadapter.CLIHandler
	StatsCLI     statsinadapter.CLIHandler
	GoalsCLI     goalsinadapter.CLIHandler
	SongsCLI     repertoireinadapter.CLIHandler
	MetronomeCLI metronomeinadapter.CLIHandler
	MetronomeTUI metronomeinadapter.TUIHandler
	RemindersCLI remindersinadapter.CLIHandler
	TransferCLI  transferinadapter.CLIHandler

	repertoire repertoirein.Usecase
	db         *sql.DB
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, OutputPath: cfg.LogPath})
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	prefs, err := config.LoadPreferences(cfg.PreferencesPath)
	if err != nil {
		return nil, err
	}
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	app, err := wire(ctx, cfg, prefs, db, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func wire(ctx context.Context, cfg config.Config, prefs config.Preferences, db *sql.DB, logger *zap.Logger) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}
	txm := tx.NewSerialManager()

	sessionRepo, err := practiceoutadapter.NewSQLiteSessionRepository(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("new session repository: %w", err)
	}
	sessionSvc := practiceservice.NewSessionService(clk, ids, sessionRepo, practiceoutadapter.NewMarkdownJournal(cfg.JournalDir))
	sessionReader := practiceusecase.NewReader(sessionSvc)

	goalRepo, err := goalsoutadapter.NewSQLiteGoalRepository(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("new goal repository: %w", err)
	}
	goalsUC := goalsusecase.NewInteractor(
		goalsservice.NewGoalService(clk, ids, goalRepo, goalsoutadapter.NewPracticeSampleSource(sessionReader), logger.Named("goals")),
		txm,
	)

	statsUC := statsusecase.NewInteractor(
		statsservice.NewStatsService(clk, statsoutadapter.NewPracticeEntrySource(sessionReader), logger.Named("stats")),
	)

	songRepo, err := repertoireoutadapter.NewSQLiteSongRepository(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("new song repository: %w", err)
	}
	repertoireUC := repertoireusecase.NewInteractor(
		repertoireservice.NewSongService(clk, ids, songRepo,
			repertoireoutadapter.NewSpotifyTrackSearcher(cfg.SpotifyClientID, cfg.SpotifyClientSecret)),
		txm,
		logger.Named("repertoire"),
	)

	practiceUC := practiceusecase.NewInteractor(
		sessionSvc,
		practiceservice.NewTimerService(clk, practiceoutadapter.NewFileTimerStore(cfg.TimerPath)),
		practiceoutadapter.NewRepertoireLedger(repertoireUC),
		practiceoutadapter.NewGoalRefresher(goalsUC),
		txm,
		logger.Named("practice"),
	)

	metronomeUC := metronomeusecase.NewInteractor(metronomeservice.NewScheduler(
		metronomeoutadapter.NewBeepOutput(),
		metronomeoutadapter.NewTimerDeferrer(),
		metronomeoutadapter.NewTickerFrames(),
		prefs.DefaultBPM,
		prefs.DefaultVolume,
		logger.Named("metronome"),
	))

	reminderRepo, err := remindersoutadapter.NewSQLiteReminderRepository(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("new reminder repository: %w", err)
	}
	remindersUC := remindersusecase.NewInteractor(remindersservice.NewReminderService(clk, ids, reminderRepo), txm)

	transferUC := transferusecase.NewInteractor(transferservice.NewTransferService(
		clk,
		transferoutadapter.NewPracticeArchive(practiceUC),
		transferoutadapter.NewRepertoireArchive(repertoireUC),
		transferoutadapter.NewGoalsArchive(goalsUC),
		logger.Named("transfer"),
	), txm)

	return &App{
		Config:       cfg,
		Preferences:  prefs,
		Logger:       logger,
		PracticeCLI:  practiceinadapter.NewCLIHandler(practiceUC),
		StatsCLI:     statsinadapter.NewCLIHandler(statsUC),
		GoalsCLI:     goalsinadapter.NewCLIHandler(goalsUC),
		SongsCLI:     repertoireinadapter.NewCLIHandler(repertoireUC),
		MetronomeCLI: metronomeinadapter.NewCLIHandler(metronomeUC),
		MetronomeTUI: metronomeinadapter.NewTUIHandler(metronomeUC),
		RemindersCLI: remindersinadapter.NewCLIHandler(remindersUC),
		TransferCLI:  transferinadapter.NewCLIHandler(transferUC),
		repertoire:   repertoireUC,
		db:           db,
	}, nil
}

// SavePreferences persists prefs and makes them the active set.
func (a *App) SavePreferences(prefs config.Preferences) error {
	if err := config.SavePreferences(a.Config.PreferencesPath, prefs); err != nil {
		return err
	}
	a.Preferences = prefs.Normalize()
	return nil
}

// Close releases the audio device and the database.
func (a *App) Close() error {
	err := errors.Join(a.MetronomeTUI.Close(), a.db.Close())
	_ = a.Logger.Sync()
	return err
}

func RunTUI(app *App) error {
	var program *tea.Program
	search := repertoireinadapter.NewSearchCoordinator(app.repertoire, repertoireinadapter.DefaultSearchDebounce, nil,
		func(result repertoireinadapter.SearchResult) {
			program.Send(uiapp.SearchResultMsg(result))
		})
	defer search.Close()

	model := uiapp.NewModel(uiapp.Deps{
		Practice:    app.PracticeCLI,
		Stats:       app.StatsCLI,
		Goals:       app.GoalsCLI,
		Songs:       app.SongsCLI,
		Metronome:   app.MetronomeTUI,
		Search:      search,
		Preferences: app.Preferences,
	})
	program = tea.NewProgram(model, tea.WithAltScreen())

	unsubscribe := app.MetronomeTUI.Subscribe(func(state metronomedto.State) {
		program.Send(uiapp.MetronomeMsg(state))
	})
	defer unsubscribe()

	_, err := program.Run()
	return err
}
