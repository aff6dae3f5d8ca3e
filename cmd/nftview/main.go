package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"nftview/internal/buildmode"
	"nftview/internal/config"
	"nftview/internal/logging"
	"nftview/internal/token"
	"nftview/internal/trace"
	"nftview/internal/ui"
	"nftview/internal/wallet"
)

func main() {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrHelp) {
		fmt.Print(config.Usage())
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n\n%s", err, config.Usage())
		os.Exit(2)
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logFile, err := logging.Configure(cfg.LogFile, level)
	if err != nil {
		return err
	}
	defer logFile.Close()

	dbPath := cfg.DBPath
	if dbPath == "" {
		if dbPath, err = token.DefaultPath(); err != nil {
			return err
		}
	}
	store, err := token.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if cfg.Command == config.CommandImport {
		return importFixtures(ctx, store, cfg.Args[0])
	}
	return runScreen(ctx, cfg, store)
}

func importFixtures(ctx context.Context, store *token.Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read fixtures: %w", err)
	}
	sum, err := store.Import(ctx, data)
	if err != nil {
		return err
	}
	logging.L.Info().
		Str("file", path).
		Int("tokens", sum.Tokens).
		Int("assets", sum.Assets).
		Int("activity", sum.Activity).
		Msg("imported fixtures")
	fmt.Printf("Imported %d tokens, %d assets, %d transfers from %s\n", sum.Tokens, sum.Assets, sum.Activity, path)
	return nil
}

func runScreen(ctx context.Context, cfg *config.Config, store *token.Store) error {
	w, err := wallet.New(cfg.Wallet.Address, cfg.Wallet.Type)
	if err != nil {
		return err
	}

	tp, err := trace.NewProvider(ctx)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(sctx); err != nil {
			logging.L.Warn().Err(err).Msg("trace shutdown")
		}
	}()

	m, err := ui.NewAppModel(ctx, ui.Deps{
		Tokens:      store,
		Definitions: store,
		Recorder:    tp.Recorder(),
	}, ui.Options{
		SessionID: uuid.NewString(),
		ChainID:   token.ChainID(cfg.Token.ChainID),
		Address:   cfg.Token.Address,
		Wallet:    w,
		Debug:     buildmode.Debug,
	})
	if err != nil {
		logging.L.Error().Err(err).Str("address", cfg.Token.Address).Msg("open token")
		if _, perr := tea.NewProgram(ui.NewErrorModel(err), tea.WithAltScreen()).Run(); perr != nil {
			return perr
		}
		return err
	}

	p := tea.NewProgram(m.AsTeaModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	if m.Result != "" {
		fmt.Println(m.Result)
	}
	return nil
}
