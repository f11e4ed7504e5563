package setup

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/berkayda/hawkeye-public/config"
	"github.com/berkayda/hawkeye-public/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

// answers raw wizard input, kept as strings until the final confirmation.
type answers struct {
	provider   string
	ticker     string
	dataFile   string
	period     string
	schedule   string
	runOnStart bool
	chatID     string
	dashboard  string
}

func defaultAnswers() answers {
	def := config.Default()
	return answers{
		provider:   def.Provider,
		ticker:     def.Ticker,
		period:     def.Period,
		schedule:   def.Schedule(),
		runOnStart: def.RunOnStart,
	}
}

// RunTUI launches the terminal configuration wizard and writes the result to path.
func RunTUI(path string) (config.Config, error) {
	a := defaultAnswers()

	// step 1: instrument
	step("STEP 1: INSTRUMENT")
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Which market should the watcher follow?\n"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Market data provider").
				Options(
					huh.NewOption("Yahoo Finance (stocks, ETFs, indices)", config.ProviderYahoo),
					huh.NewOption("Binance (spot)", config.ProviderBinance),
					huh.NewOption("Bybit (spot)", config.ProviderBybit),
					huh.NewOption("Local CSV or Parquet file", config.ProviderFile),
				).
				Value(&a.provider),
		),
	).Run()
	if err != nil {
		return config.Config{}, err
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Ticker").
			Description(tickerHint(a.provider)).
			Value(&a.ticker).
			Validate(func(s string) error { return validateTicker(a.provider, s) }),
	}
	if a.provider == config.ProviderFile {
		fields = append(fields, huh.NewInput().
			Title("Bars file").
			Description("Path to a .csv or .parquet file with t,o,h,l,c,v columns").
			Value(&a.dataFile).
			Validate(validateDataFile),
		)
	}
	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return config.Config{}, err
	}

	// step 2: history and schedule
	step("STEP 2: HISTORY AND SCHEDULE")
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("History period").
				Description("How much history to load each day (e.g. 1y, 2y, 6mo, max). At least 200 bars are needed").
				Value(&a.period).
				Validate(func(s string) error {
					_, err := config.ParsePeriod(s)
					return err
				}),
			huh.NewInput().
				Title("Daily run time (UTC)").
				Description("HH:MM, e.g. 00:20").
				Value(&a.schedule).
				Validate(func(s string) error {
					_, _, err := config.ParseSchedule(s)
					return err
				}),
			huh.NewConfirm().
				Title("Run a cycle immediately on start?").
				Value(&a.runOnStart),
		),
	).Run()
	if err != nil {
		return config.Config{}, err
	}

	// step 3: delivery
	step("STEP 3: NOTIFICATIONS")
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Telegram chat id").
				Description(fmt.Sprintf("Leave empty to log alerts only. The bot token is read from %s", config.EnvTelegramToken)).
				Value(&a.chatID).
				Validate(validateChatID),
			huh.NewInput().
				Title("Dashboard address").
				Description("e.g. :8080, leave empty to disable").
				Value(&a.dashboard),
		),
	).Run()
	if err != nil {
		return config.Config{}, err
	}

	cfg, err := a.toConfig()
	if err != nil {
		return config.Config{}, err
	}

	// confirmation
	step("FINAL CONFIRMATION")
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary(cfg)))

	var confirm bool
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return config.Config{}, err
	}
	if !confirm {
		return config.Config{}, errors.New("setup cancelled by user")
	}

	if err := config.Save(path, cfg); err != nil {
		return config.Config{}, err
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(fmt.Sprintf("\n✓ Configuration saved to %s", path)))
	time.Sleep(1500 * time.Millisecond) // small pause to read success message
	return cfg, nil
}

func step(title string) {
	fmt.Print("\033[H\033[2J") // clear screen
	fmt.Println(headerStyle.Render("HAWKEYE CONFIG WIZARD"))
	fmt.Println(stepStyle.Render(title))
}

func (a answers) toConfig() (config.Config, error) {
	cfg := config.Default()
	cfg.Provider = a.provider
	cfg.Ticker = strings.TrimSpace(a.ticker)
	cfg.DataFile = strings.TrimSpace(a.dataFile)
	cfg.Period = strings.ToLower(strings.TrimSpace(a.period))
	cfg.RunOnStart = a.runOnStart
	cfg.Dashboard.Addr = strings.TrimSpace(a.dashboard)

	var err error
	if cfg.RunHour, cfg.RunMinute, err = config.ParseSchedule(a.schedule); err != nil {
		return config.Config{}, err
	}
	if s := strings.TrimSpace(a.chatID); s != "" {
		if cfg.Telegram.ChatID, err = strconv.ParseInt(s, 10, 64); err != nil {
			return config.Config{}, errors.Errorf("invalid chat id: %s", s)
		}
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func summary(cfg config.Config) string {
	chat := "log only"
	if cfg.Telegram.ChatID != 0 {
		chat = strconv.FormatInt(cfg.Telegram.ChatID, 10)
	}
	dashboard := "disabled"
	if cfg.Dashboard.Addr != "" {
		dashboard = cfg.Dashboard.Addr
	}
	return fmt.Sprintf(
		"Provider: %s\nTicker: %s\nPeriod: %s\nSchedule: %s UTC\nTelegram chat: %s\nDashboard: %s\n",
		cfg.Provider, cfg.Ticker, cfg.Period, cfg.Schedule(), chat, dashboard,
	)
}

func tickerHint(provider string) string {
	switch provider {
	case config.ProviderBinance, config.ProviderBybit:
		return "Pair as BASE_QUOTE (e.g. BTC_USDT)"
	default:
		return "Symbol as listed by the provider (e.g. SPY, ^GSPC, AAPL)"
	}
}

func validateTicker(provider, s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("ticker cannot be empty")
	}
	if provider != config.ProviderBinance && provider != config.ProviderBybit {
		return nil
	}

	pair, err := domain.ParsePair(s)
	if err != nil {
		return err
	}
	if pair.To == "" {
		return errors.New("invalid format: must be BASE_QUOTE (e.g. BTC_USDT)")
	}
	return nil
}

func validateDataFile(s string) error {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(s))) {
	case ".csv", ".parquet":
		return nil
	default:
		return errors.New("file must end with .csv or .parquet")
	}
}

func validateChatID(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseInt(s, 10, 64); err != nil {
		return errors.New("chat id must be an integer, e.g. -1001234567890")
	}
	return nil
}
