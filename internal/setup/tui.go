package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vadiminshakov/marti-upbit/config"
)

// ConfigFile file the wizard writes.
const ConfigFile = "config.gen.yaml"

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

// answers raw wizard input.
type answers struct {
	mode            string
	location        string
	pollInterval    string
	topGainers      string
	takeProfit      string
	sizingDivisor   string
	minOrderValue   string
	journalDir      string
	accessKey       string
	secretKey       string
	saveCredentials bool
}

func defaultAnswers() answers {
	def := config.Default()
	return answers{
		mode:          "dry",
		location:      "Asia/Seoul",
		pollInterval:  def.PollInterval.String(),
		topGainers:    strconv.Itoa(def.TopGainers),
		takeProfit:    def.TakeProfitPercent.String(),
		sizingDivisor: def.SizingDivisor.String(),
		minOrderValue: def.MinOrderValue.String(),
		journalDir:    def.JournalDir,
	}
}

func screen(step string) {
	fmt.Print("\033[H\033[2J") // clear screen
	fmt.Println(headerStyle.Render("MARTI UPBIT CONFIG WIZARD"))
	fmt.Println(stepStyle.Render(step))
}

// RunTUI launches the terminal configuration wizard and returns the path of the written config.
func RunTUI() (string, error) {
	a := defaultAnswers()
	var confirm bool

	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("MARTI UPBIT CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Daily pivot trading on the Upbit KRW market.\n"))

	fmt.Println(stepStyle.Render("STEP 1: MODE"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How should orders be handled?").
				Options(
					huh.NewOption("Dry run (log orders only)", "dry"),
					huh.NewOption("Live trading", "live"),
				).
				Value(&a.mode),
		),
	).Run()
	if err != nil {
		return "", err
	}

	screen("STEP 2: SCHEDULE")
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Time Zone").
				Description("IANA name the 08:55-09:05 window is evaluated in").
				Value(&a.location).
				Validate(func(s string) error {
					_, err := time.LoadLocation(s)
					return err
				}),
			huh.NewInput().
				Title("Poll Interval").
				Description("Duration string, at most 1m (e.g. 30s, 1m)").
				Value(&a.pollInterval).
				Validate(validatePollInterval),
		),
	).Run()
	if err != nil {
		return "", err
	}

	screen("STEP 3: STRATEGY")
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Top Gainers").
				Description("Markets bought per day").
				Value(&a.topGainers).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Take Profit %").
				Description("Above this profit exits move to the pivot resistance").
				Value(&a.takeProfit).
				Validate(validatePositiveDecimal),
			huh.NewInput().
				Title("Sizing Divisor").
				Description("Each buy spends KRW balance / divisor").
				Value(&a.sizingDivisor).
				Validate(validatePositiveDecimal),
			huh.NewInput().
				Title("Min Order Value (KRW)").
				Value(&a.minOrderValue).
				Validate(validatePositiveDecimal),
			huh.NewInput().
				Title("Order Journal Directory").
				Description("Leave empty to disable").
				Value(&a.journalDir),
		),
	).Run()
	if err != nil {
		return "", err
	}

	screen("STEP 4: CREDENTIALS")
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Upbit API keys to .env?").
				Description("Skip if UPBIT_ACCESS_KEY and UPBIT_SECRET_KEY are already exported").
				Value(&a.saveCredentials),
		),
	).Run()
	if err != nil {
		return "", err
	}
	if a.saveCredentials {
		err = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Access Key").
					Value(&a.accessKey),
				huh.NewInput().
					Title("Secret Key").
					Value(&a.secretKey).
					EchoMode(huh.EchoModePassword),
			),
		).Run()
		if err != nil {
			return "", err
		}
	}

	screen("FINAL CONFIRMATION")
	summary := fmt.Sprintf(
		"Mode: %s\nTime zone: %s\nInterval: %s\nTop gainers: %s\nTake profit: %s%%\n",
		a.mode, a.location, a.pollInterval, a.topGainers, a.takeProfit,
	)
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save and start").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return "", err
	}
	if !confirm {
		return "", fmt.Errorf("setup cancelled by user")
	}

	path, err := save(".", a)
	if err != nil {
		return "", err
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(fmt.Sprintf("\n✓ Configuration saved to %s\nStarting bot...", path)))
	time.Sleep(1500 * time.Millisecond) // small pause to read success message
	return path, nil
}

func (a answers) configTmp() config.ConfigTmp {
	journalDir := a.journalDir
	return config.ConfigTmp{
		TopGainersStr:        a.topGainers,
		TakeProfitPercentStr: a.takeProfit,
		SizingDivisorStr:     a.sizingDivisor,
		MinOrderValueStr:     a.minOrderValue,
		PollInterval:         a.pollInterval,
		Location:             a.location,
		DryRun:               a.mode == "dry",
		JournalDir:           &journalDir,
	}
}

// save writes the yaml config (and .env when requested) into dir, validating
// the result the same way the bot will load it.
func save(dir string, a answers) (string, error) {
	data, err := yaml.Marshal(a.configTmp())
	if err != nil {
		return "", fmt.Errorf("failed to generate yaml: %w", err)
	}
	if _, err := config.Parse(data); err != nil {
		return "", fmt.Errorf("generated config is invalid: %w", err)
	}

	path := filepath.Join(dir, ConfigFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save config file: %w", err)
	}

	if a.saveCredentials && a.accessKey != "" && a.secretKey != "" {
		env := map[string]string{
			config.EnvAccessKey: a.accessKey,
			config.EnvSecretKey: a.secretKey,
		}
		if err := godotenv.Write(env, filepath.Join(dir, ".env")); err != nil {
			return "", fmt.Errorf("failed to save credentials: %w", err)
		}
	}

	return path, nil
}

func validatePollInterval(s string) error {
	d, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	if d <= 0 || d > time.Minute {
		return fmt.Errorf("must be between 1s and 1m")
	}
	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a whole number")
	}
	if n < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}

func validatePositiveDecimal(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("must be a valid number")
	}
	if !d.IsPositive() {
		return fmt.Errorf("must be greater than 0")
	}
	return nil
}
