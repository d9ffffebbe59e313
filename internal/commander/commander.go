// Package commander runs the interactive menus: single predictions, name
// lookups and the persistent tournament team.
package commander

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/fatih/color"

	"legendary/internal/classifier"
	"legendary/internal/data"
	"legendary/internal/logging"
	"legendary/internal/team"
)

const suggestionCount = 5

// Predictor is the part of the classifier the menus need.
type Predictor interface {
	Predict(stats data.Stats) int
	Confidence(stats data.Stats) float64
}

type state int

const (
	mainMenu state = iota
	teamMenu
	exited
)

type Commander struct {
	dex     *data.Pokedex
	model   Predictor
	store   *team.Store
	team    []team.Entry
	scanner *bufio.Scanner
	out     io.Writer
	rng     *rand.Rand
	logger  *slog.Logger

	green   func(a ...interface{}) string
	red     func(a ...interface{}) string
	yellow  func(a ...interface{}) string
	cyan    func(a ...interface{}) string
	magenta func(a ...interface{}) string
}

func New(dex *data.Pokedex, model Predictor, store *team.Store, in io.Reader, out io.Writer) *Commander {
	return &Commander{
		dex:     dex,
		model:   model,
		store:   store,
		team:    []team.Entry{},
		scanner: bufio.NewScanner(in),
		out:     out,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:  logging.New("commander"),
		green:   color.New(color.FgGreen).SprintFunc(),
		red:     color.New(color.FgRed).SprintFunc(),
		yellow:  color.New(color.FgYellow, color.Bold).SprintFunc(),
		cyan:    color.New(color.FgCyan).SprintFunc(),
		magenta: color.New(color.FgMagenta, color.Bold).SprintFunc(),
	}
}

// WithRand replaces the source used for start-up suggestions.
func (c *Commander) WithRand(rng *rand.Rand) *Commander {
	c.rng = rng
	return c
}

// Run prints the banner and drives the menus until the user exits or input
// ends. End of input is a normal exit.
func (c *Commander) Run() error {
	c.printBanner()
	c.suggestPokemon()

	st := mainMenu
	for st != exited {
		var err error
		switch st {
		case mainMenu:
			st, err = c.mainMenuStep()
		case teamMenu:
			st, err = c.teamMenuStep()
		}

		if errors.Is(err, io.EOF) {
			c.logger.Debug("input closed")
			st = exited
		} else if err != nil {
			return err
		}
	}

	fmt.Fprintln(c.out, c.magenta("\n👋 Goodbye Trainer!"))
	return nil
}

func (c *Commander) mainMenuStep() (state, error) {
	c.printMainMenu()
	choice, err := c.readLine("Select option: ")
	if err != nil {
		return exited, err
	}

	switch choice {
	case "1":
		return mainMenu, c.predictManual()
	case "2":
		return mainMenu, c.predictByName()
	case "3":
		entries, err := c.store.Load()
		if err != nil {
			c.logger.Error("team file unreadable", "path", c.store.Path(), "error", err)
			fmt.Fprintln(c.out, c.red(fmt.Sprintf("Could not load team: %v", err)))
			return mainMenu, nil
		}
		c.team = entries
		return teamMenu, nil
	case "0":
		return exited, nil
	default:
		fmt.Fprintln(c.out, c.red("Invalid option."))
		return mainMenu, nil
	}
}

func (c *Commander) teamMenuStep() (state, error) {
	c.printTeamMenu()
	choice, err := c.readLine("Choose an option: ")
	if err != nil {
		return exited, err
	}

	switch choice {
	case "1":
		err = c.addByName()
	case "2":
		err = c.addByStats()
	case "3":
		c.viewTeam()
	case "4":
		c.classifyTeam()
	case "5":
		err = c.clearTeam()
	case "0":
		return mainMenu, nil
	default:
		fmt.Fprintln(c.out, c.red("Invalid choice. Try again."))
	}
	return teamMenu, err
}

func (c *Commander) predictManual() error {
	fmt.Fprintln(c.out, "Enter stats manually:")
	stats, err := c.promptManualStats()
	if errors.Is(err, ErrInvalidStats) {
		fmt.Fprintln(c.out, c.red("Invalid input. Please enter integers only."))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Prediction: %s\n", c.verdict(stats))
	return nil
}

func (c *Commander) predictByName() error {
	name, err := c.readLine("Enter Pokémon name: ")
	if err != nil {
		return err
	}

	p, ok := c.lookupByName(name)
	if !ok {
		return nil
	}
	fmt.Fprintf(c.out, "%s: %s\n", displayName(p.Name, p.Type1, p.Type2), c.verdict(p.Stats))
	return nil
}

func (c *Commander) addByName() error {
	name, err := c.readLine("Enter Pokémon name: ")
	if err != nil {
		return err
	}

	p, ok := c.lookupByName(name)
	if !ok {
		return nil
	}
	c.addEntry(team.NewEntry(p.Name, p.Stats, p.Type1, p.Type2))
	return nil
}

func (c *Commander) addByStats() error {
	name, err := c.readLine("Enter a nickname or placeholder name: ")
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, "Enter stats:")
	stats, err := c.promptManualStats()
	if errors.Is(err, ErrInvalidStats) {
		fmt.Fprintln(c.out, c.red("Invalid input. Please enter integers only."))
		return nil
	}
	if err != nil {
		return err
	}

	c.addEntry(team.NewEntry(name, stats, "", ""))
	return nil
}

func (c *Commander) addEntry(e team.Entry) {
	c.team = append(c.team, e)
	if c.save() {
		fmt.Fprintln(c.out, c.green(fmt.Sprintf("Added %s to your team.", e.Name)))
	}
}

func (c *Commander) viewTeam() {
	if len(c.team) == 0 {
		fmt.Fprintln(c.out, "Your team is empty.")
		return
	}

	fmt.Fprintln(c.out, c.cyan("Current Team:"))
	for i, e := range c.team {
		fmt.Fprintf(c.out, "  %d. %s - Stats: %s\n", i+1, displayName(e.Name, e.Type1, e.Type2), formatStats(e.Stats))
	}
}

func (c *Commander) classifyTeam() {
	if len(c.team) == 0 {
		fmt.Fprintln(c.out, "No team members to classify.")
		return
	}

	fmt.Fprintln(c.out, c.cyan("Team Classification:"))
	for _, e := range c.team {
		label := displayName(e.Name, e.Type1, e.Type2)
		stats, err := e.Features()
		if err != nil {
			c.logger.Warn("skipping team entry", "name", e.Name, "error", err)
			fmt.Fprintf(c.out, "  %s: %s\n", label, c.red("skipped, stored stats are incomplete"))
			continue
		}
		fmt.Fprintf(c.out, "  %s: %s\n", label, c.verdict(stats))
	}
}

func (c *Commander) clearTeam() error {
	answer, err := c.readLine("Are you sure you want to clear your team? (y/n): ")
	if err != nil {
		return err
	}
	if strings.ToLower(answer) != "y" {
		fmt.Fprintln(c.out, "Team kept.")
		return nil
	}

	c.team = []team.Entry{}
	if c.save() {
		fmt.Fprintln(c.out, c.green("Team cleared."))
	}
	return nil
}

// save persists the whole team. A failure is reported but the in-memory
// list keeps the change.
func (c *Commander) save() bool {
	if err := c.store.Save(c.team); err != nil {
		c.logger.Error("team save failed", "path", c.store.Path(), "error", err)
		fmt.Fprintln(c.out, c.red(fmt.Sprintf("Could not save team: %v", err)))
		return false
	}
	return true
}

func (c *Commander) verdict(stats data.Stats) string {
	p := c.model.Confidence(stats)
	if c.model.Predict(stats) == classifier.Legendary {
		return c.yellow("✨ Legendary!") + fmt.Sprintf(" (confidence %.0f%%)", p*100)
	}
	return "Not Legendary." + fmt.Sprintf(" (confidence %.0f%%)", (1-p)*100)
}
