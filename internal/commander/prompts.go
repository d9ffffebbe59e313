package commander

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"legendary/internal/data"
)

var ErrInvalidStats = errors.New("stats must be integers")

func (c *Commander) readLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.scanner.Text()), nil
}

// promptManualStats reads the six stats one line each. The first value that
// is not an integer aborts the whole entry.
func (c *Commander) promptManualStats() (data.Stats, error) {
	var stats data.Stats
	for i, label := range data.StatLabels {
		line, err := c.readLine(fmt.Sprintf("  %s: ", label))
		if err != nil {
			return stats, err
		}

		v, err := strconv.Atoi(line)
		if err != nil {
			c.logger.Debug("rejected stat input", "field", data.StatColumns[i], "input", line)
			return stats, fmt.Errorf("%w: %s = %q", ErrInvalidStats, label, line)
		}
		stats[i] = v
	}
	return stats, nil
}

func (c *Commander) lookupByName(name string) (data.Pokemon, bool) {
	p, ok := c.dex.Lookup(name)
	if !ok {
		fmt.Fprintln(c.out, c.red("❌ Pokémon not found. Please try a valid name."))
		return data.Pokemon{}, false
	}
	fmt.Fprintln(c.out, c.green(fmt.Sprintf("✔ Found stats for %s.", name)))
	return p, true
}

func (c *Commander) printBanner() {
	fmt.Fprintln(c.out, c.yellow("╔═══════════════════════════════════════════════════╗"))
	fmt.Fprintln(c.out, c.yellow("║            Legendary Pokémon Tester               ║"))
	fmt.Fprintln(c.out, c.yellow("╠═══════════════════════════════════════════════════╣"))
	fmt.Fprintln(c.out, c.yellow("║  Tip: You can type Pokémon names or stats.        ║"))
	fmt.Fprintln(c.out, c.yellow("╚═══════════════════════════════════════════════════╝"))
	fmt.Fprintln(c.out)
}

func (c *Commander) suggestPokemon() {
	names := c.dex.Names()
	if len(names) == 0 {
		return
	}

	fmt.Fprintln(c.out, c.cyan("Here are some Pokémon you can try typing in:"))
	for _, idx := range c.rng.Perm(len(names))[:min(suggestionCount, len(names))] {
		p, _ := c.dex.Lookup(names[idx])
		fmt.Fprintf(c.out, "  - %s\n", displayName(p.Name, p.Type1, p.Type2))
	}
	fmt.Fprintln(c.out)
}

func (c *Commander) printMainMenu() {
	fmt.Fprintln(c.out, c.cyan("\nWhat would you like to do?"))
	fmt.Fprintln(c.out, "  1. Predict single Pokémon")
	fmt.Fprintln(c.out, "  2. Lookup by Pokémon name")
	fmt.Fprintln(c.out, "  3. Manage Tournament Team")
	fmt.Fprintln(c.out, "  0. Exit")
}

func (c *Commander) printTeamMenu() {
	fmt.Fprintln(c.out, c.cyan("\nTeam Manager:"))
	fmt.Fprintln(c.out, "  1. Add Pokémon by name")
	fmt.Fprintln(c.out, "  2. Add Pokémon by stats")
	fmt.Fprintln(c.out, "  3. View current team")
	fmt.Fprintln(c.out, "  4. Classify team members")
	fmt.Fprintln(c.out, "  5. Clear team")
	fmt.Fprintln(c.out, "  0. Return to main menu")
}

func formatStats(stats []int) string {
	parts := make([]string, len(stats))
	for i, v := range stats {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
