package duckhunt

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/duckclick/internal/core"
	"github.com/vovakirdan/duckclick/internal/run"
	"github.com/vovakirdan/duckclick/internal/spawn"
	"github.com/vovakirdan/duckclick/internal/target"
)

// Sprites per tier. Each row is exactly as wide as the tier's hit-box.
var (
	goodSprites = map[spawn.Tier][]string{
		spawn.TierLarge:  {" __  ", "<(o )", " (__)"},
		spawn.TierMedium: {"<o)", "(_)"},
		spawn.TierSmall:  {"o"},
	}
	decoySprites = map[spawn.Tier][]string{
		spawn.TierLarge:  {" ___ ", "[x x]", " ^^^ "},
		spawn.TierMedium: {"[x]", "^^^"},
		spawn.TierSmall:  {"x"},
	}
)

// warnFraction is the remaining lifetime below which a target changes color.
const warnFraction = 0.25

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	snap := g.controller.Snapshot()
	g.renderHUD(dst, snap)
	g.renderArena(dst)
	g.renderFooter(dst, snap.Phase)
	g.renderOverlay(dst, snap)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorYellow)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", minScreenW, minScreenH), core.ColorGray)
}

func (g *Game) renderHUD(dst *core.Screen, snap run.Snapshot) {
	left := fmt.Sprintf(" Level %d: %s", snap.CurrentLevelID, snap.LevelName)
	dst.DrawTextColored(0, 0, left, core.ColorCyan)

	timeColor := core.ColorWhite
	if snap.TimeLeft <= 5 {
		timeColor = core.ColorBrightRed
	}
	right := fmt.Sprintf("Ducks %d/%d  Score %d  Lives %d  ", snap.GoodClicked, snap.GoodTarget, snap.Score, snap.LivesRemaining)
	timeText := fmt.Sprintf("Time %4.1f ", snap.TimeLeft)

	x := dst.Width() - len(right) - len(timeText)
	dst.DrawTextColored(x, 0, right, core.ColorWhite)
	dst.DrawTextColored(x+len(right), 0, timeText, timeColor)

	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

func (g *Game) renderArena(dst *core.Screen) {
	for _, t := range g.arena.Targets() {
		drawTarget(dst, t)
	}
}

func drawTarget(dst *core.Screen, t *target.Target) {
	sprites := goodSprites
	color := core.ColorBrightYellow
	if t.Kind() == spawn.KindDecoy {
		sprites = decoySprites
		color = core.ColorRed
	}
	if t.Remaining() < warnFraction {
		color = core.ColorOrange
	}

	b := t.Bounds()
	for dy, row := range sprites[t.Tier] {
		for dx, r := range row {
			if r == ' ' {
				continue
			}
			dst.SetColored(b.X+dx, b.Y+dy, r, color)
		}
	}
}

func (g *Game) renderFooter(dst *core.Screen, phase run.Phase) {
	var help string
	switch phase {
	case run.PhasePlaying:
		help = "click ducks, avoid decoys  |  P pause  R restart  N new game  Q quit"
	case run.PhasePaused:
		help = "P resume  R restart level  N new game  Q quit"
	default:
		help = "ENTER or click to continue  |  N new game  Q quit"
	}
	dst.DrawHLine(0, dst.Height()-2, dst.Width(), '─', core.ColorGray)
	dst.DrawTextCentered(dst.Height()-1, help, core.ColorGray)
}

func (g *Game) renderOverlay(dst *core.Screen, snap run.Snapshot) {
	switch snap.Phase {
	case run.PhaseMenu:
		lines := []string{
			fmt.Sprintf("Level %d: %s", snap.CurrentLevelID, snap.LevelName),
			fmt.Sprintf("Hit %d ducks in %.0f seconds", snap.GoodTarget, snap.TimeLimit),
		}
		if snap.Difficulty != "" {
			lines = append(lines, "Difficulty: "+snap.Difficulty)
		}
		drawCenteredBox(dst, "DUCK CLICK", lines, core.ColorBrightGreen)

	case run.PhasePaused:
		drawCenteredBox(dst, "PAUSED", []string{"Press P to resume"}, core.ColorYellow)

	case run.PhaseLevelComplete:
		lines := []string{fmt.Sprintf("Score: %d", snap.Score)}
		if snap.CurrentLevelID == snap.CheckpointLevel {
			lines = append(lines, "Checkpoint reached")
		}
		drawCenteredBox(dst, "LEVEL COMPLETE", lines, core.ColorBrightGreen)

	case run.PhaseFailed:
		lines := []string{"Time's up!"}
		if snap.Policy == run.MultiLife {
			lines = append(lines, fmt.Sprintf("Lives left after this: %d", max(snap.LivesRemaining-1, 0)))
		} else {
			lines = append(lines, "Back to level 1")
		}
		drawCenteredBox(dst, "LEVEL FAILED", lines, core.ColorBrightRed)

	case run.PhaseRunOver:
		drawCenteredBox(dst, "GAME OVER", []string{fmt.Sprintf("Final score: %d", snap.Score)}, core.ColorBrightRed)

	case run.PhaseAllLevelsComplete:
		drawCenteredBox(dst, "ALL LEVELS COMPLETE", []string{fmt.Sprintf("Final score: %d", snap.Score)}, core.ColorBrightGreen)
	}
}

// drawCenteredBox draws a bordered message box in the middle of the screen.
func drawCenteredBox(dst *core.Screen, title string, lines []string, c core.Color) {
	width := len(title)
	for _, l := range lines {
		width = max(width, len(l))
	}
	boxW := width + 4
	boxH := len(lines) + 4
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	dst.DrawTextColored(box.X+(boxW-len(title))/2, box.Y+1, title, c)
	for i, l := range lines {
		dst.DrawText(box.X+(boxW-len(l))/2, box.Y+3+i, l)
	}
}

// String renders the game as plain text, for screenshots and tests.
func (g *Game) String() string {
	s := core.NewScreen(g.screenW, g.screenH)
	g.Render(s)
	return strings.TrimRight(s.String(), "\n")
}
