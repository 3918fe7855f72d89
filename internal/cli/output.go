package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Account:
		o.printAccount(v)
	case AuthResult:
		o.printAuthResult(v)
	case GameState:
		o.printGameState(v)
	case MoveResult:
		o.printMoveResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Account response type (matches API)
type Account struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines account and token
type AuthResult struct {
	Account      Account `json:"account"`
	SessionToken string  `json:"session_token"`
}

// Cell response type
type Cell struct {
	Letter string `json:"letter"`
	Blank  bool   `json:"blank,omitempty"`
}

// Board response type
type Board struct {
	Cells [][]Cell `json:"cells"`
}

// RackSlot response type
type RackSlot struct {
	Letter string `json:"letter"`
	Blank  bool   `json:"blank,omitempty"`
}

// Player response type
type Player struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"display_name"`
	Score       int        `json:"score"`
	RackCount   int        `json:"rack_count"`
	Rack        []RackSlot `json:"rack,omitempty"`
}

// PlacedTile response type
type PlacedTile struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Letter string `json:"letter"`
	Blank  bool   `json:"blank,omitempty"`
}

// Move response type
type Move struct {
	Kind     string       `json:"kind"`
	PlayerID string       `json:"player_id"`
	Words    []string     `json:"words,omitempty"`
	Score    int          `json:"score"`
	Tiles    []PlacedTile `json:"tiles,omitempty"`
	PlayedAt time.Time    `json:"played_at"`
}

// GameState response type
type GameState struct {
	ID            string       `json:"id"`
	Seq           int64        `json:"seq"`
	Board         Board        `json:"board"`
	BagCount      int          `json:"bag_count"`
	Players       []Player     `json:"players"`
	CurrentPlayer string       `json:"current_player"`
	TurnNumber    int          `json:"turn_number"`
	LastMove      *Move        `json:"last_move,omitempty"`
	MyPreview     []PlacedTile `json:"my_preview,omitempty"`
	Ended         bool         `json:"ended"`
	Winner        *string      `json:"winner,omitempty"`
	EndReason     string       `json:"end_reason,omitempty"`
}

// MoveResult response type
type MoveResult struct {
	Move  Move      `json:"move"`
	State GameState `json:"state"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAccount(a Account) {
	guestStr := "no"
	if a.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", a.DisplayName, a.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printAccount(a.Account)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printGameState(g GameState) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Version: %d\n", g.Seq)
	fmt.Printf("Turn: %d\n", g.TurnNumber)
	fmt.Printf("Bag: %d tiles\n", g.BagCount)

	if g.Ended {
		fmt.Println("State: ended")
		if g.EndReason != "" {
			fmt.Printf("End Reason: %s\n", g.EndReason)
		}
		if g.Winner != nil {
			fmt.Printf("Winner: %s\n", *g.Winner)
		}
	} else if g.CurrentPlayer != "" {
		fmt.Printf("To Move: %s\n", g.CurrentPlayer)
	}

	fmt.Printf("Players (%d):\n", len(g.Players))
	for _, p := range g.Players {
		marker := ""
		if !g.Ended && p.ID == g.CurrentPlayer {
			marker = " *"
		}
		fmt.Printf("  - %s (%s): %d points, %d tiles%s\n",
			p.DisplayName, p.ID, p.Score, p.RackCount, marker)
		if len(p.Rack) > 0 {
			fmt.Printf("    Rack: %s\n", formatRack(p.Rack))
		}
	}

	if g.LastMove != nil {
		fmt.Println("\nLast Move:")
		o.printMove(*g.LastMove)
	}

	fmt.Println("\nBoard:")
	o.printBoard(&g.Board)
}

func formatRack(rack []RackSlot) string {
	parts := make([]string, 0, len(rack))
	for _, slot := range rack {
		if slot.Blank {
			parts = append(parts, "["+slot.Letter+"]")
		} else {
			parts = append(parts, slot.Letter)
		}
	}
	return strings.Join(parts, " ")
}

func (o *Output) printMove(m Move) {
	fmt.Printf("  %s by %s", m.Kind, m.PlayerID)
	if m.Kind == "play" {
		fmt.Printf(": %s for %d points", strings.Join(m.Words, ", "), m.Score)
	}
	fmt.Println()
}

func (o *Output) printMoveResult(r MoveResult) {
	fmt.Println("Move accepted:")
	o.printMove(r.Move)
	fmt.Println()
	o.printGameState(r.State)
}

func (o *Output) printBoard(b *Board) {
	if b == nil || len(b.Cells) == 0 {
		return
	}

	size := len(b.Cells)

	// Print column headers
	fmt.Print("    ")
	for col := 0; col < size; col++ {
		fmt.Printf("%2d ", col)
	}
	fmt.Println()

	// Print top border
	fmt.Print("   +")
	for col := 0; col < size; col++ {
		fmt.Print("---")
	}
	fmt.Println("+")

	// Print rows
	for row := 0; row < size; row++ {
		fmt.Printf("%2d |", row)
		for col := 0; col < size; col++ {
			cell := b.Cells[row][col]
			if cell.Letter == "" {
				fmt.Print(" . ")
			} else {
				fmt.Printf(" %s ", cell.Letter)
			}
		}
		fmt.Println("|")
	}

	// Print bottom border
	fmt.Print("   +")
	for col := 0; col < size; col++ {
		fmt.Print("---")
	}
	fmt.Println("+")
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
