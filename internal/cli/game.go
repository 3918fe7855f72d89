package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGamePlayCmd())
	cmd.AddCommand(newGameSkipCmd())
	cmd.AddCommand(newGameExchangeCmd())
	cmd.AddCommand(newGamePreviewCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Post("/api/v1/games", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <game-id>",
		Short: "Get current game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameJoinCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "join <game-id>",
		Short: "Join an existing game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{}
			if name != "" {
				req["display_name"] = name
			}

			var result GameState

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/join", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name override")

	return cmd
}

func newGamePlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <game-id> <row,col=letter>...",
		Short: "Play tiles onto the board",
		Long: `Play tiles onto the board. Each tile is given as row,col=letter,
for example "7,7=С 7,8=О". Prefix the letter with * to play a blank as
that letter: "7,9=*Н".`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]

			tiles, err := parseTiles(args[1:])
			if err != nil {
				return err
			}

			return submitMove(gameID, "play", tiles)
		},
	}
}

func newGameSkipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skip <game-id>",
		Short: "Skip your turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return submitMove(args[0], "skip", nil)
		},
	}
}

func newGameExchangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exchange <game-id> <letters>",
		Short: "Exchange rack tiles for fresh ones from the bag",
		Long: `Exchange rack tiles for fresh ones from the bag. Letters are given as
a single string, for example "АБВ". Use * for a blank tile.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]

			var tiles []map[string]any
			for _, r := range args[1] {
				tile := map[string]any{"letter": string(r)}
				if r == '*' {
					tile["blank"] = true
				}
				tiles = append(tiles, tile)
			}
			if len(tiles) == 0 {
				return fmt.Errorf("no letters to exchange")
			}

			return submitMove(gameID, "exchange", tiles)
		},
	}
}

func newGamePreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview <game-id> [row,col=letter]...",
		Short: "Save a placement preview (no arguments clears it)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]

			tiles, err := parseTiles(args[1:])
			if err != nil {
				return err
			}
			if tiles == nil {
				tiles = []map[string]any{}
			}

			req := map[string]any{"tiles": tiles}

			if err := client.Put(fmt.Sprintf("/api/v1/games/%s/preview", gameID), req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Preview saved")
			return nil
		},
	}
}

// submitMove fetches the current version token and submits the move
// against it, so a concurrent update surfaces as a version conflict
// rather than silently clobbering it.
func submitMove(gameID, kind string, tiles []map[string]any) error {
	var current GameState
	if err := client.Get(fmt.Sprintf("/api/v1/games/%s", gameID), &current); err != nil {
		return err
	}

	req := map[string]any{
		"kind":  kind,
		"state": map[string]any{"seq": current.Seq},
	}
	if len(tiles) > 0 {
		req["tiles"] = tiles
	}

	var result MoveResult
	if err := client.Put(fmt.Sprintf("/api/v1/games/%s/state", gameID), req, &result); err != nil {
		return err
	}

	out := NewOutput(cfg.Output)
	out.Print(result)
	return nil
}

// parseTiles parses row,col=letter placement arguments
func parseTiles(args []string) ([]map[string]any, error) {
	var tiles []map[string]any

	for _, arg := range args {
		pos, letter, found := strings.Cut(arg, "=")
		if !found {
			return nil, fmt.Errorf("invalid tile %q: expected row,col=letter", arg)
		}

		rowStr, colStr, found := strings.Cut(pos, ",")
		if !found {
			return nil, fmt.Errorf("invalid tile %q: expected row,col=letter", arg)
		}

		row, err := strconv.Atoi(rowStr)
		if err != nil {
			return nil, fmt.Errorf("invalid row in %q: %w", arg, err)
		}
		col, err := strconv.Atoi(colStr)
		if err != nil {
			return nil, fmt.Errorf("invalid col in %q: %w", arg, err)
		}

		blank := false
		if strings.HasPrefix(letter, "*") {
			blank = true
			letter = strings.TrimPrefix(letter, "*")
		}

		if len([]rune(letter)) != 1 {
			return nil, fmt.Errorf("invalid letter in %q: must be a single character", arg)
		}

		tile := map[string]any{
			"row":    row,
			"col":    col,
			"letter": letter,
		}
		if blank {
			tile["blank"] = true
		}
		tiles = append(tiles, tile)
	}

	return tiles, nil
}
