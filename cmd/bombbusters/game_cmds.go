package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/bombbusters/bombbusters-server-go/internal/game/model"
	"github.com/bombbusters/bombbusters-server-go/internal/game/rules"
	"github.com/bombbusters/bombbusters-server-go/internal/game/wires"
	"github.com/bombbusters/bombbusters-server-go/internal/session"
	"github.com/bombbusters/bombbusters-server-go/internal/storage"
)

// seatFile is the on-disk form of a seat passed to "game new".
type seatFile struct {
	ID          model.PlayerID    `json:"id"`
	Name        string            `json:"name"`
	CharacterID model.CharacterID `json:"character_id"`
	Captain     bool              `json:"captain"`
	Hand        []struct {
		Value int             `json:"value"`
		Color model.WireColor `json:"color"`
	} `json:"hand"`
}

func readSeats(path string) ([]session.PlayerSetup, error) {
	if path == "" {
		return nil, fmt.Errorf("--players is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read players: %w", err)
	}
	var seats []seatFile
	if err := json.Unmarshal(data, &seats); err != nil {
		return nil, fmt.Errorf("decode players %s: %w", path, err)
	}
	out := make([]session.PlayerSetup, len(seats))
	for i, s := range seats {
		out[i] = session.PlayerSetup{ID: s.ID, Name: s.Name, CharacterID: s.CharacterID, Captain: s.Captain}
		for _, t := range s.Hand {
			out[i].Hand = append(out[i].Hand, model.WireTile{Value: t.Value, Color: t.Color})
		}
	}
	return out, nil
}

// withManager opens the configured store and hands fn a manager backed by it.
func (a *app) withManager(ctx context.Context, fn func(m *session.Manager, store storage.Store) error) error {
	store, err := storage.Open(ctx, a.cfg.Storage, a.logger)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(session.NewManager(a.checker, a.missions, a.equipment, store, a.logger), store)
}

// mutate restores game id, applies fn and saves the result. A rule
// rejection is reported as a verdict and nothing is saved.
func (a *app) mutate(ctx context.Context, id string, fn func(m *session.Manager) error) error {
	return a.withManager(ctx, func(m *session.Manager, _ storage.Store) error {
		if _, err := m.Restore(ctx, id); err != nil {
			return err
		}
		err := fn(m)
		var lerr *rules.LegalityError
		if errors.As(err, &lerr) {
			return a.printVerdict(lerr)
		}
		if err != nil {
			return err
		}
		if err := m.Save(ctx, id); err != nil {
			return err
		}
		return a.printVerdict(nil)
	})
}

func gameCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "game", Short: "Create and play stored games"}

	create := &cobra.Command{
		Use:   "new",
		Short: "Create a game and store it",
		RunE: func(cmd *cobra.Command, args []string) error {
			mission, _ := cmd.Flags().GetInt("mission")
			path, _ := cmd.Flags().GetString("players")
			seats, err := readSeats(path)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return a.withManager(ctx, func(m *session.Manager, _ storage.Store) error {
				state, err := m.Create(model.MissionID(mission), seats)
				var lerr *rules.LegalityError
				if errors.As(err, &lerr) {
					return a.printVerdict(lerr)
				}
				if err != nil {
					return err
				}
				if err := m.Save(ctx, state.ID); err != nil {
					return err
				}
				if a.jsonOutput() {
					return printJSON(a.out, state)
				}
				fmt.Fprintln(a.out, state.ID)
				return nil
			})
		},
	}
	create.Flags().Int("mission", 1, "mission number")
	create.Flags().String("players", "", "JSON file describing the seats")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored games",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(cmd.Context(), func(_ *session.Manager, store storage.Store) error {
				games, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if a.jsonOutput() {
					return printJSON(a.out, games)
				}
				tw := newTable(a.out, table.Row{"ID", "Mission", "Updated"})
				for _, g := range games {
					tw.AppendRow(table.Row{g.ID, g.Mission, g.UpdatedAt.Format(time.RFC3339)})
				}
				tw.Render()
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show the wires of a stored game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(cmd.Context(), func(m *session.Manager, _ storage.Store) error {
				state, err := m.Restore(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if a.jsonOutput() {
					return printJSON(a.out, state)
				}
				fmt.Fprintf(a.out, "Game %s, mission %d\n", state.ID, state.Mission)
				tw := newTable(a.out, table.Row{"Player", "Wire", "Value", "Color", "Cut"})
				for _, p := range state.Players {
					name := string(p.ID)
					if p.Captain {
						name += " (captain)"
					}
					for i, tile := range p.Hand {
						value := "?"
						if tile.Cut {
							value = strconv.Itoa(tile.Value)
						}
						tw.AppendRow(table.Row{name, wires.LabelOf(p, i), value, tile.Color, tile.Cut})
					}
				}
				tw.Render()
				return nil
			})
		},
	})

	cut := &cobra.Command{
		Use:   "cut <id>",
		Short: "Cut a wire in a stored game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			player, _ := cmd.Flags().GetString("player")
			index, _ := cmd.Flags().GetInt("index")
			return a.mutate(cmd.Context(), args[0], func(m *session.Manager) error {
				return m.CutWire(args[0], model.PlayerID(player), index)
			})
		},
	}
	cut.Flags().String("player", "", "player holding the wire")
	cut.Flags().Int("index", 0, "hand position of the wire")
	cmd.AddCommand(cut)

	move := &cobra.Command{
		Use:   "move <id>",
		Short: "Move a wire between two hands in a stored game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			index, _ := cmd.Flags().GetInt("index")
			return a.mutate(cmd.Context(), args[0], func(m *session.Manager) error {
				return m.MoveWire(args[0], model.PlayerID(from), model.PlayerID(to), index)
			})
		},
	}
	move.Flags().String("from", "", "player giving the wire")
	move.Flags().String("to", "", "player receiving the wire")
	move.Flags().Int("index", 0, "hand position of the wire")
	cmd.AddCommand(move)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withManager(cmd.Context(), func(_ *session.Manager, store storage.Store) error {
				if err := store.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "deleted %s\n", args[0])
				return nil
			})
		},
	})
	return cmd
}
