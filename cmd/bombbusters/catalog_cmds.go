package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/bombbusters/bombbusters-server-go/internal/game/equipment"
	"github.com/bombbusters/bombbusters-server-go/internal/game/model"
	"github.com/bombbusters/bombbusters-server-go/internal/game/wires"
)

func labelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "label <index>...",
		Short: "Print the wire label of hand positions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			labels := make(map[string]string, len(args))
			for _, arg := range args {
				index, err := strconv.Atoi(arg)
				if err != nil || index < 0 {
					return fmt.Errorf("invalid index %q", arg)
				}
				labels[arg] = wires.Label(index)
			}
			if a.jsonOutput() {
				return printJSON(a.out, labels)
			}
			for _, arg := range args {
				fmt.Fprintf(a.out, "%s\t%s\n", arg, labels[arg])
			}
			return nil
		},
	}
}

func equipmentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "equipment", Short: "Inspect equipment cards"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List equipment cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			cards := a.equipment.All()
			if a.jsonOutput() {
				return printJSON(a.out, cards)
			}
			tw := newTable(a.out, table.Row{"ID", "Name", "Value", "Campaign", "Unlock cuts"})
			for _, c := range cards {
				tw.AppendRow(table.Row{c.ID, c.Name, c.Value, c.Campaign, equipment.UnlockCutsRequired(c)})
			}
			tw.Render()
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "unlock <id>",
		Short: "Show how many cuts unlock an equipment card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			card, ok := a.equipment.Lookup(id)
			if !ok {
				if s := a.equipment.Suggest(id); s != "" {
					return fmt.Errorf("unknown equipment %q, did you mean %q?", id, s)
				}
				return fmt.Errorf("unknown equipment %q", id)
			}
			required := equipment.UnlockCutsRequired(card)
			if a.jsonOutput() {
				return printJSON(a.out, map[string]any{"id": card.ID, "value": card.Value, "cuts_required": required})
			}
			fmt.Fprintf(a.out, "%s unlocks after %d cuts of value %d\n", card.Name, required, card.Value)
			return nil
		},
	})
	return cmd
}

func missionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "mission", Short: "Inspect missions"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List missions",
		RunE: func(cmd *cobra.Command, args []string) error {
			all := a.missions.All()
			if a.jsonOutput() {
				return printJSON(a.out, all)
			}
			tw := newTable(a.out, table.Row{"ID", "Name", "Wires", "Setup"})
			for _, m := range all {
				tw.AppendRow(table.Row{m.ID, m.Name, m.WireCount(), m.Summary()})
			}
			tw.Render()
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a mission's setup and special rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid mission id %q", args[0])
			}
			m, ok := a.missions.Get(model.MissionID(id))
			if !ok {
				return fmt.Errorf("unknown mission %d", id)
			}
			special := specialRules(a, m.ID)
			if a.jsonOutput() {
				return printJSON(a.out, map[string]any{"mission": m, "special_rules": special})
			}
			fmt.Fprintf(a.out, "Mission %d: %s\n", m.ID, m.Name)
			fmt.Fprintf(a.out, "Wires: %s (%d total)\n", m.Summary(), m.WireCount())
			if len(m.Equipment) > 0 {
				fmt.Fprintf(a.out, "Equipment: %s\n", strings.Join(m.Equipment, ", "))
			}
			for _, rule := range special {
				fmt.Fprintf(a.out, "Rule: %s\n", rule)
			}
			if m.Notes != "" {
				fmt.Fprintf(a.out, "Notes: %s\n", m.Notes)
			}
			return nil
		},
	})
	return cmd
}

func specialRules(a *app, mission model.MissionID) []string {
	r, ok := a.checker.Registry().Rules(mission)
	if !ok {
		return nil
	}
	var out []string
	if len(r.ForbiddenCharacters) > 0 {
		ids := make([]string, len(r.ForbiddenCharacters))
		for i, id := range r.ForbiddenCharacters {
			ids[i] = string(id)
		}
		out = append(out, "captain only: "+strings.Join(ids, ", "))
	}
	if r.ValidateDesignatedCutterTarget != nil {
		out = append(out, "designated cutter must answer yes on the General Radar")
	}
	if r.SkipsTurn != nil {
		out = append(out, "players left with one yellow among only yellow and red wires skip their turn")
	}
	return out
}
