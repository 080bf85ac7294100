package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bombbusters/bombbusters-server-go/internal/game/model"
)

func rulesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "rules", Short: "Check mission rules against a game state file"}
	cmd.PersistentFlags().String("state", "", "game state JSON file")

	cmd.AddCommand(&cobra.Command{
		Use:   "skip <player>",
		Short: "Tell whether a player skips their turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := stateFlag(cmd)
			if err != nil {
				return err
			}
			skip, lerr := a.checker.ShouldSkipTurn(state, model.PlayerID(args[0]))
			if lerr != nil {
				return a.printVerdict(lerr)
			}
			if a.jsonOutput() {
				return printJSON(a.out, map[string]bool{"skip": skip})
			}
			fmt.Fprintln(a.out, strconv.FormatBool(skip))
			return nil
		},
	})

	cutter := &cobra.Command{
		Use:   "cutter <target>",
		Short: "Validate the designated cutter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := stateFlag(cmd)
			if err != nil {
				return err
			}
			value, _ := cmd.Flags().GetInt("value")
			raw, _ := cmd.Flags().GetStringToString("radar")
			radar := make(map[model.PlayerID]bool, len(raw))
			for id, answer := range raw {
				yes, err := strconv.ParseBool(answer)
				if err != nil {
					return fmt.Errorf("radar answer for %s: %w", id, err)
				}
				radar[model.PlayerID(id)] = yes
			}
			return a.printVerdict(a.checker.CheckDesignatedCutterTarget(state, value, model.PlayerID(args[0]), radar))
		},
	}
	cutter.Flags().Int("value", 0, "value announced with the General Radar")
	cutter.Flags().StringToString("radar", nil, "radar answers, e.g. p1=true,p2=false")
	cmd.AddCommand(cutter)

	cmd.AddCommand(&cobra.Command{
		Use:   "character <player> <character>",
		Short: "Validate a character choice",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := stateFlag(cmd)
			if err != nil {
				return err
			}
			return a.printVerdict(a.checker.CheckCharacterSelection(state, model.PlayerID(args[0]), model.CharacterID(args[1])))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "equipment <id>",
		Short: "Validate that an equipment card can be used",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := stateFlag(cmd)
			if err != nil {
				return err
			}
			return a.printVerdict(a.checker.CheckEquipmentUse(state, args[0]))
		},
	})
	return cmd
}

func stateFlag(cmd *cobra.Command) (*model.GameState, error) {
	path, _ := cmd.Flags().GetString("state")
	return readState(path)
}
