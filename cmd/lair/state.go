package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/lair/internal/app"
	"github.com/five82/lair/internal/persist"
)

func newStateCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect or reset the stored favorites and preferences",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the stored snapshot as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStateShow(cmd, g)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Delete the stored snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStateReset(cmd, g)
		},
	})
	return cmd
}

func runStateShow(cmd *cobra.Command, g *globalFlags) (err error) {
	ctx := cmd.Context()
	rt, err := app.Open(ctx, g.options())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rt.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()

	raw, err := persist.Encode(persist.FromState(rt.Store.Persisted()))
	if err != nil {
		return err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return fmt.Errorf("format snapshot: %w", err)
	}
	out := cmd.OutOrStdout()
	if !rt.Restored {
		fmt.Fprintln(cmd.ErrOrStderr(), "no stored snapshot; showing defaults")
	}
	fmt.Fprintln(out, pretty.String())
	return nil
}

func runStateReset(cmd *cobra.Command, g *globalFlags) (err error) {
	ctx := cmd.Context()
	rt, err := app.Open(ctx, g.options())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rt.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := rt.Adapter.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "cleared %s (%s storage)\n", rt.Adapter.Key(), rt.Config.Storage)
	return nil
}
