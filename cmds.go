package main

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/spf13/cobra"

	"dataforge/pkg/arrowio"
	"dataforge/pkg/frame"
	"dataforge/pkg/loader"
	"dataforge/pkg/relational"
	"dataforge/pkg/render"
)

func addCommands(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show file",
		Short: "Print a JSON or CSV file as a table",
		Args:  cobra.ExactArgs(1),
		RunE:  show}
	cmd.Flags().Int("skip", 0, "rows to skip")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "sort file",
		Short: "Print one column in sorted order",
		Args:  cobra.ExactArgs(1),
		RunE:  sortColumn}
	cmd.Flags().StringP("column", "c", "", "column to sort")
	cmd.Flags().Bool("desc", false, "sort in descending order")
	_ = cmd.MarkFlagRequired("column")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "merge left right",
		Short: "Inner join two files on a key column",
		Args:  cobra.ExactArgs(2),
		RunE:  merge}
	cmd.Flags().StringP("key", "k", "", "key column")
	_ = cmd.MarkFlagRequired("key")
	root.AddCommand(cmd)

	cmd = &cobra.Command{
		Use:   "concat file+",
		Short: "Stack files over the union of their columns",
		Args:  cobra.MinimumNArgs(1),
		RunE:  concat}
	root.AddCommand(cmd)
}

func show(cmd *cobra.Command, args []string) error {
	skip, _ := cmd.Flags().GetInt("skip")

	frames, err := loader.LoadFiles(cmd.Context(), args...)
	if err != nil {
		return err
	}
	return printFrame(cmd.OutOrStdout(), frames[0].Skip(skip))
}

func sortColumn(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("column")
	desc, _ := cmd.Flags().GetBool("desc")

	frames, err := loader.LoadFiles(cmd.Context(), args...)
	if err != nil {
		return err
	}
	col, err := frames[0].Column(name)
	if err != nil {
		return err
	}

	sorted := col.Order()
	if desc {
		sorted = col.OrderDescending()
	}

	out, err := render.Series(sorted, render.WithLimit(config.Limit))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

func merge(cmd *cobra.Command, args []string) error {
	key, _ := cmd.Flags().GetString("key")

	frames, err := loader.LoadFiles(cmd.Context(), args...)
	if err != nil {
		return err
	}
	merged, err := relational.Merge(frames[0], frames[1], key)
	if err != nil {
		return err
	}
	return printFrame(cmd.OutOrStdout(), merged)
}

func concat(cmd *cobra.Command, args []string) error {
	frames, err := loader.LoadFiles(cmd.Context(), args...)
	if err != nil {
		return err
	}
	stacked, err := relational.Concat(frames...)
	if err != nil {
		return err
	}
	return printFrame(cmd.OutOrStdout(), stacked)
}

func printFrame(w io.Writer, f *frame.Frame) error {
	out, err := render.Frame(f, render.WithLimit(config.Limit))
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, out); err != nil {
		return err
	}

	if !config.Arrow {
		return nil
	}
	rec, err := arrowio.ToRecord(f, memory.NewGoAllocator())
	if err != nil {
		return err
	}
	defer rec.Release()
	_, err = fmt.Fprintln(w, rec.Schema())
	return err
}
