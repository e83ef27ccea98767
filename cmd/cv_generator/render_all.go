package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renderAllCmd = &cobra.Command{
	Use:   "render-all DATA OUTDIR",
	Short: "Render the CV with every template",
	Long:  `Writes one PDF per template into OUTDIR, named "<data name>_<template>.pdf". Templates render concurrently.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runRenderAll,
}

var renderAllFlags renderFlags

func init() {
	renderAllFlags.register(renderAllCmd)

	rootCmd.AddCommand(renderAllCmd)
}

func runRenderAll(cmd *cobra.Command, args []string) error {
	cfg, err := renderAllFlags.resolve(cmd)
	if err != nil {
		return err
	}
	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}

	results, err := gen.RenderAll(cmd.Context(), newRequest(cfg, args[0], ""), args[1])
	if err != nil {
		return err
	}
	for _, r := range results {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %s (%d pages)\n", r.Template, r.OutputPath, r.Pages)
	}
	return nil
}
