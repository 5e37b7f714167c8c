package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/noahaxio/renderers/internal/charts"
	"github.com/noahaxio/renderers/internal/readings"
	"github.com/noahaxio/renderers/internal/render"
)

// --- Bar Command ---

var barCmd = &cobra.Command{
	Use:   "bar",
	Short: "Render a bar chart from a JSON array of readings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(cmd)
		if err != nil {
			return err
		}
		records, err := readings.Decode(data)
		if err != nil {
			return err
		}
		width, height := chartSize(cmd)
		yLabel, _ := cmd.Flags().GetString("y-label")
		url, err := application.RenderBar(cmd.Context(), records, charts.BarOptions{Width: width, Height: height, YLabel: yLabel})
		if err != nil {
			return err
		}
		return writeOutput(cmd, url)
	},
}

// --- Pie Command ---

var pieCmd = &cobra.Command{
	Use:   "pie",
	Short: "Render a pie chart from a JSON array of readings",
	Long:  "Render a pie chart of the positive readings. Prints null when no reading is positive.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(cmd)
		if err != nil {
			return err
		}
		records, err := readings.Decode(data)
		if err != nil {
			return err
		}
		width, height := chartSize(cmd)
		url, ok, err := application.RenderPie(cmd.Context(), records, charts.PieOptions{Width: width, Height: height})
		if err != nil {
			return err
		}
		if !ok {
			if path, _ := cmd.Flags().GetString("output"); path != "" {
				logger.WithField("output", path).Warn("no positive readings, nothing written")
				return nil
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "null")
			return err
		}
		return writeOutput(cmd, url)
	},
}

// --- Yearly Command ---

var yearlyCmd = &cobra.Command{
	Use:   "yearly",
	Short: "Render the yearly summary from a JSON array of monthly totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(cmd)
		if err != nil {
			return err
		}
		records, err := readings.DecodeMonthly(data)
		if err != nil {
			return err
		}
		width, height := chartSize(cmd)
		url, err := application.RenderYearly(cmd.Context(), records, charts.YearlyOptions{Width: width, Height: height})
		if err != nil {
			return err
		}
		return writeOutput(cmd, url)
	},
}

// --- CO2 Command ---

var co2Cmd = &cobra.Command{
	Use:   "co2 [tonnes]",
	Short: "Render the CO₂ equivalence panel for a saved mass in tonnes",
	Long: `Render the CO₂ equivalence panel for a saved mass in tonnes.

The mass is the positional argument or --mass. A negative mass must be
given as --mass=-5 or after a "--" separator, e.g. "co2 -- -5".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mass, err := massArg(cmd, args)
		if err != nil {
			return err
		}
		width, _ := cmd.Flags().GetFloat64("width")
		url, err := application.RenderCO2Panel(cmd.Context(), mass, width)
		if err != nil {
			return err
		}
		return writeOutput(cmd, url)
	},
}

func massArg(cmd *cobra.Command, args []string) (float64, error) {
	if len(args) == 1 {
		mass, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid mass %q: %w", args[0], err)
		}
		return mass, nil
	}
	if !cmd.Flags().Changed("mass") {
		return 0, errors.New("mass is required: pass it as an argument or with --mass")
	}
	return cmd.Flags().GetFloat64("mass")
}

func chartSize(cmd *cobra.Command) (width, height int) {
	width, _ = cmd.Flags().GetInt("width")
	height, _ = cmd.Flags().GetInt("height")
	return width, height
}

func init() {
	for _, cmd := range []*cobra.Command{barCmd, pieCmd, yearlyCmd} {
		cmd.Flags().StringP("input", "i", "", "JSON input file (default: stdin)")
	}
	for _, cmd := range []*cobra.Command{barCmd, pieCmd, yearlyCmd, co2Cmd} {
		cmd.Flags().StringP("output", "o", "", "write the PNG to this file instead of printing a data URL")
	}
	for _, cmd := range []*cobra.Command{barCmd, pieCmd, yearlyCmd} {
		cmd.Flags().Int("width", 0, "image width in pixels (default from config)")
		cmd.Flags().Int("height", 0, "image height in pixels (default from config)")
	}
	barCmd.Flags().String("y-label", "", "y axis title (default from config, kWh)")
	co2Cmd.Flags().Float64("width", 0, "logical panel width in pixels (default from config, 520)")
	co2Cmd.Flags().Float64("mass", 0, "saved CO₂ mass in tonnes, used when no argument is given")
}

func readInput(cmd *cobra.Command) ([]byte, error) {
	path, _ := cmd.Flags().GetString("input")
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

func writeOutput(cmd *cobra.Command, url string) error {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), url)
		return err
	}
	png, err := render.DecodeDataURL(url)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.WithFields(logrus.Fields{"output": path, "bytes": len(png)}).Info("image written")
	return nil
}
