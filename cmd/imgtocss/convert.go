package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/luka-bacic/img-to-css/internal/gradient"
	"github.com/luka-bacic/img-to-css/internal/pipeline"
	"github.com/luka-bacic/img-to-css/internal/render"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert an image into an HTML page drawn with CSS gradients",
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().StringP("input", "i", "", "Input image (PNG, JPEG, GIF, BMP, TIFF, WebP)")
	convertCmd.Flags().StringP("output", "o", "", "Output file")
	convertCmd.Flags().String("title", "", "HTML page title (defaults to the input file name)")
	convertCmd.Flags().Int("max-width", 0, "Downscale wider images to this width (0 keeps every pixel)")
	addEncodingFlags(convertCmd)
	convertCmd.MarkFlagRequired("input")
	convertCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(convertCmd)
}

// addEncodingFlags registers the flags shared by convert and encode.
func addEncodingFlags(cmd *cobra.Command) {
	cmd.Flags().String("output-format", "html", "Output document (html, json)")
	cmd.Flags().String("color-format", "rgba", "Color stop format (rgba, css, hex)")
	cmd.Flags().Int("workers", 0, "Rows encoded in parallel (0 = number of CPUs)")
}

func encodingFlags(cmd *cobra.Command) (render.Output, pipeline.Options, error) {
	outputStr, _ := cmd.Flags().GetString("output-format")
	colorStr, _ := cmd.Flags().GetString("color-format")
	workers, _ := cmd.Flags().GetInt("workers")

	output, err := render.ParseOutput(outputStr)
	if err != nil {
		return 0, pipeline.Options{}, err
	}
	format, err := gradient.ParseFormat(colorStr)
	if err != nil {
		return 0, pipeline.Options{}, err
	}
	return output, pipeline.Options{Format: format, Workers: workers}, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	title, _ := cmd.Flags().GetString("title")
	maxWidth, _ := cmd.Flags().GetInt("max-width")

	output, opts, err := encodingFlags(cmd)
	if err != nil {
		return err
	}
	opts.MaxWidth = maxWidth

	inputData, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	result, err := pipeline.Run(inputData, opts)
	if err != nil {
		return fmt.Errorf("conversion: %w", err)
	}

	if title == "" {
		title = strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	}
	var buf bytes.Buffer
	if err := output.Write(&buf, result.Replica, title); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Converted %dx%d %s → %d gradient rows\n",
		result.SrcWidth, result.SrcHeight, strings.ToUpper(result.SrcFormat), len(result.Replica.Rows))
	if result.Replica.Width != result.SrcWidth {
		fmt.Fprintf(out, "Scaled:  %dx%d\n", result.Replica.Width, result.Replica.Height)
	}
	fmt.Fprintf(out, "Input:   %s (%d bytes)\n", inputPath, len(inputData))
	fmt.Fprintf(out, "Output:  %s (%d bytes)\n", outputPath, buf.Len())
	return nil
}
