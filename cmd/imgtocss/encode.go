package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/luka-bacic/img-to-css/internal/pipeline"
	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode raw RGBA pixel data as CSS gradients",
	RunE:  runEncode,
}

func init() {
	encodeCmd.Flags().StringP("input", "i", "", "Input raw RGBA file (8 bits per channel, row-major)")
	encodeCmd.Flags().StringP("output", "o", "", "Output file")
	encodeCmd.Flags().Int("width", 0, "Image width")
	encodeCmd.Flags().Int("height", 0, "Image height")
	encodeCmd.Flags().String("title", "", "HTML page title")
	addEncodingFlags(encodeCmd)
	encodeCmd.MarkFlagRequired("input")
	encodeCmd.MarkFlagRequired("output")
	encodeCmd.MarkFlagRequired("width")
	encodeCmd.MarkFlagRequired("height")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	title, _ := cmd.Flags().GetString("title")

	output, opts, err := encodingFlags(cmd)
	if err != nil {
		return err
	}

	pixels, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	replica, err := pipeline.EncodeBuffer(pixels, width, height, opts)
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}

	var buf bytes.Buffer
	if err := output.Write(&buf, replica, title); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Encoded %dx%d RGBA → %s (%d bytes)\n", width, height, outputPath, buf.Len())
	return nil
}
