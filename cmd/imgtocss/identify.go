package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/luka-bacic/img-to-css/internal/icc"
	"github.com/luka-bacic/img-to-css/internal/jpeg"
	"github.com/luka-bacic/img-to-css/internal/raster"
	"github.com/spf13/cobra"
)

var identifyCmd = &cobra.Command{
	Use:   "identify [file]",
	Short: "Inspect image dimensions and ICC profile info",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdentify,
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:        %s\n", path)
	fmt.Fprintf(out, "File size:   %d bytes (%.1f MB)\n", len(data), float64(len(data))/(1024*1024))

	if !jpeg.IsJPEG(data) {
		img, err := raster.Decode(bytes.NewReader(data), raster.Options{})
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		fmt.Fprintf(out, "Format:      %s\n", img.Format)
		fmt.Fprintf(out, "Dimensions:  %d x %d\n", img.Width, img.Height)
		fmt.Fprintf(out, "Gradient stops: %d\n", 2*img.Width*img.Height)
		return nil
	}

	info, err := jpeg.GetInfo(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	fmt.Fprintf(out, "Format:      jpeg\n")
	fmt.Fprintf(out, "Dimensions:  %d x %d\n", info.Width, info.Height)
	fmt.Fprintf(out, "Components:  %d\n", info.NumComponents)
	fmt.Fprintf(out, "Color space: %s\n", info.ColorSpace)
	fmt.Fprintf(out, "Progressive: %t\n", info.Progressive)
	fmt.Fprintf(out, "Gradient stops: %d\n", 2*info.Width*info.Height)

	if info.ICC == nil {
		fmt.Fprintln(out, "ICC profile: none")
		return nil
	}
	pi, err := icc.ParseProfileInfo(info.ICC)
	if err != nil {
		fmt.Fprintf(out, "ICC profile: present (%d bytes) but invalid: %v\n", len(info.ICC), err)
		return nil
	}
	fmt.Fprintf(out, "ICC profile: %d bytes\n", len(info.ICC))
	if pi.Description != "" {
		fmt.Fprintf(out, "  Description: %s\n", pi.Description)
	}
	fmt.Fprintf(out, "  Version:     %s\n", pi.Version)
	fmt.Fprintf(out, "  Color space: %s\n", icc.ColorSpaceName(pi.ColorSpace))
	fmt.Fprintf(out, "  PCS:         %s\n", icc.ColorSpaceName(pi.PCS))
	fmt.Fprintf(out, "  Class:       %s\n", icc.ProfileClassName(pi.Class))
	if !pi.RendersAsSRGB() {
		fmt.Fprintln(out, "  Note:        colors will be emitted as decoded, without conversion to sRGB")
	}
	return nil
}
