package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/kluelabs/extdev/pkg/extdev/icons"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var iconsCmd = &cobra.Command{
	Use:   "icons",
	Short: "Generate placeholder extension icons",
	Long: `Generate placeholder icons for the extension manifest.

Each icon is a colored tile with a white rounded panel holding a single
letter, rendered at the standard manifest sizes and written as
icon{size}.png into the output directory.

Examples:
  extdev icons                  # icons/icon{16,32,48,128}.png
  extdev icons --out assets     # Write into assets/ instead
  extdev icons --label Z        # Use a different letter`,
	RunE: runIcons,
}

func init() {
	iconsCmd.Flags().String("out", "", "output directory (default: icons)")
	iconsCmd.Flags().IntSlice("sizes", nil, "icon pixel sizes (default 16,32,48,128)")
	iconsCmd.Flags().String("label", "", "letter drawn on the icon (default: extension name's first letter)")
	iconsCmd.Flags().String("background", "", "tile color as hex (default #4A90E2)")
	iconsCmd.Flags().String("panel", "", "panel color as hex (default #FFFFFF)")

	_ = viper.BindPFlag("icons.out_dir", iconsCmd.Flags().Lookup("out"))
	_ = viper.BindPFlag("icons.sizes", iconsCmd.Flags().Lookup("sizes"))
	_ = viper.BindPFlag("icons.label", iconsCmd.Flags().Lookup("label"))
	_ = viper.BindPFlag("icons.background", iconsCmd.Flags().Lookup("background"))
	_ = viper.BindPFlag("icons.panel", iconsCmd.Flags().Lookup("panel"))

	rootCmd.AddCommand(iconsCmd)
}

// runIcons renders the placeholder icon set.
func runIcons(_ *cobra.Command, _ []string) error {
	label := viper.GetString("icons.label")
	if label == "" {
		label = icons.DefaultLabel(viper.GetString("extension.name"))
	}

	opts := icons.Options{
		OutDir:     viper.GetString("icons.out_dir"),
		Sizes:      viper.GetIntSlice("icons.sizes"),
		Label:      label,
		Background: viper.GetString("icons.background"),
		Panel:      viper.GetString("icons.panel"),
	}

	rendered, err := icons.Generate(opts)
	for _, r := range rendered {
		printInfo("Created %s (%dx%d, %s)", r.Path, r.Size, r.Size, humanize.Bytes(uint64(r.Bytes)))
	}
	if err != nil {
		return fmt.Errorf("generating icons: %w", err)
	}

	printInfo("Wrote %s to %s", english.Plural(len(rendered), "icon", ""), opts.OutDir)
	return nil
}
