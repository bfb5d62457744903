package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fabricadebestseller/bookforge/internal/generator"
	"github.com/fabricadebestseller/bookforge/internal/manuscript"
)

// manuscriptFile is the JSON document produced by the book creation
// workflow.
type manuscriptFile struct {
	Metadata manuscript.Metadata `json:"metadata"`
	Content  manuscript.Content  `json:"content"`
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookforge <manuscript.json>",
		Short: "Assemble a book manuscript into a print-ready DOCX",
		Long: `bookforge takes a structured manuscript (metadata, chapters, front and
back matter) and assembles a paginated, professionally typeset DOCX
with fixed trim size, mirrored margins, alternating headers and
roman-then-arabic page numbering.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]
			outputPath, _ := cmd.Flags().GetString("output")
			logoURL, _ := cmd.Flags().GetString("logo")

			if outputPath == "" {
				outputPath = defaultOutputPath(inputPath)
			}
			return assemble(inputPath, outputPath, logoURL)
		},
	}
	cmd.Flags().StringP("output", "o", "", "Output file path (default: input with .docx extension)")
	cmd.Flags().String("logo", "", "Override the publisher logo URL")
	return cmd
}

func defaultOutputPath(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".docx"
}

func readManuscript(path string) (*manuscriptFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manuscript: %w", err)
	}
	var ms manuscriptFile
	if err := json.Unmarshal(data, &ms); err != nil {
		return nil, fmt.Errorf("failed to parse manuscript: %w", err)
	}
	return &ms, nil
}

func assemble(inputPath, outputPath, logoURL string) error {
	ms, err := readManuscript(inputPath)
	if err != nil {
		return err
	}

	log.Printf("Assembling: %s -> %s", inputPath, outputPath)

	g := generator.New(generator.Options{LogoURL: logoURL})
	blob, err := g.Generate(context.Background(), ms.Metadata, ms.Content)
	if err != nil {
		return fmt.Errorf("document assembly failed: %w", err)
	}

	if err := os.WriteFile(outputPath, blob, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	log.Printf("Done: %s (%d bytes)", outputPath, len(blob))
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
