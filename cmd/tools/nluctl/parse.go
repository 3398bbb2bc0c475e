// cmd/tools/nluctl/parse.go
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"commerce-nlu/internal/common/catalog"
	"commerce-nlu/internal/common/logger"
	"commerce-nlu/internal/nlu/pipeline"
)

type parseOptions struct {
	catalogPath string
	now         string
	lines       bool
	pretty      bool
	verbose     bool
}

func newParseCmd() *cobra.Command {
	opts := &parseOptions{}
	cmd := &cobra.Command{
		Use:   "parse [text]",
		Short: "Parse a message and print the result as JSON",
		Example: `  nluctl parse "चीनी का स्टॉक 15 करो"
  nluctl parse --now 2024-03-15 "orders from 1 jan to 15 jan"
  cat messages.txt | nluctl parse --lines`,
		Args: func(cmd *cobra.Command, args []string) error {
			if !opts.lines && len(args) == 0 {
				return fmt.Errorf("parse needs a message or --lines")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "YAML product overlay to merge into the dictionary")
	cmd.Flags().StringVar(&opts.now, "now", "", "reference date for relative periods (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&opts.lines, "lines", false, "read one message per line from stdin")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "indent JSON output")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log parser decisions to stderr")
	return cmd
}

func runParse(cmd *cobra.Command, opts *parseOptions, args []string) error {
	popts := pipeline.DefaultOptions()
	if opts.now != "" {
		now, err := time.Parse("2006-01-02", opts.now)
		if err != nil {
			return fmt.Errorf("invalid --now: %w", err)
		}
		popts.Entities.Now = func() time.Time { return now }
	}

	log := logger.NewNoOpLogger()
	if opts.verbose {
		log = logger.NewStructured("debug", "console")
	}

	var sources []catalog.Source
	if opts.catalogPath != "" {
		sources = append(sources, &catalog.YAMLSource{Path: opts.catalogPath})
	}
	lex, err := catalog.NewLoader(sources, true, 0, log).Lexicon(context.Background())
	if err != nil {
		return err
	}
	p := pipeline.New(lex, popts, log)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	if opts.pretty {
		enc.SetIndent("", "  ")
	}

	if !opts.lines {
		return enc.Encode(p.Run(strings.Join(args, " ")))
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := enc.Encode(p.Run(line)); err != nil {
			return err
		}
	}
	return scanner.Err()
}
