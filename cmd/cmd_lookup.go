// Copyright 2025 The RepresentApp Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/thomstrub/representapp/lookup"
	"github.com/thomstrub/representapp/utils/textutils"
)

var lookupOptions = struct {
	File    string
	Workers int
}{}

var lookupCmd = &cobra.Command{
	Use:   "lookup [ADDRESS...]",
	Short: "Resolve one or more addresses into their elected representatives",
	Long: `
Resolves each address through the full pipeline and prints one JSON document
per address to stdout. With --file, addresses are read one per line (blank
lines and lines starting with # are skipped) and resolved concurrently.
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addresses, err := collectAddresses(args, lookupOptions.File)
		if err != nil {
			return err
		}

		if len(addresses) == 0 {
			return fmt.Errorf("no addresses given - pass them as arguments or via --file")
		}

		resolver, err := buildResolver(cmd, &lookup.ClientOptions{
			UserAgent: "representapp/" + Version,
		})
		if err != nil {
			return err
		}

		failed := resolveAll(cmd, resolver, addresses)
		if failed > 0 {
			return fmt.Errorf("%d of %d lookups failed", failed, len(addresses))
		}

		return nil
	},
}

// collectAddresses merges positional arguments and the --file input,
// dropping duplicates. Folding is accent-insensitive so the same address
// typed with and without diacritics resolves once.
func collectAddresses(args []string, file string) ([]string, error) {
	var addresses []string

	seen := make(map[string]struct{})

	appendAddress := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || strings.HasPrefix(s, "#") {
			return
		}

		key := textutils.LowerASCIIFolding(textutils.CollapseSpaces(s))
		if _, ok := seen[key]; ok {
			return
		}

		seen[key] = struct{}{}

		addresses = append(addresses, s)
	}

	for _, arg := range args {
		appendAddress(arg)
	}

	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("opening address file: %w", err)
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			appendAddress(scanner.Text())
		}

		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading address file: %w", err)
		}
	}

	return addresses, nil
}

// resolveAll runs the pipeline for every address with bounded concurrency.
// Each address is still one sequential pipeline pass; only separate
// addresses run in parallel, and one failure never aborts the batch.
func resolveAll(cmd *cobra.Command, resolver *lookup.Resolver, addresses []string) int {
	n := len(addresses)

	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) && n > 1 {
		bar = progressbar.NewOptions(n,
			progressbar.OptionSetDescription("Resolving addresses"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	maxProcs := lookupOptions.Workers
	if maxProcs < 1 {
		maxProcs = 1
	}

	var wg sync.WaitGroup

	var mu sync.Mutex // guards encoder and failure count

	semaphore := make(chan struct{}, maxProcs)
	encoder := json.NewEncoder(os.Stdout)
	failed := 0

	for _, address := range addresses {
		wg.Add(1)

		go func(address string) {
			defer wg.Done()
			semaphore <- struct{}{}

			defer func() { <-semaphore }()

			resp, err := resolver.Resolve(cmd.Context(), address)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				failed++

				log.Printf("Lookup failed for %q: %v", address, err)
			} else if encErr := encoder.Encode(resp); encErr != nil {
				failed++

				log.Printf("Encoding response for %q: %v", address, encErr)
			}

			if bar != nil {
				_ = bar.Add(1)
			}
		}(address)
	}

	wg.Wait()

	return failed
}

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().StringVar(
		&lookupOptions.File,
		"file",
		"",
		"Read addresses from a file, one per line",
	)
	lookupCmd.Flags().IntVar(
		&lookupOptions.Workers,
		"workers",
		4,
		"Maximum number of concurrent lookups in batch mode",
	)
}
