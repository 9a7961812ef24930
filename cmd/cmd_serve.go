// Copyright 2025 The RepresentApp Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/thomstrub/representapp/lookup"
)

var serveOptions = struct {
	Listen              string
	EnableHTTPTrace     bool
	EnableHTTPBodyTrace bool
}{}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the representative lookup HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		resolver, err := buildResolver(cmd, &lookup.ClientOptions{
			UserAgent:           "representapp/" + Version,
			EnableHTTPTrace:     serveOptions.EnableHTTPTrace,
			EnableHTTPBodyTrace: serveOptions.EnableHTTPBodyTrace,
		})
		if err != nil {
			return err
		}

		server := lookup.NewServer(resolver)

		fmt.Printf("🏛️  Representative lookup API starting on %s\n", serveOptions.Listen)

		return server.Run(serveOptions.Listen)
	},
}

// buildResolver wires the two external adapters from the environment.
func buildResolver(cmd *cobra.Command, opts *lookup.ClientOptions) (*lookup.Resolver, error) {
	mapsKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if mapsKey == "" {
		log.Println("GOOGLE_MAPS_API_KEY is not set. Attempting to retrieve via ADC...")

		var err error

		mapsKey, err = lookup.GoogleMapsAPIKeyFromADC(cmd.Context())
		if err != nil {
			return nil, fmt.Errorf("GOOGLE_MAPS_API_KEY is not set and ADC lookup failed: %w", err)
		}

		log.Println("✅ Successfully retrieved Google Maps API Key via ADC")
	}

	openStatesKey := os.Getenv("OPENSTATES_API_KEY")
	if openStatesKey == "" {
		return nil, errors.New("OPENSTATES_API_KEY is not set")
	}

	return lookup.NewResolver(
		lookup.NewGoogleMapsGeocoder(mapsKey, opts),
		lookup.NewOpenStatesClient(openStatesKey, opts),
	), nil
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(
		&serveOptions.Listen,
		"listen",
		"localhost:8080",
		"Address the HTTP server binds to",
	)
	serveCmd.PersistentFlags().BoolVar(
		&serveOptions.EnableHTTPTrace,
		"http-trace",
		false,
		"Trace outbound HTTP requests and responses to stderr",
	)
	serveCmd.PersistentFlags().BoolVar(
		&serveOptions.EnableHTTPBodyTrace,
		"http-body-trace",
		false,
		"Include response bodies in the HTTP trace",
	)
}
