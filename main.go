// Copyright 2025 The RepresentApp Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/thomstrub/representapp/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
