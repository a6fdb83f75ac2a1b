// Copyright (c) HashiCorp, Inc.

package main

import "github.com/hashicorp/go-gzipstream/cmd"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// main start go-gzipstream cli `gzstream`
func main() {
	cmd.Run(version, commit, date)
}
