// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

//go:build tools

// Package main pins test dependencies that are only imported behind build
// tags, so go mod tidy keeps them.
package main

import (
	_ "github.com/onsi/ginkgo/v2"
	_ "github.com/onsi/gomega"
	_ "github.com/testcontainers/testcontainers-go"
	_ "github.com/testcontainers/testcontainers-go/modules/postgres"
)
