// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/blinklabs-io/academia"
	"github.com/blinklabs-io/academia/address"
	"github.com/blinklabs-io/academia/internal/config"
	"github.com/blinklabs-io/academia/internal/node"
	"github.com/blinklabs-io/academia/ledger"
	"github.com/spf13/cobra"
)

var errNoConfig = errors.New("no config found in context")

// ledgerFunc performs one command against the ledger and returns the value
// to print, or nil for no output
type ledgerFunc func(
	ctx context.Context,
	l *ledger.Ledger,
	signer address.Identity,
) (any, error)

func signerIdentity(cfg *config.Config) (address.Identity, error) {
	if cfg.Signer == "" {
		return address.Identity{}, errors.New(
			"no signer identity given, use --signer or the signer config setting",
		)
	}
	signer, err := address.ParseIdentity(cfg.Signer)
	if err != nil {
		return address.Identity{}, fmt.Errorf("invalid signer: %w", err)
	}
	return signer, nil
}

// runLedgerCommand opens the engine, runs fn and prints its result. Queries
// pass needSigner=false
func runLedgerCommand(cmd *cobra.Command, needSigner bool, fn ledgerFunc) error {
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		return errNoConfig
	}
	var signer address.Identity
	if needSigner {
		var err error
		signer, err = signerIdentity(cfg)
		if err != nil {
			return err
		}
	}
	logger := commonRun()
	var result any
	err := node.Run(
		cmd.Context(),
		cfg,
		logger,
		func(ctx context.Context, engine *academia.Engine) error {
			var err error
			result, err = fn(ctx, engine.Ledger(), signer)
			return err
		},
	)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	return printResult(cmd.OutOrStdout(), result)
}
