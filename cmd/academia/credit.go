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

	"github.com/blinklabs-io/academia/address"
	"github.com/blinklabs-io/academia/ledger"
	"github.com/spf13/cobra"
)

func creditCommands() []*cobra.Command {
	return []*cobra.Command{
		createCreditTokenCommand(),
		giveCreditsCommand(),
	}
}

func createCreditTokenCommand() *cobra.Command {
	var secretCode string
	cmd := &cobra.Command{
		Use:   "create-credit-token",
		Short: "Create the credit token mint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLedgerCommand(cmd, true, func(
				ctx context.Context,
				l *ledger.Ledger,
				signer address.Identity,
			) (any, error) {
				return l.CreateCreditToken(ctx, signer, secretCode)
			})
		},
	}
	cmd.Flags().StringVar(&secretCode, "secret", "", "secret code the mint authority is derived from")
	_ = cmd.MarkFlagRequired("secret")
	return cmd
}

func giveCreditsCommand() *cobra.Command {
	var params ledger.CreditParams
	cmd := &cobra.Command{
		Use:   "give-credits",
		Short: "Pay the reward of an accepted proposal to its author",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLedgerCommand(cmd, true, func(
				ctx context.Context,
				l *ledger.Ledger,
				signer address.Identity,
			) (any, error) {
				balance, err := l.GiveCreditsToWinningStudent(ctx, signer, params)
				if err != nil {
					return nil, err
				}
				return map[string]uint64{"balance": balance}, nil
			})
		},
	}
	addProposalRefFlags(cmd.Flags(), &params.ProposalRef)
	cmd.Flags().StringVar(&params.SecretCode, "secret", "", "secret code of the mint authority")
	_ = cmd.MarkFlagRequired("secret")
	return cmd
}
