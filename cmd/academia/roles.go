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

func roleCommands() []*cobra.Command {
	return []*cobra.Command{
		initSystemCommand(),
		createIdGeneratorCommand(),
		createHighRankCommand(),
		createRoleCommand("professor"),
		createRoleCommand("student"),
	}
}

func initSystemCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init-system",
		Short: "Mark the system initialized and create the curriculum id counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLedgerCommand(cmd, true, func(
				ctx context.Context,
				l *ledger.Ledger,
				signer address.Identity,
			) (any, error) {
				ok, err := l.InitializeSystem(ctx, signer)
				if err != nil {
					return nil, err
				}
				return map[string]bool{"initialized": ok}, nil
			})
		},
	}
}

func createIdGeneratorCommand() *cobra.Command {
	var namespace string
	cmd := &cobra.Command{
		Use:   "create-id-generator",
		Short: "Create the id counter of a role namespace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLedgerCommand(cmd, true, func(
				ctx context.Context,
				l *ledger.Ledger,
				signer address.Identity,
			) (any, error) {
				return l.CreateIdGeneratorFor(
					ctx,
					signer,
					ledger.IdGeneratorParams{Namespace: namespace},
				)
			})
		},
	}
	cmd.Flags().StringVar(&namespace, "namespace", "", "counter namespace (highRank, professor or student)")
	_ = cmd.MarkFlagRequired("namespace")
	return cmd
}

func createHighRankCommand() *cobra.Command {
	var code string
	cmd := &cobra.Command{
		Use:   "create-high-rank",
		Short: "Create the high rank account of the signer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLedgerCommand(cmd, true, func(
				ctx context.Context,
				l *ledger.Ledger,
				signer address.Identity,
			) (any, error) {
				return l.CreateHighRank(ctx, signer, code)
			})
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "high rank identifier code")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}

func createRoleCommand(kind string) *cobra.Command {
	var code string
	var subjects []uint
	cmd := &cobra.Command{
		Use:   "create-" + kind,
		Short: "Create the " + kind + " account of the signer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			subjectCodes, err := toUint32s(subjects)
			if err != nil {
				return err
			}
			params := ledger.RoleParams{Code: code, Subjects: subjectCodes}
			return runLedgerCommand(cmd, true, func(
				ctx context.Context,
				l *ledger.Ledger,
				signer address.Identity,
			) (any, error) {
				if kind == "professor" {
					return l.CreateProfessor(ctx, signer, params)
				}
				return l.CreateStudent(ctx, signer, params)
			})
		},
	}
	cmd.Flags().StringVar(&code, "code", "", kind+" identifier code")
	cmd.Flags().UintSliceVar(&subjects, "subjects", nil, "subject codes the account belongs to")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}
