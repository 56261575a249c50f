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
	"fmt"

	"github.com/blinklabs-io/academia/address"
	"github.com/blinklabs-io/academia/ledger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func proposalCommands() []*cobra.Command {
	return []*cobra.Command{
		createProposalCommand(),
		voteCommand(),
		reviewCommand(),
		decideCommand(),
		deleteProposalCommand(),
	}
}

func addProposalRefFlags(fs *pflag.FlagSet, ref *ledger.ProposalRef) {
	fs.Int64Var(&ref.SubjectCode, "code", 0, "subject code of the proposal")
	fs.Int64Var(&ref.ProposalID, "proposal", 0, "proposal id within the subject code")
}

func createProposalCommand() *cobra.Command {
	var params ledger.ProposalParams
	var as string
	cmd := &cobra.Command{
		Use:   "create-proposal",
		Short: "Open a proposal for a subject",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if as != "student" && as != "professor" {
				return fmt.Errorf("--as must be student or professor, got %q", as)
			}
			return runLedgerCommand(cmd, true, func(
				ctx context.Context,
				l *ledger.Ledger,
				signer address.Identity,
			) (any, error) {
				if as == "professor" {
					return l.CreateProposalByProfessor(ctx, signer, params)
				}
				return l.CreateProposalByStudent(ctx, signer, params)
			})
		},
	}
	cmd.Flags().StringVar(&as, "as", "student", "role of the signer (student or professor)")
	cmd.Flags().Int64Var(&params.SubjectID, "subject-id", 0, "subject id")
	cmd.Flags().StringVar(&params.Title, "title", "", "proposal title")
	cmd.Flags().StringVar(&params.Content, "content", "", "proposal content")
	return cmd
}

func voteCommand() *cobra.Command {
	var params ledger.VoteParams
	cmd := &cobra.Command{
		Use:   "vote",
		Short: "Vote on a proposal as a student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLedgerCommand(cmd, true, func(
				ctx context.Context,
				l *ledger.Ledger,
				signer address.Identity,
			) (any, error) {
				return l.VoteProposalByStudent(ctx, signer, params)
			})
		},
	}
	addProposalRefFlags(cmd.Flags(), &params.ProposalRef)
	cmd.Flags().BoolVar(&params.Vote, "favor", false, "vote in favor of the proposal")
	return cmd
}

func reviewCommand() *cobra.Command {
	var params ledger.ProfessorReviewParams
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Complete the professor review of a proposal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLedgerCommand(cmd, true, func(
				ctx context.Context,
				l *ledger.Ledger,
				signer address.Identity,
			) (any, error) {
				return l.UpdateProposalByProfessor(ctx, signer, params)
			})
		},
	}
	addProposalRefFlags(cmd.Flags(), &params.ProposalRef)
	cmd.Flags().StringVar(&params.Reference, "reference", "", "review reference")
	return cmd
}

func decideCommand() *cobra.Command {
	var params ledger.HighRankDecisionParams
	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Accept or reject a reviewed proposal as high rank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLedgerCommand(cmd, true, func(
				ctx context.Context,
				l *ledger.Ledger,
				signer address.Identity,
			) (any, error) {
				return l.UpdateProposalByHighRank(ctx, signer, params)
			})
		},
	}
	addProposalRefFlags(cmd.Flags(), &params.ProposalRef)
	cmd.Flags().BoolVar(&params.Approve, "approve", false, "accept the proposal")
	return cmd
}

func deleteProposalCommand() *cobra.Command {
	var ref ledger.ProposalRef
	cmd := &cobra.Command{
		Use:   "delete-proposal",
		Short: "Delete a rejected proposal and its review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLedgerCommand(cmd, true, func(
				ctx context.Context,
				l *ledger.Ledger,
				signer address.Identity,
			) (any, error) {
				ok, err := l.DeleteRejectedProposalAccount(ctx, signer, ref)
				if err != nil {
					return nil, err
				}
				return map[string]bool{"deleted": ok}, nil
			})
		},
	}
	addProposalRefFlags(cmd.Flags(), &ref)
	return cmd
}
