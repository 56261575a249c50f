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
	"strconv"

	"github.com/blinklabs-io/academia/address"
	"github.com/blinklabs-io/academia/database/models"
	"github.com/blinklabs-io/academia/internal/config"
	"github.com/blinklabs-io/academia/ledger"
	"github.com/spf13/cobra"
)

// queryFunc reads from the ledger without signing anything
type queryFunc func(l *ledger.Ledger) (any, error)

func runQuery(cmd *cobra.Command, fn queryFunc) error {
	return runLedgerCommand(cmd, false, func(
		_ context.Context,
		l *ledger.Ledger,
		_ address.Identity,
	) (any, error) {
		return fn(l)
	})
}

func parseUint32Arg(arg string) (uint32, error) {
	v, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// identityArg returns the identity given as an argument, or the signer
func identityArg(cmd *cobra.Command, args []string, idx int) (address.Identity, error) {
	if len(args) > idx {
		return address.ParseIdentity(args[idx])
	}
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		return address.Identity{}, errNoConfig
	}
	return signerIdentity(cfg)
}

func queryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Read ledger records",
	}
	cmd.AddCommand(
		querySystemCommand(),
		queryRoleCommand(),
		queryBalanceCommand(),
		queryIdGeneratorCommand(),
		queryRecordCommand("faculty", func(l *ledger.Ledger, id uint32) (any, error) {
			return l.GetFaculty(id)
		}),
		queryRecordCommand("degree", func(l *ledger.Ledger, id uint32) (any, error) {
			return l.GetDegree(id)
		}),
		queryRecordCommand("specialty", func(l *ledger.Ledger, id uint32) (any, error) {
			return l.GetSpecialty(id)
		}),
		queryRecordCommand("subject", func(l *ledger.Ledger, id uint32) (any, error) {
			return l.GetSubject(id)
		}),
		queryRecordCommand("subject-by-code", func(l *ledger.Ledger, code uint32) (any, error) {
			id, err := l.SubjectIDByCode(code)
			if err != nil {
				return nil, err
			}
			return l.GetSubject(id)
		}),
		queryProposalCommand(),
		queryReviewCommand(),
		queryVotedCommand(),
		queryProposalsCommand(),
		queryOperationsCommand(),
		queryReviewEventsCommand(),
	)
	return cmd
}

func querySystemCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "system",
		Short: "Show whether the system is initialized",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, func(l *ledger.Ledger) (any, error) {
				ok, err := l.IsSystemInitialized()
				if err != nil {
					return nil, err
				}
				return map[string]bool{"initialized": ok}, nil
			})
		},
	}
}

func queryRoleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "role <highRank|professor|student> [identity]",
		Short: "Show a role account, by default the signer's",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := models.ParseRoleKind(args[0])
			if err != nil {
				return err
			}
			owner, err := identityArg(cmd, args, 1)
			if err != nil {
				return err
			}
			return runQuery(cmd, func(l *ledger.Ledger) (any, error) {
				return l.GetRole(kind, owner)
			})
		},
	}
}

func queryBalanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <highRank|professor|student> [identity]",
		Short: "Show the credit balance of a role account",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := models.ParseRoleKind(args[0])
			if err != nil {
				return err
			}
			owner, err := identityArg(cmd, args, 1)
			if err != nil {
				return err
			}
			return runQuery(cmd, func(l *ledger.Ledger) (any, error) {
				balance, err := l.CreditBalance(kind, owner)
				if err != nil {
					return nil, err
				}
				return map[string]uint64{"balance": balance}, nil
			})
		},
	}
}

func queryIdGeneratorCommand() *cobra.Command {
	var code uint
	cmd := &cobra.Command{
		Use:   "id-generator <namespace>",
		Short: "Show an id counter, scoped to a subject code with --code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subjectCode, err := toUint32(code)
			if err != nil {
				return err
			}
			return runQuery(cmd, func(l *ledger.Ledger) (any, error) {
				if subjectCode > 0 {
					return l.GetScopedIdGenerator(args[0], subjectCode)
				}
				return l.GetIdGenerator(args[0])
			})
		},
	}
	cmd.Flags().UintVar(&code, "code", 0, "subject code of a scoped counter")
	return cmd
}

func queryRecordCommand(
	name string,
	get func(l *ledger.Ledger, id uint32) (any, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <id>",
		Short: "Show a " + name + " record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUint32Arg(args[0])
			if err != nil {
				return err
			}
			return runQuery(cmd, func(l *ledger.Ledger) (any, error) {
				return get(l, id)
			})
		},
	}
}

func queryProposalCommand() *cobra.Command {
	var code, id uint
	cmd := &cobra.Command{
		Use:   "proposal",
		Short: "Show a proposal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			subjectCode, proposalID, err := proposalIds(code, id)
			if err != nil {
				return err
			}
			return runQuery(cmd, func(l *ledger.Ledger) (any, error) {
				return l.GetProposal(subjectCode, proposalID)
			})
		},
	}
	cmd.Flags().UintVar(&code, "code", 0, "subject code")
	cmd.Flags().UintVar(&id, "proposal", 0, "proposal id")
	return cmd
}

func queryReviewCommand() *cobra.Command {
	var code, id uint
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Show a professor review record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			subjectCode, reviewID, err := proposalIds(code, id)
			if err != nil {
				return err
			}
			return runQuery(cmd, func(l *ledger.Ledger) (any, error) {
				return l.GetProfessorProposal(subjectCode, reviewID)
			})
		},
	}
	cmd.Flags().UintVar(&code, "code", 0, "subject code")
	cmd.Flags().UintVar(&id, "review", 0, "review id")
	return cmd
}

func queryVotedCommand() *cobra.Command {
	var code, id uint
	cmd := &cobra.Command{
		Use:   "voted [identity]",
		Short: "Show whether a student voted on a proposal, by default the signer, and the votes recorded",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subjectCode, proposalID, err := proposalIds(code, id)
			if err != nil {
				return err
			}
			voter, err := identityArg(cmd, args, 0)
			if err != nil {
				return err
			}
			return runQuery(cmd, func(l *ledger.Ledger) (any, error) {
				voted, err := l.HasVoted(subjectCode, proposalID, voter)
				if err != nil {
					return nil, err
				}
				votes, err := l.CountVotes(subjectCode, proposalID)
				if err != nil {
					return nil, err
				}
				return map[string]any{"voted": voted, "votes": votes}, nil
			})
		},
	}
	cmd.Flags().UintVar(&code, "code", 0, "subject code")
	cmd.Flags().UintVar(&id, "proposal", 0, "proposal id")
	return cmd
}

func queryProposalsCommand() *cobra.Command {
	var state string
	cmd := &cobra.Command{
		Use:   "proposals",
		Short: "List indexed proposals, optionally in one state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, func(l *ledger.Ledger) (any, error) {
				return l.ListProposals(state)
			})
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "proposal state, e.g. VotationInProgress")
	return cmd
}

func queryOperationsCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "operations",
		Short: "List journaled operations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, func(l *ledger.Ledger) (any, error) {
				return l.Operations(limit)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows, 0 for all")
	return cmd
}

func queryReviewEventsCommand() *cobra.Command {
	var code uint
	cmd := &cobra.Command{
		Use:   "review-events",
		Short: "List the review requests raised for a subject code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			subjectCode, err := toUint32(code)
			if err != nil {
				return err
			}
			return runQuery(cmd, func(l *ledger.Ledger) (any, error) {
				return l.ReviewEvents(subjectCode)
			})
		},
	}
	cmd.Flags().UintVar(&code, "code", 0, "subject code")
	return cmd
}

func proposalIds(code, id uint) (uint32, uint32, error) {
	subjectCode, err := toUint32(code)
	if err != nil {
		return 0, 0, err
	}
	proposalID, err := toUint32(id)
	if err != nil {
		return 0, 0, err
	}
	return subjectCode, proposalID, nil
}
