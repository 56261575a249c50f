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
	"github.com/blinklabs-io/academia/database/models"
	"github.com/blinklabs-io/academia/ledger"
	"github.com/spf13/cobra"
)

func academicCommands() []*cobra.Command {
	return []*cobra.Command{
		createFacultyCommand(),
		createDegreeCommand(),
		createSpecialtyCommand(),
		createSubjectCommand(),
	}
}

func createFacultyCommand() *cobra.Command {
	var params ledger.FacultyParams
	cmd := &cobra.Command{
		Use:   "create-faculty",
		Short: "Create a faculty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLedgerCommand(cmd, true, func(
				ctx context.Context,
				l *ledger.Ledger,
				signer address.Identity,
			) (any, error) {
				return l.CreateFaculty(ctx, signer, params)
			})
		},
	}
	cmd.Flags().Int64Var(&params.ID, "id", 0, "next faculty id")
	cmd.Flags().StringVar(&params.Name, "name", "", "faculty name")
	return cmd
}

func createDegreeCommand() *cobra.Command {
	var params ledger.DegreeParams
	cmd := &cobra.Command{
		Use:   "create-degree",
		Short: "Create a degree under a faculty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLedgerCommand(cmd, true, func(
				ctx context.Context,
				l *ledger.Ledger,
				signer address.Identity,
			) (any, error) {
				return l.CreateDegree(ctx, signer, params)
			})
		},
	}
	cmd.Flags().Int64Var(&params.ID, "id", 0, "next degree id")
	cmd.Flags().StringVar(&params.Name, "name", "", "degree name")
	cmd.Flags().Int64Var(&params.FacultyID, "faculty", 0, "parent faculty id")
	return cmd
}

func createSpecialtyCommand() *cobra.Command {
	var params ledger.SpecialtyParams
	cmd := &cobra.Command{
		Use:   "create-specialty",
		Short: "Create a specialty under a degree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLedgerCommand(cmd, true, func(
				ctx context.Context,
				l *ledger.Ledger,
				signer address.Identity,
			) (any, error) {
				return l.CreateSpecialty(ctx, signer, params)
			})
		},
	}
	cmd.Flags().Int64Var(&params.ID, "id", 0, "next specialty id")
	cmd.Flags().StringVar(&params.Name, "name", "", "specialty name")
	cmd.Flags().Int64Var(&params.DegreeID, "degree", 0, "parent degree id")
	return cmd
}

func createSubjectCommand() *cobra.Command {
	var params ledger.SubjectParams
	var course string
	cmd := &cobra.Command{
		Use:   "create-subject",
		Short: "Create a subject and register its code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := models.ParseSubjectCourse(course)
			if err != nil {
				return err
			}
			params.Course = parsed
			return runLedgerCommand(cmd, true, func(
				ctx context.Context,
				l *ledger.Ledger,
				signer address.Identity,
			) (any, error) {
				return l.CreateSubject(ctx, signer, params)
			})
		},
	}
	cmd.Flags().Int64Var(&params.ID, "id", 0, "next subject id")
	cmd.Flags().StringVar(&params.Name, "name", "", "subject name")
	cmd.Flags().Int64Var(&params.DegreeID, "degree", 0, "degree id")
	cmd.Flags().Int64Var(&params.SpecialtyID, "specialty", 0, "specialty id, 0 for none")
	cmd.Flags().StringVar(&course, "course", models.SubjectCourseNotDefined.String(), "course year (NotDefined, First ... Ninth)")
	cmd.Flags().Int64Var(&params.Code, "code", 0, "subject code")
	cmd.Flags().StringVar(&params.Reference, "reference", "", "syllabus reference")
	cmd.Flags().Int64SliceVar(&params.Professors, "professors", nil, "professor ids teaching the subject")
	cmd.Flags().Int64SliceVar(&params.Students, "students", nil, "student ids enrolled in the subject")
	return cmd
}
