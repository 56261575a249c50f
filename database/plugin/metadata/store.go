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

package metadata

import (
	"fmt"

	"github.com/blinklabs-io/academia/database/models"
	"github.com/blinklabs-io/academia/database/plugin"
	"github.com/blinklabs-io/academia/database/types"
	"gorm.io/gorm"

	// Register built-in metadata plugins
	_ "github.com/blinklabs-io/academia/database/plugin/metadata/postgres"
	_ "github.com/blinklabs-io/academia/database/plugin/metadata/sqlite"
)

type MetadataStore interface {
	// Database
	Close() error
	DB() *gorm.DB
	GetCommitTimestamp() (int64, error)
	SetCommitTimestamp(int64, types.Txn) error
	Transaction() types.Txn

	// Operation journal
	AddOperation(*models.Operation, types.Txn) error
	GetOperations(
		int, // limit
		types.Txn,
	) ([]models.Operation, error)

	// Proposal index
	SetProposalIndex(*models.ProposalIndex, types.Txn) error
	DeleteProposalIndex(
		uint32, // subjectCode
		uint32, // proposalID
		types.Txn,
	) error
	GetProposalIndexes(
		string, // state
		types.Txn,
	) ([]models.ProposalIndex, error)

	// Review events
	AddReviewEvent(*models.ReviewEvent, types.Txn) error
	GetReviewEvents(
		uint32, // subjectCode
		types.Txn,
	) ([]models.ReviewEvent, error)
}

// New returns the started metadata plugin selected by name
func New(pluginName string, opts plugin.StartOptions) (MetadataStore, error) {
	p, err := plugin.StartPlugin(plugin.PluginTypeMetadata, pluginName, opts)
	if err != nil {
		return nil, err
	}
	metadataStore, ok := p.(MetadataStore)
	if !ok {
		return nil, fmt.Errorf(
			"plugin '%s' does not implement MetadataStore interface",
			pluginName,
		)
	}
	return metadataStore, nil
}
