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
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSigner = "0202020202020202020202020202020202020202020202020202020202020202"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListPlugins(t *testing.T) {
	shouldExit, output := listPlugins("list", "sqlite")
	assert.True(t, shouldExit)
	assert.Contains(t, output, "Available blob plugins:")
	assert.Contains(t, output, "badger")
	assert.NotContains(t, output, "metadata plugins")

	shouldExit, output = listPlugins("badger", "sqlite")
	assert.False(t, shouldExit)
	assert.Empty(t, output)

	all := listAllPlugins()
	assert.Contains(t, all, "postgres")
	assert.Contains(t, all, "sqlite")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, programName+" "))
}

func TestToUint32s(t *testing.T) {
	ret, err := toUint32s([]uint{1, 43600})
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 43600}, ret)
	_, err = toUint32s([]uint{1 << 33})
	require.Error(t, err)
}

func TestCommandsRequireSigner(t *testing.T) {
	dataDir := t.TempDir()
	_, err := execute(t, "--data-dir", dataDir, "--signer", "zz", "init-system")
	require.ErrorContains(t, err, "invalid signer")
}

func TestAdministratorSetup(t *testing.T) {
	dataDir := t.TempDir()
	base := []string{"--data-dir", dataDir, "--signer", testSigner}

	_, err := execute(t, append(base, "create-id-generator", "--namespace", "highRank")...)
	require.NoError(t, err)
	_, err = execute(t, append(base, "create-high-rank", "--code", "1111")...)
	require.NoError(t, err)
	_, err = execute(t, append(base, "init-system")...)
	require.NoError(t, err)

	out, err := execute(t, append(base, "query", "system")...)
	require.NoError(t, err)
	var system map[string]bool
	require.NoError(t, json.Unmarshal([]byte(out), &system))
	assert.True(t, system["initialized"])

	out, err = execute(t, append(base, "query", "role", "highRank")...)
	require.NoError(t, err)
	var role roleView
	require.NoError(t, json.Unmarshal([]byte(out), &role))
	assert.Equal(t, testSigner, role.Authority)
	assert.Equal(t, "highRank", role.Kind)

	// The wrong code is refused and nothing is printed
	out, err = execute(t, "--data-dir", dataDir, "--signer", strings.Repeat("03", 32), "create-high-rank", "--code", "0000")
	require.Error(t, err)
	assert.NotContains(t, out, `"kind"`)
}

func TestQueryVotedCountsReceipts(t *testing.T) {
	dataDir := t.TempDir()
	base := []string{"--data-dir", dataDir, "--signer", testSigner}
	out, err := execute(t, append(base, "query", "voted", "--code", "43600", "--proposal", "1")...)
	require.NoError(t, err)
	var result struct {
		Voted bool `json:"voted"`
		Votes int  `json:"votes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Voted)
	assert.Zero(t, result.Votes)

	_, err = execute(t, append(base, "create-id-generator", "--namespace", "faculty")...)
	require.Error(t, err)
}
