// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ragchat Contributors

package google_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogabrielordonez/mcp-ragchat/internal/provider/google"
	ragerr "github.com/gogabrielordonez/mcp-ragchat/pkg/errors"
)

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := google.New(context.Background(), google.Config{})
	require.Error(t, err)
	assert.Equal(t, ragerr.CodeProviderNotConfigured, ragerr.CodeOf(err))
}

func TestNew(t *testing.T) {
	client, err := google.New(context.Background(), google.Config{APIKey: "g-test"})
	require.NoError(t, err)
	assert.Equal(t, "google", client.Name())
}
