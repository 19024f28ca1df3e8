package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/casement/internal/domain/entity"
)

func TestPurgeTypes(t *testing.T) {
	all, err := purgeTypes(nil)
	require.NoError(t, err)
	assert.NotContains(t, all, entity.PurgeTargetConfig)
	assert.Contains(t, all, entity.PurgeTargetSession)

	only, err := purgeTypes([]string{"History", " logs "})
	require.NoError(t, err)
	assert.Equal(t, []entity.PurgeTargetType{entity.PurgeTargetHistory, entity.PurgeTargetLogs}, only)

	_, err = purgeTypes([]string{"cookies"})
	assert.Error(t, err)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 KiB", formatBytes(1536))
	assert.Equal(t, "2.0 MiB", formatBytes(2*1024*1024))
}
