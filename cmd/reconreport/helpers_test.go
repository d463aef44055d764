package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"reconreport/internal/core/model"
)

func mustTarget(t *testing.T, raw string) model.Target {
	t.Helper()
	tg, err := model.ParseTarget(raw)
	require.NoError(t, err)
	return tg
}
