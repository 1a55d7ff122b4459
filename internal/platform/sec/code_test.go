// Copyright (c) 2026 Kritika. All rights reserved.
// Author: d.maksimov.dev@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmaksimov/kritika/internal/platform/sec"
)

/*
TestGenerateConfirmationCode verifies code length and uniqueness.
*/
func TestGenerateConfirmationCode(t *testing.T) {
	first, err := sec.GenerateConfirmationCode(20)
	require.NoError(t, err)
	assert.Len(t, first, 40)

	second, err := sec.GenerateConfirmationCode(20)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

/*
TestVerifyCode checks the code-against-digest verification round trip.
*/
func TestVerifyCode(t *testing.T) {
	code, err := sec.GenerateConfirmationCode(20)
	require.NoError(t, err)

	digest := sec.HashCode(code)
	assert.NotEqual(t, code, digest)

	assert.True(t, sec.VerifyCode(code, digest))
	assert.False(t, sec.VerifyCode("wrong-code", digest))
	assert.False(t, sec.VerifyCode(code, sec.HashCode("other")))
}
