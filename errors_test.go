// Copyright 2024 The strtree (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package strtree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	t.Run("textErr", func(t *testing.T) {
		assert.EqualError(t, textErr("foo"), "strtree: foo")
	})

	t.Run("fmtErr", func(t *testing.T) {
		assert.EqualError(t, fmtErr("my %s is %s-ed to %d", "bar", "baz", 11), "strtree: my bar is baz-ed to 11")
	})

	t.Run("wrapErr", func(t *testing.T) {
		cause := errors.New("the root cause")
		err := wrapErr("the error is %q by", cause, "caused")

		assert.ErrorIs(t, err, cause)
		assert.Equal(t, `strtree: the error is "caused" by: the root cause`, err.Error())
	})

	t.Run("textPanic", func(t *testing.T) {
		assert.PanicsWithValue(t, "strtree: foo", func() {
			textPanic("foo")
		})
	})

	t.Run("fmtPanic", func(t *testing.T) {
		assert.PanicsWithValue(t, "strtree: my bar is baz-ed to 10", func() {
			fmtPanic("my %s is %s-ed to %d", "bar", "baz", 10)
		})
	})
}
