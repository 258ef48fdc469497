package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type EnumString string

type EnumInt int

var (
	bar = New(EnumString("bar"))
	baz = New(EnumString("baz"))

	hundred = New(EnumInt(100))
)

func TestNew(t *testing.T) {
	t.Run("create a enum of string", func(t *testing.T) {
		require.Equal(t, bar, EnumString("bar"))

		v, err := ToEnum[EnumString]("bar")
		require.NoError(t, err)
		require.Equal(t, v, bar)

		_, err = ToEnum[EnumString]("Bar")
		require.Error(t, err)

		require.Equal(t, []EnumString{bar, baz}, Values[EnumString]())
	})

	t.Run("create a enum of int", func(t *testing.T) {
		require.Equal(t, hundred, EnumInt(100))

		v, err := ToEnum[EnumInt]("100")
		require.NoError(t, err)
		require.Equal(t, v, hundred)

		_, err = ToEnum[EnumInt]("200")
		require.Error(t, err)
	})

	t.Run("unknown enum type", func(t *testing.T) {
		type unregistered string
		_, err := ToEnum[unregistered]("x")
		require.Error(t, err)
		require.Nil(t, Values[unregistered]())
	})
}
